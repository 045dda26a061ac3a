package raster

import (
	"image"
)

// FromImage converts a decoded 8-bit image into a 4-channel float32
// region with samples in [0,1], non-premultiplied alpha.
//
// The returned region stores rows bottom-up, so the top scanline of img
// lands in the last region row. Fast paths avoid image.At for the
// common decoder output types.
func FromImage(img image.Image) Region {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	r := Region{
		Pix:      make([]float32, w*h*4),
		Rect:     image.Rect(0, 0, w, h),
		Channels: 4,
		Stride:   w * 4,
		Aspect:   1,
	}

	const inv255 = float32(1) / 255

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			row := r.Row(h - 1 - y)
			srow := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			for x := 0; x < w; x++ {
				row[x*4+0] = float32(srow[x*4+0]) * inv255
				row[x*4+1] = float32(srow[x*4+1]) * inv255
				row[x*4+2] = float32(srow[x*4+2]) * inv255
				row[x*4+3] = float32(srow[x*4+3]) * inv255
			}
		}
	default:
		for y := 0; y < h; y++ {
			row := r.Row(h - 1 - y)
			for x := 0; x < w; x++ {
				cr, cg, cb, ca := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				// Un-premultiply; RGBA() returns alpha-premultiplied
				// 16-bit values.
				a := float32(ca) / 65535
				if ca > 0 {
					row[x*4+0] = float32(cr) / float32(ca)
					row[x*4+1] = float32(cg) / float32(ca)
					row[x*4+2] = float32(cb) / float32(ca)
				} else {
					row[x*4+0], row[x*4+1], row[x*4+2] = 0, 0, 0
				}
				row[x*4+3] = a
			}
		}
	}
	return r
}
