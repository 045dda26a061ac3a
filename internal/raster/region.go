// Package raster models the floating-point image regions fed into the
// encode pipeline: an interleaved float32 sample buffer addressed by
// (x, y, channel), with an explicit row stride and a channel window
// selecting which source channels land in the output.
//
// Rows are stored bottom-up: row 0 of Pix is the bottom display scanline,
// the compositing convention of the render buffers this tool consumes.
// The encoder reconciles that with the container's top-down order at
// write time.
package raster

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrInvalidRegion indicates a region whose geometry is inconsistent
	// (empty extent, stride too small, or a buffer that does not cover
	// the addressed samples).
	ErrInvalidRegion = errors.New("invalid region")
)

// Region is a caller-owned float32 sample buffer covering a rectangular
// image area. Samples are interleaved per pixel; Stride is counted in
// float32 elements, not bytes, and may exceed Width×Channels for
// non-contiguous rows.
type Region struct {
	Pix      []float32
	Rect     image.Rectangle // origin and extent in image coordinates
	Channels int
	Stride   int     // float32 elements per row, ≥ Dx()×Channels
	Aspect   float64 // pixel aspect ratio; 0 means square pixels
}

// Width returns the pixel width of the region.
func (r Region) Width() int { return r.Rect.Dx() }

// Height returns the pixel height of the region.
func (r Region) Height() int { return r.Rect.Dy() }

// Validate checks the region invariants: non-empty extent, sane channel
// count, stride floor, and a sample buffer long enough for every
// addressed pixel.
func (r Region) Validate() error {
	if r.Rect.Dx() <= 0 || r.Rect.Dy() <= 0 {
		return fmt.Errorf("%w: empty extent %v", ErrInvalidRegion, r.Rect)
	}
	if r.Channels < 1 {
		return fmt.Errorf("%w: %d channels", ErrInvalidRegion, r.Channels)
	}
	if r.Stride < r.Rect.Dx()*r.Channels {
		return fmt.Errorf("%w: stride %d < width %d × channels %d",
			ErrInvalidRegion, r.Stride, r.Rect.Dx(), r.Channels)
	}
	// Last row must be fully addressable; rows before it by stride.
	need := (r.Rect.Dy()-1)*r.Stride + r.Rect.Dx()*r.Channels
	if len(r.Pix) < need {
		return fmt.Errorf("%w: buffer holds %d samples, region needs %d",
			ErrInvalidRegion, len(r.Pix), need)
	}
	return nil
}

// Row returns the sample slice for row y (0 = bottom scanline), trimmed
// to the addressed width. The caller must have validated the region.
func (r Region) Row(y int) []float32 {
	off := y * r.Stride
	return r.Pix[off : off+r.Rect.Dx()*r.Channels]
}

// Clone returns a deep copy of the region. Used when a pipeline stage
// needs to perturb samples without consuming the caller's buffer.
func (r Region) Clone() Region {
	out := r
	out.Pix = make([]float32, len(r.Pix))
	copy(out.Pix, r.Pix)
	return out
}

// ChannelWindow selects a contiguous run of source channels that maps,
// in order, onto destination channels 1..Count. Start+Count may reach
// past the source channel count; the transcoder only emits channels
// both sides agree on.
type ChannelWindow struct {
	Start int
	Count int
}

// Full returns the window covering all n channels from the first.
func Full(n int) ChannelWindow { return ChannelWindow{Start: 0, Count: n} }
