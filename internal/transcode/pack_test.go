package transcode

import (
	"image"
	"testing"

	"github.com/AnyUserName/fraster-cli/internal/raster"
)

// region2x2 builds a 2×2 RGBA region with every pixel (0.5, 0.25, 0.75, 1).
func region2x2(stridePad int) raster.Region {
	ch := 4
	w, h := 2, 2
	stride := w*ch + stridePad
	pix := make([]float32, h*stride)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := pix[y*stride+x*ch:]
			p[0], p[1], p[2], p[3] = 0.5, 0.25, 0.75, 1.0
		}
	}
	return raster.Region{
		Pix:      pix,
		Rect:     image.Rect(0, 0, w, h),
		Channels: ch,
		Stride:   stride,
	}
}

func TestPackRows8(t *testing.T) {
	r := region2x2(0)
	dst := make([]byte, 2*2*4)
	PackRows8(r, raster.Full(4), 4, dst)

	want := []byte{128, 64, 191, 255}
	for px := 0; px < 4; px++ {
		for c := 0; c < 4; c++ {
			if dst[px*4+c] != want[c] {
				t.Fatalf("pixel %d channel %d: got %d, want %d", px, c, dst[px*4+c], want[c])
			}
		}
	}
}

func TestPackRows8_PaddedStride(t *testing.T) {
	r := region2x2(5) // non-contiguous rows
	dst := make([]byte, 2*2*4)
	PackRows8(r, raster.Full(4), 4, dst)
	for i, b := range dst {
		want := []byte{128, 64, 191, 255}[i%4]
		if b != want {
			t.Fatalf("byte %d: got %d, want %d", i, b, want)
		}
	}
}

func TestPackRows8_ChannelWindow(t *testing.T) {
	r := region2x2(0)
	// Window onto (G, B): 4-channel source written as 2-channel dest.
	dst := make([]byte, 2*2*2)
	PackRows8(r, raster.ChannelWindow{Start: 1, Count: 2}, 2, dst)
	for px := 0; px < 4; px++ {
		if dst[px*2] != 64 || dst[px*2+1] != 191 {
			t.Fatalf("pixel %d: got (%d,%d), want (64,191)", px, dst[px*2], dst[px*2+1])
		}
	}
}

func TestPackRows8_ShortSource(t *testing.T) {
	// 2-channel source into 3-channel dest: third channel keeps the
	// scratch buffer's zero fill.
	w, h, ch := 2, 1, 2
	pix := make([]float32, w*ch)
	for i := range pix {
		pix[i] = 1
	}
	r := raster.Region{Pix: pix, Rect: image.Rect(0, 0, w, h), Channels: ch, Stride: w * ch}

	dst := make([]byte, w*3)
	PackRows8(r, raster.Full(3), 3, dst)
	for x := 0; x < w; x++ {
		if dst[x*3] != 255 || dst[x*3+1] != 255 {
			t.Errorf("pixel %d: transferred channels got (%d,%d), want (255,255)",
				x, dst[x*3], dst[x*3+1])
		}
		if dst[x*3+2] != 0 {
			t.Errorf("pixel %d: unfilled channel got %d, want 0", x, dst[x*3+2])
		}
	}
}

func TestPackRows8_WindowPastSource(t *testing.T) {
	r := region2x2(0)
	dst := make([]byte, 2*2*4)
	for i := range dst {
		dst[i] = 0
	}
	// Start past the last channel: nothing to transfer, all zeros stay.
	PackRows8(r, raster.ChannelWindow{Start: 4, Count: 2}, 4, dst)
	for i, b := range dst {
		if b != 0 {
			t.Fatalf("byte %d: got %d, want 0", i, b)
		}
	}
}

func TestPackRows_WindowBeyondSource(t *testing.T) {
	// Start strictly beyond the channel count. Both packers must leave
	// the destination untouched instead of reading past the row.
	r := region2x2(0)

	dst8 := make([]byte, 2*2*4)
	PackRows8(r, raster.ChannelWindow{Start: 5, Count: 2}, 4, dst8)
	for i, b := range dst8 {
		if b != 0 {
			t.Fatalf("8-bit byte %d: got %d, want 0", i, b)
		}
	}

	dst16 := make([]byte, 2*2*4*2)
	PackRows16(r, raster.ChannelWindow{Start: 5, Count: 2}, 4, dst16)
	for i, b := range dst16 {
		if b != 0 {
			t.Fatalf("16-bit byte %d: got %d, want 0", i, b)
		}
	}
}

func TestPackRows8_NegativeWindowStart(t *testing.T) {
	r := region2x2(0)
	dst := make([]byte, 2*2*4)
	PackRows8(r, raster.ChannelWindow{Start: -1, Count: 2}, 4, dst)
	for i, b := range dst {
		if b != 0 {
			t.Fatalf("byte %d: got %d, want 0", i, b)
		}
	}
}

func TestPackRows16_BigEndian(t *testing.T) {
	r := region2x2(0)
	dst := make([]byte, 2*2*4*2)
	PackRows16(r, raster.Full(4), 4, dst)

	// 0.5→32768, 0.25→16384, 0.75→49151, 1→65535, big-endian on the
	// wire regardless of host order.
	want := []byte{
		0x80, 0x00, // 32768
		0x40, 0x00, // 16384
		0xBF, 0xFF, // 49151
		0xFF, 0xFF, // 65535
	}
	for px := 0; px < 4; px++ {
		got := dst[px*8 : px*8+8]
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("pixel %d: got % x, want % x", px, got, want)
			}
		}
	}
}
