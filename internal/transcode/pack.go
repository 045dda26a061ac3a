package transcode

import (
	"encoding/binary"

	"github.com/AnyUserName/fraster-cli/internal/raster"
)

// emitCount resolves how many channels per pixel actually transfer:
// the window size clipped to what the source still has past the window
// start and to what the destination can hold. Destination channels
// beyond this stay at the scratch buffer's zero fill.
func emitCount(r raster.Region, win raster.ChannelWindow, dstChannels int) int {
	if win.Start < 0 {
		return 0
	}
	n := win.Count
	if avail := r.Channels - win.Start; avail < n {
		n = avail
	}
	if dstChannels < n {
		n = dstChannels
	}
	if n < 0 {
		n = 0
	}
	return n
}

// PackRows8 quantizes the region into dst as tightly packed 8-bit
// samples, dstChannels per pixel, rows in source order. dst must be
// zero-initialized and hold Width×Height×dstChannels bytes.
func PackRows8(r raster.Region, win raster.ChannelWindow, dstChannels int, dst []byte) {
	w, h := r.Width(), r.Height()
	n := emitCount(r, win, dstChannels)
	if n == 0 {
		// Nothing to transfer; dst keeps its zero fill. Skipping the
		// walk also keeps a window start past the source channels from
		// indexing beyond the row.
		return
	}
	for y := 0; y < h; y++ {
		src := r.Row(y)
		drow := dst[y*w*dstChannels:]
		for x := 0; x < w; x++ {
			sp := src[x*r.Channels+win.Start:]
			dp := drow[x*dstChannels:]
			for c := 0; c < n; c++ {
				dp[c] = Quantize8(sp[c])
			}
		}
	}
}

// PackRows16 quantizes the region into dst as tightly packed 16-bit
// samples. Samples are written in host order and each finished row is
// swapped to big-endian on little-endian hosts, keeping the extra
// working set bounded to one row.
func PackRows16(r raster.Region, win raster.ChannelWindow, dstChannels int, dst []byte) {
	w, h := r.Width(), r.Height()
	n := emitCount(r, win, dstChannels)
	if n == 0 {
		return
	}
	rowBytes := w * dstChannels * 2
	for y := 0; y < h; y++ {
		src := r.Row(y)
		drow := dst[y*rowBytes : (y+1)*rowBytes]
		for x := 0; x < w; x++ {
			sp := src[x*r.Channels+win.Start:]
			dp := drow[x*dstChannels*2:]
			for c := 0; c < n; c++ {
				binary.NativeEndian.PutUint16(dp[c*2:], Quantize16(sp[c]))
			}
		}
		// PNG samples are big-endian on the wire.
		if nativeLittle {
			SwapEndian16(drow)
		}
	}
}
