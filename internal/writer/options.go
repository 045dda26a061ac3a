package writer

import (
	"fmt"

	"github.com/AnyUserName/fraster-cli/internal/pngchunk"
)

// Depth selects the output sample width.
type Depth int

const (
	Depth8  Depth = 8
	Depth16 Depth = 16
)

// Options configures one encode call. The record is read-only for the
// duration of the call.
type Options struct {
	Depth            Depth
	CompressionLevel int               // deflate effort 0-9
	Strategy         pngchunk.Strategy // deflate strategy

	// Dither enables noise shaping before 8-bit quantization. Ignored
	// at 16-bit depth, where the amplitude would be sub-quantum.
	Dither     bool
	DitherSeed uint32

	// DitherInPlace perturbs the caller's sample buffer directly
	// instead of an owned copy, saving one region-sized allocation.
	// The buffer is then consumed: its float values are undefined for
	// reuse after the call.
	DitherInPlace bool

	// Colorspace is a label consulted only for the gamma/profile
	// metadata hint; it drives no numeric transform. Unknown labels
	// leave the hint unset.
	Colorspace string
}

// Validate rejects settings the container cannot express. Compression
// level and strategy never fail: out-of-range levels are clamped at the
// sink.
func (o Options) Validate() error {
	if o.Depth != Depth8 && o.Depth != Depth16 {
		return fmt.Errorf("bit depth %d not supported (want 8 or 16)", o.Depth)
	}
	return nil
}

// DefaultOptions mirrors the writer's historical defaults: 8-bit,
// mid-effort deflate, dithering on with seed 1.
func DefaultOptions() Options {
	return Options{
		Depth:            Depth8,
		CompressionLevel: 6,
		Strategy:         pngchunk.StrategyDefault,
		Dither:           true,
		DitherSeed:       1,
	}
}

// ParseStrategy maps the user-facing strategy names to the deflate
// strategy. Accepted: default, filtered, huffman, rle, fixed.
func ParseStrategy(name string) (pngchunk.Strategy, bool) {
	switch name {
	case "", "default":
		return pngchunk.StrategyDefault, true
	case "filtered":
		return pngchunk.StrategyFiltered, true
	case "huffman":
		return pngchunk.StrategyHuffmanOnly, true
	case "rle":
		return pngchunk.StrategyRLE, true
	case "fixed":
		return pngchunk.StrategyFixed, true
	default:
		return pngchunk.StrategyDefault, false
	}
}
