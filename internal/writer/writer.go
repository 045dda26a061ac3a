// Package writer orchestrates the float-to-PNG pipeline: optional
// dithering, quantization and packing, reverse-order row emission and
// guaranteed release of the file and container writer on every exit
// path.
package writer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AnyUserName/fraster-cli/internal/dither"
	"github.com/AnyUserName/fraster-cli/internal/pngchunk"
	"github.com/AnyUserName/fraster-cli/internal/raster"
	"github.com/AnyUserName/fraster-cli/internal/transcode"
)

var (
	// ErrSinkUnavailable reports that the destination file could not be
	// created or opened.
	ErrSinkUnavailable = errors.New("destination unavailable")
	// ErrHeaderWrite reports a failure while committing the header or
	// metadata chunks.
	ErrHeaderWrite = errors.New("header write failed")
	// ErrEncoderInternal reports a failure during row emission or
	// stream finalization.
	ErrEncoderInternal = errors.New("encoder failure")
)

// ditherAmplitude is one 8-bit quantum: enough to break up banding,
// invisible otherwise.
const ditherAmplitude = float32(1.0) / 255

// Encode writes the region to path as a PNG. The file is created or
// truncated; unsupported channel counts and invalid regions are
// rejected before the file exists. On failure after creation the file
// is closed but left in place; its contents are undefined and cleanup
// is the caller's responsibility.
func Encode(path string, region raster.Region, win raster.ChannelWindow, dstChannels int, opts Options) error {
	if _, err := pngchunk.ColorTypeForChannels(dstChannels); err != nil {
		return err
	}
	if err := region.Validate(); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}
	return encodeSink(f, region, win, dstChannels, opts)
}

// encodeSink runs the pipeline and closes the sink exactly once,
// success or failure. A close error surfaces only when encoding itself
// succeeded.
func encodeSink(wc io.WriteCloser, region raster.Region, win raster.ChannelWindow, dstChannels int, opts Options) error {
	encErr := EncodeTo(wc, region, win, dstChannels, opts)
	if cerr := wc.Close(); cerr != nil && encErr == nil {
		encErr = fmt.Errorf("%w: close destination: %v", ErrEncoderInternal, cerr)
	}
	return encErr
}

// EncodeTo runs the pipeline against an arbitrary sink. It never
// closes w; the container writer it creates internally is dead on
// return, success or failure.
func EncodeTo(w io.Writer, region raster.Region, win raster.ChannelWindow, dstChannels int, opts Options) error {
	colorType, err := pngchunk.ColorTypeForChannels(dstChannels)
	if err != nil {
		return err
	}
	if err := region.Validate(); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	hdr := pngchunk.Header{
		Width:       region.Width(),
		Height:      region.Height(),
		BitDepth:    int(opts.Depth),
		Color:       colorType,
		OffsetX:     int32(region.Rect.Min.X),
		OffsetY:     int32(region.Rect.Min.Y),
		PixelAspect: region.Aspect,
		Level:       opts.CompressionLevel,
		Strategy:    opts.Strategy,
	}
	if hint, ok := colorspaceHints[opts.Colorspace]; ok {
		hdr.SRGB = hint.srgb
		hdr.Gamma = hint.gamma
	}

	// Commit the header before touching pixel data: a sink that cannot
	// take the preamble fails without the caller's buffer ever being
	// perturbed, even with DitherInPlace set.
	pw, err := pngchunk.NewWriter(w, hdr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHeaderWrite, err)
	}
	defer pw.Abort()

	// Dither runs before quantization, 8-bit only. Default is to
	// perturb an owned copy; DitherInPlace consumes the caller's
	// buffer instead.
	if opts.Dither && opts.Depth != Depth16 {
		if !opts.DitherInPlace {
			region = region.Clone()
		}
		alpha := -1
		if region.Channels == 4 {
			alpha = 3
		}
		dither.Apply(region.Pix, region.Channels, region.Width(), region.Height(),
			region.Channels, region.Stride, ditherAmplitude, alpha, opts.DitherSeed)
	}

	// Materialize every packed, quantized, byte-ordered row up front.
	// make() zero-fills, which is the defined fallback for destination
	// channels the source cannot supply.
	rowBytes := region.Width() * dstChannels * int(opts.Depth) / 8
	scratch := make([]byte, rowBytes*region.Height())
	if opts.Depth == Depth16 {
		transcode.PackRows16(region, win, dstChannels, scratch)
	} else {
		transcode.PackRows8(region, win, dstChannels, scratch)
	}

	// Region rows are stored bottom-up; PNG scanlines run top-down.
	// Emitting the last materialized row first reconciles the two
	// without a buffer transpose.
	for y := region.Height() - 1; y >= 0; y-- {
		if err := pw.WriteRow(scratch[y*rowBytes : (y+1)*rowBytes]); err != nil {
			return fmt.Errorf("%w: row %d: %v", ErrEncoderInternal, y, err)
		}
	}

	if err := pw.Finish(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncoderInternal, err)
	}
	return nil
}
