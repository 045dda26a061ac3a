package pngchunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Strategy tunes the deflate engine behind IDAT. The names follow the
// classic zlib strategies; see the mapping notes on levelFor.
type Strategy int

const (
	StrategyDefault Strategy = iota
	StrategyFiltered
	StrategyHuffmanOnly
	StrategyRLE
	StrategyFixed
)

// Header carries everything committed before the first scanline.
type Header struct {
	Width, Height int
	BitDepth      int // 8 or 16 bits per sample
	Color         ColorType

	OffsetX, OffsetY int32   // image placement, pixel units (oFFs)
	PixelAspect      float64 // 0 treated as square pixels (pHYs)

	SRGB  bool    // emit sRGB (+gAMA+cHRM per convention)
	Gamma float64 // emit gAMA when > 0 and SRGB is unset

	Level    int // deflate effort 0-9
	Strategy Strategy
}

// levelFor maps the strategy/level pair onto what the deflate library
// offers. HuffmanOnly and RLE both collapse to the library's
// Huffman-only mode (RLE is Huffman with match distance one, the
// closest available); Fixed has no equivalent and runs at level 1.
// Default and Filtered use the configured level; Filtered additionally
// turns on Sub row filtering upstream, which is what that strategy is
// tuned to compress.
func levelFor(s Strategy, level int) int {
	switch s {
	case StrategyHuffmanOnly, StrategyRLE:
		return zlib.HuffmanOnly
	case StrategyFixed:
		return 1
	default:
		if level < 0 {
			return 0
		}
		if level > 9 {
			return 9
		}
		return level
	}
}

type state int

const (
	stateStreaming state = iota // header committed, scanlines pending
	stateFinished
	stateFailed
)

// ErrWriterClosed reports use of a Writer after it finished or failed.
var ErrWriterClosed = errors.New("png writer closed")

// Writer streams one PNG image. NewWriter commits the header and all
// metadata chunks; WriteRow feeds scanlines top to bottom; Finish
// closes the compressed stream and writes IEND. After any error the
// writer is dead: every further call fails without touching the sink.
type Writer struct {
	w     io.Writer
	hdr   Header
	st    state
	zw    *zlib.Writer
	idat  idatChunker
	rows  int    // scanlines still expected
	fbuf  []byte // scanline staging: filter byte + filtered row
	bpp   int    // bytes per complete pixel
}

// NewWriter writes the signature, IHDR and metadata chunks to w and
// returns a writer ready for scanlines. On error nothing further may be
// written to w by the caller; the sink's lifetime stays with the caller.
func NewWriter(w io.Writer, hdr Header) (*Writer, error) {
	if hdr.BitDepth != 8 && hdr.BitDepth != 16 {
		return nil, fmt.Errorf("bit depth %d not supported", hdr.BitDepth)
	}
	rowBytes := hdr.Width * hdr.Color.Channels() * hdr.BitDepth / 8

	pw := &Writer{
		w:    w,
		hdr:  hdr,
		rows: hdr.Height,
		fbuf: make([]byte, 1+rowBytes),
		bpp:  hdr.Color.Channels() * hdr.BitDepth / 8,
	}
	if err := pw.writeHeader(); err != nil {
		pw.st = stateFailed
		return nil, err
	}

	pw.idat.w = w
	zw, err := zlib.NewWriterLevel(&pw.idat, levelFor(hdr.Strategy, hdr.Level))
	if err != nil {
		pw.st = stateFailed
		return nil, fmt.Errorf("deflate init: %w", err)
	}
	pw.zw = zw
	return pw, nil
}

func (pw *Writer) writeHeader() error {
	if _, err := pw.w.Write(pngSignature[:]); err != nil {
		return fmt.Errorf("write signature: %w", err)
	}

	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:], uint32(pw.hdr.Width))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(pw.hdr.Height))
	ihdr[8] = byte(pw.hdr.BitDepth)
	ihdr[9] = byte(pw.hdr.Color)
	// compression 0, filter 0, interlace 0
	if err := writeChunk(pw.w, "IHDR", ihdr[:]); err != nil {
		return fmt.Errorf("write IHDR: %w", err)
	}

	if err := pw.writeColorInfo(); err != nil {
		return err
	}

	if pw.hdr.OffsetX != 0 || pw.hdr.OffsetY != 0 {
		var offs [9]byte
		binary.BigEndian.PutUint32(offs[0:], uint32(pw.hdr.OffsetX))
		binary.BigEndian.PutUint32(offs[4:], uint32(pw.hdr.OffsetY))
		offs[8] = 0 // pixel units
		if err := writeChunk(pw.w, "oFFs", offs[:]); err != nil {
			return fmt.Errorf("write oFFs: %w", err)
		}
	}

	// Physical resolution from the pixel aspect ratio: a fixed 100 dpi
	// horizontal reference scaled to dots per meter, vertical scaled by
	// the aspect.
	aspect := pw.hdr.PixelAspect
	if aspect == 0 {
		aspect = 1
	}
	const dotsPerInch = 100.0
	const inchesPerMeter = 100.0 / 2.54
	dotsPerMeter := float64(dotsPerInch * inchesPerMeter)
	xres := uint32(dotsPerMeter)
	yres := uint32(dotsPerMeter * aspect)
	var phys [9]byte
	binary.BigEndian.PutUint32(phys[0:], xres)
	binary.BigEndian.PutUint32(phys[4:], yres)
	phys[8] = 1 // meters
	if err := writeChunk(pw.w, "pHYs", phys[:]); err != nil {
		return fmt.Errorf("write pHYs: %w", err)
	}
	return nil
}

// writeColorInfo emits the gamma/profile hint chunks. sRGB gets the
// full sRGB+gAMA+cHRM triple so legacy decoders agree with sRGB-aware
// ones; a bare gamma gets gAMA only; neither is also valid.
func (pw *Writer) writeColorInfo() error {
	switch {
	case pw.hdr.SRGB:
		// rendering intent: absolute colorimetric
		if err := writeChunk(pw.w, "sRGB", []byte{3}); err != nil {
			return fmt.Errorf("write sRGB: %w", err)
		}
		var gama [4]byte
		binary.BigEndian.PutUint32(gama[:], scaled(1.0/2.2))
		if err := writeChunk(pw.w, "gAMA", gama[:]); err != nil {
			return fmt.Errorf("write gAMA: %w", err)
		}
		chrm := make([]byte, 32)
		for i, v := range []float64{
			0.3127, 0.3290, // white
			0.64, 0.33, // red
			0.30, 0.60, // green
			0.15, 0.06, // blue
		} {
			binary.BigEndian.PutUint32(chrm[i*4:], scaled(v))
		}
		if err := writeChunk(pw.w, "cHRM", chrm); err != nil {
			return fmt.Errorf("write cHRM: %w", err)
		}
	case pw.hdr.Gamma > 0:
		var gama [4]byte
		binary.BigEndian.PutUint32(gama[:], scaled(pw.hdr.Gamma))
		if err := writeChunk(pw.w, "gAMA", gama[:]); err != nil {
			return fmt.Errorf("write gAMA: %w", err)
		}
	}
	return nil
}

// WriteRow emits one packed scanline (no filter byte; samples already
// quantized and byte-ordered). Rows arrive in the container's top-down
// order. Any failure kills the writer.
func (pw *Writer) WriteRow(row []byte) error {
	if pw.st != stateStreaming {
		return ErrWriterClosed
	}
	if pw.rows == 0 {
		pw.st = stateFailed
		return fmt.Errorf("scanline past image height %d", pw.hdr.Height)
	}
	if len(row) != len(pw.fbuf)-1 {
		pw.st = stateFailed
		return fmt.Errorf("scanline is %d bytes, want %d", len(row), len(pw.fbuf)-1)
	}

	if pw.hdr.Strategy == StrategyFiltered {
		pw.fbuf[0] = 1 // Sub
		for i, b := range row {
			prev := byte(0)
			if i >= pw.bpp {
				prev = row[i-pw.bpp]
			}
			pw.fbuf[1+i] = b - prev
		}
	} else {
		pw.fbuf[0] = 0 // None
		copy(pw.fbuf[1:], row)
	}

	if _, err := pw.zw.Write(pw.fbuf); err != nil {
		pw.st = stateFailed
		return fmt.Errorf("write scanline: %w", err)
	}
	pw.rows--
	return nil
}

// Finish closes the compressed stream, flushes the final IDAT chunk and
// writes IEND. The writer is unusable afterwards.
func (pw *Writer) Finish() error {
	if pw.st != stateStreaming {
		return ErrWriterClosed
	}
	if pw.rows != 0 {
		pw.st = stateFailed
		return fmt.Errorf("%d scanlines missing", pw.rows)
	}
	pw.st = stateFinished
	if err := pw.zw.Close(); err != nil {
		pw.st = stateFailed
		return fmt.Errorf("flush deflate: %w", err)
	}
	if err := pw.idat.flush(); err != nil {
		pw.st = stateFailed
		return fmt.Errorf("flush IDAT: %w", err)
	}
	if err := writeChunk(pw.w, "IEND", nil); err != nil {
		pw.st = stateFailed
		return fmt.Errorf("write IEND: %w", err)
	}
	return nil
}

// Abort marks the writer failed without touching the sink. Safe to call
// in any state, including after Finish, where it is a no-op.
func (pw *Writer) Abort() {
	if pw.st == stateStreaming {
		pw.st = stateFailed
	}
}

// Failed reports whether the writer died on an earlier error.
func (pw *Writer) Failed() bool { return pw.st == stateFailed }

// idatChunker buffers compressed bytes and emits them as IDAT chunks of
// at most idatChunkSize payload bytes.
type idatChunker struct {
	w   io.Writer
	buf []byte
}

const idatChunkSize = 1 << 15

func (c *idatChunker) Write(p []byte) (int, error) {
	c.buf = append(c.buf, p...)
	for len(c.buf) >= idatChunkSize {
		if err := writeChunk(c.w, "IDAT", c.buf[:idatChunkSize]); err != nil {
			return 0, err
		}
		c.buf = c.buf[idatChunkSize:]
	}
	return len(p), nil
}

func (c *idatChunker) flush() error {
	if len(c.buf) == 0 {
		return nil
	}
	err := writeChunk(c.w, "IDAT", c.buf)
	c.buf = nil
	return err
}
