// Package pngchunk writes PNG containers chunk by chunk: signature,
// IHDR, the ancillary metadata chunks this pipeline emits (sRGB, gAMA,
// cHRM, pHYs, oFFs), a zlib-compressed IDAT stream fed one scanline at
// a time, and IEND. It exists because the stock image/png encoder can
// neither accept pre-quantized big-endian rows nor emit any of those
// ancillary chunks or compression tunables.
package pngchunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

// ColorType is the PNG IHDR color type field.
type ColorType uint8

const (
	ColorGray      ColorType = 0
	ColorRGB       ColorType = 2
	ColorGrayAlpha ColorType = 4
	ColorRGBA      ColorType = 6
)

// ErrUnsupportedChannelCount rejects destination channel counts outside
// 1–4 before anything is allocated or created.
var ErrUnsupportedChannelCount = errors.New("unsupported channel count")

// ColorTypeForChannels maps a destination channel count to the PNG
// color type: 1→gray, 2→gray+alpha, 3→RGB, 4→RGB+alpha.
func ColorTypeForChannels(n int) (ColorType, error) {
	switch n {
	case 1:
		return ColorGray, nil
	case 2:
		return ColorGrayAlpha, nil
	case 3:
		return ColorRGB, nil
	case 4:
		return ColorRGBA, nil
	default:
		return 0, fmt.Errorf("%w: %d (PNG supports 1-4)", ErrUnsupportedChannelCount, n)
	}
}

// Channels returns the sample count per pixel for the color type.
func (c ColorType) Channels() int {
	switch c {
	case ColorGray:
		return 1
	case ColorGrayAlpha:
		return 2
	case ColorRGB:
		return 3
	default:
		return 4
	}
}

var pngSignature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// writeChunk emits one length/type/data/CRC chunk.
func writeChunk(w io.Writer, typ string, data []byte) error {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(len(data)))
	copy(hdr[4:], typ)
	crc := crc32.NewIEEE()
	crc.Write(hdr[4:])
	crc.Write(data)
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	var tail [4]byte
	binary.BigEndian.PutUint32(tail[:], crc.Sum32())
	_, err := w.Write(tail[:])
	return err
}

// scaled returns a chromaticity or gamma value in PNG's ×100000 fixed
// point encoding.
func scaled(v float64) uint32 { return uint32(v*100000 + 0.5) }
