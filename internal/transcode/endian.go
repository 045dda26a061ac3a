package transcode

import "encoding/binary"

// nativeLittle reports whether the host stores multi-byte integers
// little-endian. PNG samples are big-endian on the wire, so 16-bit rows
// need a byte swap exactly when this is true.
var nativeLittle = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// NativeLittleEndian reports the host byte order probed at startup.
func NativeLittleEndian() bool { return nativeLittle }

// SwapEndian16 reverses the byte order of each 2-byte element in buf,
// in place. len(buf) must be even. No allocation, cannot fail; applying
// it twice restores the original bytes.
func SwapEndian16(buf []byte) {
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i], buf[i+1] = buf[i+1], buf[i]
	}
}

// SwapEndian32 reverses the byte order of each 4-byte element in buf,
// in place.
func SwapEndian32(buf []byte) {
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i], buf[i+3] = buf[i+3], buf[i]
		buf[i+1], buf[i+2] = buf[i+2], buf[i+1]
	}
}

// SwapEndian64 reverses the byte order of each 8-byte element in buf,
// in place.
func SwapEndian64(buf []byte) {
	for i := 0; i+7 < len(buf); i += 8 {
		buf[i], buf[i+7] = buf[i+7], buf[i]
		buf[i+1], buf[i+6] = buf[i+6], buf[i+1]
		buf[i+2], buf[i+5] = buf[i+5], buf[i+2]
		buf[i+3], buf[i+4] = buf[i+4], buf[i+3]
	}
}
