// Package transcode turns validated float32 regions into tightly packed
// 8- or 16-bit raster rows: quantization with saturation, channel-window
// remapping across a source/destination channel mismatch, and big-endian
// normalization of multi-byte samples.
package transcode

// Quantize8 maps a normalized sample to [0,255] with rounding.
// Out-of-range input saturates; NaN maps to 0. Total and monotonic.
func Quantize8(f float32) uint8 {
	if !(f > 0) {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}

// Quantize16 maps a normalized sample to [0,65535] with rounding.
func Quantize16(f float32) uint16 {
	if !(f > 0) {
		return 0
	}
	if f >= 1 {
		return 65535
	}
	return uint16(f*65535 + 0.5)
}
