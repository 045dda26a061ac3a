// Package dither perturbs float samples with bounded, reproducible
// noise before 8-bit quantization, decorrelating the quantization error
// from pixel position. The hash is the final-mix step of Bob Jenkins'
// lookup3, seeded per row from (y, seed), so identical seed and
// position always produce the identical perturbation.
package dither

import (
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// mix runs one lookup3 final-mix round over the three state words.
func mix(a, b, c uint32) (uint32, uint32, uint32) {
	a -= c
	a ^= bits.RotateLeft32(c, 4)
	c += b
	b -= a
	b ^= bits.RotateLeft32(a, 6)
	a += c
	c -= b
	c ^= bits.RotateLeft32(b, 8)
	b += a
	a -= c
	a ^= bits.RotateLeft32(c, 16)
	c += b
	b -= a
	b ^= bits.RotateLeft32(a, 19)
	a += c
	c -= b
	c ^= bits.RotateLeft32(b, 4)
	b += a
	return a, b, c
}

// Apply adds amplitude×(h−0.5) noise to every sample of the grid,
// h ∈ [0,1) hashed from (row, seed, running sample counter).
// excludeChannel names a channel to leave untouched (alpha; pass -1 for
// none); its counter slot still advances so the remaining channels keep
// their hash sequence.
//
// pix is mutated in place. xStride and yStride are in float32 elements:
// the distance between horizontally adjacent pixels and between rows.
// The perturbation magnitude never exceeds amplitude/2.
func Apply(pix []float32, channels, width, height, xStride, yStride int,
	amplitude float32, excludeChannel int, seed uint32) {

	for y := 0; y < height; y++ {
		row := pix[y*yStride:]
		a, b, c := uint32(y), seed, uint32(0)
		for x := 0; x < width; x++ {
			p := row[x*xStride:]
			for ch := 0; ch < channels; ch++ {
				a, b, c = mix(a, b, c)
				if ch != excludeChannel {
					h := float32(c) / (1 << 32)
					p[ch] += amplitude * (h - 0.5)
				}
				c++
			}
		}
	}
}

// SeedFromString derives a 32-bit dither seed from an arbitrary label,
// so callers can name seeds instead of picking integers. Stable across
// runs and platforms.
func SeedFromString(s string) uint32 {
	h := xxhash.Sum64String(s)
	return uint32(h) ^ uint32(h>>32)
}
