package transcode

import (
	"math"
	"testing"
)

func TestQuantize8_Endpoints(t *testing.T) {
	cases := []struct {
		in   float32
		want uint8
	}{
		{0, 0},
		{1, 255},
		{-0.5, 0},
		{2.5, 255},
		{float32(math.Inf(-1)), 0},
		{float32(math.Inf(1)), 255},
		{0.5, 128},
		{0.25, 64},
		{0.75, 191},
	}
	for _, c := range cases {
		if got := Quantize8(c.in); got != c.want {
			t.Errorf("Quantize8(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestQuantize16_Endpoints(t *testing.T) {
	cases := []struct {
		in   float32
		want uint16
	}{
		{0, 0},
		{1, 65535},
		{-1, 0},
		{1.0001, 65535},
		{0.5, 32768},
		{0.25, 16384},
		{0.75, 49151},
	}
	for _, c := range cases {
		if got := Quantize16(c.in); got != c.want {
			t.Errorf("Quantize16(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestQuantize_Monotonic(t *testing.T) {
	var prev8 uint8
	var prev16 uint16
	for i := -100; i <= 1100; i++ {
		f := float32(i) / 1000
		q8 := Quantize8(f)
		q16 := Quantize16(f)
		if q8 < prev8 {
			t.Fatalf("Quantize8 not monotonic at %v: %d < %d", f, q8, prev8)
		}
		if q16 < prev16 {
			t.Fatalf("Quantize16 not monotonic at %v: %d < %d", f, q16, prev16)
		}
		prev8, prev16 = q8, q16
	}
}

func TestQuantize_NaN(t *testing.T) {
	nan := float32(math.NaN())
	if got := Quantize8(nan); got != 0 {
		t.Errorf("Quantize8(NaN) = %d, want 0", got)
	}
	if got := Quantize16(nan); got != 0 {
		t.Errorf("Quantize16(NaN) = %d, want 0", got)
	}
}
