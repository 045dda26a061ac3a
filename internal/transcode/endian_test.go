package transcode

import (
	"bytes"
	"testing"
)

func TestSwapEndian16(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04}
	SwapEndian16(buf)
	if !bytes.Equal(buf, []byte{0x02, 0x01, 0x04, 0x03}) {
		t.Errorf("got % x", buf)
	}
}

func TestSwapEndian_Involution(t *testing.T) {
	orig := make([]byte, 64)
	for i := range orig {
		orig[i] = byte(i*37 + 11)
	}

	for _, tc := range []struct {
		name string
		swap func([]byte)
	}{
		{"16", SwapEndian16},
		{"32", SwapEndian32},
		{"64", SwapEndian64},
	} {
		buf := append([]byte(nil), orig...)
		tc.swap(buf)
		if bytes.Equal(buf, orig) {
			t.Errorf("swap%s: did not change the buffer", tc.name)
		}
		tc.swap(buf)
		if !bytes.Equal(buf, orig) {
			t.Errorf("swap%s: double swap did not restore original", tc.name)
		}
	}
}

func TestSwapEndian32_64(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	SwapEndian32(buf)
	if !bytes.Equal(buf, []byte{4, 3, 2, 1, 8, 7, 6, 5}) {
		t.Errorf("swap32: got % x", buf)
	}
	buf = []byte{1, 2, 3, 4, 5, 6, 7, 8}
	SwapEndian64(buf)
	if !bytes.Equal(buf, []byte{8, 7, 6, 5, 4, 3, 2, 1}) {
		t.Errorf("swap64: got % x", buf)
	}
}
