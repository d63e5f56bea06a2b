package unsafehelpers

import (
	"testing"
	"unsafe"
)

func TestBytesToStringRoundTrip(t *testing.T) {
	b := []byte("round trip")
	if got := BytesToString(b); got != "round trip" {
		t.Fatalf("BytesToString = %q, want %q", got, "round trip")
	}
}

func TestBytesToStringEmpty(t *testing.T) {
	if got := BytesToString(nil); got != "" {
		t.Fatalf("BytesToString(nil) = %q, want empty", got)
	}
	if got := BytesToString([]byte{}); got != "" {
		t.Fatalf("BytesToString([]byte{}) = %q, want empty", got)
	}
}

func TestStringToBytesRoundTrip(t *testing.T) {
	s := "round trip"
	b := StringToBytes(s)
	if string(b) != s {
		t.Fatalf("StringToBytes round trip = %q, want %q", b, s)
	}
}

func TestStringToBytesEmpty(t *testing.T) {
	if b := StringToBytes(""); b != nil {
		t.Fatalf("StringToBytes(\"\") = %v, want nil", b)
	}
}

func TestByteSliceFromReadsUnderlyingMemory(t *testing.T) {
	backing := []byte("abcdef")
	got := ByteSliceFrom(unsafe.Pointer(&backing[0]), 3)
	if string(got) != "abc" {
		t.Fatalf("ByteSliceFrom = %q, want %q", got, "abc")
	}
}

func TestByteSliceFromZeroLength(t *testing.T) {
	backing := []byte("abc")
	if got := ByteSliceFrom(unsafe.Pointer(&backing[0]), 0); got != nil {
		t.Fatalf("ByteSliceFrom with length 0 = %v, want nil", got)
	}
}

func TestAlignUp(t *testing.T) {
	cases := []struct{ x, align, want uintptr }{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{100, 16, 112},
	}
	for _, c := range cases {
		if got := AlignUp(c.x, c.align); got != c.want {
			t.Fatalf("AlignUp(%d, %d) = %d, want %d", c.x, c.align, got, c.want)
		}
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, x := range []uintptr{1, 2, 4, 8, 16, 1024} {
		if !IsPowerOfTwo(x) {
			t.Fatalf("IsPowerOfTwo(%d) = false, want true", x)
		}
	}
	for _, x := range []uintptr{0, 3, 5, 6, 7, 100} {
		if IsPowerOfTwo(x) {
			t.Fatalf("IsPowerOfTwo(%d) = true, want false", x)
		}
	}
}
