package arena

import (
	"bytes"
	"fmt"
	"testing"
)

func TestPushRoundTrip(t *testing.T) {
	a := New()
	p, err := a.Push([]byte("hello"))
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	if got := BytesAt(p); !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("BytesAt = %q, want %q", got, "hello")
	}
	if got := CStringAt(p); !bytes.Equal(got, []byte("hello\x00")) {
		t.Fatalf("CStringAt = %q, want %q", got, "hello\x00")
	}
}

func TestPushEmpty(t *testing.T) {
	a := New()
	p, err := a.Push(nil)
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	if got := BytesAt(p); len(got) != 0 {
		t.Fatalf("BytesAt = %q, want empty", got)
	}
	if got := CStringAt(p); !bytes.Equal(got, []byte{0}) {
		t.Fatalf("CStringAt = %v, want [0]", got)
	}
}

func TestAddressStabilityAcrossGrowth(t *testing.T) {
	a := New()
	type rec struct {
		ptr  []byte
		want string
	}
	var recs []rec
	for i := 0; i < 5000; i++ {
		s := fmt.Sprintf("string-number-%d-padding", i)
		p, err := a.Push([]byte(s))
		if err != nil {
			t.Fatalf("Push: %v", err)
		}
		recs = append(recs, rec{ptr: BytesAt(p), want: s})
	}
	if a.PageCount() <= 1 {
		t.Fatalf("expected multiple pages, got %d", a.PageCount())
	}
	for _, r := range recs {
		if string(r.ptr) != r.want {
			t.Fatalf("record corrupted after growth: got %q want %q", r.ptr, r.want)
		}
	}
}

func TestPushNilIsNotTooLong(t *testing.T) {
	// The ErrTooLong guard itself is not exercised here: an input past the
	// boundary would need a slice of more than 4GiB. This only checks that an
	// empty payload does not trip the guard.
	a := New()
	huge := make([]byte, 0)
	_ = huge
	// math.MaxUint32 is the real boundary; this test documents the contract
	// rather than allocating the boundary input.
	if _, err := a.Push(nil); err != nil {
		t.Fatalf("Push(nil) should succeed, got %v", err)
	}
}
