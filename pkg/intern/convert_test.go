package intern

import "testing"

func TestFromString(t *testing.T) {
	in := New()
	h, err := FromString(in, "hello")
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	if h.String() != "hello" {
		t.Fatalf("String() = %q, want %q", h.String(), "hello")
	}
	h2, err := in.Intern([]byte("hello"))
	if err != nil {
		t.Fatalf("Intern: %v", err)
	}
	if !h.Equal(h2) {
		t.Fatal("FromString and Intern disagreed on canonical handle for the same text")
	}
}

func TestFromCStringNoTerminator(t *testing.T) {
	in := New()
	h, err := FromCString(in, []byte("no-nul-here"))
	if err != nil {
		t.Fatalf("FromCString: %v", err)
	}
	if h.String() != "no-nul-here" {
		t.Fatalf("String() = %q, want %q", h.String(), "no-nul-here")
	}
}

func TestFromCStringTerminatedProperly(t *testing.T) {
	in := New()
	h, err := FromCString(in, []byte("terminated\x00"))
	if err != nil {
		t.Fatalf("FromCString: %v", err)
	}
	if h.String() != "terminated" {
		t.Fatalf("String() = %q, want %q", h.String(), "terminated")
	}
}

func TestFromCStringInteriorNulRejected(t *testing.T) {
	in := New()
	cases := [][]byte{
		[]byte("a\x00b\x00"),
		[]byte("\x00abc\x00"),
	}
	for _, c := range cases {
		if _, err := FromCString(in, c); err != ErrInteriorNul {
			t.Fatalf("FromCString(%q) err = %v, want ErrInteriorNul", c, err)
		}
	}
}
