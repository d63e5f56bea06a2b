package intern

import "testing"

func TestEachVisitsEveryInternedString(t *testing.T) {
	in := New()
	want := map[string]bool{"one": false, "two": false, "three": false}
	for s := range want {
		if _, err := in.Intern([]byte(s)); err != nil {
			t.Fatalf("Intern: %v", err)
		}
	}

	seen := 0
	in.Each(func(h IStr) {
		s := h.String()
		if _, ok := want[s]; !ok {
			t.Fatalf("Each visited unexpected string %q", s)
		}
		want[s] = true
		seen++
	})
	if seen != len(want) {
		t.Fatalf("Each visited %d entries, want %d", seen, len(want))
	}
	for s, ok := range want {
		if !ok {
			t.Fatalf("Each never visited %q", s)
		}
	}
}

func TestEachOnEmptyPool(t *testing.T) {
	in := New()
	in.Each(func(h IStr) {
		t.Fatalf("Each invoked callback on an empty pool, got %q", h.String())
	})
}
