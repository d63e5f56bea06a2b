package persist

import "testing"

func TestPutAndCount(t *testing.T) {
	dir := t.TempDir()
	snap, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer snap.Close()

	data := map[uint64]string{
		1: "foo",
		2: "bar",
		3: "baz",
	}
	for h, s := range data {
		if err := snap.Put(h, []byte(s)); err != nil {
			t.Fatalf("Put(%d): %v", h, err)
		}
	}

	n, err := snap.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if int(n) != len(data) {
		t.Fatalf("Count = %d, want %d", n, len(data))
	}
}

func TestExportAdapter(t *testing.T) {
	dir := t.TempDir()
	snap, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer snap.Close()

	entries := map[uint64]string{10: "ten", 20: "twenty"}
	n, err := snap.Export(func(fn func(hash uint64, b []byte)) {
		for h, s := range entries {
			fn(h, []byte(s))
		}
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if n != len(entries) {
		t.Fatalf("Export returned %d, want %d", n, len(entries))
	}
	got, err := snap.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if int(got) != len(entries) {
		t.Fatalf("Count = %d, want %d", got, len(entries))
	}
}
