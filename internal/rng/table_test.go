package rng

import "testing"

func TestByteIsDeterministic(t *testing.T) {
	a := New()
	b := New()
	for i := 0; i < 500; i++ {
		if a.Byte() != b.Byte() {
			t.Fatalf("two fresh tables diverged at draw %d", i)
		}
	}
}

func TestByteCyclesThroughTable(t *testing.T) {
	tbl := NewWithTable([256]byte{0: 1, 1: 2, 2: 3})
	got := []byte{tbl.Byte(), tbl.Byte(), tbl.Byte()}
	want := []byte{2, 3, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("draw %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestResetRewindsIndex(t *testing.T) {
	tbl := New()
	first := tbl.Byte()
	tbl.Byte()
	tbl.Byte()
	tbl.Reset()
	if got := tbl.Byte(); got != first {
		t.Fatalf("after Reset, first draw = %d, want %d", got, first)
	}
}

func TestInt32Mod3Range(t *testing.T) {
	tbl := New()
	for i := 0; i < 1000; i++ {
		if v := tbl.Int32Mod3(); v < 0 || v > 2 {
			t.Fatalf("Int32Mod3 out of range: %d", v)
		}
	}
}
