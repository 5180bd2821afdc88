package occlusion

import "testing"

func TestSolidClipFirstFragment(t *testing.T) {
	o := New()
	draw := Solid{}.Clip(o, Range{0, 99})
	if len(draw) != 1 || draw[0] != (Range{0, 99}) {
		t.Fatalf("draw = %v, want [{0 99}]", draw)
	}
	if len(o.Ranges()) != 1 || o.Ranges()[0] != (Range{0, 99}) {
		t.Fatalf("ranges = %v, want [{0 99}]", o.Ranges())
	}
}

func TestSolidClipDisjointFragments(t *testing.T) {
	o := New()
	Solid{}.Clip(o, Range{100, 150})
	draw := Solid{}.Clip(o, Range{0, 50})
	if len(draw) != 1 || draw[0] != (Range{0, 50}) {
		t.Fatalf("draw = %v", draw)
	}
	if len(o.Ranges()) != 2 {
		t.Fatalf("expected two disjoint ranges, got %v", o.Ranges())
	}
}

func TestSolidClipOverlapMerges(t *testing.T) {
	o := New()
	Solid{}.Clip(o, Range{100, 150})
	draw := Solid{}.Clip(o, Range{90, 160})
	if len(draw) != 2 {
		t.Fatalf("expected two visible slivers, got %v", draw)
	}
	if len(o.Ranges()) != 1 || o.Ranges()[0] != (Range{90, 160}) {
		t.Fatalf("ranges after merge = %v, want [{90 160}]", o.Ranges())
	}
}

func TestFullyOccludedRejectsFurtherFragments(t *testing.T) {
	o := New()
	Solid{}.Clip(o, Range{0, 319})
	if !o.IsFullyOccluded() {
		t.Fatalf("expected full occlusion after {0,319}")
	}
	if draw := (Solid{}).Clip(o, Range{10, 20}); draw != nil {
		t.Fatalf("expected no draw once fully occluded, got %v", draw)
	}
}

func TestPortalClipDoesNotMutateOcclusion(t *testing.T) {
	o := New()
	Solid{}.Clip(o, Range{100, 150})
	before := append([]Range(nil), o.Ranges()...)
	draw := Portal{}.Clip(o, Range{90, 160})
	if len(draw) != 2 {
		t.Fatalf("expected two visible slivers from portal clip, got %v", draw)
	}
	after := o.Ranges()
	if len(before) != len(after) || before[0] != after[0] {
		t.Fatalf("portal clip mutated occlusion: before=%v after=%v", before, after)
	}
}

func TestInvalidFragmentRejected(t *testing.T) {
	o := New()
	if draw := (Solid{}).Clip(o, Range{10, 5}); draw != nil {
		t.Fatalf("expected nil for end < start, got %v", draw)
	}
	if draw := (Solid{}).Clip(o, Range{0, 320}); draw != nil {
		t.Fatalf("expected nil for out-of-range end, got %v", draw)
	}
}
