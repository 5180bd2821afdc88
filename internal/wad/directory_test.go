package wad

import (
	"encoding/binary"
	"testing"
)

// buildTestWAD assembles a minimal in-memory WAD with the given lumps.
func buildTestWAD(t *testing.T, id string, lumps map[string][]byte, order []string) []byte {
	t.Helper()
	var body []byte
	type entry struct {
		offset, size int
		name         string
	}
	var entries []entry
	for _, name := range order {
		data := lumps[name]
		entries = append(entries, entry{offset: headerSize + len(body), size: len(data), name: name})
		body = append(body, data...)
	}

	dirOffset := headerSize + len(body)
	out := make([]byte, dirOffset+len(entries)*direntSize)
	copy(out[0:4], id)
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(entries)))
	binary.LittleEndian.PutUint32(out[8:12], uint32(dirOffset))
	copy(out[headerSize:], body)

	for i, e := range entries {
		base := dirOffset + i*direntSize
		binary.LittleEndian.PutUint32(out[base:base+4], uint32(e.offset))
		binary.LittleEndian.PutUint32(out[base+4:base+8], uint32(e.size))
		copy(out[base+8:base+16], e.name)
	}
	return out
}

func TestParseValidWAD(t *testing.T) {
	raw := buildTestWAD(t, "IWAD", map[string][]byte{
		"E1M1":     {},
		"THINGS":   {1, 2, 3},
		"LINEDEFS": {9, 9},
	}, []string{"E1M1", "THINGS", "LINEDEFS"})

	dir, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if dir.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", dir.Len())
	}
	data, ok := dir.Get("things")
	if !ok || len(data) != 3 {
		t.Fatalf("case-insensitive Get(things) failed: %v %v", data, ok)
	}
	idx, ok := dir.GetIndexOf("E1M1")
	if !ok || idx != 0 {
		t.Fatalf("GetIndexOf(E1M1) = %d,%v want 0,true", idx, ok)
	}
	if !dir.IsMarker(0) {
		t.Fatalf("E1M1 header lump should be a zero-size marker")
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	raw := buildTestWAD(t, "ZWAD", nil, nil)
	if _, err := Parse(raw); err == nil {
		t.Fatalf("expected error for bad magic")
	}
}

func TestParseRejectsTruncated(t *testing.T) {
	if _, err := Parse([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for truncated header")
	}
}

func TestMapLumpOffsets(t *testing.T) {
	raw := buildTestWAD(t, "IWAD", map[string][]byte{
		"E1M1":     {},
		"THINGS":   {1},
		"LINEDEFS": {2},
		"SIDEDEFS": {3},
		"VERTEXES": {4},
	}, []string{"E1M1", "THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES"})
	dir, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := dir.MapLump("E1M1", OffsetVertexes)
	if err != nil {
		t.Fatalf("MapLump: %v", err)
	}
	if len(got) != 1 || got[0] != 4 {
		t.Fatalf("MapLump(VERTEXES) = %v, want [4]", got)
	}
	if _, err := dir.MapLump("NOPE", OffsetThings); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestSanitizePathRejectsTraversal(t *testing.T) {
	if _, ok := SanitizePath("/base/dir", "../../etc/passwd"); ok {
		t.Fatalf("expected traversal to be rejected")
	}
	if _, ok := SanitizePath("/base/dir", "doom.wad"); !ok {
		t.Fatalf("expected plain relative name to be accepted")
	}
}

func TestRangeBetweenMarkers(t *testing.T) {
	raw := buildTestWAD(t, "IWAD", map[string][]byte{
		"F_START": {},
		"FLAT1":   {1},
		"FLAT2":   {2},
		"F_END":   {},
	}, []string{"F_START", "FLAT1", "FLAT2", "F_END"})
	dir, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	from, to, ok := dir.Range("F_START", "F_END")
	if !ok || from != 1 || to != 3 {
		t.Fatalf("Range = %d,%d,%v want 1,3,true", from, to, ok)
	}
}
