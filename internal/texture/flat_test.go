package texture

import (
	"encoding/binary"
	"testing"

	"github.com/zotley/doomcore/internal/wad"
)

func buildFlatWAD(t *testing.T) *wad.Directory {
	t.Helper()
	flat1 := make([]byte, FlatSize*FlatSize)
	for i := range flat1 {
		flat1[i] = byte(i % 256)
	}
	flat2 := make([]byte, FlatSize*FlatSize)

	lumpOrder := []string{"F_START", "FLOOR0_1", "CEIL1_1", "F_END"}
	lumpData := map[string][]byte{
		"F_START":  {},
		"FLOOR0_1": flat1,
		"CEIL1_1":  flat2,
		"F_END":    {},
	}

	var body []byte
	type entry struct {
		offset, size int
		name         string
	}
	var entries []entry
	const headerSize = 12
	const direntSize = 16
	for _, name := range lumpOrder {
		d := lumpData[name]
		entries = append(entries, entry{offset: headerSize + len(body), size: len(d), name: name})
		body = append(body, d...)
	}
	dirOffset := headerSize + len(body)
	raw := make([]byte, dirOffset+len(entries)*direntSize)
	copy(raw[0:4], "IWAD")
	binary.LittleEndian.PutUint32(raw[4:8], uint32(len(entries)))
	binary.LittleEndian.PutUint32(raw[8:12], uint32(dirOffset))
	copy(raw[headerSize:], body)
	for i, e := range entries {
		base := dirOffset + i*direntSize
		binary.LittleEndian.PutUint32(raw[base:base+4], uint32(e.offset))
		binary.LittleEndian.PutUint32(raw[base+4:base+8], uint32(e.size))
		copy(raw[base+8:base+16], e.name)
	}

	dir, err := wad.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return dir
}

func TestLoadFlatSetFindsBothFlats(t *testing.T) {
	dir := buildFlatWAD(t)
	set, err := LoadFlatSet(dir)
	if err != nil {
		t.Fatalf("LoadFlatSet: %v", err)
	}
	f := set.Lookup("FLOOR0_1")
	if f == nil {
		t.Fatalf("expected FLOOR0_1 to be found")
	}
	if f.At(0, 0) != 0 || f.At(1, 0) != 1 {
		t.Fatalf("unexpected flat pixel data")
	}
	if set.Lookup("CEIL1_1") == nil {
		t.Fatalf("expected CEIL1_1 to be found")
	}
	if set.Lookup("NOPE") != nil {
		t.Fatalf("expected unknown flat name to resolve to nil")
	}
}

func TestLoadFlatSetMissingMarkers(t *testing.T) {
	dir, err := wad.Parse(mustBuildEmptyWAD(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := LoadFlatSet(dir); err == nil {
		t.Fatalf("expected error when F_START/F_END markers are absent")
	}
}
