package wad

import (
	"fmt"
	"os"
	"path/filepath"
)

// The Offset* constants name the fixed offsets past a level-header lump (e.g.
// "E1M1" or "MAP01") spec §4.A requires.
const (
	OffsetThings    = 1
	OffsetLinedefs  = 2
	OffsetSidedefs  = 3
	OffsetVertexes  = 4
	OffsetSegs      = 5
	OffsetSSectors  = 6
	OffsetNodes     = 7
	OffsetSectors   = 8
	OffsetReject    = 9
	OffsetBlockmap  = 10
	numMapLumpKinds = 11
)

// MapLump returns the bytes of a map sub-lump found at a fixed offset past
// the named level-header lump, per spec §4.A.
func (d *Directory) MapLump(levelName string, offset int) ([]byte, error) {
	headerIdx, ok := d.GetIndexOf(levelName)
	if !ok {
		return nil, fmt.Errorf("wad: no level lump named %q", levelName)
	}
	idx := headerIdx + offset
	lump, ok := d.GetIndex(idx)
	if !ok {
		return nil, fmt.Errorf("wad: level %q missing lump at offset +%d", levelName, offset)
	}
	return lump.Data(), nil
}

// LoadFile reads a WAD file from disk, rejecting a relative name that
// traverses out of baseDir (an absolute name is accepted as given, see
// SanitizePath), and parses its directory.
func LoadFile(baseDir, name string) (*Directory, error) {
	full, ok := SanitizePath(baseDir, name)
	if !ok {
		return nil, fmt.Errorf("wad: path %q escapes base directory", name)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("wad: reading %q: %w", full, err)
	}
	return Parse(data)
}

// SanitizePath resolves name against baseDir and reports whether the
// result is allowed. A relative name is allowed only when it stays within
// baseDir; an absolute name is always allowed (cleaned, wherever it
// points), so an absolute --iwad path or a DOOMWADDIR hit still loads.
func SanitizePath(baseDir, name string) (string, bool) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", false
	}
	var full string
	if filepath.IsAbs(name) {
		full = filepath.Clean(name)
	} else {
		full = filepath.Join(absBase, name)
	}
	rel, err := filepath.Rel(absBase, full)
	if err != nil {
		return full, filepath.IsAbs(name)
	}
	if rel == ".." || (len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)) {
		return full, filepath.IsAbs(name)
	}
	return full, true
}

// DefaultIWADNames are the conventional IWAD file names doomcore searches
// for when --iwad is not given, mirroring the original engine's IWADS list.
var DefaultIWADNames = []string{"doom.wad", "doom1.wad", "doom2.wad"}

// FindIWAD searches a list of candidate directories (current directory
// first, by convention) for one of DefaultIWADNames, or for name itself if
// non-empty.
func FindIWAD(dirs []string, name string) (string, bool) {
	candidates := DefaultIWADNames
	if name != "" {
		candidates = []string{name}
	}
	for _, dir := range dirs {
		for _, cand := range candidates {
			p := filepath.Join(dir, cand)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p, true
			}
		}
		if name != "" {
			if info, err := os.Stat(name); err == nil && !info.IsDir() {
				return name, true
			}
		}
	}
	return "", false
}
