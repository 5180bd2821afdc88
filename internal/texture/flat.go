package texture

import (
	"fmt"

	"github.com/zotley/doomcore/internal/wad"
)

// FlatSize is the fixed width and height of every flat: vanilla floor
// and ceiling textures are always 64x64 raw palette-index buffers.
const FlatSize = 64

// Flat is a floor/ceiling texture: a raw, uncompressed 64x64 buffer of
// palette indices, unlike the column-run-length-encoded wall patches.
type Flat struct {
	Name   string
	Pixels []byte
}

// At reads the palette index at (col,row).
func (f *Flat) At(col, row int) byte {
	return f.Pixels[row*FlatSize+col]
}

// FlatSet is every flat lump found between F_START and F_END.
type FlatSet struct {
	byName map[string]*Flat
}

// Lookup resolves a sector's floor or ceiling texture name.
func (s *FlatSet) Lookup(name string) *Flat {
	return s.byName[name]
}

// LoadFlatSet reads every lump between the F_START/F_END markers and
// decodes each as a fixed-size 64x64 flat, skipping any nested marker
// lumps (zero-length entries) the way vanilla's flat loader does.
func LoadFlatSet(dir *wad.Directory) (*FlatSet, error) {
	from, to, ok := dir.Range("F_START", "F_END")
	if !ok {
		return nil, fmt.Errorf("texture: no F_START/F_END range in WAD")
	}
	set := &FlatSet{byName: make(map[string]*Flat, to-from)}
	for i := from; i < to; i++ {
		if dir.IsMarker(i) {
			continue
		}
		l, ok := dir.GetIndex(i)
		if !ok {
			continue
		}
		data := l.Data()
		if len(data) != FlatSize*FlatSize {
			return nil, fmt.Errorf("texture: flat %q has %d bytes, want %d", l.Name(), len(data), FlatSize*FlatSize)
		}
		set.byName[l.Name()] = &Flat{Name: l.Name(), Pixels: append([]byte(nil), data...)}
	}
	return set, nil
}
