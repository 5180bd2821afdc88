package texture

import (
	"encoding/binary"
	"fmt"

	"github.com/zotley/doomcore/internal/wad"
)

// SentinelIndex fills a composed wall texture's buffer before any
// patch is drawn onto it, so gaps left by ragged patch coverage render
// as a conspicuous, easily-spotted color rather than black.
const SentinelIndex = 251

// WallTexture is a composite texture assembled from one or more
// patches, addressed by (col,row) and stored row-major.
type WallTexture struct {
	Name   string
	Width  int
	Height int
	pixels []byte
}

// NewWallTexture allocates a composite texture pre-filled with the
// sentinel index, the same starting state LoadTextureSet gives every
// texture before drawing patches onto it. Exposed for callers (and
// tests) that build textures procedurally rather than from a WAD.
func NewWallTexture(name string, width, height int) *WallTexture {
	t := &WallTexture{Name: name, Width: width, Height: height, pixels: make([]byte, width*height)}
	for i := range t.pixels {
		t.pixels[i] = SentinelIndex
	}
	return t
}

// Set writes palette index v at (col,row), a no-op outside bounds so
// patch composition never needs its own clipping.
func (t *WallTexture) Set(col, row int, v byte) {
	if col < 0 || col >= t.Width || row < 0 || row >= t.Height {
		return
	}
	t.pixels[row*t.Width+col] = v
}

// At reads the palette index at (col,row).
func (t *WallTexture) At(col, row int) byte {
	return t.pixels[row*t.Width+col]
}

type patchDescriptor struct {
	originX, originY int16
	patchNum         int16
}

type textureDef struct {
	name    string
	width   int
	height  int
	patches []patchDescriptor
}

// TextureSet is the full set of named wall textures resolved from
// PNAMES plus TEXTURE1 (required) and TEXTURE2 (optional).
type TextureSet struct {
	byName map[string]*WallTexture
}

// NewTextureSet wraps a pre-built name -> texture map, for callers (and
// tests) assembling a TextureSet without a WAD to load from.
func NewTextureSet(textures map[string]*WallTexture) *TextureSet {
	return &TextureSet{byName: textures}
}

// Lookup resolves a side definition's texture name. A "-" prefixed (or
// bare "-") name always means no texture (nil), regardless of whether
// it happens to also match an entry in byName.
func (s *TextureSet) Lookup(name string) *WallTexture {
	if name == "" || name[0] == '-' {
		return nil
	}
	return s.byName[name]
}

// parsePatchNames decodes PNAMES: an i32 count followed by that many
// 8-byte patch lump names.
func parsePatchNames(data []byte) ([]string, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("texture: PNAMES too small")
	}
	count := int(int32(binary.LittleEndian.Uint32(data[0:4])))
	if count < 0 || 4+count*8 > len(data) {
		return nil, fmt.Errorf("texture: PNAMES count %d overruns lump", count)
	}
	names := make([]string, count)
	for i := 0; i < count; i++ {
		names[i] = name8(data[4+i*8 : 12+i*8])
	}
	return names, nil
}

// parseTextureLump decodes a TEXTURE1/TEXTURE2-format lump: an i32
// count, that many i32 offsets, then at each offset an 8-byte name,
// width/height at +12/+14, patch count at +20, followed by that many
// 10-byte patch descriptors.
func parseTextureLump(data []byte) ([]textureDef, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("texture: texture lump too small")
	}
	count := int(int32(binary.LittleEndian.Uint32(data[0:4])))
	if count < 0 || 4+count*4 > len(data) {
		return nil, fmt.Errorf("texture: texture lump count %d overruns lump", count)
	}
	defs := make([]textureDef, count)
	for i := 0; i < count; i++ {
		off := int(int32(binary.LittleEndian.Uint32(data[4+i*4 : 8+i*4])))
		if off < 0 || off+22 > len(data) {
			return nil, fmt.Errorf("texture: texture def %d offset %d out of range", i, off)
		}
		def := textureDef{
			name:   name8(data[off : off+8]),
			width:  int(int16(binary.LittleEndian.Uint16(data[off+12 : off+14]))),
			height: int(int16(binary.LittleEndian.Uint16(data[off+14 : off+16]))),
		}
		numPatches := int(int16(binary.LittleEndian.Uint16(data[off+20 : off+22])))
		patchBase := off + 22
		if numPatches < 0 || patchBase+numPatches*10 > len(data) {
			return nil, fmt.Errorf("texture: texture def %q patch count %d overruns lump", def.name, numPatches)
		}
		def.patches = make([]patchDescriptor, numPatches)
		for p := 0; p < numPatches; p++ {
			b := data[patchBase+p*10 : patchBase+p*10+10]
			def.patches[p] = patchDescriptor{
				originX:  int16(binary.LittleEndian.Uint16(b[0:2])),
				originY:  int16(binary.LittleEndian.Uint16(b[2:4])),
				patchNum: int16(binary.LittleEndian.Uint16(b[4:6])),
			}
		}
		defs[i] = def
	}
	return defs, nil
}

func name8(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

// LoadTextureSet assembles every wall texture named in TEXTURE1 (and
// TEXTURE2, if present) by compositing the patches PNAMES resolves
// them to, per vanilla's wall_texture loader.
func LoadTextureSet(dir *wad.Directory) (*TextureSet, error) {
	pnamesData, ok := dir.Get("PNAMES")
	if !ok {
		return nil, fmt.Errorf("texture: PNAMES lump not found")
	}
	patchNames, err := parsePatchNames(pnamesData)
	if err != nil {
		return nil, err
	}

	patchCache := make(map[int]*Patch)
	loadPatch := func(idx int) (*Patch, error) {
		if idx < 0 || idx >= len(patchNames) {
			return nil, fmt.Errorf("texture: patch index %d out of range", idx)
		}
		if p, ok := patchCache[idx]; ok {
			return p, nil
		}
		data, ok := dir.Get(patchNames[idx])
		if !ok {
			return nil, fmt.Errorf("texture: patch lump %q not found", patchNames[idx])
		}
		p, err := ParsePatch(data)
		if err != nil {
			return nil, fmt.Errorf("texture: patch %q: %w", patchNames[idx], err)
		}
		patchCache[idx] = p
		return p, nil
	}

	var allDefs []textureDef
	t1, ok := dir.Get("TEXTURE1")
	if !ok {
		return nil, fmt.Errorf("texture: TEXTURE1 is required")
	}
	defs, err := parseTextureLump(t1)
	if err != nil {
		return nil, err
	}
	allDefs = append(allDefs, defs...)

	if t2, ok := dir.Get("TEXTURE2"); ok {
		defs2, err := parseTextureLump(t2)
		if err != nil {
			return nil, err
		}
		allDefs = append(allDefs, defs2...)
	}

	set := &TextureSet{byName: make(map[string]*WallTexture, len(allDefs))}
	for _, def := range allDefs {
		tex := NewWallTexture(def.name, def.width, def.height)
		for _, pd := range def.patches {
			patch, err := loadPatch(int(pd.patchNum))
			if err != nil {
				return nil, fmt.Errorf("texture %q: %w", def.name, err)
			}
			composite := len(def.patches) > 1
			for col := 0; col < patch.Width; col++ {
				destCol := int(pd.originX) + col
				if destCol < 0 || destCol >= tex.Width {
					continue
				}
				originY := int(pd.originY)
				if !composite {
					// Vanilla bug: a single-patch column ignores the
					// patch's own origin_y.
					originY = 0
				}
				patch.Column(col).DrawToTexture(tex, destCol, originY)
			}
		}
		set.byName[def.name] = tex
	}
	return set, nil
}
