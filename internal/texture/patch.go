// Package texture decodes WAD graphic lumps (patches, composite wall
// textures, flats, palettes) into pixel data the rasterizer samples,
// per spec §4.F.
package texture

import (
	"encoding/binary"
	"fmt"
)

// Post is one vertical run of opaque pixels within a patch column.
type Post struct {
	TopDelta int
	Data     []byte
}

// Column is a patch's single vertical strip: a list of posts, each with
// its own vertical offset, allowing a column to have transparent gaps.
type Column struct {
	Posts []Post
}

// Patch is a decoded graphic lump: a sprite or wall-texture component,
// column-major with run-length-encoded transparency.
type Patch struct {
	Width      int
	Height     int
	LeftOffset int16
	TopOffset  int16
	columns    []Column
}

// Column returns patch column col. Callers are expected to stay within
// [0,Width) the way the composer below always does.
func (p *Patch) Column(col int) *Column {
	return &p.columns[col]
}

// ParsePatch decodes a patch-format graphic lump: an 8-byte header
// (width, height, left/top offsets) followed by width 4-byte column
// offsets, each pointing at a 0xFF-terminated run of posts.
func ParsePatch(data []byte) (*Patch, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("texture: patch lump too small for header")
	}
	width := int(int16(binary.LittleEndian.Uint16(data[0:2])))
	height := int(int16(binary.LittleEndian.Uint16(data[2:4])))
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("texture: patch has negative dimension %dx%d", width, height)
	}
	leftOffset := int16(binary.LittleEndian.Uint16(data[4:6]))
	topOffset := int16(binary.LittleEndian.Uint16(data[6:8]))

	if len(data) < 8+width*4 {
		return nil, fmt.Errorf("texture: patch lump too small for %d column offsets", width)
	}
	columns := make([]Column, width)
	for i := 0; i < width; i++ {
		off := int(int32(binary.LittleEndian.Uint32(data[8+i*4 : 12+i*4])))
		if off < 0 || off >= len(data) {
			return nil, fmt.Errorf("texture: patch column %d has out-of-range offset %d", i, off)
		}
		col, err := parseColumn(data[off:])
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}

	return &Patch{
		Width: width, Height: height,
		LeftOffset: leftOffset, TopOffset: topOffset,
		columns: columns,
	}, nil
}

// parseColumn reads a 0xFF-terminated run of posts from the start of b.
// Each post is [topDelta byte][length byte][pad byte][length data
// bytes][pad byte], the vanilla patch format's padding-byte quirk.
func parseColumn(b []byte) (Column, error) {
	var col Column
	pos := 0
	for {
		if pos >= len(b) {
			return col, fmt.Errorf("texture: patch column runs past end of lump")
		}
		topDelta := b[pos]
		if topDelta == 0xFF {
			break
		}
		if pos+2 >= len(b) {
			return col, fmt.Errorf("texture: patch column post header runs past end of lump")
		}
		length := int(b[pos+1])
		dataStart := pos + 3
		if dataStart+length > len(b) {
			return col, fmt.Errorf("texture: patch column post data runs past end of lump")
		}
		post := Post{
			TopDelta: int(topDelta),
			Data:     append([]byte(nil), b[dataStart:dataStart+length]...),
		}
		col.Posts = append(col.Posts, post)
		pos = dataStart + length + 1
	}
	return col, nil
}

// DrawToTexture composites this column into a wall texture's column
// texCol, offset vertically by originY. Reproduces vanilla's position
// underflow quirk: when topDelta+originY would go negative, the draw
// position clamps to 0 and the overrun is trimmed off the post's pixel
// count instead of being negated, while the copy still starts at the
// post's first pixel, matching the vanilla renderer's
// behavior that WAD authors have come to depend on.
func (c *Column) DrawToTexture(tex *WallTexture, texCol, originY int) {
	for _, post := range c.Posts {
		count := len(post.Data)
		position := post.TopDelta + originY
		if position < 0 {
			removed := -position
			count -= removed
			position = 0
		}
		if position >= tex.Height {
			break
		}
		if position+count > tex.Height {
			count = tex.Height - position
		}
		if count <= 0 {
			continue
		}
		for i := 0; i < count; i++ {
			tex.Set(texCol, position+i, post.Data[i])
		}
	}
}
