package level

import (
	"encoding/binary"

	"github.com/zotley/doomcore/internal/wad"
)

const (
	vertexSize    = 4
	lineSize      = 14
	sideSize      = 30
	sectorSize    = 26
	segSize       = 12
	subSectorSize = 4
	nodeSize      = 28
	thingSize     = 10
)

// bamToRad converts a vanilla Binary Angle Measure value (full 32-bit
// circle) to radians. Segment angles in SEGS are the high 16 bits of a
// BAM value, so the raw i16 is widened back to u32 before scaling.
const bamToRad = (3.14159265 / 4) / (1 << 29)

func i16(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) }

func name8(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

func chunks(data []byte, size int) ([][]byte, bool) {
	if len(data)%size != 0 {
		return nil, false
	}
	n := len(data) / size
	out := make([][]byte, n)
	for i := 0; i < n; i++ {
		out[i] = data[i*size : (i+1)*size]
	}
	return out, true
}

// Load parses the nine map lumps following levelName's header lump in dir
// and builds a fully derived Level: vertices, sectors, sides, lines,
// segments, sub-sectors and the BSP node tree.
func Load(dir *wad.Directory, levelName string) (*Level, error) {
	lvl := &Level{Name: levelName, RootNode: -1}

	if err := lvl.loadVertexes(dir, levelName); err != nil {
		return nil, err
	}
	if err := lvl.loadSectors(dir, levelName); err != nil {
		return nil, err
	}
	if err := lvl.loadSides(dir, levelName); err != nil {
		return nil, err
	}
	if err := lvl.loadLines(dir, levelName); err != nil {
		return nil, err
	}
	if err := lvl.loadSegments(dir, levelName); err != nil {
		return nil, err
	}
	if err := lvl.loadSubSectors(dir, levelName); err != nil {
		return nil, err
	}
	if err := lvl.loadNodes(dir, levelName); err != nil {
		return nil, err
	}
	if err := lvl.loadThings(dir, levelName); err != nil {
		return nil, err
	}
	if reject, err := dir.MapLump(levelName, wad.OffsetReject); err == nil {
		lvl.Reject = reject
	}

	if len(lvl.Nodes) > 0 {
		lvl.RootNode = len(lvl.Nodes) - 1
	}
	return lvl, nil
}

func (lvl *Level) loadVertexes(dir *wad.Directory, name string) error {
	data, err := dir.MapLump(name, wad.OffsetVertexes)
	if err != nil {
		return err
	}
	recs, ok := chunks(data, vertexSize)
	if !ok {
		return &MapError{Kind: "vertex", Index: -1, Msg: "lump size not a multiple of 4"}
	}
	lvl.Vertexes = make([]Vertex, len(recs))
	for i, r := range recs {
		lvl.Vertexes[i] = Vertex{X: float32(i16(r[0:2])), Y: float32(i16(r[2:4]))}
	}
	return nil
}

func (lvl *Level) loadSectors(dir *wad.Directory, name string) error {
	data, err := dir.MapLump(name, wad.OffsetSectors)
	if err != nil {
		return err
	}
	recs, ok := chunks(data, sectorSize)
	if !ok {
		return &MapError{Kind: "sector", Index: -1, Msg: "lump size not a multiple of 26"}
	}
	lvl.Sectors = make([]Sector, len(recs))
	for i, r := range recs {
		lvl.Sectors[i] = Sector{
			FloorHeight:    float32(i16(r[0:2])),
			CeilingHeight:  float32(i16(r[2:4])),
			FloorTexture:   name8(r[4:12]),
			CeilingTexture: name8(r[12:20]),
			LightLevel:     i16(r[20:22]),
			Special:        i16(r[22:24]),
			Tag:            i16(r[24:26]),
		}
	}
	return nil
}

func (lvl *Level) loadSides(dir *wad.Directory, name string) error {
	data, err := dir.MapLump(name, wad.OffsetSidedefs)
	if err != nil {
		return err
	}
	recs, ok := chunks(data, sideSize)
	if !ok {
		return &MapError{Kind: "side", Index: -1, Msg: "lump size not a multiple of 30"}
	}
	lvl.Sides = make([]SideDef, len(recs))
	for i, r := range recs {
		sector := int(i16(r[28:30]))
		if sector < 0 || sector >= len(lvl.Sectors) {
			return &MapError{Kind: "side", Index: i, Bound: sector, Msg: "references invalid sector"}
		}
		lvl.Sides[i] = SideDef{
			XOffset:       float32(i16(r[0:2])),
			YOffset:       float32(i16(r[2:4])),
			TopTexture:    name8(r[4:12]),
			LowerTexture:  name8(r[12:20]),
			MiddleTexture: name8(r[20:28]),
			Sector:        sector,
		}
	}
	return nil
}

func (lvl *Level) loadLines(dir *wad.Directory, name string) error {
	data, err := dir.MapLump(name, wad.OffsetLinedefs)
	if err != nil {
		return err
	}
	recs, ok := chunks(data, lineSize)
	if !ok {
		return &MapError{Kind: "line", Index: -1, Msg: "lump size not a multiple of 14"}
	}
	lvl.Lines = make([]Line, len(recs))
	for i, r := range recs {
		v1 := int(i16(r[0:2]))
		v2 := int(i16(r[2:4]))
		if v1 < 0 || v1 >= len(lvl.Vertexes) {
			return &MapError{Kind: "line", Index: i, Bound: v1, Msg: "references invalid start vertex"}
		}
		if v2 < 0 || v2 >= len(lvl.Vertexes) {
			return &MapError{Kind: "line", Index: i, Bound: v2, Msg: "references invalid end vertex"}
		}
		frontSide := int(i16(r[10:12]))
		backSide := int(i16(r[12:14]))
		if frontSide < 0 || frontSide >= len(lvl.Sides) {
			return &MapError{Kind: "line", Index: i, Bound: frontSide, Msg: "references invalid front side"}
		}
		frontSector := lvl.Sides[frontSide].Sector
		backSector := -1
		if backSide >= 0 {
			if backSide >= len(lvl.Sides) {
				return &MapError{Kind: "line", Index: i, Bound: backSide, Msg: "references invalid back side"}
			}
			backSector = lvl.Sides[backSide].Sector
		}
		lvl.Lines[i] = Line{
			V1: v1, V2: v2,
			Flags:       i16(r[4:6]),
			Special:     i16(r[6:8]),
			Tag:         i16(r[8:10]),
			FrontSide:   frontSide,
			BackSide:    backSide,
			FrontSector: frontSector,
			BackSector:  backSector,
		}
	}
	return nil
}

func (lvl *Level) loadSegments(dir *wad.Directory, name string) error {
	data, err := dir.MapLump(name, wad.OffsetSegs)
	if err != nil {
		return err
	}
	recs, ok := chunks(data, segSize)
	if !ok {
		return &MapError{Kind: "segment", Index: -1, Msg: "lump size not a multiple of 12"}
	}
	lvl.Segments = make([]LineSegment, len(recs))
	for i, r := range recs {
		v1 := int(i16(r[0:2]))
		v2 := int(i16(r[2:4]))
		if v1 < 0 || v1 >= len(lvl.Vertexes) {
			return &MapError{Kind: "segment", Index: i, Bound: v1, Msg: "references invalid start vertex"}
		}
		if v2 < 0 || v2 >= len(lvl.Vertexes) {
			return &MapError{Kind: "segment", Index: i, Bound: v2, Msg: "references invalid end vertex"}
		}
		lineIdx := int(i16(r[6:8]))
		if lineIdx < 0 || lineIdx >= len(lvl.Lines) {
			return &MapError{Kind: "segment", Index: i, Bound: lineIdx, Msg: "references invalid line"}
		}
		side := int(i16(r[8:10]))
		ln := &lvl.Lines[lineIdx]

		sideIdx := ln.FrontSide
		if side != 0 {
			sideIdx = ln.BackSide
			if sideIdx < 0 {
				return &MapError{Kind: "segment", Index: i, Bound: lineIdx, Msg: "side 1 of one-sided line"}
			}
		}

		frontSector, backSector := ln.FrontSector, ln.BackSector
		if side != 0 {
			frontSector, backSector = backSector, frontSector
			if frontSector < 0 {
				return &MapError{Kind: "segment", Index: i, Bound: lineIdx, Msg: "back side of one-sided line"}
			}
		}

		bam := uint32(uint16(i16(r[4:6]))) << 16
		angle := float32(bam) * bamToRad
		normalAngle := angle - (3.14159265 / 2)
		nx, ny := cos32(normalAngle), sin32(normalAngle)

		lvl.Segments[i] = LineSegment{
			V1: lvl.Vertexes[v1], V2: lvl.Vertexes[v2],
			NormalX: nx, NormalY: ny,
			Line: lineIdx, Side: sideIdx,
			Offset:      float32(i16(r[10:12])),
			FrontSector: frontSector,
			BackSector:  backSector,
		}
	}
	return nil
}

func (lvl *Level) loadSubSectors(dir *wad.Directory, name string) error {
	data, err := dir.MapLump(name, wad.OffsetSSectors)
	if err != nil {
		return err
	}
	recs, ok := chunks(data, subSectorSize)
	if !ok {
		return &MapError{Kind: "subsector", Index: -1, Msg: "lump size not a multiple of 4"}
	}
	lvl.SubSectors = make([]SubSector, len(recs))
	for i, r := range recs {
		numSegs := int(i16(r[0:2]))
		firstSeg := int(i16(r[2:4]))
		if numSegs < 0 || firstSeg < 0 || firstSeg+numSegs > len(lvl.Segments) {
			return &MapError{Kind: "subsector", Index: i, Bound: firstSeg + numSegs, Msg: "references invalid segment range"}
		}
		lvl.SubSectors[i] = SubSector{FirstSeg: firstSeg, NumSegs: numSegs}
	}
	return nil
}

func (lvl *Level) loadNodes(dir *wad.Directory, name string) error {
	data, err := dir.MapLump(name, wad.OffsetNodes)
	if err != nil {
		return err
	}
	recs, ok := chunks(data, nodeSize)
	if !ok {
		return &MapError{Kind: "node", Index: -1, Msg: "lump size not a multiple of 28"}
	}
	lvl.Nodes = make([]Node, len(recs))
	for i, r := range recs {
		lvl.Nodes[i] = Node{
			Origin:    Vertex{X: float32(i16(r[0:2])), Y: float32(i16(r[2:4]))},
			Direction: Vertex{X: float32(i16(r[4:6])), Y: float32(i16(r[6:8]))},
			RightBox: BBox{
				Top: float32(i16(r[8:10])), Bottom: float32(i16(r[10:12])),
				Left: float32(i16(r[12:14])), Right: float32(i16(r[14:16])),
			},
			LeftBox: BBox{
				Top: float32(i16(r[16:18])), Bottom: float32(i16(r[18:20])),
				Left: float32(i16(r[20:22])), Right: float32(i16(r[22:24])),
			},
			RightChild: int32(i16(r[24:26])),
			LeftChild:  int32(i16(r[26:28])),
		}
	}
	return validateNodeRefs(lvl)
}

func validateNodeRefs(lvl *Level) error {
	for i, n := range lvl.Nodes {
		for _, child := range []int32{n.RightChild, n.LeftChild} {
			if IsLeafChild(child) {
				leaf := LeafIndex(child)
				if leaf < 0 || leaf >= len(lvl.SubSectors) {
					return &MapError{Kind: "node", Index: i, Bound: leaf, Msg: "leaf child references invalid subsector"}
				}
				continue
			}
			if int(child) < 0 || int(child) >= len(lvl.Nodes) {
				return &MapError{Kind: "node", Index: i, Bound: int(child), Msg: "branch child references invalid node"}
			}
		}
	}
	return nil
}

func (lvl *Level) loadThings(dir *wad.Directory, name string) error {
	data, err := dir.MapLump(name, wad.OffsetThings)
	if err != nil {
		return err
	}
	recs, ok := chunks(data, thingSize)
	if !ok {
		return &MapError{Kind: "thing", Index: -1, Msg: "lump size not a multiple of 10"}
	}
	lvl.Things = make([]Thing, len(recs))
	for i, r := range recs {
		lvl.Things[i] = Thing{
			X: float32(i16(r[0:2])), Y: float32(i16(r[2:4])),
			Angle:   i16(r[4:6]),
			Type:    i16(r[6:8]),
			Options: i16(r[8:10]),
		}
	}
	return nil
}
