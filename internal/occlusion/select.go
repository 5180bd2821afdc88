package occlusion

import "github.com/zotley/doomcore/internal/level"

// Select decides which Strategy a BSP segment should clip with, or nil
// if the line contributes nothing to the frame at all (an empty
// two-sided line with matching textures on both sides).
//
// wallSeg is true for one-sided wall segments, which are always Solid.
// For two-sided (portal) segments, frontSec/backSec/side must be given.
func Select(wallSeg bool, frontSec, backSec *level.Sector, side *level.SideDef) Strategy {
	if wallSeg {
		return Solid{}
	}
	if isClosedDoor(frontSec, backSec) {
		return Solid{}
	}
	if isWindow(frontSec, backSec) {
		return Portal{}
	}
	if isEmptyLine(frontSec, backSec, side) {
		return nil
	}
	return Portal{}
}

func isClosedDoor(front, back *level.Sector) bool {
	return back.CeilingHeight <= front.FloorHeight || back.FloorHeight >= front.CeilingHeight
}

func isWindow(front, back *level.Sector) bool {
	return back.CeilingHeight != front.CeilingHeight || back.FloorHeight != front.FloorHeight
}

func isEmptyLine(front, back *level.Sector, side *level.SideDef) bool {
	return back.CeilingTexture == front.CeilingTexture &&
		back.FloorTexture == front.FloorTexture &&
		back.LightLevel == front.LightLevel &&
		side.MiddleTexture == "-"
}
