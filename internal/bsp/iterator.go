// Package bsp implements front-to-back traversal of a level's BSP node
// tree from an arbitrary viewpoint, the walk spec §4.B builds the render
// pipeline's segment order from.
package bsp

import "github.com/zotley/doomcore/internal/level"

// Visitor is called once per node visited, in front-to-back order
// relative to the traversal's viewpoint. leaf is true when subsector is
// valid (node is a BSP leaf); otherwise node is the branch visited.
type Visitor func(isLeaf bool, subSector int, nodeIdx int)

// Walk visits every node of lvl's BSP tree in front-to-back order as seen
// from point, calling visit once per node or leaf. It never allocates
// more than one stack sized to the tree's node count, so repeated calls
// per frame do not pressure the allocator.
func Walk(lvl *level.Level, point level.Vertex, visit Visitor) {
	if lvl.RootNode < 0 {
		return
	}
	it := NewIterator(lvl, point)
	for it.Next() {
		isLeaf, sub, node := it.Current()
		visit(isLeaf, sub, node)
	}
}

// stackEntry is either a branch node index (isLeaf=false) or a subsector
// index (isLeaf=true), mirroring the sign-bit encoding of raw node
// children so the stack never needs a separate tag for the root.
type stackEntry struct {
	isLeaf bool
	index  int
}

// Iterator yields a level's BSP nodes one at a time in front-to-back
// order from a fixed viewpoint. Zero value is not usable; build one with
// NewIterator.
type Iterator struct {
	lvl     *level.Level
	point   level.Vertex
	stack   []stackEntry
	current stackEntry
}

// NewIterator builds an Iterator over lvl's tree as seen from point. The
// internal stack is preallocated to the tree's node count so traversal
// does no further allocation.
func NewIterator(lvl *level.Level, point level.Vertex) *Iterator {
	it := &Iterator{
		lvl:   lvl,
		point: point,
		stack: make([]stackEntry, 0, len(lvl.Nodes)+1),
	}
	if lvl.RootNode >= 0 {
		it.stack = append(it.stack, stackEntry{isLeaf: false, index: lvl.RootNode})
	}
	return it
}

// Next advances to the next node in front-to-back order, descending
// through branch nodes as it goes, and reports whether one was produced.
func (it *Iterator) Next() bool {
	for len(it.stack) > 0 {
		n := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		if n.isLeaf {
			it.current = n
			return true
		}

		node := &it.lvl.Nodes[n.index]
		right := childEntry(node.RightChild)
		left := childEntry(node.LeftChild)

		if isOnBackSide(node, it.point) {
			// Viewpoint is behind the partition: far side (right) first on
			// the stack so the near side (left) pops first.
			it.stack = append(it.stack, right, left)
		} else {
			it.stack = append(it.stack, left, right)
		}
		// The branch itself is also reported, after its near child has
		// already been pushed to pop first.
		it.current = stackEntry{isLeaf: false, index: n.index}
		return true
	}
	return false
}

// Current returns the node or leaf produced by the most recent Next.
func (it *Iterator) Current() (isLeaf bool, subSector int, nodeIdx int) {
	if it.current.isLeaf {
		return true, it.current.index, -1
	}
	return false, -1, it.current.index
}

func childEntry(child int32) stackEntry {
	if level.IsLeafChild(child) {
		return stackEntry{isLeaf: true, index: level.LeafIndex(child)}
	}
	return stackEntry{isLeaf: false, index: int(child)}
}

// isOnBackSide reports whether point lies on the back side of node's
// partition line, using the 2D cross product (perp-dot) of the partition
// direction against the point's offset from the partition origin. Points
// exactly on the line are treated as back-side, matching vanilla's tie
// break.
func isOnBackSide(node *level.Node, point level.Vertex) bool {
	dx := point.X - node.Origin.X
	dy := point.Y - node.Origin.Y
	cross := node.Direction.X*dy - node.Direction.Y*dx
	return cross >= 0
}

// FindSubSector returns the index of the sub-sector containing point, by
// descending the tree directly rather than allocating a full traversal
// stack; useful for point-location queries (e.g. placing a camera) where
// only the containing leaf matters.
func FindSubSector(lvl *level.Level, point level.Vertex) int {
	idx := lvl.RootNode
	if idx < 0 {
		return -1
	}
	entry := stackEntry{isLeaf: false, index: idx}
	for !entry.isLeaf {
		node := &lvl.Nodes[entry.index]
		if isOnBackSide(node, point) {
			entry = childEntry(node.LeftChild)
		} else {
			entry = childEntry(node.RightChild)
		}
	}
	return entry.index
}
