// Package melt implements the screen-melt transition spec §4.G
// describes: the outgoing frame dissolves downward in column pairs,
// revealing the frame underneath, before the next scene takes over.
package melt

import (
	"github.com/zotley/doomcore/internal/framebuffer"
	"github.com/zotley/doomcore/internal/rng"
)

// ScreenWidth and ScreenHeight mirror the fixed framebuffer dimensions;
// duplicated locally (as raster and occlusion already do) rather than
// imported, so this package has no dependency on the render path.
const (
	ScreenWidth  = 320
	ScreenHeight = 200
)

// State is the melt's coarse lifecycle: Idle until Trigger starts a
// transition, Scrolling while any column is still falling, Done once
// every column has reached the bottom of the screen.
type State int

const (
	Idle State = iota
	Scrolling
	Done
)

type column struct {
	pos      int
	wait     int
	finished bool
}

// Melt drives one screen-melt transition: it owns a snapshot of the
// outgoing and incoming frames and a per-column-pair fall schedule, and
// is ticked once per displayed frame until Done.
type Melt struct {
	state  State
	start  *framebuffer.Buffer
	end    *framebuffer.Buffer
	table  *rng.Table
	column [ScreenWidth]column
}

// New returns an idle Melt drawing its per-column jitter from table.
func New(table *rng.Table) *Melt {
	return &Melt{state: Idle, table: table}
}

// State reports the current lifecycle state.
func (m *Melt) State() State { return m.state }

// Trigger starts a new transition: start is the frame currently on
// screen, end is the next frame already rendered but not yet shown.
// Both are snapshotted so the caller's buffers remain free to keep
// rendering into.
func (m *Melt) Trigger(start, end *framebuffer.Buffer) {
	m.start = start.Clone()
	m.end = end.Clone()
	m.initColumns()
	m.state = Scrolling
}

// initColumns seeds every column-pair's initial wait delay: a random
// walk of +/-1 (or 0) per pair, clamped to [0,15] so adjacent pairs
// never drift far apart, matching the two-columns-move-together
// vanilla melt look.
func (m *Melt) initColumns() {
	m.table.Byte() // discard one draw, matching the source's leading throwaway roll

	wait := m.table.Uint8Mod(16)
	m.column[0] = column{wait: wait}
	m.column[1] = column{wait: wait}
	for i := 2; i < ScreenWidth; i += 2 {
		r := 1 - m.table.Int32Mod3() // -1, 0, or 1
		wait += r
		if wait < 0 {
			wait = 0
		}
		if wait > 15 {
			wait = 15
		}
		m.column[i] = column{wait: wait}
		m.column[i+1] = column{wait: wait}
	}
}

// Tick advances the melt by one frame, drawing the current state of
// every still-falling column into screen. It reports whether the melt
// has finished (Idle and Done both answer true here: there is nothing
// left to tick).
func (m *Melt) Tick(screen *framebuffer.Buffer) bool {
	if m.state != Scrolling {
		return true
	}

	allFinished := true
	for i := range m.column {
		col := &m.column[i]
		if col.finished {
			continue
		}
		if col.wait > 0 {
			col.wait--
			allFinished = false
			continue
		}

		pos := col.pos
		dy := pos + 1
		if pos >= 16 {
			dy = 8
		}
		if pos+dy >= ScreenHeight {
			dy = ScreenHeight - pos
		}
		newPos := pos + dy

		for y := pos; y < ScreenHeight; y++ {
			var c byte
			if y < newPos {
				c = m.end.At(i, y)
			} else {
				c = m.start.At(i, y-newPos)
			}
			screen.Set(i, y, c)
		}

		col.pos = newPos
		if newPos >= ScreenHeight {
			col.finished = true
		} else {
			allFinished = false
		}
	}

	if allFinished {
		m.state = Done
		m.start, m.end = nil, nil
		return true
	}
	return false
}

// Reset returns the melt to Idle, ready for the next Trigger.
func (m *Melt) Reset() {
	m.state = Idle
	m.start, m.end = nil, nil
	m.column = [ScreenWidth]column{}
}
