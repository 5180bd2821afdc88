// Package rng implements the deterministic, table-indexed RNG stream that
// screen-melt column generation (spec §4.G) rides on. It is not a general
// purpose PRNG: it is a cyclic index into a fixed byte table, so the same
// sequence of draws always produces the same bytes regardless of host,
// matching the "same logical stream as the rest of the game" requirement
// in spec §5.
package rng

// Table is a 256-entry deterministic byte source, cycling through entries
// in order. Index is mutated in place under single-threaded access, same
// discipline as the rest of the frame pipeline (spec §5).
type Table struct {
	index int
	data  [256]byte
}

// New returns a Table seeded with doomcore's fixed byte sequence.
func New() *Table {
	return &Table{data: defaultTable}
}

// NewWithTable returns a Table using a caller-supplied 256-byte sequence,
// for tests that need a known, small distribution.
func NewWithTable(data [256]byte) *Table {
	return &Table{data: data}
}

// Byte advances the index and returns the next table entry.
func (t *Table) Byte() byte {
	t.index = (t.index + 1) % len(t.data)
	return t.data[t.index]
}

// Uint8Mod returns Byte() % mod. mod must be > 0.
func (t *Table) Uint8Mod(mod int) int {
	return int(t.Byte()) % mod
}

// Int32Mod3 draws a byte and reduces it mod 3, matching the screen-melt
// per-column jitter draw in spec §4.G ("1 − (rng_i32() mod 3)").
func (t *Table) Int32Mod3() int {
	return int(t.Byte()) % 3
}

// Reset rewinds the index to the start of the table, for deterministic
// test setup.
func (t *Table) Reset() {
	t.index = 0
}

// defaultTable is doomcore's fixed RNG table: 256 bytes generated once and
// frozen here so replays are stable across builds. It deliberately is not
// vanilla Doom's table (that table's bytes were not part of the retrieval
// pack's original_source/crates/rand, which only kept the cyclic-index
// shape, not the data) — see DESIGN.md.
var defaultTable = buildDefaultTable()

func buildDefaultTable() [256]byte {
	var t [256]byte
	// A fixed linear congruential sequence over the byte range,
	// chosen only so the table has no short repeating cycle; the exact
	// values carry no semantic meaning.
	x := uint32(0x2545F491)
	for i := range t {
		x = x*1103515245 + 12345
		t[i] = byte(x >> 16)
	}
	return t
}
