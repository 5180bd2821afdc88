// Package console implements an interactive Lua inspection console for a
// loaded level: dump sector/segment/BSP-node data, force a screen-melt
// transition, and toggle a wireframe occlusion overlay, the
// rendering-core counterpart of the Machine Monitor's command REPL.
package console

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/zotley/doomcore/internal/level"
)

// ConsoleError carries operation context, matching the *VideoError shape
// other doomcore packages use instead of a bare fmt.Errorf chain.
type ConsoleError struct {
	Operation string
	Details   string
	Err       error
}

func (e *ConsoleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("console %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("console %s failed: %s", e.Operation, e.Details)
}

func (e *ConsoleError) Unwrap() error { return e.Err }

// Console is a Lua REPL bound to one loaded level. Every evaluated line
// shares the same global state, so a user session can build up local
// variables across commands the way the Machine Monitor's history-backed
// prompt does.
type Console struct {
	lvl      *level.Level
	meltHook func()
	state    *lua.LState
	history  []string

	wireframe bool
}

// New builds a console bound to lvl, wiring its Lua globals to lvl's
// geometry. Callers attach a melt trigger with SetMeltHook once they have
// a transition to drive; without one, the "melt" command reports an
// error instead of doing nothing silently.
func New(lvl *level.Level) *Console {
	c := &Console{lvl: lvl, state: lua.NewState()}
	c.registerGlobals()
	return c
}

// SetMeltHook registers the function the Lua "melt()" command invokes —
// typically a closure the embedding program builds over internal/melt.
// Melt.Trigger and the frame driver's current/incoming frame snapshots,
// kept out of this package so console has no dependency on framebuffer
// shapes.
func (c *Console) SetMeltHook(fn func()) {
	c.meltHook = fn
}

// Close releases the underlying Lua state.
func (c *Console) Close() {
	c.state.Close()
}

// History returns every line submitted to Run so far, oldest first.
func (c *Console) History() []string {
	return c.history
}

// Wireframe reports whether the wireframe occlusion overlay is currently
// enabled; cmd/doomcore copies it into render.FrameDriver.Wireframe
// before each rendered frame.
func (c *Console) Wireframe() bool {
	return c.wireframe
}

// Run evaluates one line of Lua against the console's persistent state
// and returns everything it printed via the built-in print() function,
// redirected into a buffer instead of stdout.
func (c *Console) Run(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}
	c.history = append(c.history, line)

	var out strings.Builder
	c.state.SetGlobal("print", c.state.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		out.WriteString(strings.Join(parts, "\t"))
		out.WriteByte('\n')
		return 0
	}))

	if err := c.state.DoString(line); err != nil {
		return out.String(), &ConsoleError{Operation: "eval", Details: line, Err: err}
	}
	return out.String(), nil
}

func (c *Console) registerGlobals() {
	c.state.SetGlobal("sector", c.state.NewFunction(c.luaSector))
	c.state.SetGlobal("segment", c.state.NewFunction(c.luaSegment))
	c.state.SetGlobal("node", c.state.NewFunction(c.luaNode))
	c.state.SetGlobal("counts", c.state.NewFunction(c.luaCounts))
	c.state.SetGlobal("melt", c.state.NewFunction(c.luaMelt))
	c.state.SetGlobal("wireframe", c.state.NewFunction(c.luaWireframe))
}

func (c *Console) luaCounts(L *lua.LState) int {
	t := L.NewTable()
	t.RawSetString("sectors", lua.LNumber(len(c.lvl.Sectors)))
	t.RawSetString("lines", lua.LNumber(len(c.lvl.Lines)))
	t.RawSetString("segments", lua.LNumber(len(c.lvl.Segments)))
	t.RawSetString("subsectors", lua.LNumber(len(c.lvl.SubSectors)))
	t.RawSetString("nodes", lua.LNumber(len(c.lvl.Nodes)))
	L.Push(t)
	return 1
}

func (c *Console) luaSector(L *lua.LState) int {
	i := L.CheckInt(1)
	if i < 0 || i >= len(c.lvl.Sectors) {
		L.RaiseError("sector index %d out of range [0,%d)", i, len(c.lvl.Sectors))
		return 0
	}
	s := c.lvl.Sectors[i]
	t := L.NewTable()
	t.RawSetString("floor_height", lua.LNumber(s.FloorHeight))
	t.RawSetString("ceiling_height", lua.LNumber(s.CeilingHeight))
	t.RawSetString("floor_texture", lua.LString(s.FloorTexture))
	t.RawSetString("ceiling_texture", lua.LString(s.CeilingTexture))
	t.RawSetString("light_level", lua.LNumber(s.LightLevel))
	t.RawSetString("tag", lua.LNumber(s.Tag))
	L.Push(t)
	return 1
}

func (c *Console) luaSegment(L *lua.LState) int {
	i := L.CheckInt(1)
	if i < 0 || i >= len(c.lvl.Segments) {
		L.RaiseError("segment index %d out of range [0,%d)", i, len(c.lvl.Segments))
		return 0
	}
	seg := c.lvl.Segments[i]
	t := L.NewTable()
	t.RawSetString("v1x", lua.LNumber(seg.V1.X))
	t.RawSetString("v1y", lua.LNumber(seg.V1.Y))
	t.RawSetString("v2x", lua.LNumber(seg.V2.X))
	t.RawSetString("v2y", lua.LNumber(seg.V2.Y))
	t.RawSetString("normal_x", lua.LNumber(seg.NormalX))
	t.RawSetString("normal_y", lua.LNumber(seg.NormalY))
	t.RawSetString("line", lua.LNumber(seg.Line))
	t.RawSetString("front_sector", lua.LNumber(seg.FrontSector))
	t.RawSetString("back_sector", lua.LNumber(seg.BackSector))
	t.RawSetString("portal", lua.LBool(seg.IsPortal()))
	L.Push(t)
	return 1
}

func (c *Console) luaNode(L *lua.LState) int {
	i := L.CheckInt(1)
	if i < 0 || i >= len(c.lvl.Nodes) {
		L.RaiseError("node index %d out of range [0,%d)", i, len(c.lvl.Nodes))
		return 0
	}
	n := c.lvl.Nodes[i]
	t := L.NewTable()
	t.RawSetString("origin_x", lua.LNumber(n.Origin.X))
	t.RawSetString("origin_y", lua.LNumber(n.Origin.Y))
	t.RawSetString("direction_x", lua.LNumber(n.Direction.X))
	t.RawSetString("direction_y", lua.LNumber(n.Direction.Y))
	t.RawSetString("left_child", lua.LNumber(n.LeftChild))
	t.RawSetString("right_child", lua.LNumber(n.RightChild))
	t.RawSetString("left_is_leaf", lua.LBool(level.IsLeafChild(n.LeftChild)))
	t.RawSetString("right_is_leaf", lua.LBool(level.IsLeafChild(n.RightChild)))
	L.Push(t)
	return 1
}

func (c *Console) luaMelt(L *lua.LState) int {
	if c.meltHook == nil {
		L.RaiseError("no melt transition attached to this console")
		return 0
	}
	c.meltHook()
	return 0
}

func (c *Console) luaWireframe(L *lua.LState) int {
	if L.GetTop() >= 1 {
		c.wireframe = L.CheckBool(1)
	}
	L.Push(lua.LBool(c.wireframe))
	return 1
}
