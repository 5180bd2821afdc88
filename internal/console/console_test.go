package console

import (
	"strings"
	"testing"

	"github.com/zotley/doomcore/internal/level"
)

func testLevel() *level.Level {
	return &level.Level{
		Sectors: []level.Sector{
			{FloorHeight: 0, CeilingHeight: 128, FloorTexture: "FLOOR0_1", CeilingTexture: "CEIL3_5"},
		},
		Lines: []level.Line{{V1: 0, V2: 1, FrontSide: 0, BackSide: -1}},
		Segments: []level.LineSegment{
			{V1: level.Vertex{X: 0, Y: 0}, V2: level.Vertex{X: 10, Y: 0}, Line: 0, FrontSector: 0, BackSector: -1},
		},
		Nodes: []level.Node{},
	}
}

func TestRunEvaluatesExpressionAndCapturesPrint(t *testing.T) {
	c := New(testLevel())
	defer c.Close()

	out, err := c.Run(`print(1 + 1)`)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if strings.TrimSpace(out) != "2" {
		t.Fatalf("Run output = %q, want \"2\"", out)
	}
}

func TestSectorReturnsLevelData(t *testing.T) {
	c := New(testLevel())
	defer c.Close()

	out, err := c.Run(`local s = sector(0); print(s.floor_height, s.ceiling_height, s.floor_texture)`)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out, "0") || !strings.Contains(out, "128") || !strings.Contains(out, "FLOOR0_1") {
		t.Fatalf("unexpected sector output: %q", out)
	}
}

func TestSectorOutOfRangeRaisesError(t *testing.T) {
	c := New(testLevel())
	defer c.Close()

	if _, err := c.Run(`sector(99)`); err == nil {
		t.Fatalf("expected an error for an out-of-range sector index")
	}
}

func TestSegmentReportsPortalFlag(t *testing.T) {
	c := New(testLevel())
	defer c.Close()

	out, err := c.Run(`print(segment(0).portal)`)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if strings.TrimSpace(out) != "false" {
		t.Fatalf("portal flag = %q, want false", out)
	}
}

func TestWireframeTogglePersistsAcrossCalls(t *testing.T) {
	c := New(testLevel())
	defer c.Close()

	if c.Wireframe() {
		t.Fatalf("expected wireframe to start disabled")
	}
	if _, err := c.Run(`wireframe(true)`); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !c.Wireframe() {
		t.Fatalf("expected wireframe to be enabled after wireframe(true)")
	}
}

func TestMeltWithoutHookReportsError(t *testing.T) {
	c := New(testLevel())
	defer c.Close()

	if _, err := c.Run(`melt()`); err == nil {
		t.Fatalf("expected an error when no melt hook is attached")
	}
}

func TestMeltInvokesRegisteredHook(t *testing.T) {
	c := New(testLevel())
	defer c.Close()

	called := false
	c.SetMeltHook(func() { called = true })

	if _, err := c.Run(`melt()`); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !called {
		t.Fatalf("expected melt hook to be invoked")
	}
}

func TestHistoryRecordsSubmittedLines(t *testing.T) {
	c := New(testLevel())
	defer c.Close()

	c.Run(`print(1)`)
	c.Run(`print(2)`)
	hist := c.History()
	if len(hist) != 2 || hist[0] != `print(1)` || hist[1] != `print(2)` {
		t.Fatalf("History() = %v, want two recorded lines", hist)
	}
}

func TestCountsReflectsLevelSizes(t *testing.T) {
	c := New(testLevel())
	defer c.Close()

	out, err := c.Run(`local n = counts(); print(n.sectors, n.lines, n.segments, n.nodes)`)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if strings.TrimSpace(out) != "1\t1\t1\t0" {
		t.Fatalf("counts output = %q, want \"1\\t1\\t1\\t0\"", out)
	}
}
