package main

import (
	"math"
	"testing"

	"github.com/zotley/doomcore/internal/level"
)

func TestPlayerStartUsesPlayer1Thing(t *testing.T) {
	lvl := &level.Level{
		Things: []level.Thing{
			{X: 0, Y: 0, Angle: 45, Type: 3001}, // monster, must be ignored
			{X: 64, Y: -32, Angle: 90, Type: 1}, // player 1 start
		},
	}

	pos, facing := playerStart(lvl)
	if pos.X != 64 || pos.Y != -32 {
		t.Fatalf("playerStart position = %+v, want (64,-32)", pos)
	}
	if facing.X > 0.01 || facing.X < -0.01 || facing.Y < 0.99 {
		t.Fatalf("playerStart facing = %+v, want ~(0,1) for a 90 degree angle", facing)
	}
}

func TestPlayerStartFallsBackWithoutThings(t *testing.T) {
	lvl := &level.Level{}
	pos, facing := playerStart(lvl)
	if pos.X != 0 || pos.Y != 0 {
		t.Fatalf("playerStart fallback position = %+v, want origin", pos)
	}
	if facing.X != 0 || facing.Y != 1 {
		t.Fatalf("playerStart fallback facing = %+v, want (0,1)", facing)
	}
}

func TestPlayerStartFacingMatchesAngleZero(t *testing.T) {
	lvl := &level.Level{Things: []level.Thing{{Type: 1, Angle: 0}}}
	_, facing := playerStart(lvl)
	if math.Abs(float64(facing.X)-1) > 0.01 || math.Abs(float64(facing.Y)) > 0.01 {
		t.Fatalf("playerStart facing at angle 0 = %+v, want ~(1,0)", facing)
	}
}
