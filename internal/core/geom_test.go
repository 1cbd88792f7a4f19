package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 1, W: 3, H: 2}
	tests := []struct {
		x, y int
		want bool
	}{
		{2, 1, true},
		{4, 2, true},
		{5, 1, false},
		{2, 3, false},
		{1, 1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestVecArithmetic(t *testing.T) {
	a := V(3, 4)
	if a.Len() != 5 {
		t.Errorf("Len() = %v, expected 5", a.Len())
	}
	if got := a.Add(V(1, 1)); got != V(4, 5) {
		t.Errorf("Add() = %v", got)
	}
	if got := a.Sub(V(1, 1)); got != V(2, 3) {
		t.Errorf("Sub() = %v", got)
	}
	if got := a.Dot(V(2, 0)); got != 6 {
		t.Errorf("Dot() = %v, expected 6", got)
	}
	if got := a.WithLen(10); !near(got.X, 6) || !near(got.Y, 8) {
		t.Errorf("WithLen(10) = %v, expected (6,8)", got)
	}
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("zero Normalize() = %v, expected zero", got)
	}
}

func TestVecRotate(t *testing.T) {
	got := V(1, 0).Rotate(math.Pi / 2)
	if !near(got.X, 0) || !near(got.Y, 1) {
		t.Errorf("Rotate(pi/2) = %v, expected (0,1)", got)
	}
	f := FromAngle(math.Pi, 2)
	if !near(f.X, -2) || !near(f.Y, 0) {
		t.Errorf("FromAngle(pi, 2) = %v", f)
	}
}

func TestSegmentDist(t *testing.T) {
	tests := []struct {
		name string
		p    Vec2
		want float64
	}{
		{"above middle", V(5, 3), 3},
		{"past end", V(13, 4), 5},
		{"before start", V(-3, -4), 5},
		{"on segment", V(2, 0), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SegmentDist(tc.p, V(0, 0), V(10, 0)); !near(got, tc.want) {
				t.Errorf("SegmentDist() = %v, expected %v", got, tc.want)
			}
		})
	}

	// Degenerate segment is a point
	if got := SegmentDist(V(3, 4), V(0, 0), V(0, 0)); !near(got, 5) {
		t.Errorf("degenerate SegmentDist() = %v, expected 5", got)
	}
}

func TestCirclesOverlap(t *testing.T) {
	if !CirclesOverlap(V(0, 0), 2, V(3, 0), 2) {
		t.Error("expected overlap")
	}
	if CirclesOverlap(V(0, 0), 1, V(2, 0), 1) {
		t.Error("touching circles should not overlap")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Error("Clamp out of range")
	}
	if Clamp(1.5, 0, 1) != 1 {
		t.Error("float Clamp out of range")
	}
}
