// Package world implements the toroidal playfield: edge wrapping with
// hysteresis and wrap-aware spawn safety checks.
package world

import (
	"math"

	"github.com/vovakirdan/tui-roids/internal/core"
)

// DefaultHysteresis is how far past an edge a body travels before wrapping.
const DefaultHysteresis = 3.0

// Body is the positional state shared by every simulated object.
type Body struct {
	Pos        core.Vec2
	Vel        core.Vec2
	Rotation   float64
	OnScreen   bool // Latched once the body first enters the bounds
	HasWrapped bool // Set the first time the body is shifted across an edge
}

// Move advances the body by its velocity over dt seconds.
func (b *Body) Move(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
}

// Clear resets the body to its zero state.
func (b *Body) Clear() {
	*b = Body{}
}

// World is a rectangle centered on the origin whose opposite edges meet.
type World struct {
	Width      float64
	Height     float64
	Hysteresis float64
}

// New creates a world of the given size.
func New(width, height, hysteresis float64) World {
	return World{Width: width, Height: height, Hysteresis: hysteresis}
}

// MinX returns the left edge.
func (w World) MinX() float64 { return -w.Width / 2 }

// MaxX returns the right edge.
func (w World) MaxX() float64 { return w.Width / 2 }

// MinY returns the top edge.
func (w World) MinY() float64 { return -w.Height / 2 }

// MaxY returns the bottom edge.
func (w World) MaxY() float64 { return w.Height / 2 }

// Contains reports whether p lies within the bounds, edges included.
func (w World) Contains(p core.Vec2) bool {
	return w.ContainsInflated(p, 0)
}

// ContainsInflated reports whether p lies within the bounds grown by margin
// on every side.
func (w World) ContainsInflated(p core.Vec2, margin float64) bool {
	return p.X >= w.MinX()-margin && p.X <= w.MaxX()+margin &&
		p.Y >= w.MinY()-margin && p.Y <= w.MaxY()+margin
}

// WrapResult describes what Wrap did to a body.
type WrapResult struct {
	ShiftX  float64
	ShiftY  float64
	Entered bool // The on-screen latch flipped this call
}

// Wrapped reports whether the body was shifted across an edge.
func (r WrapResult) Wrapped() bool {
	return r.ShiftX != 0 || r.ShiftY != 0
}

// Wrap applies one wrap step to b. Bodies not yet on screen are never
// shifted; instead their latch flips once they lie inside the bounds.
// Wrap does not touch HasWrapped.
func (w World) Wrap(b *Body) WrapResult {
	var res WrapResult
	if !b.OnScreen {
		if w.Contains(b.Pos) {
			b.OnScreen = true
			res.Entered = true
		}
		return res
	}

	switch {
	case b.Pos.X > w.MaxX()+w.Hysteresis:
		res.ShiftX = -w.Width
	case b.Pos.X < w.MinX()-w.Hysteresis:
		res.ShiftX = w.Width
	}
	switch {
	case b.Pos.Y > w.MaxY()+w.Hysteresis:
		res.ShiftY = -w.Height
	case b.Pos.Y < w.MinY()-w.Hysteresis:
		res.ShiftY = w.Height
	}
	b.Pos.X += res.ShiftX
	b.Pos.Y += res.ShiftY
	return res
}

// Images holds up to four wrapped copies of a segment offset.
type Images struct {
	Offsets [4]core.Vec2
	Count   int
}

// SegmentImages returns the offsets at which a path from start to end must
// be tested: the path itself plus copies shifted back across every edge the
// path crosses.
func (w World) SegmentImages(start, end core.Vec2) Images {
	var dx, dy float64
	switch {
	case max(start.X, end.X) > w.MaxX():
		dx = -w.Width
	case min(start.X, end.X) < w.MinX():
		dx = w.Width
	}
	switch {
	case max(start.Y, end.Y) > w.MaxY():
		dy = -w.Height
	case min(start.Y, end.Y) < w.MinY():
		dy = w.Height
	}

	img := Images{Count: 1}
	if dx != 0 {
		img.Offsets[img.Count] = core.V(dx, 0)
		img.Count++
	}
	if dy != 0 {
		img.Offsets[img.Count] = core.V(0, dy)
		img.Count++
	}
	if dx != 0 && dy != 0 {
		img.Offsets[img.Count] = core.V(dx, dy)
		img.Count++
	}
	return img
}

// IsSafe reports whether point keeps at least clearance distance from the
// obstacle path start->end and all of its wrapped images.
func (w World) IsSafe(point, start, end core.Vec2, clearance float64) bool {
	img := w.SegmentImages(start, end)
	for i := 0; i < img.Count; i++ {
		off := img.Offsets[i]
		if core.SegmentDist(point, start.Add(off), end.Add(off)) < clearance {
			return false
		}
	}
	return true
}

// Delta returns the shortest offset from a to b on the torus.
func (w World) Delta(a, b core.Vec2) core.Vec2 {
	d := b.Sub(a)
	d.X -= w.Width * math.Round(d.X/w.Width)
	d.Y -= w.Height * math.Round(d.Y/w.Height)
	return d
}
