package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetColored(1, 1, '*', ColorRed)

	cell := s.GetCell(1, 1)
	if cell.Rune != '*' || cell.Color != ColorRed {
		t.Errorf("GetCell(1, 1) = %+v, expected red '*'", cell)
	}

	s.Clear()
	if s.GetCell(1, 1).Color != ColorDefault {
		t.Error("Clear should reset colors")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	if got := s.Row(1); !strings.HasPrefix(got, "  Hello") {
		t.Errorf("Row(1) = %q, expected to start with '  Hello'", got)
	}

	// Clipping at the right edge
	s.DrawText(17, 2, "Hello")
	if got := s.Row(2); !strings.HasSuffix(got, "Hel") {
		t.Errorf("Row(2) = %q, expected clipped 'Hel'", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc")
	if got := s.Row(0); got != "    abc    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawLine(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawLine(0, 0, 4, 4, '#', ColorGreen)

	for i := 0; i <= 4; i++ {
		if s.Get(i, i) != '#' {
			t.Errorf("expected '#' at (%d, %d)", i, i)
		}
	}
	if s.GetCell(2, 2).Color != ColorGreen {
		t.Error("line color not applied")
	}

	s.Clear()
	s.DrawLine(5, 3, 1, 3, '-', ColorDefault)
	if got := s.Row(3); got != " -----    " {
		t.Errorf("reverse horizontal line Row(3) = %q", got)
	}
}

func TestScreenDrawLineIn(t *testing.T) {
	s := NewScreen(10, 4)
	s.DrawLineIn(Rect{X: 0, Y: 1, W: 10, H: 3}, 2, 0, 2, 3, '|', ColorDefault)

	if s.Get(2, 0) != ' ' {
		t.Error("cell outside the clip was drawn")
	}
	for y := 1; y <= 3; y++ {
		if s.Get(2, y) != '|' {
			t.Errorf("expected '|' at (2, %d)", y)
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	if got := s.String(); got != "a  \n  b" {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(1, 1, 'X')
	s.Set(4, 4, 'Y')

	s.Resize(3, 3)
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("Resize() dims = %dx%d, expected 3x3", s.Width(), s.Height())
	}
	if s.Get(1, 1) != 'X' {
		t.Error("Resize should preserve content in range")
	}

	s.Resize(6, 6)
	if s.Get(5, 5) != ' ' {
		t.Error("grown area should be blank")
	}
}
