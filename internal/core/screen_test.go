package core

import (
	"strings"
	"testing"
)

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetCell(3, 2, '@', ColorGreen)

	if got := s.Get(3, 2); got != '@' {
		t.Errorf("Get(3,2) = %q, want '@'", got)
	}
	if cell := s.GetCell(3, 2); cell.Color != ColorGreen {
		t.Errorf("GetCell(3,2).Color = %v, want ColorGreen", cell.Color)
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(10, 5)

	// Out-of-bounds writes must not panic and must be ignored
	s.Set(-1, 0, 'x')
	s.Set(10, 0, 'x')
	s.Set(0, -1, 'x')
	s.Set(0, 5, 'x')

	if got := s.Get(-1, 0); got != ' ' {
		t.Errorf("Get out of bounds = %q, want space", got)
	}
	if !strings.Contains(s.String(), strings.Repeat(" ", 10)) {
		t.Error("Screen should still be blank after out-of-bounds writes")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetCell(0, 0, 'a', ColorRed)
	s.Clear()

	if got := s.Get(0, 0); got != ' ' {
		t.Errorf("After Clear, Get(0,0) = %q, want space", got)
	}
	if cell := s.GetCell(0, 0); cell.Color != ColorDefault {
		t.Errorf("After Clear, color = %v, want ColorDefault", cell.Color)
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(6, 4)
	s.Set(2, 1, '#')

	s.Resize(8, 6)
	if got := s.Get(2, 1); got != '#' {
		t.Errorf("After grow, Get(2,1) = %q, want '#'", got)
	}

	s.Resize(3, 2)
	if got := s.Get(2, 1); got != '#' {
		t.Errorf("After shrink, Get(2,1) = %q, want '#'", got)
	}
	if s.Width() != 3 || s.Height() != 2 {
		t.Errorf("Size = %dx%d, want 3x2", s.Width(), s.Height())
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(3, 0, "hello", ColorDefault)

	if got := s.Row(0); got != "   he" {
		t.Errorf("Row(0) = %q, want %q", got, "   he")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	want := "a  \n  b"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRect(t *testing.T) {
	r := NewRect(2, 3, 4, 5)

	if r.Right() != 6 || r.Bottom() != 8 {
		t.Errorf("Right/Bottom = %d/%d, want 6/8", r.Right(), r.Bottom())
	}
	if !r.Contains(2, 3) || !r.Contains(5, 7) {
		t.Error("Contains should include top-left and bottom-right interior")
	}
	if r.Contains(6, 3) || r.Contains(2, 8) {
		t.Error("Contains should exclude right and bottom edges")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.min, tt.max, got, tt.want)
		}
	}

	if got := ClampF(1.7, -1, 1); got != 1 {
		t.Errorf("ClampF(1.7, -1, 1) = %v, want 1", got)
	}
	if got := ClampF(-2.3, -1, 1); got != -1 {
		t.Errorf("ClampF(-2.3, -1, 1) = %v, want -1", got)
	}
}
