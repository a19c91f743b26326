package core

import "testing"

func TestScreenSetAndGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetColor(2, 3, '@', ColorYellow)
	cell := s.GetCell(2, 3)
	if cell.Rune != '@' || cell.Color != ColorYellow {
		t.Errorf("GetCell(2,3) = %+v, expected '@' yellow", cell)
	}

	// Out of bounds writes are ignored, reads return space
	s.Set(-1, 0, 'x')
	s.Set(10, 0, 'x')
	if got := s.Get(10, 0); got != ' ' {
		t.Errorf("Get out of bounds = %q, expected space", got)
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(2, 0, "Hello")

	if got := s.Row(0); got != "  Hel" {
		t.Errorf("Row(0) = %q, expected %q", got, "  Hel")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawText(0, 0, "Ωmega")

	if got := s.Row(0); got != "Ωmega " {
		t.Errorf("Row(0) = %q, expected %q", got, "Ωmega ")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorGray)

	expected := "┌──┐\n│  │\n└──┘"
	if got := s.String(); got != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", got, expected)
	}
	if s.GetCell(0, 0).Color != ColorGray {
		t.Error("box corner should carry the box color")
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(3, 3)
	s.Set(1, 1, '#')
	s.Resize(4, 2)

	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("Resize: got %dx%d, expected 4x2", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should clear content")
	}
}
