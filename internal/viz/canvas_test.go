package viz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCanvasSetAndUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(1, 3)
	if got := c.Grid[0][0]; got != blank|0x1|0x80 {
		t.Errorf("cell = %U", got)
	}
	c.Unset(0, 0)
	if !c.Lit(1, 3) || c.Lit(0, 0) {
		t.Error("unset touched the wrong dot")
	}
	c.Unset(1, 3)
	if c.Grid[0][0] != blank {
		t.Errorf("cell not blank: %U", c.Grid[0][0])
	}
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 8}} {
		c.Set(p[0], p[1])
	}
	if strings.Trim(c.Plain(), string(blank)+"\n") != "" {
		t.Error("out of bounds dots were drawn")
	}
}

func TestDrawCircleIsSymmetric(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawCircle(10, 10, 6)
	for _, p := range [][2]int{{16, 10}, {4, 10}, {10, 16}, {10, 4}} {
		if !c.Lit(p[0], p[1]) {
			t.Errorf("dot %v missing", p)
		}
	}
	if c.Lit(10, 10) {
		t.Error("outline filled the centre")
	}
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(10, 10, 3)
	tests := []struct {
		x, y int
		lit  bool
	}{
		{10, 10, true},
		{13, 10, true},
		{12, 12, true},
		{13, 13, false},
		{14, 10, false},
	}
	for _, tt := range tests {
		if got := c.Lit(tt.x, tt.y); got != tt.lit {
			t.Errorf("Lit(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.lit)
		}
	}
}

func TestDrawPolylineClosed(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawPolyline([]int{0, 10, 10}, []int{0, 0, 10}, true)
	if !c.Lit(5, 5) {
		t.Error("closing edge missing")
	}
	open := NewCanvas(10, 5)
	open.DrawPolyline([]int{0, 10, 10}, []int{0, 0, 10}, false)
	if open.Lit(5, 5) {
		t.Error("open polyline was closed")
	}
}

func TestCanvasColours(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Ink("#ff0000")
	c.Set(0, 0)
	c.Ink("")
	c.Set(2, 0)
	if c.Colors[0][0] != "#ff0000" {
		t.Errorf("colour = %q", c.Colors[0][0])
	}
	if c.Colors[0][1] != "" {
		t.Errorf("uncoloured cell got %q", c.Colors[0][1])
	}
	c.Clear()
	if c.Colors[0][0] != "" || c.Grid[0][0] != blank {
		t.Error("clear kept state")
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(2)
	path := filepath.Join(t.TempDir(), "out.gif")
	if err := r.Save(path); err != ErrNoFrames {
		t.Fatalf("Save on empty = %v", err)
	}

	c := NewCanvas(4, 2)
	c.Ink("#00ff00")
	c.FillCircle(3, 3, 2)
	for i := 0; i < 3; i++ {
		r.Capture(c)
	}
	if r.Len() != 2 {
		t.Errorf("frames = %d, want 2", r.Len())
	}
	if err := r.Save(path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("gif not written: %v", err)
	}
	if r.Len() != 0 {
		t.Error("frames kept after save")
	}
}

func TestParseHex(t *testing.T) {
	c, err := parseHex("#1FF01F")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 0x1f || c.G != 0xf0 || c.B != 0x1f {
		t.Errorf("got %v", c)
	}
	if _, err := parseHex("#fff"); err == nil {
		t.Error("short colour accepted")
	}
}
