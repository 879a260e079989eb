package viz

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"strconv"
	"strings"
)

const (
	cellW = 8
	cellH = 16
)

var ErrNoFrames = errors.New("no frames recorded")

// Recorder rasterises canvas frames into an animated GIF.
type Recorder struct {
	frames []*image.Paletted
	limit  int
}

// NewRecorder keeps at most limit frames, dropping the oldest; zero means
// unlimited.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture draws every lit dot of c as a block in the cell's colour.
func (r *Recorder) Capture(c *Canvas) {
	pal := color.Palette{color.Black, color.White}
	index := map[string]uint8{}
	img := image.NewPaletted(image.Rect(0, 0, c.Width*cellW, c.Height*cellH), pal)
	dotW, dotH := cellW/2, cellH/4

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - blank)
			if pattern <= 0 {
				continue
			}
			ci := uint8(1)
			if hex := c.Colors[row][col]; hex != "" {
				if i, ok := index[hex]; ok {
					ci = i
				} else if rgb, err := parseHex(hex); err == nil && len(pal) < 256 {
					pal = append(pal, rgb)
					img.Palette = pal
					ci = uint8(len(pal) - 1)
					index[hex] = ci
				}
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					x0, y0 := col*cellW+dx*dotW, row*cellH+dy*dotH
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(x0+px, y0+py, ci)
						}
					}
				}
			}
		}
	}

	if r.limit > 0 && len(r.frames) >= r.limit {
		r.frames = r.frames[1:]
	}
	r.frames = append(r.frames, img)
}

// Save encodes the recorded frames to path and forgets them.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return fmt.Errorf("failed to encode gif: %w", err)
	}
	r.frames = nil
	return nil
}

func parseHex(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("bad colour %q", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad colour %q: %w", hex, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
