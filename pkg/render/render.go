// Package render rasterizes a display list into a pixel buffer. It is a
// reference backend; any consumer of the display list can substitute its
// own renderer.
package render

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"finch/pkg/css"
	"finch/pkg/paint"
)

var (
	regularFont = mustParseFont(goregular.TTF)
	boldFont    = mustParseFont(gobold.TTF)
)

func mustParseFont(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic(err)
	}
	return f
}

type faceKey struct {
	size float64
	bold bool
}

// Renderer draws display commands onto an in-memory RGBA canvas. Faces
// are cached per size and weight.
type Renderer struct {
	context *gg.Context
	faces   map[faceKey]font.Face
}

// NewRenderer creates a canvas of the given pixel size.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		context: gg.NewContext(width, height),
		faces:   make(map[faceKey]font.Face),
	}
}

// Render clears the canvas to white and draws the commands in order.
// List order is paint order, so later commands land on top.
func (r *Renderer) Render(list []paint.DisplayCommand) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()

	for _, cmd := range list {
		switch cmd.Type {
		case paint.SolidColorCmd:
			r.drawSolidColor(cmd)
		case paint.TextCmd:
			r.drawText(cmd)
		}
	}
}

func (r *Renderer) drawSolidColor(cmd paint.DisplayCommand) {
	r.setColor(cmd.Color)
	r.context.DrawRectangle(cmd.Rect.X, cmd.Rect.Y, cmd.Rect.Width, cmd.Rect.Height)
	r.context.Fill()
}

func (r *Renderer) drawText(cmd paint.DisplayCommand) {
	if cmd.Rect.Width <= 0 {
		return
	}
	r.setColor(cmd.Color)
	r.context.SetFontFace(r.face(cmd.FontSize, cmd.Bold))
	r.context.DrawStringWrapped(cmd.Text,
		cmd.Rect.X, cmd.Rect.Y, 0, 0,
		cmd.Rect.Width, 1.5, gg.AlignLeft)
}

func (r *Renderer) face(size float64, bold bool) font.Face {
	if size <= 0 {
		size = 16
	}
	key := faceKey{size: size, bold: bold}
	if f, ok := r.faces[key]; ok {
		return f
	}
	src := regularFont
	if bold {
		src = boldFont
	}
	f := truetype.NewFace(src, &truetype.Options{Size: size})
	r.faces[key] = f
	return f
}

func (r *Renderer) setColor(c css.Color) {
	r.context.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, c.A)
}

// Image returns the rendered canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

// SavePNG writes the canvas to a PNG file.
func (r *Renderer) SavePNG(path string) error {
	return r.context.SavePNG(path)
}

// RenderToImage is a one-shot convenience over NewRenderer plus Render.
func RenderToImage(list []paint.DisplayCommand, width, height int) image.Image {
	r := NewRenderer(width, height)
	r.Render(list)
	return r.Image()
}
