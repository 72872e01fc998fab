package render

import (
	"image"
	"image/color"
)

// Image is an image.Image view over a packed row-major RGB buffer.
type Image struct {
	Pix           []byte
	Width, Height int
}

func NewImage(pix []byte, width, height int) *Image {
	return &Image{Pix: pix, Width: width, Height: height}
}

func (m *Image) ColorModel() color.Model { return color.RGBAModel }

func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }

func (m *Image) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return color.RGBA{}
	}
	off := (y*m.Width + x) * 3
	return color.RGBA{R: m.Pix[off], G: m.Pix[off+1], B: m.Pix[off+2], A: 255}
}
