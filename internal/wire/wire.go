// Package wire is the websocket protocol between the render server and its
// clients.
//
// The client sends one JSON Request. The server answers with one JSON Header,
// then one binary band frame per block of finished rows, then a normal
// closure. A band frame is
//
//	uint32 first row | uint32 row count | rows*width*3 RGB bytes
//
// with both integers big endian.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	mandel "github.com/mtraverso3/mandelbrot"
)

const bandHeaderLen = 8

// ErrFrame is returned for band frames that do not fit the announced image.
var ErrFrame = errors.New("malformed band frame")

// Request asks for one render. A non-empty Preset overrides the center and
// zoom, its base zoom is scaled by Multiplier (1 when zero).
type Request struct {
	Preset     string  `json:"preset,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty"`

	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
	Lit  bool    `json:"lit"`

	Width  int `json:"width"`
	Height int `json:"height"`
}

// View resolves the request into a validated view.
func (r Request) View() (mandel.View, error) {
	v := mandel.View{CenterX: r.X, CenterY: r.Y, Zoom: r.Zoom, Lit: r.Lit}
	if r.Preset != "" {
		p, err := mandel.LookupPreset(r.Preset)
		if err != nil {
			return mandel.View{}, err
		}
		m := r.Multiplier
		if m == 0 {
			m = 1
		}
		v = p.View(m, r.Lit)
	}
	if err := v.Validate(); err != nil {
		return mandel.View{}, err
	}
	return v, nil
}

// Header announces the image that follows.
type Header struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// Band is the maximum number of rows per frame
	Band int `json:"band"`
}

// EncodeBand frames rows [y0, y0+rows) held in pix.
func EncodeBand(y0, rows int, pix []byte) []byte {
	b := make([]byte, bandHeaderLen+len(pix))
	binary.BigEndian.PutUint32(b[0:4], uint32(y0))
	binary.BigEndian.PutUint32(b[4:8], uint32(rows))
	copy(b[bandHeaderLen:], pix)
	return b
}

// DecodeBand splits a band frame of an image width pixels wide.
// pix aliases b.
func DecodeBand(b []byte, width int) (y0, rows int, pix []byte, err error) {
	if len(b) < bandHeaderLen {
		return 0, 0, nil, fmt.Errorf("%w: %d bytes", ErrFrame, len(b))
	}
	y0 = int(binary.BigEndian.Uint32(b[0:4]))
	rows = int(binary.BigEndian.Uint32(b[4:8]))
	pix = b[bandHeaderLen:]
	if rows <= 0 || len(pix) != rows*width*3 {
		return 0, 0, nil, fmt.Errorf("%w: %d rows of width %d in %d bytes", ErrFrame, rows, width, len(pix))
	}
	return y0, rows, pix, nil
}

// FrameLimit is the largest frame a client must accept for h.
func (h Header) FrameLimit() int64 {
	return int64(bandHeaderLen + h.Band*h.Width*3)
}

// Canvas assembles streamed bands into a full RGB buffer.
type Canvas struct {
	Width, Height int
	Pix           []byte

	done []bool
	left int
}

func NewCanvas(h Header) *Canvas {
	return &Canvas{
		Width:  h.Width,
		Height: h.Height,
		Pix:    make([]byte, h.Width*h.Height*3),
		done:   make([]bool, h.Height),
		left:   h.Height,
	}
}

// Put copies a decoded band into place.
func (c *Canvas) Put(y0, rows int, pix []byte) error {
	if y0 < 0 || y0+rows > c.Height {
		return fmt.Errorf("%w: rows [%d, %d) outside height %d", ErrFrame, y0, y0+rows, c.Height)
	}
	stride := c.Width * 3
	copy(c.Pix[y0*stride:(y0+rows)*stride], pix)
	for y := y0; y < y0+rows; y++ {
		if !c.done[y] {
			c.done[y] = true
			c.left--
		}
	}
	return nil
}

// Complete reports whether every row arrived.
func (c *Canvas) Complete() bool { return c.left == 0 }

// Progress is the finished fraction of rows.
func (c *Canvas) Progress() float32 {
	return float32(c.Height-c.left) / float32(c.Height)
}
