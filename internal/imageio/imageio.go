// Package imageio writes rendered buffers to disk and produces the
// downsampled copy.
package imageio

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/gift"
	xdraw "golang.org/x/image/draw"

	mandel "github.com/mtraverso3/mandelbrot"
)

// Filter names a resampling kernel for Resize.
type Filter string

const (
	Lanczos    Filter = "lanczos"
	CatmullRom Filter = "catmullrom"
)

// ParseFilter returns the filter called name.
func ParseFilter(name string) (Filter, error) {
	switch f := Filter(strings.ToLower(name)); f {
	case Lanczos, CatmullRom:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown resize filter %q", mandel.ErrInvalidParameters, name)
}

// SavePNG encodes img as PNG into path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %q: %v", mandel.ErrIO, path, err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("%w: encode %q: %v", mandel.ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %q: %v", mandel.ErrIO, path, err)
	}
	return nil
}

// Resize returns src scaled to width x height with filter.
func Resize(src image.Image, width, height int, filter Filter) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: resize to %dx%d", mandel.ErrInvalidParameters, width, height)
	}

	switch filter {
	case Lanczos:
		g := gift.New(gift.Resize(width, height, gift.LanczosResampling))
		dst := image.NewRGBA(g.Bounds(src.Bounds()))
		g.Draw(dst, src)
		return dst, nil
	case CatmullRom:
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		return dst, nil
	}
	return nil, fmt.Errorf("%w: unknown resize filter %q", mandel.ErrInvalidParameters, filter)
}

// Half returns src at half its size, rounding down but never below 1 pixel.
func Half(src image.Image, filter Filter) (*image.RGBA, error) {
	b := src.Bounds()
	return Resize(src, max(b.Dx()/2, 1), max(b.Dy()/2, 1), filter)
}

// ResizedPath inserts "_resized" before the extension: out.png -> out_resized.png.
func ResizedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_resized" + ext
}
