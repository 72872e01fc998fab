package mandel

// RowRenderer renders rows of a fixed size RGB image.
// dst receives rows [y0, y1) packed row-major, 3 bytes per pixel.
type RowRenderer interface {
	RenderRows(dst []byte, v View, y0, y1 int) error
	Size() (width, height int)
}
