package main

import (
	"context"
	"fmt"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/mtraverso3/mandelbrot/internal/wire"
)

// fetch requests req from the server at url and assembles the streamed bands.
// onBand, when set, is called after every band with the finished fraction.
func fetch(ctx context.Context, url string, req wire.Request, onBand func(progress float32)) (*wire.Canvas, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer c.CloseNow()

	if err := wsjson.Write(ctx, c, req); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	var h wire.Header
	if err := wsjson.Read(ctx, c, &h); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if h.Width <= 0 || h.Height <= 0 || h.Band <= 0 {
		return nil, fmt.Errorf("%w: header %+v", wire.ErrFrame, h)
	}
	c.SetReadLimit(h.FrameLimit())

	canvas := wire.NewCanvas(h)
	for {
		typ, data, err := c.Read(ctx)
		if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read rows: %w", err)
		}
		if typ != websocket.MessageBinary {
			return nil, fmt.Errorf("%w: unexpected %v message", wire.ErrFrame, typ)
		}

		y0, rows, pix, err := wire.DecodeBand(data, h.Width)
		if err != nil {
			return nil, err
		}
		if err := canvas.Put(y0, rows, pix); err != nil {
			return nil, err
		}
		if onBand != nil {
			onBand(canvas.Progress())
		}
	}

	if !canvas.Complete() {
		return nil, fmt.Errorf("server closed after %.0f%% of the image", canvas.Progress()*100)
	}
	return canvas, nil
}
