package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/mtraverso3/mandelbrot"
	"github.com/mtraverso3/mandelbrot/internal/wire"
	"github.com/mtraverso3/mandelbrot/render"
)

// webServer creates the http server serving the render endpoints on addr
func webServer(addr string, s *server) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.websocketHandler)
	mux.HandleFunc("GET /render.png", s.pngHandler)
	mux.HandleFunc("GET /presets", s.presetsHandler)
	return mux
}

// websocketHandler reads one wire.Request and streams the render back in
// row bands, finishing with a normal closure.
func (s *server) websocketHandler(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.log.Warn("websocket accept", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer c.CloseNow()

	ctx := r.Context()
	var req wire.Request
	if err := wsjson.Read(ctx, c, &req); err != nil {
		s.log.Warn("read request", "remote", r.RemoteAddr, "err", err)
		return
	}

	rr, v, err := s.prepare(req)
	if err != nil {
		s.log.Info("rejected request", "remote", r.RemoteAddr, "err", err)
		c.Close(websocket.StatusPolicyViolation, closeReason(err))
		return
	}

	if err := s.stream(ctx, c, rr, v); err != nil {
		s.log.Warn("stream", "remote", r.RemoteAddr, "err", err)
		c.Close(websocket.StatusInternalError, closeReason(err))
		return
	}
	c.Close(websocket.StatusNormalClosure, "")
}

// stream sends the header and then every band of rows as soon as it is rendered.
// A closed connection stops the render at the next band boundary.
func (s *server) stream(ctx context.Context, c *websocket.Conn, rr mandel.RowRenderer, v mandel.View) error {
	width, height := rr.Size()
	h := wire.Header{Width: width, Height: height, Band: min(s.band, height)}
	if err := wsjson.Write(ctx, c, h); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	start := time.Now()
	stride := width * 3
	buf := make([]byte, h.Band*stride)
	for y0 := 0; y0 < height; y0 += h.Band {
		if err := ctx.Err(); err != nil {
			return err
		}
		y1 := min(y0+h.Band, height)
		rows := buf[:(y1-y0)*stride]
		if err := rr.RenderRows(rows, v, y0, y1); err != nil {
			return err
		}
		if err := c.Write(ctx, websocket.MessageBinary, wire.EncodeBand(y0, y1-y0, rows)); err != nil {
			return fmt.Errorf("write rows [%d, %d): %w", y0, y1, err)
		}
	}
	s.log.Info("streamed render", "width", width, "height", height, "view", v, "elapsed", time.Since(start))
	return nil
}

// pngHandler renders the view given by the query string and answers with a PNG.
func (s *server) pngHandler(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rr, v, err := s.prepare(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	buf, err := rr.Render(v)
	if err != nil {
		status := http.StatusInternalServerError
		if isClientError(err) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	width, height := rr.Size()
	var out bytes.Buffer
	if err := png.Encode(&out, render.NewImage(buf, width, height)); err != nil {
		s.log.Error("encode png", "err", err)
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(out.Len()))
	if _, err := w.Write(out.Bytes()); err != nil {
		s.log.Warn("write png", "remote", r.RemoteAddr, "err", err)
	}
}

func (s *server) presetsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(mandel.Presets()); err != nil {
		s.log.Warn("write presets", "remote", r.RemoteAddr, "err", err)
	}
}

// requestFromQuery reads a wire.Request from the query parameters
// preset, multiplier, x, y, zoom, lit, width and height.
func requestFromQuery(r *http.Request) (wire.Request, error) {
	q := r.URL.Query()
	req := wire.Request{Preset: q.Get("preset"), Zoom: 1}

	floats := []struct {
		key string
		dst *float64
	}{
		{"multiplier", &req.Multiplier},
		{"x", &req.X},
		{"y", &req.Y},
		{"zoom", &req.Zoom},
	}
	for _, f := range floats {
		if s := q.Get(f.key); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return wire.Request{}, fmt.Errorf("%w: %s: %v", mandel.ErrInvalidParameters, f.key, err)
			}
			*f.dst = v
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"width", &req.Width},
		{"height", &req.Height},
	}
	for _, i := range ints {
		if s := q.Get(i.key); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return wire.Request{}, fmt.Errorf("%w: %s: %v", mandel.ErrInvalidParameters, i.key, err)
			}
			*i.dst = v
		}
	}

	if s := q.Get("lit"); s != "" {
		lit, err := strconv.ParseBool(s)
		if err != nil {
			return wire.Request{}, fmt.Errorf("%w: lit: %v", mandel.ErrInvalidParameters, err)
		}
		req.Lit = lit
	}
	return req, nil
}

// closeReason fits err into the 123 bytes a close frame can carry.
func closeReason(err error) string {
	msg := err.Error()
	if len(msg) > 123 {
		msg = msg[:123]
	}
	return msg
}
