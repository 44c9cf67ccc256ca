package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gogpu/bentpixel"
	"github.com/gogpu/bentpixel/internal/imageio"
	"github.com/gogpu/bentpixel/internal/overlay"
	"github.com/gogpu/bentpixel/internal/presetstore"
	"github.com/gogpu/bentpixel/internal/wavio"
)

// presetJSON is the wire form of a preset.
type presetJSON struct {
	Name    string           `json:"name"`
	Title   string           `json:"title"`
	Builtin bool             `json:"builtin"`
	Params  bentpixel.Params `json:"params"`
}

// cellJSON is the wire form of a grid cell.
type cellJSON struct {
	Index int `json:"index"`
	X     int `json:"x"`
	Y     int `json:"y"`
	W     int `json:"w"`
	H     int `json:"h"`
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	presets := bentpixel.Presets()
	if s.store != nil {
		var err error
		if presets, err = s.store.All(r.Context()); err != nil {
			s.writeError(w, err)
			return
		}
	}
	out := make([]presetJSON, len(presets))
	for i, p := range presets {
		out[i] = presetJSON{
			Name:    p.Name,
			Title:   p.Title(),
			Builtin: bentpixel.IsBuiltinPreset(p.Name),
			Params:  p.Params,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePutPreset(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errNoStore)
		return
	}
	var params bentpixel.Params
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&params); err != nil {
		s.writeError(w, fmt.Errorf("%w: body: %w", errBadRequest, err))
		return
	}
	p := bentpixel.Preset{Name: chi.URLParam(r, "name"), Params: params}
	if err := s.store.Save(r.Context(), p); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("server: preset saved", "name", p.Name)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errNoStore)
		return
	}
	name := chi.URLParam(r, "name")
	if err := s.store.Delete(r.Context(), name); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("server: preset deleted", "name", name)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCells(w http.ResponseWriter, r *http.Request) {
	width, err1 := strconv.Atoi(r.URL.Query().Get("w"))
	height, err2 := strconv.Atoi(r.URL.Query().Get("h"))
	if err1 != nil || err2 != nil || width <= 0 || height <= 0 {
		s.writeError(w, fmt.Errorf("%w: w and h must be positive integers", errBadRequest))
		return
	}
	cells := bentpixel.Cells(width, height)
	out := make([]cellJSON, len(cells))
	for i, c := range cells {
		out[i] = cellJSON{
			Index: c.Index,
			X:     c.Box.Min.X,
			Y:     c.Box.Min.Y,
			W:     c.Box.Dx(),
			H:     c.Box.Dy(),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := bentpixel.Render(req.src, req.state, req.t)
	if req.overlay {
		img := out.ToImage()
		overlay.Draw(img, req.state.Grid)
		out = bentpixel.FromImage(img)
	}

	data, format, err := imageio.EncodeToBytes(out, req.format, s.cfg.JPEGQuality)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func (s *Server) handleSonify(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := bentpixel.Render(req.src, req.state, req.t)

	hit := true
	data, err := s.audio.GetOrCreate(digest(out), func() ([]byte, error) {
		hit = false
		return wavio.EncodeBytes(bentpixel.Sonify(out))
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Audio-Duration", strconv.FormatFloat(bentpixel.AudioDuration(out.Width(), out.Height()), 'f', 3, 64))
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	_, _ = w.Write(data)
}

// digest identifies a rendered buffer by its dimensions and pixels.
func digest(pm *bentpixel.Pixmap) [sha256.Size]byte {
	h := sha256.New()
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[:8], uint64(pm.Width()))
	binary.LittleEndian.PutUint64(dims[8:], uint64(pm.Height()))
	h.Write(dims[:])
	h.Write(pm.Data())
	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// errNoStore is returned by preset writes when no store is configured.
var errNoStore = errors.New("preset storage not configured")

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, presetstore.ErrNotFound),
		errors.Is(err, bentpixel.ErrUnknownPreset):
		return http.StatusNotFound
	case errors.Is(err, presetstore.ErrBuiltin):
		return http.StatusConflict
	case errors.Is(err, errNoStore):
		return http.StatusServiceUnavailable
	case errors.Is(err, errBadRequest),
		errors.Is(err, presetstore.ErrInvalidName),
		errors.Is(err, imageio.ErrUnsupportedFormat),
		errors.Is(err, imageio.ErrEmptyData),
		errors.Is(err, bentpixel.ErrUnknownParam),
		errors.Is(err, bentpixel.ErrUnknownKind),
		errors.Is(err, bentpixel.ErrInvalidCell):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("server: request failed", "error", err)
		msg = http.StatusText(status)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
