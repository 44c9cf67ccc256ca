package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gogpu/bentpixel"
	"github.com/gogpu/bentpixel/internal/imageio"
)

// errBadRequest marks client errors that carry no other sentinel.
var errBadRequest = errors.New("bad request")

// renderRequest is a decoded render or sonify request.
type renderRequest struct {
	src     *bentpixel.Pixmap
	state   bentpixel.State
	t       float64
	format  imageio.Format
	overlay bool
}

// parseRenderRequest reads the uploaded image and the parameters.
func (s *Server) parseRenderRequest(w http.ResponseWriter, r *http.Request) (*renderRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		return nil, fmt.Errorf("%w: form: %w", errBadRequest, err)
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("%w: missing image field", errBadRequest)
	}
	defer file.Close()

	src, format, err := imageio.Decode(file)
	if err != nil {
		return nil, err
	}
	if src.Width() == 0 || src.Height() == 0 {
		return nil, imageio.ErrEmptyData
	}
	src = imageio.Fit(src, s.cfg.MaxWidth, s.cfg.MaxHeight)
	s.logger.Debug("server: decoded upload", "format", format, "width", src.Width(), "height", src.Height())

	req := &renderRequest{src: src}
	if req.state, err = s.parseState(r); err != nil {
		return nil, err
	}
	if v := r.FormValue("t"); v != "" {
		if req.t, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("%w: t: %q", errBadRequest, v)
		}
	}
	if req.format, err = imageio.ParseFormat(r.FormValue("format")); err != nil {
		return nil, err
	}
	if v := r.FormValue("overlay"); v != "" {
		if req.overlay, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("%w: overlay: %q", errBadRequest, v)
		}
	}
	return req, nil
}

// parseState builds the slider and grid state. A preset sets the base
// sliders and explicit slider values override it.
func (s *Server) parseState(r *http.Request) (bentpixel.State, error) {
	var st bentpixel.State
	if name := r.FormValue("preset"); name != "" {
		p, err := s.lookupPreset(r, name)
		if err != nil {
			return st, err
		}
		st.Params = p.Params
	}

	for _, name := range bentpixel.ParamNames() {
		v := r.FormValue(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return st, fmt.Errorf("%w: %s: %q", errBadRequest, name, v)
		}
		if err := st.Params.Set(name, n); err != nil {
			return st, err
		}
	}

	for _, kind := range bentpixel.GridKinds() {
		if v := r.FormValue("grid." + kind.String()); v != "" {
			if err := st.Grid.SetCells(kind, v); err != nil {
				return st, err
			}
		}
	}
	return st, nil
}

func (s *Server) lookupPreset(r *http.Request, name string) (bentpixel.Preset, error) {
	if s.store == nil {
		return bentpixel.LookupPreset(name)
	}
	return s.store.Lookup(r.Context(), name)
}
