package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gogpu/bentpixel"
	"github.com/gogpu/bentpixel/internal/config"
	"github.com/gogpu/bentpixel/internal/imageio"
	"github.com/gogpu/bentpixel/internal/presetstore"
)

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *Server {
	t.Helper()
	cfg := config.Default()
	for _, m := range mutate {
		m(cfg)
	}
	return New(cfg, presetstore.OpenMemory(t), nil)
}

// gradient is an opaque test image with distinct pixels.
func gradient(w, h int) *bentpixel.Pixmap {
	pm := bentpixel.NewPixmap(w, h)
	for y := range h {
		for x := range w {
			pm.SetRGBA(x, y, uint8(x*255/max(w-1, 1)), uint8(y*255/max(h-1, 1)), uint8((x+y)*7), 255)
		}
	}
	return pm
}

func encodePNG(t *testing.T, pm *bentpixel.Pixmap) []byte {
	t.Helper()
	data, _, err := imageio.EncodeToBytes(pm, imageio.FormatPNG, 0)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

// upload builds a multipart POST with the image under field "image".
func upload(t *testing.T, target string, image []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if image != nil {
		fw, err := mw.CreateFormFile("image", "in.png")
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(image)
	} else {
		mw.WriteField("note", "no image")
	}
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body %q is not JSON: %v", rec.Body.String(), err)
	}
	return body["error"]
}
