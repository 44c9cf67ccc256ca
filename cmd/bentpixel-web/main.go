//go:build js

// Command bentpixel-web is the browser front end, compiled with GopherJS:
//
//	gopherjs build -o bentpixel.js ./cmd/bentpixel-web
//
// It installs a global "bentpixel" object:
//
//	bentpixel.load(canvas)               take the canvas pixels as the source
//	bentpixel.set(name, value)           set a slider
//	bentpixel.preset(name)               apply a built-in preset
//	bentpixel.randomize()                draw random sliders
//	bentpixel.toggle(kind, cell)         flip a grid cell, returns its state
//	bentpixel.clearGrid(kind)            clear one warp kind
//	bentpixel.randomizeGrid(kind)        redraw one warp kind
//	bentpixel.reset()                    zero everything
//	bentpixel.play()                     play the sonified output
//	bentpixel.exportName()               download name for the current output
//
// Every mutation re-renders into the loaded canvas. While a time-dependent
// warp is active the canvas is refreshed on each animation frame.
package main

import (
	"github.com/gopherjs/gopherjs/js"

	"github.com/gogpu/bentpixel"
)

// app binds a Session to a canvas and the Web Audio API.
type app struct {
	session  *bentpixel.Session
	canvas   *js.Object
	ctx2d    *js.Object
	audioCtx *js.Object
	source   *js.Object
	frameID  int
}

func main() {
	a := &app{
		session: bentpixel.NewSession(nil, bentpixel.WithClock(func() float64 {
			return js.Global.Get("Date").Call("now").Float() / 1000
		})),
	}
	js.Global.Set("bentpixel", map[string]any{
		"load": a.load,
		"set": func(name string, v int) string {
			if err := a.session.SetParam(name, v); err != nil {
				return err.Error()
			}
			a.refresh()
			return ""
		},
		"preset": func(name string) string {
			p, err := bentpixel.LookupPreset(name)
			if err != nil {
				return err.Error()
			}
			a.session.ApplyPreset(p)
			a.refresh()
			return ""
		},
		"presets": presetNames,
		"randomize": func() {
			a.session.Randomize()
			a.refresh()
		},
		"toggle": func(kind string, cell int) bool {
			k, err := bentpixel.ParseGridKind(kind)
			if err != nil {
				return false
			}
			on := a.session.Toggle(k, cell)
			a.refresh()
			return on
		},
		"clearGrid":     a.kindAction((*bentpixel.Session).ClearGrid),
		"randomizeGrid": a.kindAction((*bentpixel.Session).RandomizeGrid),
		"reset": func() {
			a.session.Reset()
			a.refresh()
		},
		"play": a.play,
		"exportName": func() string {
			ext := "jpg"
			if out := a.session.Output(); out != nil && out.HasTransparency() {
				ext = "png"
			}
			ts := js.Global.Get("Date").New().Call("toISOString").String()
			return "bent-pixel-" + sanitizeTimestamp(ts) + "." + ext
		},
		"version": bentpixel.Version,
	})
}

func presetNames() []string {
	ps := bentpixel.Presets()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

func (a *app) kindAction(fn func(*bentpixel.Session, bentpixel.GridKind)) func(string) {
	return func(kind string) {
		k, err := bentpixel.ParseGridKind(kind)
		if err != nil {
			return
		}
		fn(a.session, k)
		a.refresh()
	}
}

// load copies the canvas pixels into a new source buffer.
func (a *app) load(canvas *js.Object) {
	a.canvas = canvas
	a.ctx2d = canvas.Call("getContext", "2d")
	w, h := canvas.Get("width").Int(), canvas.Get("height").Int()
	imageData := a.ctx2d.Call("getImageData", 0, 0, w, h)
	raw := js.Global.Get("Uint8Array").New(imageData.Get("data").Get("buffer")).Interface().([]byte)

	pm, err := bentpixel.NewPixmapFromData(w, h, raw)
	if err != nil {
		js.Global.Get("console").Call("error", err.Error())
		return
	}
	a.session.Load(pm)
	a.refresh()
}

// refresh renders and starts or stops the animation loop.
func (a *app) refresh() {
	a.draw()
	animated := a.session.State().Grid.Any()
	switch {
	case animated && a.frameID == 0:
		a.frameID = js.Global.Call("requestAnimationFrame", a.frame).Int()
	case !animated && a.frameID != 0:
		js.Global.Call("cancelAnimationFrame", a.frameID)
		a.frameID = 0
	}
}

func (a *app) frame(float64) {
	a.draw()
	a.frameID = js.Global.Call("requestAnimationFrame", a.frame).Int()
}

// draw renders at the current time and writes the pixels back.
func (a *app) draw() {
	if a.ctx2d == nil {
		return
	}
	out := a.session.Render()
	imageData := a.ctx2d.Call("createImageData", out.Width(), out.Height())
	imageData.Get("data").Call("set", out.Data())
	a.ctx2d.Call("putImageData", imageData, 0, 0)
}

// play sonifies the current output through Web Audio, stopping any
// previous playback.
func (a *app) play() {
	if a.audioCtx == nil {
		ctor := js.Global.Get("AudioContext")
		if ctor == nil || ctor == js.Undefined {
			ctor = js.Global.Get("webkitAudioContext")
		}
		if ctor == nil || ctor == js.Undefined {
			return
		}
		a.audioCtx = ctor.New()
	}
	if a.audioCtx.Get("state").String() == "suspended" {
		a.audioCtx.Call("resume")
	}
	if a.source != nil {
		a.source.Call("stop")
		a.source = nil
	}

	buf := a.session.Audio()
	if buf == nil || buf.Len() == 0 {
		return
	}
	ab := a.audioCtx.Call("createBuffer", 2, buf.Len(), buf.SampleRate)
	ab.Call("getChannelData", 0).Call("set", buf.Left)
	ab.Call("getChannelData", 1).Call("set", buf.Right)

	a.source = a.audioCtx.Call("createBufferSource")
	a.source.Set("buffer", ab)
	a.source.Call("connect", a.audioCtx.Get("destination"))
	a.source.Call("start")
}

// sanitizeTimestamp makes an ISO timestamp safe for file names.
func sanitizeTimestamp(ts string) string {
	b := []byte(ts)
	for i, c := range b {
		if c == ':' || c == '.' {
			b[i] = '-'
		}
	}
	return string(b)
}
