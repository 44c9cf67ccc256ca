package presetstore

import "github.com/gogpu/bentpixel"

func presetNames(ps []bentpixel.Preset) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}
