// Package bentpixel bends images and turns them into sound.
//
// # Overview
//
// bentpixel applies an ordered chain of byte-level and spatial distortions to
// an RGBA pixel buffer and derives a stereo signal from the result. Everything
// in this package is a pure function of (buffer, parameters, time); there is
// no global state besides the logger.
//
// # Quick Start
//
//	import "github.com/gogpu/bentpixel"
//
//	src := bentpixel.FromImage(img)
//
//	var st bentpixel.State
//	st.Params.BitShift = 3
//	st.Params.PixelSort = 128
//	st.Grid.Set(bentpixel.KindRipple, 4, true)
//
//	out := bentpixel.Render(src, st, 1.5)
//	audio := bentpixel.Sonify(out)
//
// # Transform Chain
//
// ApplyChain runs seven operators in fixed order: bit shift, data offset,
// RGB split, scanlines, path sort, seed growth and pixel sort. A snapshot is
// taken once before the chain. RGB split, scanlines and the seed colors of
// seed growth read the snapshot, so they discard the output of earlier steps
// for the bytes they write. All other steps read the live buffer.
//
// # Grid Warps
//
// The buffer is divided into a 3x3 grid. Each of six warps (pixelflow,
// vortex, shatter, ripple, neon, prism) may be toggled per cell. Composite
// applies them as a left fold: kinds in that order, cells ascending, each
// step reading a fresh snapshot of the buffer left by the previous step.
// Time is an explicit argument.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Warp geometry is measured from pixel centers (x+0.5, y+0.5)
//
// # Sonification
//
// Sonify reads a finished buffer at 44.1 kHz for 5 to 15 seconds depending
// on its area. Brightness picks the pitch, the color channels weight three
// harmonics and the column sets the pan.
//
// # Adapters
//
// Image codecs, WAV export, playback, preset storage and the HTTP service
// live in internal packages and are exposed through cmd/bentpixel.
package bentpixel

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = ""
)
