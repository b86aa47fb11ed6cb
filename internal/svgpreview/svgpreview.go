// Package svgpreview draws an emitted module as a standalone SVG image so the
// simplified boundary can be reviewed before it is committed. It only reads
// the module's path strings and label points, exactly like the website does.
package svgpreview

import (
	"bytes"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/cockroachdb/errors"
	"github.com/tdewolff/minify/v2"
	msvg "github.com/tdewolff/minify/v2/svg"

	"countypaths/internal/emit"
)

const mediaType = "image/svg+xml"

// Options controls what is drawn.
type Options struct {
	Labels bool
	Minify bool
}

var (
	backgroundStyle = "fill:#ffffff"
	countyStyle     = "fill:#dbeafe;stroke:#1e3a8a;stroke-width:1.5;stroke-linejoin:round"
	holeStyle       = "fill:#ffffff;stroke:#1e3a8a;stroke-width:1"
	overlayStyle    = "fill:#f59e0b;fill-opacity:0.25;stroke:#b45309;stroke-width:1.5;stroke-dasharray:4 3"
	labelDotStyle   = "fill:#7c3aed"
	labelTextStyle  = "font-family:sans-serif;font-size:11px;fill:#111827"
)

// Write renders m to w.
func Write(w io.Writer, m emit.Module, opts Options) error {
	if m.Width <= 0 || m.Height <= 0 {
		return errors.Newf("module has no canvas size (%dx%d)", m.Width, m.Height)
	}
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(m.Width, m.Height)
	canvas.Rect(0, 0, m.Width, m.Height, backgroundStyle)

	if m.County != "" {
		canvas.Path(m.County, countyStyle)
	}
	for _, h := range m.Holes {
		if h != "" {
			canvas.Path(h, holeStyle)
		}
	}
	if m.Overlay != "" {
		canvas.Path(m.Overlay, overlayStyle)
	}
	if opts.Labels {
		for _, l := range m.Labels {
			x, y := pixel(l.Point.X), pixel(l.Point.Y)
			canvas.Circle(x, y, 3, labelDotStyle)
			canvas.Text(x+5, y-5, l.Name, labelTextStyle)
		}
	}
	canvas.End()

	if !opts.Minify {
		_, err := w.Write(buf.Bytes())
		return errors.Wrap(err, "write svg")
	}
	minifier := minify.New()
	minifier.AddFunc(mediaType, msvg.Minify)
	return errors.Wrap(minifier.Minify(mediaType, w, &buf), "minify svg")
}

func pixel(v float64) int {
	return int(math.Round(v))
}
