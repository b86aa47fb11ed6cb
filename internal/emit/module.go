package emit

import (
	"bytes"
	"encoding/json"
	"go/format"
	"io"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"

	"countypaths/internal/geom"
)

// Format selects the language of the generated module.
type Format string

const (
	FormatTS   Format = "ts"
	FormatGo   Format = "go"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTS, FormatGo, FormatJSON:
		return f, nil
	}
	return "", errors.Newf("unknown output format %q (want ts, go or json)", s)
}

// Module is everything the renderer consumes. Paths are pre-simplified and
// must not be re-projected downstream.
type Module struct {
	Source     string          `json:"source,omitempty"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Projection geom.Projection `json:"projection"`
	County     string          `json:"county"`
	Holes      []string        `json:"holes"`
	Overlay    string          `json:"overlay,omitempty"`
	Labels     []Label         `json:"labels"`
}

// Options tunes rendering.
type Options struct {
	// GoPackage is the package clause for FormatGo.
	GoPackage string
}

// Render produces the full module in memory; nothing is written on error.
func Render(m Module, f Format, opts Options) ([]byte, error) {
	switch f {
	case FormatJSON:
		b, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encode json module")
		}
		return append(b, '\n'), nil
	case FormatTS:
		var buf bytes.Buffer
		if err := tsTemplate.Execute(&buf, m); err != nil {
			return nil, errors.Wrap(err, "render ts module")
		}
		return buf.Bytes(), nil
	case FormatGo:
		pkg := opts.GoPackage
		if pkg == "" {
			pkg = "countymap"
		}
		var buf bytes.Buffer
		if err := goTemplate.Execute(&buf, struct {
			Module
			Package string
		}{m, pkg}); err != nil {
			return nil, errors.Wrap(err, "render go module")
		}
		src, err := format.Source(buf.Bytes())
		if err != nil {
			return nil, errors.Wrap(err, "gofmt generated module")
		}
		return src, nil
	}
	return nil, errors.Newf("unknown output format %q", f)
}

// Write renders the module and writes it in one call.
func Write(w io.Writer, m Module, f Format, opts Options) error {
	b, err := Render(m, f, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return errors.Wrap(err, "write module")
}

// DecodeJSON reads a module written with FormatJSON.
func DecodeJSON(r io.Reader) (Module, error) {
	var m Module
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Module{}, errors.Wrap(err, "decode json module")
	}
	return m, nil
}

var funcs = template.FuncMap{
	"num": formatNum,
	"str": quote,
}

// quote writes s as a double-quoted literal valid in both TypeScript and Go.
func quote(s string) (string, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", errors.Wrapf(err, "quote %q", s)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

var tsTemplate = template.Must(template.New("ts").Funcs(funcs).Parse(
	`// Code generated by countypaths{{if .Source}} from {{.Source}}{{end}}. DO NOT EDIT.

export const SVG_WIDTH = {{.Width}};
export const SVG_HEIGHT = {{.Height}};

export const PROJECTION = {
  minLon: {{num .Projection.MinLon}},
  maxLon: {{num .Projection.MaxLon}},
  minLat: {{num .Projection.MinLat}},
  maxLat: {{num .Projection.MaxLat}},
  centerLat: {{num .Projection.CenterLat}},
  scaleX: {{num .Projection.ScaleX}},
  scaleY: {{num .Projection.ScaleY}},
  padding: {{num .Projection.Padding}},
} as const;

export const COUNTY_PATH = {{str .County}};

export const HOLE_PATHS: string[] = [
{{- range .Holes}}
  {{str .}},
{{- end}}
];

export const OVERLAY_PATH = {{str .Overlay}};

export const LABEL_POINTS: Record<string, { x: number; y: number }> = {
{{- range .Labels}}
  {{str .Name}}: { x: {{num .Point.X}}, y: {{num .Point.Y}} },
{{- end}}
};
`))

var goTemplate = template.Must(template.New("go").Funcs(funcs).Parse(
	`// Code generated by countypaths{{if .Source}} from {{.Source}}{{end}}. DO NOT EDIT.

package {{.Package}}

const (
	SVGWidth = {{.Width}}
	SVGHeight = {{.Height}}
)

var Projection = struct {
	MinLon, MaxLon, MinLat, MaxLat, CenterLat, ScaleX, ScaleY, Padding float64
}{
	MinLon: {{num .Projection.MinLon}},
	MaxLon: {{num .Projection.MaxLon}},
	MinLat: {{num .Projection.MinLat}},
	MaxLat: {{num .Projection.MaxLat}},
	CenterLat: {{num .Projection.CenterLat}},
	ScaleX: {{num .Projection.ScaleX}},
	ScaleY: {{num .Projection.ScaleY}},
	Padding: {{num .Projection.Padding}},
}

const CountyPath = {{str .County}}

var HolePaths = []string{
{{- range .Holes}}
	{{str .}},
{{- end}}
}

const OverlayPath = {{str .Overlay}}

var LabelPoints = map[string][2]float64{
{{- range .Labels}}
	{{str .Name}}: { {{- num .Point.X}}, {{num .Point.Y -}} },
{{- end}}
}
`))
