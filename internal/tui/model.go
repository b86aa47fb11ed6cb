package tui

import (
	"math"

	help "github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"countypaths/internal/emit"
	"countypaths/internal/geom"
	"countypaths/internal/pipeline"
)

// epsilonStep is how much one keypress changes a tolerance, in drawing units.
const epsilonStep = 0.1

type Model struct {
	width  int
	height int

	showSidebar bool

	zoom    float64
	offsetX int
	offsetY int

	status string
	title  string

	// layer sidebar
	l list.Model

	// Data, in drawing-surface units
	proj    geom.Projection
	canvasW float64
	canvasH float64
	outer   pipeline.Layer
	holes   []pipeline.Layer
	overlay *pipeline.Layer
	labels  []emit.Label
	pasted  *pipeline.Layer

	// highlighted layer name
	focus string

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showOuter   bool
	showHoles   bool
	showOverlay bool
	showLabels  bool
	showRaw     bool
	fill        bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverMicX   int
	hoverMicY   int
	hoverHasPos bool
	hoverX      float64
	hoverY      float64

	// ring statistics table
	showStats bool
	tbl       table.Model

	keys keyMap
	help help.Model
}

func newModel(title string) Model {
	m := Model{
		zoom:        1.0,
		status:      "preview ready",
		title:       title,
		showOuter:   true,
		showHoles:   true,
		showOverlay: true,
		showLabels:  true,
		keys:        defaultKeys(),
		help:        help.New(),
	}
	// list setup
	d := list.NewDefaultDelegate()
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Layers"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(false)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a WKT POLYGON or LINESTRING in lon/lat. Enter projects it onto the map; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.help.ShowAll = false
	return m
}

// New previews a fresh pipeline result; tolerances can be tuned live.
func New(res *pipeline.Result) Model {
	m := newModel("countypaths preview: " + res.Source)
	m.proj = res.Projection
	m.canvasW = float64(res.Projection.Width)
	m.canvasH = float64(res.Projection.Height)
	m.outer = res.Outer
	m.holes = res.Holes
	m.overlay = res.Overlay
	m.labels = res.Labels
	m.refreshLayers()
	m.status = m.countsStatus()
	return m
}

// NewFromModule previews an already generated module. Its paths are the
// simplified rings, so re-simplifying can only drop more points.
func NewFromModule(mod emit.Module, name string) (Model, error) {
	m := newModel("countypaths preview: " + name)
	m.proj = mod.Projection
	m.canvasW = float64(mod.Width)
	m.canvasH = float64(mod.Height)
	if m.canvasW <= 0 || m.canvasH <= 0 {
		return Model{}, errors.Newf("module %s has no canvas size", name)
	}

	outer, err := emit.ParsePath(mod.County)
	if err != nil {
		return Model{}, errors.Wrap(err, "county path")
	}
	m.outer = pipeline.Layer{Name: "outer", Raw: outer, Simplified: outer}
	for i, h := range mod.Holes {
		pts, err := emit.ParsePath(h)
		if err != nil {
			return Model{}, errors.Wrapf(err, "hole path %d", i)
		}
		m.holes = append(m.holes, pipeline.Layer{Name: "hole " + itoa(i), Raw: pts, Simplified: pts})
	}
	if mod.Overlay != "" {
		pts, err := emit.ParsePath(mod.Overlay)
		if err != nil {
			return Model{}, errors.Wrap(err, "overlay path")
		}
		m.overlay = &pipeline.Layer{Name: "overlay", Raw: pts, Simplified: pts, Epsilon: -1}
	}
	m.labels = mod.Labels
	m.refreshLayers()
	m.status = m.countsStatus()
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }

// Epsilons returns the tolerances currently applied to outer ring and holes.
func (m Model) Epsilons() (outer, hole float64) {
	outer = m.outer.Epsilon
	hole = -1
	if len(m.holes) > 0 {
		hole = m.holes[0].Epsilon
	}
	return outer, hole
}

func (m *Model) setOuterEpsilon(e float64) {
	e = math.Max(0, math.Round(e*100)/100)
	m.outer = m.outer.Resimplify(e)
}

func (m *Model) setHoleEpsilon(e float64) {
	e = math.Max(0, math.Round(e*100)/100)
	for i := range m.holes {
		m.holes[i] = m.holes[i].Resimplify(e)
	}
}

// visibleLayers lists the rings currently drawn, in draw order.
func (m Model) visibleLayers() []pipeline.Layer {
	var out []pipeline.Layer
	if m.showOuter {
		out = append(out, m.outer)
	}
	if m.showHoles {
		out = append(out, m.holes...)
	}
	if m.showOverlay && m.overlay != nil {
		out = append(out, *m.overlay)
	}
	if m.pasted != nil {
		out = append(out, *m.pasted)
	}
	return out
}

// allLayers lists every ring regardless of visibility.
func (m Model) allLayers() []pipeline.Layer {
	out := []pipeline.Layer{m.outer}
	out = append(out, m.holes...)
	if m.overlay != nil {
		out = append(out, *m.overlay)
	}
	if m.pasted != nil {
		out = append(out, *m.pasted)
	}
	return out
}

// points returns the vertices a layer currently shows.
func (m Model) points(l pipeline.Layer) []geom.DrawPoint {
	if m.showRaw {
		return l.Raw
	}
	return l.Simplified
}
