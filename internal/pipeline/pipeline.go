// Package pipeline runs the boundary conversion end to end: load, project,
// simplify, emit. A run is hermetic and either produces the whole module or
// an error.
package pipeline

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"countypaths/internal/config"
	"countypaths/internal/emit"
	"countypaths/internal/geom"
	"countypaths/internal/simplify"
)

// Layer is one ring on the drawing surface, before and after simplification.
// Epsilon is negative for layers that bypass the simplifier.
type Layer struct {
	Name       string
	Raw        []geom.DrawPoint
	Simplified []geom.DrawPoint
	Epsilon    float64
}

// Simplifies reports whether the layer goes through the simplifier.
func (l Layer) Simplifies() bool { return l.Epsilon >= 0 }

// Resimplify returns a copy of l simplified with a new tolerance.
func (l Layer) Resimplify(epsilon float64) Layer {
	if !l.Simplifies() {
		return l
	}
	l.Epsilon = epsilon
	l.Simplified = simplify.Simplify(l.Raw, epsilon)
	return l
}

// Result is the in-memory outcome of one run.
type Result struct {
	Source     string
	Projection geom.Projection
	Outer      Layer
	Holes      []Layer
	Overlay    *Layer
	Labels     []emit.Label
}

// Module converts the result into the emitted constants.
func (r *Result) Module() emit.Module {
	m := emit.Module{
		Source:     r.Source,
		Width:      r.Projection.Width,
		Height:     r.Projection.Height,
		Projection: r.Projection,
		County:     emit.ToPath(r.Outer.Simplified),
		Holes:      make([]string, 0, len(r.Holes)),
		Labels:     r.Labels,
	}
	for _, h := range r.Holes {
		m.Holes = append(m.Holes, emit.ToPath(h.Simplified))
	}
	if r.Overlay != nil {
		m.Overlay = emit.ToPath(r.Overlay.Simplified)
	}
	if m.Labels == nil {
		m.Labels = []emit.Label{}
	}
	return m
}

// Run executes the pipeline for cfg.
func Run(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	b, err := geom.LoadBoundary(cfg.Input, geom.Selector{Feature: cfg.FeatureIndex, Polygon: cfg.PolygonIndex})
	if err != nil {
		return nil, err
	}
	if b.IgnoredFeatures > 0 || b.IgnoredPolygons > 0 {
		logger.Warn("input has more geometry than is converted",
			"input", cfg.Input,
			"feature", cfg.FeatureIndex, "ignored_features", b.IgnoredFeatures,
			"polygon", cfg.PolygonIndex, "ignored_polygons", b.IgnoredPolygons)
	}

	overlay, err := loadOverlay(cfg.Overlay)
	if err != nil {
		return nil, err
	}
	landmarks, err := loadLandmarks(cfg)
	if err != nil {
		return nil, err
	}

	res, err := Build(b.Polygon, overlay, landmarks, Params{
		TargetWidth:  cfg.Projection.TargetWidth,
		Padding:      cfg.Projection.Padding,
		OuterEpsilon: cfg.Simplify.OuterEpsilon,
		HoleEpsilon:  cfg.Simplify.HoleEpsilon,
		OverlayName:  cfg.Overlay.Name,
	})
	if err != nil {
		return nil, err
	}
	res.Source = cfg.Input

	logLayer(logger, res.Outer)
	for _, h := range res.Holes {
		logLayer(logger, h)
	}
	if res.Overlay != nil {
		logLayer(logger, *res.Overlay)
	}
	logger.Debug("pipeline finished",
		"width", res.Projection.Width, "height", res.Projection.Height,
		"labels", len(res.Labels), "elapsed", time.Since(start))
	return res, nil
}

// Params are the numeric knobs of Build.
type Params struct {
	TargetWidth  float64
	Padding      float64
	OuterEpsilon float64
	HoleEpsilon  float64
	OverlayName  string
}

// Build projects and simplifies already-loaded geometry. The projection comes
// from the outer ring's bounding box; the overlay goes through the same
// projection but is never simplified.
func Build(poly geom.Polygon, overlay geom.Ring, landmarks []geom.Landmark, p Params) (*Result, error) {
	if p.OuterEpsilon < 0 || p.HoleEpsilon < 0 {
		return nil, errors.Newf("epsilon must not be negative (outer %v, hole %v)", p.OuterEpsilon, p.HoleEpsilon)
	}
	proj, err := geom.NewProjectionFromRing(poly.Outer, p.TargetWidth, p.Padding)
	if err != nil {
		return nil, errors.Wrap(err, "outer ring")
	}

	outer := proj.ProjectRing(poly.Outer)
	if err := checkFinite("outer ring", outer); err != nil {
		return nil, err
	}
	res := &Result{
		Projection: proj,
		Outer:      simplifiedLayer("outer", outer, p.OuterEpsilon),
	}
	for i, h := range poly.Holes {
		if len(h) == 0 {
			return nil, errors.Mark(errors.Newf("hole %d is empty", i), geom.ErrDegenerateGeometry)
		}
		pts := proj.ProjectRing(h)
		if err := checkFinite(holeName(i), pts); err != nil {
			return nil, err
		}
		res.Holes = append(res.Holes, simplifiedLayer(holeName(i), pts, p.HoleEpsilon))
	}
	if len(overlay) > 0 {
		name := p.OverlayName
		if name == "" {
			name = "overlay"
		}
		pts := proj.ProjectRing(overlay)
		if err := checkFinite(name, pts); err != nil {
			return nil, err
		}
		res.Overlay = &Layer{Name: name, Raw: pts, Simplified: pts, Epsilon: -1}
	}
	res.Labels = emit.ResolveLabels(proj, landmarks)
	for _, l := range res.Labels {
		if !l.Point.Finite() {
			return nil, errors.Mark(errors.Newf("landmark %q projects to non-finite %v", l.Name, l.Point), geom.ErrDegenerateGeometry)
		}
	}
	return res, nil
}

// checkFinite rejects rings that would emit NaN or Infinity.
func checkFinite(name string, pts []geom.DrawPoint) error {
	for i, p := range pts {
		if !p.Finite() {
			return errors.Mark(errors.Newf("%s: point %d projects to non-finite %v", name, i, p), geom.ErrDegenerateGeometry)
		}
	}
	return nil
}

func simplifiedLayer(name string, pts []geom.DrawPoint, epsilon float64) Layer {
	return Layer{Name: name, Raw: pts, Simplified: simplify.Simplify(pts, epsilon), Epsilon: epsilon}
}

func holeName(i int) string {
	return "hole " + strconv.Itoa(i)
}

func logLayer(logger *slog.Logger, l Layer) {
	if !l.Simplifies() {
		logger.Info("ring projected", "ring", l.Name, "points", len(l.Raw))
		return
	}
	logger.Info("ring simplified", "ring", l.Name, "epsilon", l.Epsilon,
		"points_before", len(l.Raw), "points_after", len(l.Simplified))
}
