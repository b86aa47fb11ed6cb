package emit

import "countypaths/internal/geom"

// Label is a landmark resolved onto the drawing surface.
type Label struct {
	Name  string         `json:"name"`
	Point geom.DrawPoint `json:"point"`
}

// ResolveLabels projects every landmark, keeping input order. No
// simplification is applied.
func ResolveLabels(proj geom.Projection, landmarks []geom.Landmark) []Label {
	out := make([]Label, 0, len(landmarks))
	for _, l := range landmarks {
		out = append(out, Label{Name: l.Name, Point: proj.Project(l.Point)})
	}
	return out
}
