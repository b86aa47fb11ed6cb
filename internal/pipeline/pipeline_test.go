package pipeline

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"countypaths/internal/config"
	"countypaths/internal/emit"
	"countypaths/internal/geom"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Input = "testdata/county.geojson"
	return cfg
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func square(x0, y0, size float64) geom.Ring {
	return geom.Ring{{Lon: x0, Lat: y0}, {Lon: x0 + size, Lat: y0}, {Lon: x0 + size, Lat: y0 + size}, {Lon: x0, Lat: y0 + size}, {Lon: x0, Lat: y0}}
}

func TestBuild(t *testing.T) {
	poly := geom.Polygon{
		Outer: square(-74.2, 40.6, 0.2),
		Holes: []geom.Ring{square(-74.15, 40.65, 0.01)},
	}
	overlay := geom.Ring{{Lon: -74.1, Lat: 40.7}, {Lon: -74.09, Lat: 40.7}, {Lon: -74.095, Lat: 40.7001}, {Lon: -74.1, Lat: 40.7}}
	res, err := Build(poly, overlay, []geom.Landmark{{Name: "corner", Point: geom.GeoPoint{Lon: -74.2, Lat: 40.8}}}, Params{
		TargetWidth:  520,
		Padding:      40,
		OuterEpsilon: 1.2,
		HoleEpsilon:  0.5,
	})
	require.NoError(t, err)

	require.Equal(t, 600, res.Projection.Width)
	require.Equal(t, "outer", res.Outer.Name)
	require.Len(t, res.Outer.Raw, 5)
	require.Equal(t, res.Outer.Raw, res.Outer.Simplified, "square corners are all far from every chord")
	require.Equal(t, geom.DrawPoint{X: 40, Y: 40}, res.Outer.Raw[3])

	require.Len(t, res.Holes, 1)
	require.Equal(t, "hole 0", res.Holes[0].Name)
	require.Equal(t, 0.5, res.Holes[0].Epsilon)

	require.NotNil(t, res.Overlay)
	require.Equal(t, "overlay", res.Overlay.Name)
	require.False(t, res.Overlay.Simplifies())
	// the overlay keeps its near-colinear point
	require.Len(t, res.Overlay.Simplified, 4)

	require.Equal(t, []emit.Label{{Name: "corner", Point: geom.DrawPoint{X: 40, Y: 40}}}, res.Labels)

	m := res.Module()
	require.Equal(t, emit.ToPath(res.Outer.Simplified), m.County)
	require.True(t, strings.HasPrefix(m.County, "M40,"), m.County)
	require.True(t, strings.HasSuffix(m.County, " Z"), m.County)
	require.Len(t, m.Holes, 1)
	require.NotEmpty(t, m.Overlay)
}

func TestBuildErrors(t *testing.T) {
	testCases := []struct {
		desc      string
		poly      geom.Polygon
		overlay   geom.Ring
		landmarks []geom.Landmark
		params    Params
		expectErr error
	}{
		{
			desc:      "empty outer ring",
			poly:      geom.Polygon{},
			params:    Params{TargetWidth: 520, Padding: 40},
			expectErr: geom.ErrDegenerateGeometry,
		},
		{
			desc:      "single point outer ring",
			poly:      geom.Polygon{Outer: geom.Ring{{Lon: 1, Lat: 1}}},
			params:    Params{TargetWidth: 520, Padding: 40},
			expectErr: geom.ErrDegenerateGeometry,
		},
		{
			desc:      "empty hole",
			poly:      geom.Polygon{Outer: square(0, 0, 1), Holes: []geom.Ring{{}}},
			params:    Params{TargetWidth: 520, Padding: 40},
			expectErr: geom.ErrDegenerateGeometry,
		},
		{
			desc:   "negative epsilon",
			poly:   geom.Polygon{Outer: square(0, 0, 1)},
			params: Params{TargetWidth: 520, Padding: 40, OuterEpsilon: -1},
		},
		{
			desc:      "infinite overlay coordinate",
			poly:      geom.Polygon{Outer: square(0, 0, 1)},
			overlay:   geom.Ring{{Lon: 0.5, Lat: 0.5}, {Lon: math.Inf(1), Lat: 0.5}},
			params:    Params{TargetWidth: 520, Padding: 40},
			expectErr: geom.ErrDegenerateGeometry,
		},
		{
			desc:      "NaN landmark",
			poly:      geom.Polygon{Outer: square(0, 0, 1)},
			landmarks: []geom.Landmark{{Name: "bad", Point: geom.GeoPoint{Lon: 0.5, Lat: math.NaN()}}},
			params:    Params{TargetWidth: 520, Padding: 40},
			expectErr: geom.ErrDegenerateGeometry,
		},
		{
			desc:      "NaN hole coordinate",
			poly:      geom.Polygon{Outer: square(0, 0, 1), Holes: []geom.Ring{{{Lon: math.NaN(), Lat: 0.5}, {Lon: 0.6, Lat: 0.6}}}},
			params:    Params{TargetWidth: 520, Padding: 40},
			expectErr: geom.ErrDegenerateGeometry,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := Build(tc.poly, tc.overlay, tc.landmarks, tc.params)
			require.Error(t, err)
			if tc.expectErr != nil {
				require.True(t, errors.Is(err, tc.expectErr), "got %v", err)
			}
		})
	}
}

func TestLayerResimplify(t *testing.T) {
	raw := []geom.DrawPoint{{X: 0, Y: 0}, {X: 5, Y: 0.5}, {X: 10, Y: 0}}
	l := Layer{Name: "outer", Raw: raw, Simplified: raw, Epsilon: 0}

	loose := l.Resimplify(1)
	require.Len(t, loose.Simplified, 2)
	require.Equal(t, 1.0, loose.Epsilon)
	require.Len(t, l.Simplified, 3, "receiver is unchanged")

	overlay := Layer{Name: "overlay", Raw: raw, Simplified: raw, Epsilon: -1}
	require.Equal(t, overlay, overlay.Resimplify(5))
}

func TestRun(t *testing.T) {
	cfg := testConfig()
	cfg.Overlay.KML = "testdata/overlay.kml"
	cfg.Overlay.Name = "district"
	cfg.LandmarksCSV = "testdata/landmarks.csv"
	cfg.Landmarks = []config.LandmarkConfig{{Name: "Center", Lon: -74.1, Lat: 40.75}}

	logger, logs := bufferLogger()
	res, err := Run(cfg, logger)
	require.NoError(t, err)

	require.Equal(t, "testdata/county.geojson", res.Source)
	require.Len(t, res.Outer.Raw, 6)
	require.LessOrEqual(t, len(res.Outer.Simplified), len(res.Outer.Raw))
	require.Len(t, res.Holes, 1)
	require.NotNil(t, res.Overlay)
	require.Equal(t, "district", res.Overlay.Name)
	require.Len(t, res.Overlay.Raw, 5)

	require.Len(t, res.Labels, 3)
	require.Equal(t, "Center", res.Labels[0].Name)
	require.Equal(t, "Newark", res.Labels[1].Name)

	out := logs.String()
	require.Contains(t, out, "level=WARN")
	require.Contains(t, out, "ignored_features=1")
	require.Contains(t, out, "ignored_polygons=1")
	require.Contains(t, out, "ring=outer")
	require.Contains(t, out, "points_before=6")
}

func TestRunOverlaySources(t *testing.T) {
	testCases := []struct {
		desc    string
		overlay config.OverlayConfig
		points  int
	}{
		{desc: "none", overlay: config.OverlayConfig{}},
		{desc: "inline", overlay: config.OverlayConfig{Name: "o", Coordinates: [][]float64{{-74.1, 40.7}, {-74.05, 40.7}, {-74.05, 40.75}}}, points: 3},
		{desc: "wkt", overlay: config.OverlayConfig{Name: "o", WKT: "POLYGON((-74.1 40.7, -74.05 40.7, -74.05 40.75, -74.1 40.7))"}, points: 4},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			cfg := testConfig()
			cfg.Overlay = tc.overlay
			res, err := Run(cfg, nil)
			require.NoError(t, err)
			if tc.points == 0 {
				require.Nil(t, res.Overlay)
				require.Empty(t, res.Module().Overlay)
				return
			}
			require.Len(t, res.Overlay.Raw, tc.points)
		})
	}
}

func TestRunErrors(t *testing.T) {
	cfg := testConfig()
	cfg.Input = "testdata/missing.geojson"
	_, err := Run(cfg, nil)
	require.Error(t, err)

	cfg = testConfig()
	cfg.FeatureIndex = 5
	_, err = Run(cfg, nil)
	require.True(t, errors.Is(err, geom.ErrMalformedInput))

	cfg = testConfig()
	cfg.Overlay.WKT = "POINT(1 2)"
	_, err = Run(cfg, nil)
	require.True(t, errors.Is(err, geom.ErrMalformedInput))

	cfg = testConfig()
	cfg.LandmarksCSV = "testdata/missing.csv"
	_, err = Run(cfg, nil)
	require.Error(t, err)
}

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "landmarks.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunDuplicateLandmarks(t *testing.T) {
	testCases := []struct {
		desc   string
		inline []config.LandmarkConfig
		csv    string
	}{
		{
			desc:   "inline and csv share a name",
			inline: []config.LandmarkConfig{{Name: "Newark", Lon: -74.1, Lat: 40.75}},
			csv:    "testdata/landmarks.csv",
		},
		{
			desc: "repeated csv row",
			csv:  "name,lat,lon\nPark,40.75,-74.1\nPark,40.76,-74.09\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			for _, format := range []string{"ts", "go", "json"} {
				cfg := testConfig()
				cfg.Format = format
				cfg.Landmarks = tc.inline
				cfg.LandmarksCSV = tc.csv
				if !strings.HasPrefix(tc.csv, "testdata/") {
					cfg.LandmarksCSV = writeCSV(t, tc.csv)
				}
				b, _, err := Generate(cfg, nil)
				require.Error(t, err, format)
				require.True(t, errors.Is(err, geom.ErrMalformedInput), "got %v", err)
				require.Nil(t, b)
			}
		})
	}
}

func TestRunNonFiniteCoordinates(t *testing.T) {
	testCases := []struct {
		desc   string
		mutate func(t *testing.T, cfg *config.Config)
	}{
		{
			desc: "NaN landmark latitude in csv",
			mutate: func(t *testing.T, cfg *config.Config) {
				cfg.LandmarksCSV = writeCSV(t, "name,lat,lon\nBad,NaN,-74.1\n")
			},
		},
		{
			desc: "infinite landmark longitude in csv",
			mutate: func(t *testing.T, cfg *config.Config) {
				cfg.LandmarksCSV = writeCSV(t, "name,lat,lon\nBad,40.7,-Inf\n")
			},
		},
		{
			desc: "NaN in wkt overlay",
			mutate: func(t *testing.T, cfg *config.Config) {
				cfg.Overlay.WKT = "LINESTRING (-74.1 40.7, NaN 40.75)"
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			for _, format := range []string{"ts", "go", "json"} {
				cfg := testConfig()
				cfg.Format = format
				tc.mutate(t, cfg)
				b, _, err := Generate(cfg, nil)
				require.True(t, errors.Is(err, geom.ErrDegenerateGeometry), "%s: got %v", format, err)
				require.Nil(t, b)
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	for _, format := range []string{"ts", "go", "json"} {
		t.Run(format, func(t *testing.T) {
			cfg := testConfig()
			cfg.Format = format
			a, _, err := Generate(cfg, nil)
			require.NoError(t, err)
			b, _, err := Generate(cfg, nil)
			require.NoError(t, err)
			require.Equal(t, a, b)
		})
	}

	cfg := testConfig()
	cfg.Format = "xml"
	_, _, err := Generate(cfg, nil)
	require.Error(t, err)
}

func TestWriteOutput(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, WriteOutput("", []byte("to stdout"), &stdout))
	require.Equal(t, "to stdout", stdout.String())

	dir := t.TempDir()
	path := filepath.Join(dir, "county.ts")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	require.NoError(t, WriteOutput(path, []byte("new"), &stdout))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file left behind")

	require.Error(t, WriteOutput(filepath.Join(dir, "missing", "county.ts"), []byte("x"), &stdout))
}

func TestCheck(t *testing.T) {
	cfg := testConfig()
	b, _, err := Generate(cfg, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "county.ts")
	require.NoError(t, WriteOutput(path, b, nil))
	require.NoError(t, Check(cfg, path, nil))

	cfg.Simplify.OuterEpsilon = 50
	err = Check(cfg, path, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrStale))
	require.True(t, strings.Contains(err.Error(), "line"), err.Error())

	require.Error(t, Check(testConfig(), filepath.Join(t.TempDir(), "nope.ts"), nil))
}

func TestFirstDiffLine(t *testing.T) {
	testCases := []struct {
		desc     string
		a, b     string
		expected int
	}{
		{desc: "first line", a: "x\ny", b: "z\ny", expected: 1},
		{desc: "third line", a: "a\nb\nc", b: "a\nb\nd", expected: 3},
		{desc: "a shorter", a: "a\nb", b: "a\nb\nc", expected: 3},
		{desc: "b shorter", a: "a\nb\nc", b: "a", expected: 2},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			require.Equal(t, tc.expected, firstDiffLine([]byte(tc.a), []byte(tc.b)))
		})
	}
}
