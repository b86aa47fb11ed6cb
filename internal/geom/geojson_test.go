package geom

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestLoadBoundary(t *testing.T) {
	b, err := LoadBoundary("testdata/county.geojson", Selector{})
	require.NoError(t, err)
	require.Len(t, b.Outer, 6)
	require.Equal(t, GeoPoint{Lon: -74.166, Lat: 40.823}, b.Outer[0])
	require.Len(t, b.Holes, 1)
	require.Len(t, b.Holes[0], 5)
	require.Equal(t, 1, b.IgnoredFeatures)
	require.Equal(t, 1, b.IgnoredPolygons)

	b, err = LoadBoundary("testdata/county.geojson", Selector{Feature: 0, Polygon: 1})
	require.NoError(t, err)
	require.Len(t, b.Outer, 4)
	require.Empty(t, b.Holes)

	b, err = LoadBoundary("testdata/county.geojson", Selector{Feature: 1})
	require.NoError(t, err)
	require.Equal(t, GeoPoint{Lon: -74.4, Lat: 40.9}, b.Outer[0])
	require.Equal(t, 0, b.IgnoredPolygons)

	_, err = LoadBoundary("testdata/missing.geojson", Selector{})
	require.Error(t, err)
}

func TestDecodeBoundary(t *testing.T) {
	testCases := []struct {
		desc      string
		doc       string
		sel       Selector
		outer     int
		holes     int
		expectErr error
	}{
		{
			desc:  "bare polygon",
			doc:   `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`,
			outer: 4,
		},
		{
			desc:  "feature with polygon and hole",
			doc:   `{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,4],[0,0]],[[1,1],[2,1],[2,2],[1,1]]]}}`,
			outer: 5,
			holes: 1,
		},
		{
			desc:  "bare multipolygon second polygon",
			doc:   `{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]],[[[5,5],[6,5],[6,6],[5,6],[5,5]]]]}`,
			sel:   Selector{Polygon: 1},
			outer: 5,
		},
		{
			desc:      "not json",
			doc:       `not json`,
			expectErr: ErrMalformedInput,
		},
		{
			desc:      "missing type",
			doc:       `{"coordinates":[]}`,
			expectErr: ErrMalformedInput,
		},
		{
			desc:      "empty collection",
			doc:       `{"type":"FeatureCollection","features":[]}`,
			expectErr: ErrMalformedInput,
		},
		{
			desc:      "feature out of range",
			doc:       `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`,
			sel:       Selector{Feature: 1},
			expectErr: ErrMalformedInput,
		},
		{
			desc:      "polygon out of range",
			doc:       `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`,
			sel:       Selector{Polygon: 1},
			expectErr: ErrMalformedInput,
		},
		{
			desc:      "line string geometry",
			doc:       `{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}`,
			expectErr: ErrMalformedInput,
		},
		{
			desc:      "polygon without rings",
			doc:       `{"type":"Polygon","coordinates":[]}`,
			expectErr: ErrMalformedInput,
		},
		{
			desc:      "negative selector",
			doc:       `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`,
			sel:       Selector{Feature: -1},
			expectErr: ErrMalformedInput,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			b, err := DecodeBoundary([]byte(tc.doc), tc.sel)
			if tc.expectErr != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Len(t, b.Outer, tc.outer)
			require.Len(t, b.Holes, tc.holes)
		})
	}
}

func TestExtractRings(t *testing.T) {
	_, err := ExtractRings(orb.Polygon{})
	require.True(t, errors.Is(err, ErrMalformedInput))

	_, err = ExtractRings(orb.Polygon{orb.Ring{}})
	require.True(t, errors.Is(err, ErrDegenerateGeometry))

	p, err := ExtractRings(orb.Polygon{
		{{0, 0}, {3, 0}, {3, 3}, {0, 0}},
		{{1, 1}, {2, 1}, {1, 1}},
		{{2, 2}, {2.5, 2}, {2, 2}},
	})
	require.NoError(t, err)
	require.Equal(t, Ring{{Lon: 0, Lat: 0}, {Lon: 3, Lat: 0}, {Lon: 3, Lat: 3}, {Lon: 0, Lat: 0}}, p.Outer)
	require.Len(t, p.Holes, 2)
	require.Equal(t, GeoPoint{Lon: 2.5, Lat: 2}, p.Holes[1][1])
}
