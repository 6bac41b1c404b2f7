package osmroads_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cspath/csp"
	"github.com/katalvlaran/cspath/source/osmroads"
)

const town = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
 <node id="1" lat="0" lon="0"/>
 <node id="2" lat="0" lon="0.001"/>
 <node id="3" lat="0" lon="0.002"/>
 <node id="4" lat="0.001" lon="0.001"/>
 <way id="10">
  <nd ref="1"/><nd ref="2"/><nd ref="3"/>
  <tag k="highway" v="residential"/>
 </way>
 <way id="11">
  <nd ref="2"/><nd ref="4"/><nd ref="99"/>
  <tag k="highway" v="primary"/>
  <tag k="maxspeed" v="30 mph"/>
 </way>
 <way id="12">
  <nd ref="1"/><nd ref="4"/>
  <tag k="building" v="yes"/>
 </way>
 <way id="13">
  <nd ref="3"/><nd ref="4"/>
  <tag k="highway" v="footway"/>
 </way>
</osm>
`

func metres(a, b orb.Point) float64 { return geo.Distance(a, b) }

func TestParseXML(t *testing.T) {
	d, err := osmroads.ParseXML(context.Background(), strings.NewReader(town), osmroads.Options{})
	require.NoError(t, err)
	require.Len(t, d.Edges, 3, "1—2, 2—3 and 2—4; building and footway are skipped")

	g, err := d.Graph()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, g.Vertices())
	assert.False(t, g.HasEdge(1, 4))
	assert.False(t, g.HasEdge(3, 4))

	east := metres(orb.Point{0, 0}, orb.Point{0.001, 0})
	w, ok := g.WeightOf(1, 2)
	require.True(t, ok)
	assert.Equal(t, int64(math.Round(east)), w.Cost)
	assert.Equal(t, int64(math.Round(east/(30/3.6))), w.Time, "residential default 30 km/h")

	north := metres(orb.Point{0.001, 0}, orb.Point{0.001, 0.001})
	w, ok = g.WeightOf(2, 4)
	require.True(t, ok)
	assert.Equal(t, int64(math.Round(north)), w.Cost)
	assert.Equal(t, int64(math.Round(north/(30*1.609344/3.6))), w.Time, "maxspeed in mph")

	res, err := csp.FindConstrainedPath(g, 1, 3, 1000)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, res.Path)
}

func TestParseXML_CustomSpeeds(t *testing.T) {
	d, err := osmroads.ParseXML(context.Background(), strings.NewReader(town),
		osmroads.Options{Speeds: map[string]float64{"footway": 5}})
	require.NoError(t, err)
	require.Len(t, d.Edges, 1)
	assert.Equal(t, int64(3), d.Edges[0].From)
	assert.Equal(t, int64(4), d.Edges[0].To)
}

func TestParseXML_NoRoads(t *testing.T) {
	_, err := osmroads.ParseXML(context.Background(),
		strings.NewReader(`<osm version="0.6"><node id="1" lat="0" lon="0"/></osm>`), osmroads.Options{})
	assert.ErrorIs(t, err, osmroads.ErrNoRoads)
}

func TestLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "town.osm")
	require.NoError(t, os.WriteFile(path, []byte(town), 0o600))

	d, err := osmroads.Loader{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, d.Edges, 3)

	_, err = osmroads.Loader{Path: filepath.Join(t.TempDir(), "none.osm.pbf")}.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParsePBF(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "town.osm.pbf"))
	require.NoError(t, err)
	defer f.Close()

	d, err := osmroads.ParsePBF(context.Background(), f, osmroads.Options{Procs: 1})
	require.NoError(t, err)
	require.Len(t, d.Edges, 3, "same network as the XML town")

	g, err := d.Graph()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, g.Vertices())
	assert.False(t, g.HasEdge(1, 4))
	assert.False(t, g.HasEdge(3, 4))

	east := metres(orb.Point{0, 0}, orb.Point{0.001, 0})
	w, ok := g.WeightOf(1, 2)
	require.True(t, ok)
	assert.InDelta(t, east, float64(w.Cost), 1)

	north := metres(orb.Point{0.001, 0}, orb.Point{0.001, 0.001})
	w, ok = g.WeightOf(2, 4)
	require.True(t, ok)
	assert.InDelta(t, north/(30*1.609344/3.6), float64(w.Time), 1)
}

func TestLoader_PBF(t *testing.T) {
	d, err := osmroads.Loader{Path: filepath.Join("testdata", "town.osm.pbf")}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, d.Edges, 3)

	_, err = osmroads.Loader{Path: filepath.Join("testdata", "town.osm.pbf"), Format: osmroads.XML}.Load(context.Background())
	assert.Error(t, err, "binary input is not XML")
}

func TestParseXML_MalformedMaxSpeed(t *testing.T) {
	for _, speed := range []string{"nan", "inf", "-inf", "1e-300", "0", "99999"} {
		t.Run(speed, func(t *testing.T) {
			doc := strings.Replace(town, `v="30 mph"`, `v="`+speed+`"`, 1)
			d, err := osmroads.ParseXML(context.Background(), strings.NewReader(doc), osmroads.Options{})
			require.NoError(t, err)

			g, err := d.Graph()
			require.NoError(t, err)
			w, ok := g.WeightOf(2, 4)
			require.True(t, ok)
			north := metres(orb.Point{0.001, 0}, orb.Point{0.001, 0.001})
			assert.Equal(t, int64(math.Round(north/(70/3.6))), w.Time, "primary class default 70 km/h")
		})
	}
}

func TestParseXML_UnusableClassSpeed(t *testing.T) {
	d, err := osmroads.ParseXML(context.Background(), strings.NewReader(town),
		osmroads.Options{Speeds: map[string]float64{"residential": 0, "primary": math.Inf(1)}})
	require.NoError(t, err)
	require.Len(t, d.Edges, 1, "only the primary way with its own maxspeed survives")
	assert.Equal(t, int64(2), d.Edges[0].From)
	assert.Equal(t, int64(4), d.Edges[0].To)
	assert.Positive(t, d.Edges[0].Weight.Time)
}
