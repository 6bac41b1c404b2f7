// Package osmroads loads OpenStreetMap road networks as bicriteria graphs.
//
// Every way whose highway class appears in the speed table becomes a chain of
// undirected edges between consecutive nodes. Vertex ids are OSM node ids.
// Each edge gets:
//
//	cost = round(haversine length in metres)
//	time = round(length / speed in seconds)
//
// where speed comes from a parsable maxspeed tag, else from the class default.
// Direction tags (oneway) are ignored; the graph is undirected.
//
// Both the .osm.pbf and the .osm XML encodings are supported. Nodes must
// precede the ways that reference them, which is the canonical file order;
// references to unseen nodes are dropped and counted.
package osmroads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"github.com/qedus/osmpbf"

	"github.com/katalvlaran/cspath/source"
)

// ErrNoRoads indicates that the input contained no usable road segment.
var ErrNoRoads = errors.New("osmroads: no road segments found")

// Format selects the input encoding.
type Format int

const (
	// Auto picks PBF for names ending in ".pbf", XML otherwise.
	Auto Format = iota
	PBF
	XML
)

// ctxCheckInterval is the number of decoded elements between context checks.
const ctxCheckInterval = 1 << 14

// Options tunes how ways become edges.
type Options struct {
	// Speeds maps highway class to km/h; nil means DefaultSpeeds.
	Speeds map[string]float64
	// Procs is the number of PBF decoding goroutines; <= 0 means GOMAXPROCS.
	Procs int
}

// Loader reads a road network from Path.
type Loader struct {
	Path    string
	Format  Format
	Options Options
	Logger  *slog.Logger // optional
}

// Load implements source.Loader.
func (l Loader) Load(ctx context.Context) (*source.Dataset, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("osmroads: %w", err)
	}
	defer f.Close()

	format := l.Format
	if format == Auto {
		format = XML
		if strings.HasSuffix(strings.ToLower(l.Path), ".pbf") {
			format = PBF
		}
	}

	var a *assembler
	if format == PBF {
		a, err = parsePBF(ctx, f, l.Options)
	} else {
		a, err = parseXML(ctx, f, l.Options)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Path, err)
	}
	if l.Logger != nil {
		l.Logger.Debug("road network loaded",
			slog.String("path", l.Path),
			slog.Int("nodes", len(a.coords)),
			slog.Int("ways", a.ways),
			slog.Int("edges", len(a.d.Edges)),
			slog.Int("missing_refs", a.missing))
	}

	return a.dataset()
}

// ParseXML reads an .osm XML document from r.
func ParseXML(ctx context.Context, r io.Reader, opts Options) (*source.Dataset, error) {
	a, err := parseXML(ctx, r, opts)
	if err != nil {
		return nil, err
	}
	return a.dataset()
}

// ParsePBF reads an .osm.pbf stream from r.
func ParsePBF(ctx context.Context, r io.Reader, opts Options) (*source.Dataset, error) {
	a, err := parsePBF(ctx, r, opts)
	if err != nil {
		return nil, err
	}
	return a.dataset()
}

func parseXML(ctx context.Context, r io.Reader, opts Options) (*assembler, error) {
	a := newAssembler(opts)
	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			a.node(int64(o.ID), o.Lat, o.Lon)
		case *osm.Way:
			refs := make([]int64, len(o.Nodes))
			for i, wn := range o.Nodes {
				refs[i] = int64(wn.ID)
			}
			a.way(refs, o.Tags)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("osmroads: xml: %w", err)
	}

	return a, nil
}

func parsePBF(ctx context.Context, r io.Reader, opts Options) (*assembler, error) {
	a := newAssembler(opts)
	decoder := osmpbf.NewDecoder(r)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	procs := opts.Procs
	if procs <= 0 {
		procs = runtime.GOMAXPROCS(-1)
	}
	if err := decoder.Start(procs); err != nil {
		return nil, fmt.Errorf("osmroads: pbf: %w", err)
	}

	for n := 1; ; n++ {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				// osmpbf v1.2.0 cannot stop its decoder; its workers stay
				// blocked on their output channels until r is closed.
				return nil, fmt.Errorf("osmroads: %w", err)
			}
		}

		v, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("osmroads: pbf: %w", err)
		}

		switch v := v.(type) {
		case *osmpbf.Node:
			a.node(v.ID, v.Lat, v.Lon)
		case *osmpbf.Way:
			a.way(v.NodeIDs, tagsFromMap(v.Tags))
		}
	}

	return a, nil
}

func tagsFromMap(m map[string]string) osm.Tags {
	tags := make(osm.Tags, 0, len(m))
	for k, v := range m {
		tags = append(tags, osm.Tag{Key: k, Value: v})
	}
	return tags
}

// assembler turns a node-then-way stream into a Dataset.
type assembler struct {
	speeds  map[string]float64
	coords  map[int64]orb.Point
	d       *source.Dataset
	ways    int // accepted road ways
	missing int // way references to unseen nodes
}

func newAssembler(opts Options) *assembler {
	speeds := opts.Speeds
	if speeds == nil {
		speeds = DefaultSpeeds
	}

	return &assembler{
		speeds: speeds,
		coords: make(map[int64]orb.Point),
		d:      &source.Dataset{},
	}
}

func (a *assembler) node(id int64, lat, lon float64) {
	a.coords[id] = orb.Point{lon, lat}
}

// way emits one edge per pair of consecutive resolved nodes.
func (a *assembler) way(refs []int64, tags osm.Tags) {
	kmh, ok := speedOf(tags, a.speeds)
	if !ok || !usableSpeed(kmh) {
		return
	}
	a.ways++
	mps := kmh / 3.6

	for i := 1; i < len(refs); i++ {
		u, v := refs[i-1], refs[i]
		pu, okU := a.coords[u]
		pv, okV := a.coords[v]
		if !okU || !okV {
			a.missing++
			continue
		}
		if u == v {
			continue
		}
		metres := geo.Distance(pu, pv)
		a.d.AddEdge(u, v, int64(math.Round(metres)), int64(math.Round(metres/mps)))
	}
}

func (a *assembler) dataset() (*source.Dataset, error) {
	if len(a.d.Edges) == 0 {
		return nil, ErrNoRoads
	}
	return a.d, nil
}
