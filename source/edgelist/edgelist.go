// Package edgelist reads graphs in the plain-text edge-list format:
//
//	<n>
//	<u> <v> <cost> <time>
//	...
//
// The first integer declares n vertices, registered as ids 0..n-1 so that
// isolated vertices exist. Every following group of four integers is one
// undirected edge. Tokens are separated by any whitespace, so groups may span
// lines; everything after a '#' on a line is a comment.
package edgelist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/cspath/core"
	"github.com/katalvlaran/cspath/source"
)

// ErrSyntax indicates malformed input. The wrapping error names the line.
var ErrSyntax = errors.New("edgelist: syntax error")

const maxLine = 1 << 20 // bytes in one input line

// MaxVertices bounds the header's vertex count. Every declared id is
// registered up front, so the header alone decides the allocation.
const MaxVertices = 1 << 22

// Loader reads an edge-list file from Path.
type Loader struct {
	Path   string
	Logger *slog.Logger // optional
}

// Load implements source.Loader.
func (l Loader) Load(ctx context.Context) (*source.Dataset, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("edgelist: %w", err)
	}
	defer f.Close()

	d, err := Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Path, err)
	}
	if l.Logger != nil {
		l.Logger.Debug("edge list loaded",
			slog.String("path", l.Path),
			slog.Int("declared", len(d.Vertices)),
			slog.Int("edges", len(d.Edges)))
	}

	return d, nil
}

// token is one integer with the line it came from.
type token struct {
	val  int64
	line int
}

// Parse reads an edge list from r.
//
// Errors:
//   - ErrSyntax for a missing or negative header, a non-integer token, or a
//     trailing incomplete edge.
//   - core.ErrInvalidWeight for a negative cost or time.
func Parse(ctx context.Context, r io.Reader) (*source.Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var (
		d       = &source.Dataset{}
		header  = false
		pending = make([]token, 0, 4)
		line    = 0
	)
	for sc.Scan() {
		line++
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("edgelist: %w", err)
			}
		}

		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, field := range strings.Fields(text) {
			n, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q is not an integer", ErrSyntax, line, field)
			}
			if !header {
				if n < 0 || n > MaxVertices {
					return nil, fmt.Errorf("%w: line %d: vertex count %d out of range [0,%d]", ErrSyntax, line, n, MaxVertices)
				}
				d.Vertices = declared(n)
				header = true
				continue
			}
			pending = append(pending, token{val: n, line: line})
			if len(pending) == 4 {
				if err := addEdge(d, pending); err != nil {
					return nil, err
				}
				pending = pending[:0]
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("edgelist: line %d: %w", line+1, err)
	}

	if !header {
		return nil, fmt.Errorf("%w: missing vertex count", ErrSyntax)
	}
	if len(pending) > 0 {
		return nil, fmt.Errorf("%w: line %d: incomplete edge (%d of 4 values)", ErrSyntax, pending[0].line, len(pending))
	}

	return d, nil
}

func declared(n int64) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i)
	}
	return out
}

func addEdge(d *source.Dataset, q []token) error {
	w := core.Weight{Cost: q[2].val, Time: q[3].val}
	if !w.Valid() {
		return fmt.Errorf("line %d: %w: edge %d—%d weight=%s", q[0].line, core.ErrInvalidWeight, q[0].val, q[1].val, w)
	}
	d.AddEdge(q[0].val, q[1].val, w.Cost, w.Time)

	return nil
}

// Write encodes g in the edge-list format: the vertex count, then one edge per
// line in canonical order. Vertex ids are written as-is, so the output reloads
// to the same graph only when g's ids are 0..n-1.
func Write(w io.Writer, g *core.Graph[int64]) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", g.VertexCount())
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "%d %d %d %d\n", e.From, e.To, e.Weight.Cost, e.Weight.Time)
	}

	return bw.Flush()
}
