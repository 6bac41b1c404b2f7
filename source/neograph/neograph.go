// Package neograph loads bicriteria graphs from a Neo4j database.
//
// The Cypher query must return one row per undirected edge with the columns
// u, v, cost and time (integers, or floats with no fractional part). Vertex
// ids are the integer values of u and v. DefaultQuery reads every ROAD
// relationship between nodes carrying an integer id property.
package neograph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/katalvlaran/cspath/source"
)

// DefaultQuery returns each ROAD relationship once per direction; repeated
// pairs collapse in the graph.
const DefaultQuery = `MATCH (a)-[r:ROAD]-(b) RETURN a.id AS u, b.id AS v, r.cost AS cost, r.time AS time`

// Column names expected in every row.
const (
	ColU    = "u"
	ColV    = "v"
	ColCost = "cost"
	ColTime = "time"
)

var (
	// ErrMissingColumn indicates a row without one of u, v, cost or time.
	ErrMissingColumn = errors.New("neograph: missing column")

	// ErrBadValue indicates a column that is not an integral number.
	ErrBadValue = errors.New("neograph: value is not an integer")
)

// Loader queries a Neo4j database for edges.
type Loader struct {
	URI      string
	User     string
	Password string
	Database string         // empty selects the server default
	Query    string         // empty selects DefaultQuery
	Params   map[string]any // query parameters
	Logger   *slog.Logger   // optional
}

// Load implements source.Loader. It opens a driver, verifies connectivity,
// runs the query in a read transaction and closes the driver.
func (l Loader) Load(ctx context.Context) (*source.Dataset, error) {
	driver, err := neo4j.NewDriverWithContext(l.URI, neo4j.BasicAuth(l.User, l.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("neograph: could not create driver: %w", err)
	}
	defer driver.Close(ctx)

	if err = driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("neograph: failed to verify connection: %w", err)
	}

	session := driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: l.Database,
	})
	defer session.Close(ctx)

	query := l.Query
	if query == "" {
		query = DefaultQuery
	}

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, l.Params)
		if err != nil {
			return nil, fmt.Errorf("neograph: running query: %w", err)
		}

		d := &source.Dataset{}
		for row := 1; result.Next(ctx); row++ {
			if err := addRecord(d, result.Record()); err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
		}
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("neograph: reading rows: %w", err)
		}

		return d, nil
	})
	if err != nil {
		return nil, err
	}

	d := out.(*source.Dataset)
	if l.Logger != nil {
		l.Logger.Debug("neo4j graph loaded",
			slog.String("uri", l.URI),
			slog.String("database", l.Database),
			slog.Int("edges", len(d.Edges)))
	}

	return d, nil
}

// addRecord appends the edge described by rec to d.
func addRecord(d *source.Dataset, rec *neo4j.Record) error {
	var vals [4]int64
	for i, col := range [4]string{ColU, ColV, ColCost, ColTime} {
		raw, ok := rec.Get(col)
		if !ok {
			return fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
		n, err := toInt64(raw)
		if err != nil {
			return fmt.Errorf("column %q: %w", col, err)
		}
		vals[i] = n
	}
	d.AddEdge(vals[0], vals[1], vals[2], vals[3])

	return nil
}

// toInt64 accepts the numeric types the driver produces for integers and
// whole floats.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: %v", ErrBadValue, n)
		}
		return int64(n), nil
	}

	return 0, fmt.Errorf("%w: %v (%T)", ErrBadValue, v, v)
}
