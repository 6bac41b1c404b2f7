package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/katalvlaran/cspath/csp"
	"github.com/katalvlaran/cspath/dijkstra"
)

// maxBody bounds request bodies.
const maxBody = 1 << 16

// PathRequest is the body of POST /api/v1/paths and /api/v1/paths/frontier.
type PathRequest struct {
	Source      int64  `json:"source"`
	Destination int64  `json:"destination"`
	Budget      int64  `json:"budget"`
	Objective   string `json:"objective,omitempty"`    // "cost" or "time"; empty keeps the server default
	LowerBounds *bool  `json:"lower_bounds,omitempty"` // nil keeps the server default
}

// RouteJSON is one path with its signature.
type RouteJSON struct {
	Cost int64   `json:"cost"`
	Time int64   `json:"time"`
	Path []int64 `json:"path"`
}

// StatsJSON mirrors csp.Stats.
type StatsJSON struct {
	Pushed       int `json:"pushed"`
	Popped       int `json:"popped"`
	Stale        int `json:"stale"`
	Pruned       int `json:"pruned"`
	Finalized    int `json:"finalized"`
	PeakFrontier int `json:"peak_frontier"`
}

// PathResponse answers POST /api/v1/paths. Route is nil when infeasible.
type PathResponse struct {
	Outcome string     `json:"outcome"`
	Route   *RouteJSON `json:"route,omitempty"`
	Stats   StatsJSON  `json:"stats"`
}

// FrontierResponse answers POST /api/v1/paths/frontier.
type FrontierResponse struct {
	Routes []RouteJSON `json:"routes"`
	Stats  StatsJSON   `json:"stats"`
}

// CheapestResponse answers GET /api/v1/paths/cheapest. Distance is zero when
// the destination is unreachable.
type CheapestResponse struct {
	Metric    string     `json:"metric"`
	Reachable bool       `json:"reachable"`
	Distance  int64      `json:"distance"`
	Route     *RouteJSON `json:"route,omitempty"`
}

// GraphResponse answers GET /api/v1/graph.
type GraphResponse struct {
	Vertices int `json:"vertices"`
	Edges    int `json:"edges"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

func statsJSON(s csp.Stats) StatsJSON {
	return StatsJSON{
		Pushed:       s.Pushed,
		Popped:       s.Popped,
		Stale:        s.Stale,
		Pruned:       s.Pruned,
		Finalized:    s.Finalized,
		PeakFrontier: s.PeakFrontier,
	}
}

func routeJSON(r csp.Route[int64]) RouteJSON {
	return RouteJSON{Cost: r.Cost, Time: r.Time, Path: r.Path}
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	req, opts, ok := s.decodePathRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := s.searchContext(r.Context())
	defer cancel()

	start := time.Now()
	res, err := csp.FindConstrainedPathContext(ctx, s.graph, req.Source, req.Destination, req.Budget, opts...)
	s.metrics.duration.WithLabelValues("path").Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.searches.WithLabelValues("path", "error").Inc()
		s.fail(w, r, err)
		return
	}
	s.metrics.searches.WithLabelValues("path", res.Outcome.String()).Inc()
	s.metrics.finalized.Observe(float64(res.Stats.Finalized))

	out := PathResponse{Outcome: res.Outcome.String(), Stats: statsJSON(res.Stats)}
	if res.IsFeasible() {
		rj := routeJSON(res.Route)
		out.Route = &rj
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFrontier(w http.ResponseWriter, r *http.Request) {
	req, opts, ok := s.decodePathRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := s.searchContext(r.Context())
	defer cancel()

	start := time.Now()
	f, err := csp.ParetoFrontier(ctx, s.graph, req.Source, req.Destination, req.Budget, opts...)
	s.metrics.duration.WithLabelValues("frontier").Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.searches.WithLabelValues("frontier", "error").Inc()
		s.fail(w, r, err)
		return
	}
	outcome := csp.Infeasible
	if len(f.Routes) > 0 {
		outcome = csp.Feasible
	}
	s.metrics.searches.WithLabelValues("frontier", outcome.String()).Inc()
	s.metrics.finalized.Observe(float64(f.Stats.Finalized))

	out := FrontierResponse{Routes: make([]RouteJSON, 0, len(f.Routes)), Stats: statsJSON(f.Stats)}
	for _, rt := range f.Routes {
		out.Routes = append(out.Routes, routeJSON(rt))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCheapest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	src, err1 := strconv.ParseInt(q.Get("source"), 10, 64)
	dst, err2 := strconv.ParseInt(q.Get("destination"), 10, 64)
	if err := errors.Join(err1, err2); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("source and destination must be integers: %w", err))
		return
	}
	metric, err := parseMetric(q.Get("metric"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	view := s.graph.View()
	sh, ok := view.Handle(src)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: source %d", dijkstra.ErrVertexNotFound, src))
		return
	}
	dh, ok := view.Handle(dst)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: destination %d", dijkstra.ErrVertexNotFound, dst))
		return
	}

	ctx, cancel := s.searchContext(r.Context())
	defer cancel()
	if err := ctx.Err(); err != nil {
		s.metrics.searches.WithLabelValues("cheapest", "error").Inc()
		s.fail(w, r, fmt.Errorf("cheapest path not started: %w", err))
		return
	}

	start := time.Now()
	tree, err := dijkstra.FromHandle(view, sh, dijkstra.WithMetric(metric))
	s.metrics.duration.WithLabelValues("cheapest").Observe(time.Since(start).Seconds())
	if err == nil {
		// dijkstra runs to completion; a result past the deadline is discarded.
		err = ctx.Err()
	}
	if err != nil {
		s.metrics.searches.WithLabelValues("cheapest", "error").Inc()
		s.fail(w, r, err)
		return
	}

	out := CheapestResponse{Metric: metric.String()}
	if tree.Reachable(dh) {
		out.Reachable = true
		out.Distance = tree.Dist[dh]
		path := view.IDs(tree.PathTo(dh))
		var sig csp.Signature
		for i := 1; i < len(path); i++ {
			wt, _ := s.graph.WeightOf(path[i-1], path[i])
			sig = sig.Extend(wt)
		}
		out.Route = &RouteJSON{Cost: sig.Cost, Time: sig.Time, Path: path}
		s.metrics.searches.WithLabelValues("cheapest", csp.Feasible.String()).Inc()
	} else {
		s.metrics.searches.WithLabelValues("cheapest", csp.Infeasible.String()).Inc()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGraph(w http.ResponseWriter, _ *http.Request) {
	out := GraphResponse{Vertices: s.graph.VertexCount(), Edges: s.graph.EdgeCount()}
	s.metrics.vertices.Set(float64(out.Vertices))
	s.metrics.edges.Set(float64(out.Edges))
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodePathRequest parses the body and merges the request's options over the
// server defaults. On failure it writes the response and returns ok == false.
func (s *Server) decodePathRequest(w http.ResponseWriter, r *http.Request) (PathRequest, []csp.Option, bool) {
	var req PathRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return req, nil, false
	}

	opts := append([]csp.Option(nil), s.defaults...)
	if req.Objective != "" {
		obj, err := csp.ParseObjective(req.Objective)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return req, nil, false
		}
		opts = append(opts, csp.WithObjective(obj))
	}
	if req.LowerBounds != nil {
		opts = append(opts, csp.WithLowerBounds(*req.LowerBounds))
	}

	return req, opts, true
}

func (s *Server) searchContext(parent context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, s.timeout)
}

// fail maps search errors to status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, csp.ErrVertexNotFound), errors.Is(err, dijkstra.ErrVertexNotFound):
		code = http.StatusNotFound
	case errors.Is(err, csp.ErrNegativeBudget):
		code = http.StatusBadRequest
	case errors.Is(err, csp.ErrLabelLimit):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		code = http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		code = http.StatusServiceUnavailable
	}
	if code >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "search failed", slog.String("error", err.Error()))
	}
	writeError(w, code, err)
}

func parseMetric(s string) (dijkstra.Metric, error) {
	switch strings.ToLower(s) {
	case "", "cost":
		return dijkstra.Cost, nil
	case "time":
		return dijkstra.Time, nil
	}
	return dijkstra.Cost, fmt.Errorf("unknown metric %q (want cost or time)", s)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, ErrorResponse{Error: err.Error()})
}
