// Command cspath loads a graph and prints the best path between two vertices
// whose total cost stays within a budget.
//
// Usage:
//
//	cspath [flags] <file> <source> <destination> <budget>
//
// With -format edgelist (the default) the file starts with the vertex count
// followed by one "u v cost time" quadruple per edge. With -format osm the file
// is an OpenStreetMap extract (.osm or .pbf) and the vertices are node ids.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/katalvlaran/cspath/core"
	"github.com/katalvlaran/cspath/csp"
	"github.com/katalvlaran/cspath/logging"
	"github.com/katalvlaran/cspath/source"
	"github.com/katalvlaran/cspath/source/edgelist"
	"github.com/katalvlaran/cspath/source/osmroads"
)

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitNotFound = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cspath", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "edgelist", "input format: edgelist or osm")
	objective := fs.String("objective", "cost", "what to minimize within the budget: cost or time")
	frontier := fs.Bool("frontier", false, "print every non-dominated (cost, time) pair within the budget")
	showPath := fs.Bool("path", false, "print the vertex sequence of each route")
	noBounds := fs.Bool("no-bounds", false, "disable lower-bound pruning")
	maxLabels := fs.Int("max-labels", 0, "abort after finalizing this many labels (0 = unlimited)")
	timeout := fs.Duration("timeout", 0, "abort the search after this long (0 = no limit)")
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: cspath [flags] <file> <source> <destination> <budget>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() != 4 {
		fs.Usage()
		return exitUsage
	}

	logger, err := logging.New(*logLevel, logging.FormatText, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "cspath:", err)
		return exitUsage
	}
	obj, err := csp.ParseObjective(*objective)
	if err != nil {
		fmt.Fprintln(stderr, "cspath:", err)
		return exitUsage
	}

	ints, err := parseInts(fs.Arg(1), fs.Arg(2), fs.Arg(3))
	if err != nil {
		fmt.Fprintln(stderr, "cspath:", err)
		return exitUsage
	}
	src, dst, budget := ints[0], ints[1], ints[2]

	var loader source.Loader
	switch strings.ToLower(*format) {
	case "edgelist":
		loader = edgelist.Loader{Path: fs.Arg(0), Logger: logger}
	case "osm":
		loader = osmroads.Loader{Path: fs.Arg(0), Logger: logger}
	default:
		fmt.Fprintf(stderr, "cspath: unknown format %q (want edgelist or osm)\n", *format)
		return exitUsage
	}

	start := time.Now()
	g, err := source.Build(ctx, loader)
	if err != nil {
		fmt.Fprintln(stderr, "cspath:", err)
		return exitFailure
	}
	logger.Info("graph loaded",
		"vertices", g.VertexCount(), "edges", g.EdgeCount(), "elapsed", time.Since(start))

	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}
	opts := []csp.Option{
		csp.WithObjective(obj),
		csp.WithLowerBounds(!*noBounds),
		csp.WithMaxLabels(*maxLabels),
	}

	if *frontier {
		return printFrontier(ctx, stdout, stderr, g, src, dst, budget, *showPath, opts)
	}

	res, err := csp.FindConstrainedPathContext(ctx, g, src, dst, budget, opts...)
	if err != nil {
		return reportError(stderr, err)
	}
	logger.Debug("search finished", "outcome", res.Outcome, "finalized", res.Stats.Finalized, "pruned", res.Stats.Pruned)

	if !res.IsFeasible() {
		fmt.Fprintln(stdout, "No feasible path within the budget.")
		return exitOK
	}
	printRoute(stdout, res.Route, *showPath)

	return exitOK
}

func printFrontier(ctx context.Context, stdout, stderr io.Writer, g *core.Graph[int64],
	src, dst, budget int64, showPath bool, opts []csp.Option) int {
	f, err := csp.ParetoFrontier(ctx, g, src, dst, budget, opts...)
	if err != nil {
		return reportError(stderr, err)
	}
	if len(f.Routes) == 0 {
		fmt.Fprintln(stdout, "No feasible path within the budget.")
		return exitOK
	}
	for _, r := range f.Routes {
		printRoute(stdout, r, showPath)
	}

	return exitOK
}

func printRoute(w io.Writer, r csp.Route[int64], showPath bool) {
	fmt.Fprintf(w, "Cost: %d, Time: %d\n", r.Cost, r.Time)
	if !showPath {
		return
	}
	parts := make([]string, len(r.Path))
	for i, v := range r.Path {
		parts[i] = strconv.FormatInt(v, 10)
	}
	fmt.Fprintf(w, "Path: %s\n", strings.Join(parts, " -> "))
}

func reportError(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, "cspath:", err)
	switch {
	case errors.Is(err, csp.ErrVertexNotFound):
		return exitNotFound
	case errors.Is(err, csp.ErrNegativeBudget):
		return exitUsage
	}
	return exitFailure
}

func parseInts(args ...string) ([]int64, error) {
	out := make([]int64, len(args))
	for i, a := range args {
		v, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", a)
		}
		out[i] = v
	}
	return out, nil
}
