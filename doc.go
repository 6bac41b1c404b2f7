// Package cspath finds routes through weighted road-like networks where every
// edge carries two non-negative weights, a cost and a travel time, and a route
// must keep its total cost within a budget.
//
// 🚀 What is in the box?
//
//	• core/      — thread-safe undirected Graph with (cost, time) edge weights
//	• dijkstra/  — single-metric shortest paths, used for pruning bounds
//	• csp/       — bicriteria label-setting search: best route within budget
//	               (cost-first or time-first) and the full Pareto frontier
//	• builder/   — deterministic topologies (path, cycle, grid, complete, random)
//	• source/    — loaders: plain edge lists, OpenStreetMap (.osm/.pbf), Neo4j
//	• config/    — YAML + .env + CSPATH_* environment configuration
//	• logging/   — slog logger construction
//	• server/    — JSON HTTP API with Prometheus metrics
//
// Commands:
//
//	cmd/cspath   — one-shot search: cspath <file> <source> <destination> <budget>
//	cmd/cspathd  — long-running HTTP daemon
//
// Quick start:
//
//	g := core.NewGraph[int]()
//	_ = g.AddEdge(1, 2, 4, 10)
//	_ = g.AddEdge(2, 3, 4, 10)
//	_ = g.AddEdge(1, 3, 10, 1)
//	res, _ := csp.FindConstrainedPath(g, 1, 3, 10)
//	// res.Cost == 8, res.Time == 20, res.Path == [1 2 3]
//
// Installation:
//
//	go get github.com/katalvlaran/cspath
package cspath
