package config

import (
	"log/slog"

	"github.com/katalvlaran/cspath/csp"
	"github.com/katalvlaran/cspath/source"
	"github.com/katalvlaran/cspath/source/edgelist"
	"github.com/katalvlaran/cspath/source/neograph"
	"github.com/katalvlaran/cspath/source/osmroads"
)

// Loader returns the source.Loader described by s. s must have passed Validate.
func (s Source) Loader(logger *slog.Logger) source.Loader {
	switch s.Format {
	case FormatOSM:
		return osmroads.Loader{Path: s.Path, Logger: logger}
	case FormatNeo4j:
		return neograph.Loader{
			URI:      s.Neo4j.URI,
			User:     s.Neo4j.User,
			Password: s.Neo4j.Password,
			Database: s.Neo4j.Database,
			Query:    s.Neo4j.Query,
			Logger:   logger,
		}
	}

	return edgelist.Loader{Path: s.Path, Logger: logger}
}

// Options converts the search defaults into csp options.
func (s Search) Options() ([]csp.Option, error) {
	obj, err := csp.ParseObjective(s.Objective)
	if err != nil {
		return nil, err
	}

	return []csp.Option{
		csp.WithObjective(obj),
		csp.WithLowerBounds(!s.DisableLowerBounds),
		csp.WithMaxLabels(s.MaxLabels),
	}, nil
}
