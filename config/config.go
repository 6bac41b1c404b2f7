// Package config loads the cspathd configuration.
//
// Sources are applied in order, later ones overriding earlier ones:
//
//  1. Defaults (see Default).
//  2. A YAML file, if a path is given. Unknown keys are rejected.
//  3. A .env file (godotenv), which only fills variables not already set.
//  4. CSPATH_* environment variables.
//
// The result is checked by Validate before it is returned.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/cspath/csp"
	"github.com/katalvlaran/cspath/logging"
)

// ErrInvalid indicates a configuration that failed validation.
var ErrInvalid = errors.New("config: invalid")

// Source formats.
const (
	FormatEdgeList = "edgelist"
	FormatOSM      = "osm"
	FormatNeo4j    = "neo4j"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CSPATH_"

// Config is the full daemon configuration.
type Config struct {
	Server Server `yaml:"server"`
	Log    Log    `yaml:"log"`
	Source Source `yaml:"source"`
	Search Search `yaml:"search"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `yaml:"cors_origins"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Source selects where the graph is loaded from.
type Source struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
	Neo4j  Neo4j  `yaml:"neo4j"`
}

// Neo4j holds connection settings for FormatNeo4j.
type Neo4j struct {
	URI      string `yaml:"uri"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Query    string `yaml:"query"`
}

// Search holds defaults applied to every request.
type Search struct {
	Objective          string        `yaml:"objective"`
	MaxLabels          int           `yaml:"max_labels"`
	DisableLowerBounds bool          `yaml:"disable_lower_bounds"`
	Timeout            time.Duration `yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			CORSOrigins:     []string{"*"},
		},
		Log:    Log{Level: "info", Format: logging.FormatText},
		Source: Source{Format: FormatEdgeList},
		Search: Search{Objective: csp.CostFirst.String(), Timeout: 10 * time.Second},
	}
}

// Load builds a Config from the YAML file at path (skipped when empty), the
// given .env files (".env" when none are given; missing files are ignored)
// and the process environment.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err = decodeYAML(bytes.NewReader(raw), &cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: %s: %w", f, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func decodeYAML(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// ApplyEnv overrides fields from CSPATH_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s: %v", ErrInvalid, EnvPrefix, key, err)
		}
		*dst = d
		return nil
	}

	str("ADDR", &c.Server.Addr)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("SOURCE_FORMAT", &c.Source.Format)
	str("SOURCE_PATH", &c.Source.Path)
	str("NEO4J_URI", &c.Source.Neo4j.URI)
	str("NEO4J_USER", &c.Source.Neo4j.User)
	str("NEO4J_PASSWORD", &c.Source.Neo4j.Password)
	str("NEO4J_DATABASE", &c.Source.Neo4j.Database)
	str("NEO4J_QUERY", &c.Source.Neo4j.Query)
	str("OBJECTIVE", &c.Search.Objective)

	if v, ok := lookup(EnvPrefix + "CORS_ORIGINS"); ok {
		c.Server.CORSOrigins = splitList(v)
	}
	if v, ok := lookup(EnvPrefix + "MAX_LABELS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sMAX_LABELS: %v", ErrInvalid, EnvPrefix, err)
		}
		c.Search.MaxLabels = n
	}
	if v, ok := lookup(EnvPrefix + "DISABLE_LOWER_BOUNDS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sDISABLE_LOWER_BOUNDS: %v", ErrInvalid, EnvPrefix, err)
		}
		c.Search.DisableLowerBounds = b
	}

	for _, o := range []struct {
		key string
		dst *time.Duration
	}{
		{"READ_TIMEOUT", &c.Server.ReadTimeout},
		{"WRITE_TIMEOUT", &c.Server.WriteTimeout},
		{"SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout},
		{"SEARCH_TIMEOUT", &c.Search.Timeout},
	} {
		if err := dur(o.key, o.dst); err != nil {
			return err
		}
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate reports every problem at once, joined under ErrInvalid.
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) { problems = append(problems, fmt.Sprintf(format, args...)) }

	if c.Server.Addr == "" {
		add("server.addr is empty")
	}
	for _, t := range []struct {
		name string
		d    time.Duration
	}{
		{"server.read_timeout", c.Server.ReadTimeout},
		{"server.write_timeout", c.Server.WriteTimeout},
		{"server.shutdown_timeout", c.Server.ShutdownTimeout},
		{"search.timeout", c.Search.Timeout},
	} {
		if t.d <= 0 {
			add("%s must be positive, got %s", t.name, t.d)
		}
	}
	if _, err := logging.New(c.Log.Level, c.Log.Format, io.Discard); err != nil {
		add("log: %v", err)
	}

	switch c.Source.Format {
	case FormatEdgeList, FormatOSM:
		if c.Source.Path == "" {
			add("source.path is required for format %q", c.Source.Format)
		}
	case FormatNeo4j:
		if c.Source.Neo4j.URI == "" {
			add("source.neo4j.uri is required for format %q", FormatNeo4j)
		}
	default:
		add("source.format %q is not one of %s, %s, %s", c.Source.Format, FormatEdgeList, FormatOSM, FormatNeo4j)
	}

	if _, err := csp.ParseObjective(c.Search.Objective); err != nil {
		add("search.objective: %v", err)
	}
	if c.Search.MaxLabels < 0 {
		add("search.max_labels must be ≥ 0, got %d", c.Search.MaxLabels)
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)

	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
}
