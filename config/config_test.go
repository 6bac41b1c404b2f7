package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/cspath/config"
	"github.com/katalvlaran/cspath/source/edgelist"
	"github.com/katalvlaran/cspath/source/neograph"
	"github.com/katalvlaran/cspath/source/osmroads"
)

type ConfigSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) { suite.Run(t, new(ConfigSuite)) }

func (s *ConfigSuite) SetupTest() { s.dir = s.T().TempDir() }

func (s *ConfigSuite) write(name, body string) string {
	p := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(p, []byte(body), 0o600))
	return p
}

func (s *ConfigSuite) TestYAML() {
	path := s.write("cspath.yaml", `
server:
  addr: ":9090"
  write_timeout: 45s
  cors_origins: ["https://maps.example"]
log:
  level: debug
  format: json
source:
  format: osm
  path: /data/town.osm.pbf
search:
  objective: time
  max_labels: 500000
`)
	cfg, err := config.Load(path, filepath.Join(s.dir, "absent.env"))
	s.Require().NoError(err)

	s.Equal(":9090", cfg.Server.Addr)
	s.Equal(45*time.Second, cfg.Server.WriteTimeout)
	s.Equal(10*time.Second, cfg.Server.ReadTimeout, "default kept")
	s.Equal([]string{"https://maps.example"}, cfg.Server.CORSOrigins)
	s.Equal("json", cfg.Log.Format)
	s.Equal(config.FormatOSM, cfg.Source.Format)
	s.Equal("time", cfg.Search.Objective)
	s.Equal(500000, cfg.Search.MaxLabels)
	s.IsType(osmroads.Loader{}, cfg.Source.Loader(nil))
}

func (s *ConfigSuite) TestUnknownKey() {
	path := s.write("bad.yaml", "server:\n  port: 80\n")
	_, err := config.Load(path, filepath.Join(s.dir, "absent.env"))
	s.Require().Error(err)
	s.Contains(err.Error(), "port")
}

func (s *ConfigSuite) TestMissingFile() {
	_, err := config.Load(filepath.Join(s.dir, "none.yaml"))
	s.ErrorIs(err, os.ErrNotExist)
}

func (s *ConfigSuite) TestDotEnvAndEnvironment() {
	s.T().Setenv("CSPATH_SOURCE_FORMAT", "neo4j")
	s.T().Setenv("CSPATH_NEO4J_URI", "bolt://graph:7687")
	s.T().Setenv("CSPATH_SEARCH_TIMEOUT", "3s")
	envFile := s.write("test.env", "CSPATH_NEO4J_USER=reader\nCSPATH_SOURCE_FORMAT=edgelist\n")
	s.T().Cleanup(func() { os.Unsetenv("CSPATH_NEO4J_USER") })

	cfg, err := config.Load("", envFile)
	s.Require().NoError(err)

	s.Equal(config.FormatNeo4j, cfg.Source.Format, "process environment wins over .env")
	s.Equal("reader", cfg.Source.Neo4j.User)
	s.Equal(3*time.Second, cfg.Search.Timeout)

	l, ok := cfg.Source.Loader(nil).(neograph.Loader)
	s.Require().True(ok)
	s.Equal("bolt://graph:7687", l.URI)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CSPATH_ADDR":                 "127.0.0.1:1",
		"CSPATH_CORS_ORIGINS":         " a.example , ,b.example",
		"CSPATH_MAX_LABELS":           "7",
		"CSPATH_DISABLE_LOWER_BOUNDS": "true",
		"CSPATH_SOURCE_PATH":          "g.txt",
	}
	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) (string, bool) { v, ok := env[k]; return v, ok }))

	assert.Equal(t, "127.0.0.1:1", cfg.Server.Addr)
	assert.Equal(t, []string{"a.example", "b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 7, cfg.Search.MaxLabels)
	assert.True(t, cfg.Search.DisableLowerBounds)
	require.NoError(t, cfg.Validate())
	assert.IsType(t, edgelist.Loader{}, cfg.Source.Loader(nil))

	opts, err := cfg.Search.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 3)
}

func TestApplyEnv_Errors(t *testing.T) {
	for key, val := range map[string]string{
		"CSPATH_MAX_LABELS":           "many",
		"CSPATH_DISABLE_LOWER_BOUNDS": "maybe",
		"CSPATH_READ_TIMEOUT":         "soon",
	} {
		cfg := config.Default()
		err := cfg.ApplyEnv(func(k string) (string, bool) {
			if k == key {
				return val, true
			}
			return "", false
		})
		assert.ErrorIs(t, err, config.ErrInvalid, key)
	}
}

func TestApplyEnv_ReportsFirstBadDurationInOrder(t *testing.T) {
	env := map[string]string{
		"CSPATH_SEARCH_TIMEOUT":   "later",
		"CSPATH_WRITE_TIMEOUT":    "eventually",
		"CSPATH_SHUTDOWN_TIMEOUT": "whenever",
		"CSPATH_READ_TIMEOUT":     "soon",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	for i := 0; i < 50; i++ {
		cfg := config.Default()
		err := cfg.ApplyEnv(lookup)
		require.ErrorIs(t, err, config.ErrInvalid)
		require.Contains(t, err.Error(), "CSPATH_READ_TIMEOUT")
	}
}

func TestValidate_StableMessage(t *testing.T) {
	cfg := config.Default()
	cfg.Source.Path = "g.txt"
	cfg.Server.ReadTimeout = 0
	cfg.Server.WriteTimeout = 0
	cfg.Server.ShutdownTimeout = 0
	cfg.Search.Timeout = 0

	first := cfg.Validate()
	require.ErrorIs(t, first, config.ErrInvalid)
	for i := 0; i < 50; i++ {
		require.EqualError(t, cfg.Validate(), first.Error())
	}
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "source.path is required")

	cfg.Source.Path = "g.txt"
	require.NoError(t, cfg.Validate())

	cfg.Server.Addr = ""
	cfg.Server.ReadTimeout = 0
	cfg.Log.Level = "loud"
	cfg.Source.Format = "csv"
	cfg.Search.Objective = "distance"
	cfg.Search.MaxLabels = -1
	err = cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalid)
	for _, want := range []string{
		"server.addr", "server.read_timeout", "log:", "source.format", "search.objective", "search.max_labels",
	} {
		assert.Contains(t, err.Error(), want)
	}

	cfg = config.Default()
	cfg.Source.Format = config.FormatNeo4j
	assert.ErrorContains(t, cfg.Validate(), "source.neo4j.uri")
}
