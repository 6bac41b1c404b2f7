// Command cspathd loads a graph once and serves constrained path searches over
// HTTP until it receives SIGINT or SIGTERM.
//
// Configuration comes from an optional YAML file (-config), a .env file and
// CSPATH_* environment variables, in increasing order of precedence.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/katalvlaran/cspath/config"
	"github.com/katalvlaran/cspath/logging"
	"github.com/katalvlaran/cspath/server"
	"github.com/katalvlaran/cspath/source"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("cspathd", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "path to a YAML config file")
	envFile := fs.String("env", ".env", "dotenv file loaded before the environment is read")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(*cfgPath, *envFile)
	if err != nil {
		fmt.Fprintln(stderr, "cspathd:", err)
		return 2
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "cspathd:", err)
		return 2
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		logger.Error("listen failed", slog.String("addr", cfg.Server.Addr), slog.String("error", err.Error()))
		return 1
	}
	if err = serve(ctx, cfg, logger, ln); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		return 1
	}

	return 0
}

// serve loads the configured graph and answers requests on ln until ctx is
// done, then shuts down within cfg.Server.ShutdownTimeout.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger, ln net.Listener) error {
	defer ln.Close()

	start := time.Now()
	g, err := source.Build(ctx, cfg.Source.Loader(logger))
	if err != nil {
		return fmt.Errorf("load graph: %w", err)
	}
	logger.Info("graph loaded",
		slog.String("format", cfg.Source.Format),
		slog.Int("vertices", g.VertexCount()),
		slog.Int("edges", g.EdgeCount()),
		slog.Duration("elapsed", time.Since(start)))

	defaults, err := cfg.Search.Options()
	if err != nil {
		return err
	}
	srv := server.New(g,
		server.WithLogger(logger),
		server.WithSearchDefaults(defaults...),
		server.WithTimeout(cfg.Search.Timeout),
		server.WithCORSOrigins(cfg.Server.CORSOrigins...),
	)

	httpSrv := &http.Server{
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", ln.Addr().String()))
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err = httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err = <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
