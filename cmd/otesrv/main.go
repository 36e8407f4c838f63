// Command otesrv runs the local sandbox registrar server. It speaks the
// same wire protocol as the hosted API so the client library can be
// developed and demonstrated without an account.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/regdrive/domrobot/internal/otesrv"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

type cmdoptions struct {
	configFile string
}

func parseFlags() cmdoptions {
	opt := cmdoptions{}
	flag.StringVar(&opt.configFile, "config", "", "path to toml config file; defaults apply when omitted")
	flag.Parse()
	return opt
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	slog := log.With().Str("state", "init").Logger()

	opt := parseFlags()

	cfg := otesrv.DefaultConfig()
	if opt.configFile != "" {
		slog.Info().Str("config_file", opt.configFile).Msg("loading config file")
		loaded, err := otesrv.LoadConfig(opt.configFile)
		if err != nil {
			return fmt.Errorf("loading config file: %w", err)
		}
		cfg = loaded
	}

	srv, err := otesrv.CreateNewServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	srv.MountHandlers()

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info().Str("addr", cfg.ListenAddr).Msg("sandbox listening")
		serverErrors <- httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutdown started")
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			httpServer.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}
