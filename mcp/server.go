// Package mcp serves the Reportobello client operations as MCP tools.
package mcp

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/reportobello/reportobello-go/client"
	"github.com/reportobello/reportobello-go/internal/config"
	"github.com/reportobello/reportobello-go/mcp/internal/handlers"
)

// ServerVersion is reported to MCP clients during initialization.
const ServerVersion = "0.1.0"

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds an MCP server with every Reportobello tool registered.
func NewServer(name string, c *client.Client) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		name,
		ServerVersion,
		server.WithToolCapabilities(true),
	)

	for _, h := range []struct {
		name string
		h    toolRegisterer
	}{
		{"template", handlers.NewTemplateHandler(c)},
		{"env", handlers.NewEnvHandler(c)},
		{"build", handlers.NewBuildHandler(c)},
		{"starter", handlers.NewStarterHandler()},
	} {
		if err := h.h.RegisterTools(s); err != nil {
			log.Error().Err(err).Msgf("Failed to register %s tools", h.name)
			return nil, err
		}
	}
	return s, nil
}

func initLogger(cfg *config.Config) error {
	lvl, err := cfg.Level()
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	// stdout carries the stdio protocol
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Caller().Logger()
	return nil
}

// RunMCPServer loads configuration from the environment and serves until the
// stdio stream closes or, over HTTP, until SIGINT/SIGTERM.
func RunMCPServer() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if err := initLogger(cfg); err != nil {
		return err
	}

	log.Info().Str("host", cfg.Host).Msg("Creating Reportobello client")
	c, err := cfg.NewClient()
	if err != nil {
		log.Error().Err(err).Msg("Failed to create client")
		return err
	}

	s, err := NewServer(cfg.MCPServerName, c)
	if err != nil {
		return err
	}

	if shouldUseStdio() {
		log.Info().Msg("Starting Reportobello MCP server (stdio transport)")
		return server.ServeStdio(s)
	}
	return serveHTTP(cfg, s)
}

func serveHTTP(cfg *config.Config, s *server.MCPServer) error {
	log.Info().Str("addr", cfg.MCPAddr).Msg("Starting Reportobello MCP server (Streamable HTTP)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)

	srv := &http.Server{
		Addr:              cfg.MCPAddr,
		Handler:           streamSrv,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      0, // SSE streams stay open
		IdleTimeout:       120 * time.Second,
	}

	shutdownComplete := make(chan struct{})
	go func() {
		defer close(shutdownComplete)

		sig, ok := <-sigChan
		if !ok {
			return
		}
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
		if err := streamSrv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// shouldUseStdio reports whether to serve over stdio: forced by MCP_STDIO,
// refused by MCP_HTTP, otherwise when stdin is not a terminal.
func shouldUseStdio() bool {
	if os.Getenv("MCP_STDIO") == "true" {
		return true
	}
	if os.Getenv("MCP_HTTP") == "true" {
		return false
	}
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
