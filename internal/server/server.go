// Package server is the optional HTTP surface (SPEC_FULL.md §6): a
// gin-based service that registers catalog programs and drives them
// through the runner and diagram packages. It stores program
// definitions in memory only for process lifetime; no persistence.
package server

import (
	"context"

	"github.com/coherent-ops/revq/internal/logger"
	"github.com/coherent-ops/revq/internal/server/router"
)

type (
	// EngineOptions configures the underlying logger/router.
	EngineOptions struct {
		Debug           bool
		CORSAllowOrigin string
	}

	// Server is the lifecycle contract for the HTTP surface.
	Server interface {
		Listen(port int, localOnly bool) error
		Shutdown(ctx context.Context) error
	}

	appServer struct {
		logger *logger.Logger
		router *router.Router
		store  ProgramStore
	}
)

// NewLoggerAndRouter builds the logger/router pair every appServer needs.
func NewLoggerAndRouter(options EngineOptions) (l *logger.Logger, r *router.Router) {
	l = logger.NewLogger(logger.LoggerOptions{Debug: options.Debug})
	r = router.NewRouter(router.RouterOptions{Logger: l, CORSAllowOrigin: options.CORSAllowOrigin})
	return
}

// NewServer builds a Server with its routes registered.
func NewServer(options EngineOptions) Server {
	l, r := NewLoggerAndRouter(options)
	a := &appServer{logger: l, router: r, store: NewProgramStore()}
	a.router.SetRoutes(a.routes())
	return a
}

// Listen implements Server.
func (a *appServer) Listen(port int, localOnly bool) error {
	a.logger.Info().Int("port", port).Bool("localOnly", localOnly).Msg("starting revq server")
	return a.router.Start(port, localOnly)
}

// Shutdown implements Server.
func (a *appServer) Shutdown(ctx context.Context) error {
	return a.router.Shutdown(ctx)
}
