package server

import (
	"net/http"

	"github.com/coherent-ops/revq/internal/server/router"
)

func (a *appServer) routes() []*router.Route {
	return []*router.Route{
		{Name: "health", Method: http.MethodGet, Pattern: "/health", HandlerFunc: a.HealthHandler},
		{Name: "programs.create", Method: http.MethodPost, Pattern: "/programs", HandlerFunc: a.CreateProgram},
		{Name: "programs.run", Method: http.MethodPost, Pattern: "/programs/:id/run", HandlerFunc: a.RunProgram},
		{Name: "programs.diagram", Method: http.MethodGet, Pattern: "/programs/:id/diagram", HandlerFunc: a.DiagramProgram},
	}
}
