package server

import (
	"bytes"
	"image/png"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coherent-ops/revq/diagram"
	"github.com/coherent-ops/revq/emit"
	"github.com/coherent-ops/revq/runner"
	"github.com/coherent-ops/revq/sim"
)

var internalServerErrorMsg = "Internal Server Error - please contact the administrator"

type createProgramRequest struct {
	Name string `json:"name" binding:"required"`
}

type createProgramResponse struct {
	ID string `json:"id"`
}

// CreateProgram implements POST /programs: registers one of the fixed
// catalog programs by name and returns its id.
func (a *appServer) CreateProgram(c *gin.Context) {
	var req createProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := a.store.SaveProgram(req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, createProgramResponse{ID: id})
}

type runProgramRequest struct {
	Shots   int `json:"shots"`
	Workers int `json:"workers"`
}

type runProgramResponse struct {
	Histogram map[string]int `json:"histogram"`
}

// RunProgram implements POST /programs/:id/run: executes the
// registered program through runner.Simulator's classical sim backend.
func (a *appServer) RunProgram(c *gin.Context) {
	rec, err := a.store.GetProgram(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var req runProgramRequest
	_ = c.ShouldBindJSON(&req) // absent/empty body means "use defaults"

	simRunner, err := runner.CreateRunner("sim")
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to create sim runner")
		c.String(http.StatusInternalServerError, internalServerErrorMsg)
		return
	}
	s := runner.NewSimulator(runner.SimulatorOptions{Shots: req.Shots, Workers: req.Workers, Runner: simRunner})

	hist, err := s.Run(rec.Template())
	if err != nil {
		a.logger.Error().Err(err).Str("program", rec.Name).Msg("program run failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, runProgramResponse{Histogram: hist})
}

// DiagramProgram implements GET /programs/:id/diagram: runs the
// registered program once through diagram.DrawLens (backed by a real
// sim.Sim underneath, so fundamental operations still execute) and
// returns the rendered circuit as a PNG.
func (a *appServer) DiagramProgram(c *gin.Context) {
	rec, err := a.store.GetProgram(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	e := emit.New(sim.New())
	drawLens := diagram.NewDrawLens()
	program := rec.Template()
	if err := e.WithLens(drawLens, func(e *emit.Emitter) error {
		_, err := program(e)
		return err
	}); err != nil {
		a.logger.Error().Err(err).Str("program", rec.Name).Msg("program run failed for diagram")
		c.String(http.StatusInternalServerError, internalServerErrorMsg)
		return
	}

	if err := drawLens.Dag.Validate(); err != nil {
		a.logger.Error().Err(err).Msg("dag validation failed")
		c.String(http.StatusInternalServerError, internalServerErrorMsg)
		return
	}

	img := diagram.NewDefaultRenderer().Render(drawLens.Dag)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		a.logger.Error().Err(err).Msg("png encode failed")
		c.String(http.StatusInternalServerError, internalServerErrorMsg)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// HealthHandler reports liveness.
func (a *appServer) HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
