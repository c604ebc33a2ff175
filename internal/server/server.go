// Package server exposes the book wizard over HTTP: session creation, step
// processing, session snapshots, and a health probe. Routing is gin with
// permissive CORS so browser frontends can talk to a local instance.
package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bookwright/bookwright/internal/api"
	"github.com/bookwright/bookwright/internal/logger"
)

// NewRouter builds the gin engine around a processor.
func NewRouter(p *Processor) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	h := &handlers{p: p}

	router.GET("/health", h.health)
	wiz := router.Group("/wizard")
	{
		wiz.POST("/start", h.start)
		wiz.POST("/step/:number", h.step)
		wiz.GET("/session/:id", h.session)
	}

	return router
}

type handlers struct {
	p *Processor
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, h.p.Health())
}

func (h *handlers) start(c *gin.Context) {
	var req api.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: "Invalid request body"})
		return
	}
	resp, err := h.p.Start(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) step(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: "Invalid step number"})
		return
	}
	var req api.StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: "Invalid request body"})
		return
	}
	meta, err := h.p.ProcessStep(c.Request.Context(), number, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

func (h *handlers) session(c *gin.Context) {
	snap, err := h.p.Snapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// writeError maps processor errors onto the wire contract: input problems
// are 400, unknown sessions 404, everything else a logged 500.
func writeError(c *gin.Context, err error) {
	var inputErr *InputError
	switch {
	case errors.As(err, &inputErr):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: inputErr.Detail})
	case errors.Is(err, ErrSessionNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Session not found"})
	case errors.Is(err, ErrInvalidStep):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: "Invalid step number"})
	default:
		logger.Error("server: request failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Internal server error"})
	}
}
