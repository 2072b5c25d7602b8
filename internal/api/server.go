// Package api exposes the point-in-time pull queries: the latest snapshot
// and active alert set, the trailing history windows, and the current
// forecast, independent of the push cadence.
package api

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/rs/zerolog"

	"github.com/hostpulse/hostpulse/internal/alert"
	"github.com/hostpulse/hostpulse/internal/forecast"
	"github.com/hostpulse/hostpulse/internal/history"
	"github.com/hostpulse/hostpulse/internal/hub"
)

// Server serves the read-only HTTP API over the shared engine state.
type Server struct {
	h      *server.Hertz
	hub    *hub.Hub
	alerts *alert.ActiveSet
	hist   *history.Store
	slot   *forecast.Slot
	window int
	log    zerolog.Logger
}

// New builds the server and registers routes. Run starts listening.
func New(addr string, h *hub.Hub, alerts *alert.ActiveSet, hist *history.Store, slot *forecast.Slot, window int, log zerolog.Logger) *Server {
	s := &Server{
		h:      server.Default(server.WithHostPorts(addr)),
		hub:    h,
		alerts: alerts,
		hist:   hist,
		slot:   slot,
		window: window,
		log:    log,
	}

	s.h.GET("/api/snapshot", s.handleSnapshot)
	s.h.GET("/api/alerts", s.handleAlerts)
	s.h.GET("/api/history", s.handleHistory)
	s.h.GET("/api/forecast", s.handleForecast)
	return s
}

// Run serves until Shutdown or a listener error. A startup failure here is
// fatal to the process.
func (s *Server) Run() error {
	if err := s.h.Run(); err != nil {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Shutdown drains connections and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.h.Shutdown(ctx)
}

func (s *Server) handleSnapshot(_ context.Context, c *app.RequestContext) {
	payload, ok := s.hub.Latest()
	if !ok {
		c.JSON(consts.StatusServiceUnavailable, utils.H{"error": "no snapshot yet"})
		return
	}
	c.JSON(consts.StatusOK, payload.Snapshot)
}

func (s *Server) handleAlerts(_ context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, s.alerts.Current())
}

func (s *Server) handleHistory(_ context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, s.hist.Windows(s.window))
}

func (s *Server) handleForecast(_ context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, s.slot.Current())
}
