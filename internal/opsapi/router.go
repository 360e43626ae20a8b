// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package opsapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/basketrec/internal/logging"
	"github.com/tomtom215/basketrec/internal/recommend"
	"github.com/tomtom215/basketrec/internal/supervisor/services"
)

// StatusProvider reports the engine state. Satisfied by *recommend.Engine.
type StatusProvider interface {
	Status() recommend.Status
}

// RebuildTrigger queues on-demand rebuilds. Satisfied by *services.RebuildService.
type RebuildTrigger interface {
	Trigger(ctx context.Context, trigger string) error
}

// Handler serves the ops endpoints.
type Handler struct {
	status  StatusProvider
	rebuild RebuildTrigger
}

// NewHandler creates the ops handler.
func NewHandler(status StatusProvider, rebuild RebuildTrigger) *Handler {
	return &Handler{status: status, rebuild: rebuild}
}

// Router returns the chi router for all ops endpoints.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(instrument)

	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/admin/rebuild", h.AdminRebuild)

	return r
}

// Healthz reports process liveness.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports ready once a snapshot has been published. The body carries
// the engine status either way.
func (h *Handler) Readyz(w http.ResponseWriter, _ *http.Request) {
	st := h.status.Status()
	if !st.Ready {
		respondJSON(w, http.StatusServiceUnavailable, &Response{
			Status: "error",
			Data:   st,
			Error:  &Error{Code: "NOT_READY", Message: "no recommendation snapshot has been published yet"},
		})
		return
	}
	respondData(w, http.StatusOK, st)
}

// AdminRebuild queues an on-demand rebuild.
func (h *Handler) AdminRebuild(w http.ResponseWriter, r *http.Request) {
	err := h.rebuild.Trigger(r.Context(), services.TriggerAdmin)
	switch {
	case err == nil:
		logging.Ctx(r.Context(), logging.WithComponent("opsapi")).Info().Msg("rebuild requested")
		respondData(w, http.StatusAccepted, map[string]string{"rebuild": "queued"})
	case errors.Is(err, services.ErrRebuildThrottled):
		respondError(w, http.StatusTooManyRequests, "REBUILD_THROTTLED", "a rebuild was requested too recently")
	default:
		logging.Ctx(r.Context(), logging.WithComponent("opsapi")).Error().Err(err).Msg("rebuild request failed")
		respondError(w, http.StatusInternalServerError, "REBUILD_FAILED", "rebuild could not be queued")
	}
}
