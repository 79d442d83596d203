package common

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"todo-app-go/pkg/idling"
	"todo-app-go/pkg/logger"
)

const maxIdleWait = 30 * time.Second

type Handlers struct {
	idle *idling.Resource
	log  logger.Logger
}

func New(idle *idling.Resource, log logger.Logger) *Handlers {
	return &Handlers{
		idle: idle,
		log:  log,
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

type idleResponse struct {
	Resource string `json:"resource"`
	Idle     bool   `json:"idle"`
	Pending  int    `json:"pending"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Idle reports whether repository reads are still in flight. With ?wait=<duration>
// it blocks until the work drains or the wait elapses.
func (h *Handlers) Idle(w http.ResponseWriter, r *http.Request) {
	if raw := strings.TrimSpace(r.URL.Query().Get("wait")); raw != "" {
		wait, err := time.ParseDuration(raw)
		if err != nil || wait < 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid wait")
			return
		}
		if wait > maxIdleWait {
			wait = maxIdleWait
		}

		ctx, cancel := context.WithTimeout(r.Context(), wait)
		defer cancel()
		if err := h.idle.WaitIdle(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			h.log.BusinessError("idle.wait: request ended", err, "resource", h.idle.Name())
		}
	}

	writeJSON(w, http.StatusOK, idleResponse{
		Resource: h.idle.Name(),
		Idle:     h.idle.IsIdle(),
		Pending:  h.idle.Pending(),
	})
}
