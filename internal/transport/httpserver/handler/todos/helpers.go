package todos

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	todosdomain "todo-app-go/internal/domain/todos"
	commonhandler "todo-app-go/internal/transport/httpserver/handler/common"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeJSON(r *http.Request, dst any) error {
	return commonhandler.DecodeJSON(r, dst)
}

func taskIDParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}

// writeServiceError maps a Service error onto the HTTP error envelope.
func (h *Handlers) writeServiceError(w http.ResponseWriter, op string, err error, args ...any) {
	switch {
	case errors.Is(err, todosdomain.ErrItemNotFound):
		h.log.BusinessError(op+": task not found", err, args...)
		writeError(w, http.StatusNotFound, "task_not_found", "task not found")
	case errors.Is(err, todosdomain.ErrEmptyItem):
		h.log.BusinessError(op+": empty task", err, args...)
		writeError(w, http.StatusBadRequest, "invalid_request", "title or description is required")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		h.log.BusinessError(op+": request timed out", err, args...)
		writeError(w, http.StatusGatewayTimeout, "timeout", "request timed out")
	default:
		h.log.InternalError(op+": failed", err, args...)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
