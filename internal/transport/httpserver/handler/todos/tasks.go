package todos

import (
	"errors"
	"net/http"

	todosdomain "todo-app-go/internal/domain/todos"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type taskResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Completed    bool   `json:"completed"`
	TitleForList string `json:"title_for_list"`
}

type taskListResponse struct {
	Items     []taskResponse `json:"items"`
	Total     int            `json:"total"`
	Available bool           `json:"available"`
}

type statsResponse struct {
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type refreshResponse struct {
	Status string `json:"status"`
}

func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter, ok := todosdomain.ParseFilter(r.URL.Query().Get("filter"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_request", "filter must be all, active or completed")
		return
	}

	items, err := h.Tasks.ListItems(r.Context(), filter)
	if err != nil {
		if errors.Is(err, todosdomain.ErrDataNotAvailable) {
			h.log.BusinessError("tasks.list: no tasks available", err, "filter", filter)
			writeJSON(w, http.StatusOK, taskListResponse{Items: []taskResponse{}})
			return
		}
		h.writeServiceError(w, "tasks.list", err, "filter", filter)
		return
	}

	response := make([]taskResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toTaskResponse(item))
	}

	writeJSON(w, http.StatusOK, taskListResponse{
		Items:     response,
		Total:     len(response),
		Available: true,
	})
}

func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	item, err := h.Tasks.CreateItem(r.Context(), todosdomain.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.writeServiceError(w, "tasks.create", err)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(*item))
}

func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID := taskIDParam(r)
	if taskID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	item, err := h.Tasks.GetItem(r.Context(), taskID)
	if err != nil {
		h.writeServiceError(w, "tasks.get", err, "task_id", taskID)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(*item))
}

func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := taskIDParam(r)
	if taskID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	item, err := h.Tasks.UpdateItem(r.Context(), taskID, todosdomain.UpdateItemInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.writeServiceError(w, "tasks.update", err, "task_id", taskID)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(*item))
}

func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := taskIDParam(r)
	if taskID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	if err := h.Tasks.DeleteItem(r.Context(), taskID); err != nil {
		h.writeServiceError(w, "tasks.delete", err, "task_id", taskID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := taskIDParam(r)
	if taskID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	if _, err := h.Tasks.CompleteItem(r.Context(), taskID); err != nil {
		h.writeServiceError(w, "tasks.complete", err, "task_id", taskID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ActivateTask(w http.ResponseWriter, r *http.Request) {
	taskID := taskIDParam(r)
	if taskID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	if _, err := h.Tasks.ActivateItem(r.Context(), taskID); err != nil {
		h.writeServiceError(w, "tasks.activate", err, "task_id", taskID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ClearCompletedTasks(w http.ResponseWriter, r *http.Request) {
	if err := h.Tasks.ClearCompleted(r.Context()); err != nil {
		h.writeServiceError(w, "tasks.clear_completed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) DeleteAllTasks(w http.ResponseWriter, r *http.Request) {
	if err := h.Tasks.DeleteAll(r.Context()); err != nil {
		h.writeServiceError(w, "tasks.delete_all", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RefreshTasks only marks the cache stale; the next list goes to the remote store.
func (h *Handlers) RefreshTasks(w http.ResponseWriter, r *http.Request) {
	if err := h.Tasks.Refresh(r.Context()); err != nil {
		h.writeServiceError(w, "tasks.refresh", err)
		return
	}

	writeJSON(w, http.StatusAccepted, refreshResponse{Status: "refresh_scheduled"})
}

func (h *Handlers) TaskStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Tasks.Stats(r.Context())
	if err != nil {
		h.writeServiceError(w, "tasks.stats", err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Active:    stats.Active,
		Completed: stats.Completed,
		Total:     stats.Active + stats.Completed,
	})
}

func toTaskResponse(item todosdomain.Item) taskResponse {
	return taskResponse{
		ID:           item.ID,
		Title:        item.Title,
		Description:  item.Description,
		Completed:    item.Completed,
		TitleForList: item.TitleForList(),
	}
}
