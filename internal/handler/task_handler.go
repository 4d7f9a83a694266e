package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/okovalenko/todovault/internal/domain"
	"github.com/okovalenko/todovault/internal/metrics"
	"github.com/okovalenko/todovault/internal/service"
)

// TaskHandler serves the per-user task list. Every operation first resolves
// the active session; with nobody logged in the request fails with
// no_active_session rather than silently doing nothing.
type TaskHandler struct {
	tasks    *service.TaskService
	sessions *service.SessionService
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(
	tasks *service.TaskService,
	sessions *service.SessionService,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *TaskHandler {
	return &TaskHandler{
		tasks:    tasks,
		sessions: sessions,
		metrics:  m,
		logger:   logger.With().Str("handler", "task").Logger(),
	}
}

// writeError renders err as a JSON error response.
func (h *TaskHandler) writeError(w http.ResponseWriter, err error) {
	status, token := errorToken(err)
	if h.metrics != nil && errors.Is(err, domain.ErrStorage) {
		h.metrics.IncStoreErrors()
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, apiError{Error: token, Message: err.Error()})
}

// currentUser resolves the active session username.
func (h *TaskHandler) currentUser(r *http.Request) (string, error) {
	return h.sessions.Current(r.Context())
}

// taskRequest is the body for task creation and edits.
type taskRequest struct {
	Text string `json:"text"`
}

// tasksResponse wraps a task list.
type tasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

// confirmed reports whether the request carries ?confirm=true, the API
// equivalent of accepting the two-choice confirm prompt.
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

// List handles GET /api/tasks.
// ?q= switches to case-insensitive substring search against the persisted
// list; ?sort=status|date reorders the response without persisting the
// order, so a plain reload reverts to storage order.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	username, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	query := r.URL.Query().Get("q")
	tasks, err := h.tasks.Search(r.Context(), username, query)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if sortKey := r.URL.Query().Get("sort"); sortKey != "" {
		tasks = service.SortTasks(tasks, service.SortKey(sortKey))
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}
	writeJSON(w, http.StatusOK, tasksResponse{Tasks: tasks})
}

// Add handles POST /api/tasks.
func (h *TaskHandler) Add(w http.ResponseWriter, r *http.Request) {
	username, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	task, err := h.tasks.Add(r.Context(), username, req.Text)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// Edit handles PUT /api/tasks/{taskID}.
func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	username, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	task, err := h.tasks.Edit(r.Context(), username, chi.URLParam(r, "taskID"), req.Text)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Toggle handles POST /api/tasks/{taskID}/toggle.
// The updated task is returned so a client holding a search view can patch
// its copy and stay consistent with the underlying list.
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	username, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	task, err := h.tasks.ToggleCompletion(r.Context(), username, chi.URLParam(r, "taskID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{taskID}?confirm=true.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.tasks.Delete(r.Context(), username, chi.URLParam(r, "taskID"), confirmed(r)); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearAll handles DELETE /api/tasks?confirm=true.
func (h *TaskHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	username, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.tasks.ClearAll(r.Context(), username, confirmed(r)); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
