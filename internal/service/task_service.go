package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/okovalenko/todovault/internal/domain"
	"github.com/okovalenko/todovault/internal/kv"
)

// SortKey selects a task ordering for SortTasks.
type SortKey string

const (
	// SortByStatus orders incomplete tasks before completed ones,
	// keeping the relative order within each group.
	SortByStatus SortKey = "status"

	// SortByDate orders tasks most-recently-created first, parsing each
	// task ID back into its creation timestamp.
	SortByDate SortKey = "date"
)

// TaskService manages per-user to-do lists.
//
// Each user's list lives under its own store key as an ordered JSON array
// and is rewritten whole on every mutation. Lists of different users are
// never cross-visible. Destructive operations (Delete, ClearAll) require an
// explicit confirmation flag, mirroring the two-choice confirm prompt of
// the client.
type TaskService struct {
	store  kv.Store
	logger zerolog.Logger

	// now is injectable so tests can mint distinct, predictable task IDs.
	now func() time.Time

	mu sync.Mutex
}

// NewTaskService creates a new TaskService.
func NewTaskService(store kv.Store, logger zerolog.Logger) *TaskService {
	return &TaskService{
		store:  store,
		logger: logger.With().Str("service", "task").Logger(),
		now:    time.Now,
	}
}

// List returns the persisted task list for username, or an empty list if
// none exists.
func (s *TaskService) List(ctx context.Context, username string) ([]domain.Task, error) {
	return loadJSON[[]domain.Task](ctx, s.store, kv.TaskKey(username))
}

// Add appends a new incomplete task and persists the full list.
//
// Empty or whitespace-only text fails with domain.ErrValidation and
// creates nothing. The task ID is the creation timestamp.
func (s *TaskService) Add(ctx context.Context, username, text string) (domain.Task, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Task{}, domain.NewDomainError(domain.ErrValidation, "task text cannot be empty", "")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := kv.TaskKey(username)
	tasks, err := loadJSON[[]domain.Task](ctx, s.store, key)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to load task list")
		return domain.Task{}, err
	}

	task := domain.NewTask(text, s.now())
	tasks = append(tasks, task)

	if err := saveJSON(ctx, s.store, key, tasks); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to persist task list")
		return domain.Task{}, err
	}

	s.logger.Info().Str("username", username).Str("task_id", task.ID).Msg("task added")
	return task, nil
}

// Edit replaces the text of the task with the given ID and persists the
// full list. Empty text fails with domain.ErrValidation; an unknown ID
// fails with domain.ErrTaskNotFound.
func (s *TaskService) Edit(ctx context.Context, username, taskID, text string) (domain.Task, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Task{}, domain.NewDomainError(domain.ErrValidation, "task text cannot be empty", taskID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := kv.TaskKey(username)
	tasks, err := loadJSON[[]domain.Task](ctx, s.store, key)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to load task list")
		return domain.Task{}, err
	}

	idx := indexOf(tasks, taskID)
	if idx < 0 {
		return domain.Task{}, domain.NewDomainError(domain.ErrTaskNotFound, "cannot edit", taskID)
	}

	tasks[idx].Text = text
	if err := saveJSON(ctx, s.store, key, tasks); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to persist task list")
		return domain.Task{}, err
	}

	s.logger.Info().Str("username", username).Str("task_id", taskID).Msg("task edited")
	return tasks[idx], nil
}

// ToggleCompletion flips the completed flag of the task with the given ID
// and persists the list. The updated task is returned so an active search
// view can keep its entry consistent with the underlying list.
func (s *TaskService) ToggleCompletion(ctx context.Context, username, taskID string) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := kv.TaskKey(username)
	tasks, err := loadJSON[[]domain.Task](ctx, s.store, key)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to load task list")
		return domain.Task{}, err
	}

	idx := indexOf(tasks, taskID)
	if idx < 0 {
		return domain.Task{}, domain.NewDomainError(domain.ErrTaskNotFound, "cannot toggle", taskID)
	}

	tasks[idx].Completed = !tasks[idx].Completed
	if err := saveJSON(ctx, s.store, key, tasks); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to persist task list")
		return domain.Task{}, err
	}

	s.logger.Info().
		Str("username", username).
		Str("task_id", taskID).
		Bool("completed", tasks[idx].Completed).
		Msg("task toggled")
	return tasks[idx], nil
}

// Delete removes exactly the task with the given ID and persists the list.
// Fails with domain.ErrConfirmationRequired unless confirmed is true, and
// with domain.ErrTaskNotFound for an unknown ID.
func (s *TaskService) Delete(ctx context.Context, username, taskID string, confirmed bool) error {
	if !confirmed {
		return domain.NewDomainError(domain.ErrConfirmationRequired, "delete task", taskID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := kv.TaskKey(username)
	tasks, err := loadJSON[[]domain.Task](ctx, s.store, key)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to load task list")
		return err
	}

	idx := indexOf(tasks, taskID)
	if idx < 0 {
		return domain.NewDomainError(domain.ErrTaskNotFound, "cannot delete", taskID)
	}

	tasks = append(tasks[:idx], tasks[idx+1:]...)
	if err := saveJSON(ctx, s.store, key, tasks); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to persist task list")
		return err
	}

	s.logger.Info().Str("username", username).Str("task_id", taskID).Msg("task deleted")
	return nil
}

// ClearAll removes the user's entire task list from the store, not just in
// memory. Other users' lists are unaffected.
// Fails with domain.ErrConfirmationRequired unless confirmed is true.
func (s *TaskService) ClearAll(ctx context.Context, username string, confirmed bool) error {
	if !confirmed {
		return domain.NewDomainError(domain.ErrConfirmationRequired, "clear all tasks", username)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(ctx, kv.TaskKey(username)); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to clear task list")
		return domain.NewDomainError(domain.ErrStorage, err.Error(), username)
	}

	s.logger.Info().Str("username", username).Msg("task list cleared")
	return nil
}

// Search returns tasks whose text contains query, case-insensitively. The
// match runs against the freshly loaded persisted list, not any sorted
// in-memory view. A blank query means "not searching": the full list is
// returned.
func (s *TaskService) Search(ctx context.Context, username, query string) ([]domain.Task, error) {
	tasks, err := loadJSON[[]domain.Task](ctx, s.store, kv.TaskKey(username))
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return tasks, nil
	}

	needle := strings.ToLower(query)
	matched := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Text), needle) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// SortTasks returns a sorted copy of tasks. Pure and in-memory: the result
// is never written back, so a reload reverts to storage order.
//
// SortByStatus keeps the relative order within the incomplete and completed
// groups. SortByDate orders most-recently-created first; tasks whose ID
// does not parse as a timestamp order after those that do. An unknown key
// returns the tasks unchanged.
func SortTasks(tasks []domain.Task, key SortKey) []domain.Task {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)

	switch key {
	case SortByStatus:
		sort.SliceStable(out, func(i, j int) bool {
			return !out[i].Completed && out[j].Completed
		})
	case SortByDate:
		sort.SliceStable(out, func(i, j int) bool {
			ti, okI := out[i].CreatedAt()
			tj, okJ := out[j].CreatedAt()
			if okI != okJ {
				return okI
			}
			return ti.After(tj)
		})
	}
	return out
}

// indexOf returns the position of the task with the given ID, or -1.
func indexOf(tasks []domain.Task, taskID string) int {
	for i, t := range tasks {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}
