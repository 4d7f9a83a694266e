package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/okovalenko/todovault/internal/domain"
	"github.com/okovalenko/todovault/internal/kv/memory"
)

func newTaskService(t *testing.T) (*TaskService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewTaskService(store, zerolog.Nop())
	svc.now = fixedClock(time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))
	return svc, store
}

func TestTaskServiceAddAndList(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips a task through the store", func(t *testing.T) {
		svc, _ := newTaskService(t)

		task, err := svc.Add(ctx, "alice", "buy milk")
		require.NoError(t, err)
		require.Equal(t, "buy milk", task.Text)
		require.False(t, task.Completed)
		require.NotEmpty(t, task.ID)

		tasks, err := svc.List(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.Equal(t, task, tasks[0])
	})

	t.Run("list is empty for an unknown user", func(t *testing.T) {
		svc, _ := newTaskService(t)

		tasks, err := svc.List(ctx, "nobody")
		require.NoError(t, err)
		require.Empty(t, tasks)
	})

	t.Run("rejects empty text without creating a task", func(t *testing.T) {
		svc, _ := newTaskService(t)

		_, err := svc.Add(ctx, "alice", "   ")
		require.ErrorIs(t, err, domain.ErrValidation)

		tasks, err := svc.List(ctx, "alice")
		require.NoError(t, err)
		require.Empty(t, tasks)
	})

	t.Run("task IDs parse back into creation time", func(t *testing.T) {
		svc, _ := newTaskService(t)

		task, err := svc.Add(ctx, "alice", "first")
		require.NoError(t, err)

		created, ok := task.CreatedAt()
		require.True(t, ok)
		require.Equal(t, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), created)
	})
}

func TestTaskServiceEdit(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTaskService(t)

	task, err := svc.Add(ctx, "alice", "original")
	require.NoError(t, err)

	t.Run("replaces the text of the matching task", func(t *testing.T) {
		edited, err := svc.Edit(ctx, "alice", task.ID, "updated")
		require.NoError(t, err)
		require.Equal(t, "updated", edited.Text)
		require.Equal(t, task.ID, edited.ID)

		tasks, err := svc.List(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, "updated", tasks[0].Text)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		_, err := svc.Edit(ctx, "alice", task.ID, "")
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("fails for an unknown ID", func(t *testing.T) {
		_, err := svc.Edit(ctx, "alice", "no-such-id", "text")
		require.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}

func TestTaskServiceToggleCompletion(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTaskService(t)

	task, err := svc.Add(ctx, "alice", "buy milk")
	require.NoError(t, err)

	// First toggle marks it done and persists that state.
	toggled, err := svc.ToggleCompletion(ctx, "alice", task.ID)
	require.NoError(t, err)
	require.True(t, toggled.Completed)

	tasks, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.True(t, tasks[0].Completed)

	// Second toggle restores the original value, also persisted.
	toggled, err = svc.ToggleCompletion(ctx, "alice", task.ID)
	require.NoError(t, err)
	require.False(t, toggled.Completed)

	tasks, err = svc.List(ctx, "alice")
	require.NoError(t, err)
	require.False(t, tasks[0].Completed)

	_, err = svc.ToggleCompletion(ctx, "alice", "no-such-id")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("requires confirmation", func(t *testing.T) {
		svc, _ := newTaskService(t)
		task, err := svc.Add(ctx, "alice", "keep me")
		require.NoError(t, err)

		err = svc.Delete(ctx, "alice", task.ID, false)
		require.ErrorIs(t, err, domain.ErrConfirmationRequired)

		tasks, err := svc.List(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, tasks, 1)
	})

	t.Run("removes exactly the matching task", func(t *testing.T) {
		for _, size := range []int{1, 2, 5} {
			svc, _ := newTaskService(t)

			var ids []string
			for i := 0; i < size; i++ {
				task, err := svc.Add(ctx, "alice", "task")
				require.NoError(t, err)
				ids = append(ids, task.ID)
			}

			victim := ids[size/2]
			require.NoError(t, svc.Delete(ctx, "alice", victim, true))

			tasks, err := svc.List(ctx, "alice")
			require.NoError(t, err)
			require.Len(t, tasks, size-1)
			for _, task := range tasks {
				require.NotEqual(t, victim, task.ID)
			}
		}
	})

	t.Run("fails for an unknown ID", func(t *testing.T) {
		svc, _ := newTaskService(t)
		err := svc.Delete(ctx, "alice", "no-such-id", true)
		require.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}

func TestTaskServiceClearAll(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTaskService(t)

	_, err := svc.Add(ctx, "alice", "mine")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "bob", "his")
	require.NoError(t, err)

	err = svc.ClearAll(ctx, "alice", false)
	require.ErrorIs(t, err, domain.ErrConfirmationRequired)

	require.NoError(t, svc.ClearAll(ctx, "alice", true))

	aliceTasks, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, aliceTasks)

	// Other users' lists are untouched.
	bobTasks, err := svc.List(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobTasks, 1)
}

func TestSortTasks(t *testing.T) {
	t.Run("status sort puts incomplete first, preserving group order", func(t *testing.T) {
		tasks := []domain.Task{
			{ID: "1", Text: "A", Completed: true},
			{ID: "2", Text: "B", Completed: false},
			{ID: "3", Text: "C", Completed: false},
		}

		sorted := SortTasks(tasks, SortByStatus)
		require.Equal(t, []string{"B", "C", "A"}, texts(sorted))

		// The input slice is untouched.
		require.Equal(t, []string{"A", "B", "C"}, texts(tasks))
	})

	t.Run("date sort is most-recently-created first", func(t *testing.T) {
		tasks := []domain.Task{
			{ID: "2026-08-01T10:00:00Z", Text: "old"},
			{ID: "2026-08-03T10:00:00Z", Text: "new"},
			{ID: "2026-08-02T10:00:00Z", Text: "mid"},
		}

		sorted := SortTasks(tasks, SortByDate)
		require.Equal(t, []string{"new", "mid", "old"}, texts(sorted))
	})

	t.Run("unparseable IDs order after parseable ones", func(t *testing.T) {
		tasks := []domain.Task{
			{ID: "garbage", Text: "junk"},
			{ID: "2026-08-01T10:00:00Z", Text: "real"},
		}

		sorted := SortTasks(tasks, SortByDate)
		require.Equal(t, []string{"real", "junk"}, texts(sorted))
	})

	t.Run("unknown key leaves the order unchanged", func(t *testing.T) {
		tasks := []domain.Task{
			{ID: "1", Text: "A"},
			{ID: "2", Text: "B"},
		}
		sorted := SortTasks(tasks, SortKey("bogus"))
		require.Equal(t, []string{"A", "B"}, texts(sorted))
	})
}

func TestTaskServiceSearch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTaskService(t)

	_, err := svc.Add(ctx, "alice", "Buy milk")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "alice", "walk the dog")
	require.NoError(t, err)

	t.Run("matches case-insensitively", func(t *testing.T) {
		found, err := svc.Search(ctx, "alice", "milk")
		require.NoError(t, err)
		require.Len(t, found, 1)
		require.Equal(t, "Buy milk", found[0].Text)

		found, err = svc.Search(ctx, "alice", "MILK")
		require.NoError(t, err)
		require.Len(t, found, 1)
	})

	t.Run("blank query returns the unfiltered list", func(t *testing.T) {
		found, err := svc.Search(ctx, "alice", "   ")
		require.NoError(t, err)
		require.Len(t, found, 2)
	})

	t.Run("no match yields an empty result", func(t *testing.T) {
		found, err := svc.Search(ctx, "alice", "xyzzy")
		require.NoError(t, err)
		require.Empty(t, found)
	})
}

func texts(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}
