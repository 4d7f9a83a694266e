package domain

import "time"

// TaskIDFormat is the timestamp layout used for task IDs.
// The ID doubles as the creation marker: sorting "by date" parses it back.
const TaskIDFormat = time.RFC3339Nano

// Task is a single to-do entry scoped to one user.
type Task struct {
	// ID is the task identifier, derived from the creation timestamp.
	// Unique in practice; two tasks created within the same nanosecond
	// would collide, which is accepted at this scale.
	ID string `json:"id"`

	// Text is the user-entered task description.
	Text string `json:"text"`

	// Completed indicates whether the task has been marked done.
	Completed bool `json:"completed"`
}

// NewTask creates a new incomplete Task with an ID derived from createdAt.
func NewTask(text string, createdAt time.Time) Task {
	return Task{
		ID:        createdAt.UTC().Format(TaskIDFormat),
		Text:      text,
		Completed: false,
	}
}

// CreatedAt parses the task ID back into its creation time.
// Returns the zero time and false if the ID is not a valid timestamp.
func (t Task) CreatedAt() (time.Time, bool) {
	ts, err := time.Parse(TaskIDFormat, t.ID)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
