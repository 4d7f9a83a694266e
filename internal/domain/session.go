package domain

// HistoryLimit is the maximum number of login timestamps retained.
// Older entries are discarded when a new login is recorded.
const HistoryLimit = 5

// Session identifies the currently logged-in user.
// At most one session is active at a time (single-device model).
type Session struct {
	// Username is the account the session belongs to.
	Username string `json:"username"`
}

// LoginHistory is the bounded recent-login log, most-recent-first.
// The history is global to the store, not partitioned per user; this mirrors
// the observed product behavior and is kept as a known limitation.
type LoginHistory []string

// Prepend returns the history with ts added at the front, truncated to
// HistoryLimit entries.
func (h LoginHistory) Prepend(ts string) LoginHistory {
	out := make(LoginHistory, 0, len(h)+1)
	out = append(out, ts)
	out = append(out, h...)
	if len(out) > HistoryLimit {
		out = out[:HistoryLimit]
	}
	return out
}
