// Package domain contains the core business entities for todovault.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the task-keeping service.
package domain

// User represents a registered account in the directory.
//
// Credentials are stored exactly as entered: the service is a single-device
// personal vault and deliberately does no password hashing. Authentication is
// a case-sensitive exact match on both fields.
type User struct {
	// Username is the unique identifier for the account.
	// Uniqueness is case-sensitive and exact.
	Username string `json:"username"`

	// Password is the plaintext password for the account.
	Password string `json:"password"`
}

// NewUser creates a new User record.
func NewUser(username, password string) User {
	return User{
		Username: username,
		Password: password,
	}
}

// Matches reports whether the given credentials match this record exactly.
func (u User) Matches(username, password string) bool {
	return u.Username == username && u.Password == password
}
