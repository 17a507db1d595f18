// Package session models the acting user of the interactive shell as an
// explicit value passed into ledger operations, instead of a process-wide
// current-user global. The ledger never learns about login or logout; it
// only sees the session handed to each call.
package session

import "github.com/google/uuid"

// Session identifies a logged-in account for the duration of a shell login.
//
// The zero value represents "not logged in" and is rejected by ledger
// operations that require an acting account.
type Session struct {
	ID      string // Unique identifier for this login (UUIDv7)
	Account string // Name of the logged-in account
}

// New creates a Session for the given account with a fresh UUIDv7 identifier.
func New(account string) Session {
	return Session{
		ID:      uuid.Must(uuid.NewV7()).String(),
		Account: account,
	}
}

// Active reports whether the session carries a logged-in account.
func (s Session) Active() bool {
	return s.Account != ""
}
