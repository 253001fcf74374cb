// Package session owns the client session lifecycle: a single signed-in
// Identity, durable across restarts in a local key-value store, with
// login/signup/logout transitions gating the protected surface.
package session

// Identity is a signed-in user's minimal profile record. It is never
// partially constructed: creation always supplies id, email and name
// atomically, and it exists if and only if a session is active.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Plan  string `json:"plan"`
}

// State describes the authentication state of the process.
type State int

const (
	// StateInitializing means the durable record has not been read yet.
	// It is transient and resolves to exactly one of the other two states
	// before any protected-route decision is made.
	StateInitializing State = iota

	// StateAuthenticated means an Identity is present.
	StateAuthenticated

	// StateAnonymous means no session is active.
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}
