package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"stockguard/internal/common"
	"stockguard/internal/logging"
)

// Store is the single source of truth for "who is signed in", durable across
// restarts within one installation. It starts in StateInitializing and
// resolves to exactly one of StateAuthenticated or StateAnonymous on
// Initialize, before any protected-route decision is made.
//
// Login and signup are simulated on purpose: fields are checked for
// presence, nothing is verified against anything, and the identity is
// synthesized from the submitted email. This mirrors the product's actual
// (absent) security guarantees and must not be "fixed" with real credential
// verification.
type Store struct {
	mu       sync.RWMutex
	state    State
	identity *Identity
	record   string

	repo     Repository
	secret   []byte
	validity time.Duration
	log      logging.Logger
}

func NewStore(repo Repository, secretKey string, validity time.Duration, log logging.Logger) *Store {
	return &Store{
		state:    StateInitializing,
		repo:     repo,
		secret:   []byte(secretKey),
		validity: validity,
		log:      log.With("component", "session"),
	}
}

// Initialize reads the durable record once and resolves the initial state.
// It is idempotent: calls after the first are no-ops returning the already
// resolved state. A failed or unreadable read resolves to StateAnonymous.
func (s *Store) Initialize(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInitializing {
		return s.state
	}

	record, err := s.repo.Get(ctx, common.SessionRecordKey)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.log.Warn(ctx, "session record unreadable, starting anonymous", "error", err)
		}
		s.state = StateAnonymous
		return s.state
	}

	identity, err := DecodeRecord(record, s.secret)
	if err != nil {
		s.log.Warn(ctx, "session record invalid, starting anonymous")
		s.state = StateAnonymous
		return s.state
	}

	s.identity = identity
	s.record = record
	s.state = StateAuthenticated
	s.log.Info(ctx, "session restored", "user_id", identity.ID, "email", identity.Email)
	return s.state
}

// Login synthesizes an Identity from the email and persists it. Both fields
// must be non-empty; nothing stronger is checked. The returned string is the
// signed session record.
func (s *Store) Login(ctx context.Context, email, password string) (*Identity, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	identity := &Identity{
		ID:    uuid.NewString(),
		Email: email,
		Name:  localPart(email),
		Plan:  common.DefaultPlan,
	}

	return s.establish(ctx, identity)
}

// Signup creates an Identity with the supplied name. All three fields must
// be non-empty; the rest of the contract matches Login.
func (s *Store) Signup(ctx context.Context, name, email, password string) (*Identity, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: all fields are required", common.ErrValidation)
	}

	identity := &Identity{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
		Plan:  common.DefaultPlan,
	}

	return s.establish(ctx, identity)
}

// establish signs and persists the identity and flips the in-memory state.
// A failed durable write is surfaced as ErrStorage but does not block the
// in-memory transition; the session simply will not survive a restart.
func (s *Store) establish(ctx context.Context, identity *Identity) (*Identity, string, error) {
	record, err := EncodeRecord(identity, s.secret, s.validity)
	if err != nil {
		return nil, "", fmt.Errorf("%w: signing session record: %v", common.ErrStorage, err)
	}

	s.mu.Lock()
	s.identity = identity
	s.record = record
	s.state = StateAuthenticated
	s.mu.Unlock()

	if err := s.repo.Set(ctx, common.SessionRecordKey, record); err != nil {
		s.log.Error(ctx, "failed to persist session record", "error", err)
		return identity, record, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	s.log.Info(ctx, "session established", "user_id", identity.ID, "email", identity.Email)
	return identity, record, nil
}

// Logout clears the durable record and resets the state to StateAnonymous.
// The in-memory reset always happens; a failed durable clear is returned as
// ErrStorage for the caller to surface, and is not fatal.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.identity = nil
	s.record = ""
	s.state = StateAnonymous
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, common.SessionRecordKey); err != nil {
		s.log.Error(ctx, "failed to clear session record", "error", err)
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	s.log.Info(ctx, "session cleared")
	return nil
}

// State reports the current session state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Current returns the active Identity, or false when the session is not
// authenticated. The returned value is a copy.
func (s *Store) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated || s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// Record returns the signed session record for the active session, or an
// empty string when anonymous.
func (s *Store) Record() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record
}

// localPart derives a display name from the email, matching the product's
// "name defaults to everything before the @" behavior.
func localPart(email string) string {
	return strings.SplitN(email, "@", 2)[0]
}
