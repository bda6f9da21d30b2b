// ABOUTME: Session state for the candidate portal: login, logout, profile
// ABOUTME: Any 401 from an authenticated call resets the session to empty

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Talentid15/Candidate/internal/client"
	"github.com/Talentid15/Candidate/internal/forms"
)

// Fallback messages used when the server sent none
const (
	MsgLoginFailed   = "Login failed"
	MsgProfileFailed = "Failed to load profile"
	MsgLogoutFailed  = "Logout failed"
)

// State is a copy of the session. IsAuthenticated implies Token != "".
type State struct {
	User            *client.Profile
	Token           string
	IsAuthenticated bool
	Loading         bool
	Error           string
}

// API is the subset of the backend the session needs
type API interface {
	Login(ctx context.Context, creds client.Credentials) (string, error)
	Profile(ctx context.Context, token string) (*client.Profile, error)
	Logout(ctx context.Context, token string) error
}

// Manager owns the session. Views get it injected; there is no global.
type Manager struct {
	api   API
	store *Store
	now   func() time.Time

	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int
}

// NewManager creates an empty, unauthenticated session. store may be nil.
func NewManager(api API, store *Store) *Manager {
	return &Manager{
		api:   api,
		store: store,
		now:   time.Now,
		subs:  make(map[int]func(State)),
	}
}

// Init restores a persisted session. A stored token whose exp has passed is
// discarded the same way a 401 would discard it.
func (m *Manager) Init(ctx context.Context) error {
	rec, err := m.store.load()
	if err != nil {
		return err
	}
	if rec.Token == "" {
		return nil
	}
	if expired(rec.Token, m.now()) {
		slog.InfoContext(ctx, "Stored session expired", "file", m.store.Path())
		m.ClearAuthState()
		return nil
	}

	m.mu.Lock()
	m.state = State{User: rec.User, Token: rec.Token, IsAuthenticated: true}
	m.mu.Unlock()
	slog.DebugContext(ctx, "Session restored", "file", m.store.Path())
	m.notify()
	return nil
}

// Login validates the credentials locally, exchanges them for a token, then
// fetches the profile. On failure the session stays unauthenticated.
func (m *Manager) Login(ctx context.Context, creds client.Credentials) error {
	if err := forms.Validate(forms.LoginForm{Email: creds.Email, Password: creds.Password}); err != nil {
		var ve *forms.ValidationError
		if errors.As(err, &ve) {
			m.update(func(s *State) { s.Error = ve.First() })
		}
		return err
	}

	m.update(func(s *State) {
		s.Loading = true
		s.Error = ""
	})

	token, err := m.api.Login(ctx, creds)
	if err != nil {
		slog.WarnContext(ctx, "Login failed", "email", creds.Email, "error", err)
		m.update(func(s *State) {
			*s = State{Error: client.MessageOf(err, MsgLoginFailed)}
		})
		return fmt.Errorf("login: %w", err)
	}

	m.update(func(s *State) {
		s.Token = token
		s.IsAuthenticated = true
	})

	if _, err := m.FetchProfile(ctx); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			m.update(func(s *State) { s.Error = MsgLoginFailed })
			return fmt.Errorf("login: %w", err)
		}
		// The token is still good; the header falls back to "User".
		slog.WarnContext(ctx, "Profile unavailable after login", "error", err)
		m.persist()
	}

	m.update(func(s *State) { s.Loading = false })
	slog.InfoContext(ctx, "Logged in", "email", creds.Email)
	return nil
}

// Logout calls the server on a best-effort basis and always clears the local
// session. The remote error, if any, is returned for display.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	token := m.state.Token
	m.state.Loading = true
	m.mu.Unlock()
	m.notify()

	var err error
	if token != "" {
		if err = m.api.Logout(ctx, token); err != nil {
			slog.WarnContext(ctx, "Remote logout failed", "error", err)
			err = fmt.Errorf("logout: %w", err)
		}
	}
	m.ClearAuthState()
	return err
}

// FetchProfile loads the candidate profile with the current token. A 401
// empties the session.
func (m *Manager) FetchProfile(ctx context.Context) (*client.Profile, error) {
	var profile *client.Profile
	err := m.Authorized(ctx, func(ctx context.Context, token string) error {
		p, err := m.api.Profile(ctx, token)
		profile = p
		return err
	})
	if err != nil {
		if !errors.Is(err, client.ErrUnauthorized) {
			m.update(func(s *State) { s.Error = client.MessageOf(err, MsgProfileFailed) })
		}
		return nil, err
	}

	m.update(func(s *State) {
		if s.IsAuthenticated {
			s.User = profile
		}
	})
	m.persist()
	return profile, nil
}

// Authorized runs fn with the bearer token. An ErrUnauthorized from fn is the
// one path that downgrades the session automatically. Without a token fn is
// not called.
func (m *Manager) Authorized(ctx context.Context, fn func(ctx context.Context, token string) error) error {
	m.mu.Lock()
	token := m.state.Token
	m.mu.Unlock()

	if token == "" {
		return fmt.Errorf("%w: not logged in", client.ErrUnauthorized)
	}

	err := fn(ctx, token)
	if errors.Is(err, client.ErrUnauthorized) {
		m.mu.Lock()
		current := m.state.Token == token
		m.mu.Unlock()
		// A newer login must not be undone by a stale response.
		if current {
			slog.InfoContext(ctx, "Session rejected by server, clearing")
			m.ClearAuthState()
		}
	}
	return err
}

// ClearAuthState resets the session to empty, deletes the stored session and
// notifies subscribers.
func (m *Manager) ClearAuthState() {
	m.mu.Lock()
	m.state = State{}
	m.mu.Unlock()

	if err := m.store.clear(); err != nil {
		slog.Warn("Failed to remove session file", "error", err)
	}
	m.notify()
}

// Subscribe registers fn to run after every state change. The returned
// release func unregisters it and may be called any number of times.
func (m *Manager) Subscribe(fn func(State)) (release func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Teardown releases every subscriber
func (m *Manager) Teardown() {
	m.mu.Lock()
	m.subs = make(map[int]func(State))
	m.mu.Unlock()
}

// Snapshot returns a copy of the current state
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// SetError replaces the displayed session error
func (m *Manager) SetError(msg string) {
	m.update(func(s *State) { s.Error = msg })
}

func (m *Manager) snapshotLocked() State {
	s := m.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

func (m *Manager) update(fn func(*State)) {
	m.mu.Lock()
	fn(&m.state)
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) persist() {
	m.mu.Lock()
	s := m.snapshotLocked()
	m.mu.Unlock()
	if !s.IsAuthenticated {
		return
	}
	if err := m.store.save(s.Token, s.User); err != nil {
		slog.Warn("Failed to persist session", "error", err)
	}
}

// notify calls subscribers outside the lock so they may read the session
func (m *Manager) notify() {
	m.mu.Lock()
	s := m.snapshotLocked()
	fns := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
