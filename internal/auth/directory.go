// Package auth is the user directory: registration, login, and the single
// current-login session.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"healthease/internal/idgen"
	"healthease/internal/model"
	"healthease/internal/storage"
	"healthease/internal/store"
)

const (
	usersKey   = "healthEase_users"
	sessionKey = "healthEase_currentUser"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many attempts")
)

// Config tunes the register/login attempt limiter. Zero values fall back
// to defaults generous enough that a single interactive client never
// trips them.
type Config struct {
	LoginRPS   float64
	LoginBurst int
}

// Directory owns the users collection and the session pointer. The session
// is explicit state: loaded from the store when the directory is built,
// written on login, cleared on logout.
type Directory struct {
	users    *store.Collection[model.User]
	backend  storage.Store
	attempts *attemptLimiter

	mu      sync.Mutex
	session *model.User
}

// New builds a directory over backend and loads any persisted session.
// A session value that fails to decode reads as logged out; only backend
// failures are errors here.
func New(ctx context.Context, backend storage.Store, cfg Config) (*Directory, error) {
	rps := cfg.LoginRPS
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.LoginBurst
	if burst <= 0 {
		burst = 10
	}

	d := &Directory{
		users:    store.New(backend, usersKey, func() []model.User { return []model.User{} }, validateUser),
		backend:  backend,
		attempts: newAttemptLimiter(rps, burst),
	}

	raw, ok, err := backend.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if ok {
		var u model.User
		if err := json.Unmarshal([]byte(raw), &u); err == nil && u.ID != "" {
			d.session = &u
		}
	}
	return d, nil
}

func validateUser(u model.User) error {
	if u.ID == "" {
		return errors.New("user id missing")
	}
	if u.Email == "" {
		return errors.New("user email missing")
	}
	return nil
}

// Register creates a new account. Email matching is exact and
// case-sensitive; a match fails with ErrDuplicateEmail and writes nothing.
// Registering does not log the user in.
func (d *Directory) Register(ctx context.Context, firstName, lastName, email, password string) error {
	if !d.attempts.allow(email) {
		return ErrTooManyAttempts
	}

	return d.users.Update(ctx, func(users []model.User) ([]model.User, error) {
		for _, u := range users {
			if u.Email == email {
				return nil, ErrDuplicateEmail
			}
		}
		return append(users, model.User{
			ID:        idgen.NextString(),
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			Password:  password,
		}), nil
	})
}

// Login finds the first user matching both email and password exactly,
// persists a full copy of that record as the session, and returns it. On
// ErrInvalidCredentials any existing session is left untouched.
func (d *Directory) Login(ctx context.Context, email, password string) (*model.User, error) {
	if !d.attempts.allow(email) {
		return nil, ErrTooManyAttempts
	}

	users, err := d.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email && u.Password == password {
			raw, err := json.Marshal(u)
			if err != nil {
				return nil, err
			}
			if err := d.backend.Set(ctx, sessionKey, string(raw)); err != nil {
				return nil, err
			}
			d.mu.Lock()
			d.session = &u
			d.mu.Unlock()
			out := u
			return &out, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (d *Directory) CurrentUser() *model.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil {
		return nil
	}
	u := *d.session
	return &u
}

// IsAuthenticated reports whether a session exists.
func (d *Directory) IsAuthenticated() bool {
	return d.CurrentUser() != nil
}

// Logout clears the session. Logging out while logged out is a no-op.
func (d *Directory) Logout(ctx context.Context) error {
	if err := d.backend.Remove(ctx, sessionKey); err != nil {
		return err
	}
	d.mu.Lock()
	d.session = nil
	d.mu.Unlock()
	return nil
}
