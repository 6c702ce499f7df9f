// Package session owns the authentication lifecycle: login, logout,
// transparent refresh, and the read-only facts consumed by routing and UI
// code.
package session

import (
	"context"
	"sync"

	"github.com/lucky-sheltered-boy/BUAA-database-2025/models"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/store"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Navigator is the single navigation capability this core consumes: logout
// and failed refresh use it to reach the login entry point.
type Navigator interface {
	NavigateTo(path string)
}

// AuthClient is the slice of the request pipeline the session needs for its
// own transitions.
type AuthClient interface {
	Post(ctx context.Context, path string, body any, out any) error
}

// Facts is an immutable snapshot of the current authentication state,
// recomputed after every transition.
type Facts struct {
	LoggedIn    bool
	Role        models.Role
	DisplayName string
	UserID      int
}

// Machine is the session state machine. It has two states: logged out and
// logged in with a credential unit. All credential writes are serialized,
// and concurrent refreshes are coalesced so at most one is in flight.
type Machine struct {
	mu    sync.RWMutex
	creds models.Credentials

	store  store.CredentialStore
	api    AuthClient
	nav    Navigator
	logger *zap.Logger

	refreshGroup singleflight.Group

	listenerMu sync.Mutex
	listeners  []func(Facts)
}

// New builds the machine, deriving the initial state from the persisted
// credential unit: a non-empty stored token starts the session logged in.
func New(st store.CredentialStore, api AuthClient, nav Navigator, logger *zap.Logger) (*Machine, error) {
	creds, err := st.Load()
	if err != nil {
		return nil, err
	}
	return &Machine{
		creds:  creds,
		store:  st,
		api:    api,
		nav:    nav,
		logger: logger,
	}, nil
}

// AccessToken implements the pipeline's credential source.
func (m *Machine) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds.AccessToken
}

// IsLoggedIn reports whether a session is active.
func (m *Machine) IsLoggedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds.LoggedIn()
}

// Facts returns the current read-only session facts. All fields take their
// zero defaults when logged out.
func (m *Machine) Facts() Facts {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return factsOf(m.creds)
}

func factsOf(creds models.Credentials) Facts {
	if !creds.LoggedIn() || creds.Profile == nil {
		return Facts{}
	}
	return Facts{
		LoggedIn:    true,
		Role:        models.ParseRole(creds.Profile.Role),
		DisplayName: creds.Profile.Name,
		UserID:      creds.Profile.UserID,
	}
}

// Subscribe registers a listener invoked with a fresh facts snapshot after
// every transition.
func (m *Machine) Subscribe(fn func(Facts)) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Machine) notify(facts Facts) {
	m.listenerMu.Lock()
	listeners := make([]func(Facts), len(m.listeners))
	copy(listeners, m.listeners)
	m.listenerMu.Unlock()
	for _, fn := range listeners {
		fn(facts)
	}
}

// Login exchanges credentials for a token pair. On success the new unit is
// persisted and the profile returned; on failure the state is untouched and
// the classified error propagates.
func (m *Machine) Login(ctx context.Context, username, password string) (*models.UserProfile, error) {
	var tokens models.TokenResponse
	err := m.api.Post(ctx, "/auth/login", models.LoginRequest{Username: username, Password: password}, &tokens)
	if err != nil {
		return nil, err
	}

	profile := tokens.UserInfo
	creds := models.Credentials{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Profile:      &profile,
	}
	if err := m.commit(creds); err != nil {
		return nil, err
	}

	m.logger.Info("login succeeded",
		zap.String("username", profile.Username), zap.String("role", profile.Role))
	return &profile, nil
}

// commit persists the new unit and only then replaces the in-memory state,
// so a persistence failure leaves the previous state intact.
func (m *Machine) commit(creds models.Credentials) error {
	m.mu.Lock()
	if err := m.store.Save(creds); err != nil {
		m.mu.Unlock()
		return err
	}
	m.creds = creds
	facts := factsOf(creds)
	m.mu.Unlock()

	m.notify(facts)
	return nil
}

// Refresh exchanges the stored refresh token for a new credential unit.
// Failure is never raised: it is absorbed into a logout plus navigation to
// the login entry point, and the caller observes only the boolean result.
// Concurrent callers are coalesced; followers reuse the leader's outcome.
func (m *Machine) Refresh(ctx context.Context) bool {
	result, _, _ := m.refreshGroup.Do("refresh", func() (any, error) {
		return m.refreshOnce(ctx), nil
	})
	return result.(bool)
}

func (m *Machine) refreshOnce(ctx context.Context) bool {
	m.mu.RLock()
	refreshToken := m.creds.RefreshToken
	m.mu.RUnlock()

	if refreshToken == "" {
		m.Logout()
		return false
	}

	var tokens models.TokenResponse
	err := m.api.Post(ctx, "/auth/refresh", models.RefreshRequest{RefreshToken: refreshToken}, &tokens)
	if err != nil {
		m.logger.Warn("token refresh failed, logging out", zap.Error(err))
		m.Logout()
		return false
	}

	profile := tokens.UserInfo
	if err := m.commit(models.Credentials{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Profile:      &profile,
	}); err != nil {
		m.logger.Error("persisting refreshed credentials failed, logging out", zap.Error(err))
		m.Logout()
		return false
	}
	return true
}

// Logout drops the session, clears the persisted unit, and navigates to
// the login entry point. Idempotent.
func (m *Machine) Logout() {
	m.mu.Lock()
	m.creds = models.Credentials{}
	if err := m.store.Clear(); err != nil {
		m.logger.Error("clearing persisted credentials failed", zap.Error(err))
	}
	m.mu.Unlock()

	m.notify(Facts{})
	if m.nav != nil {
		m.nav.NavigateTo(utils.LoginPath)
	}
}

// HandleUnauthorized is the pipeline's hook for a 401 outside the login
// endpoint.
func (m *Machine) HandleUnauthorized() {
	m.Logout()
}

// TermID returns the persisted term selection, or 0 when none is stored.
func (m *Machine) TermID() int {
	id, err := m.store.LoadTermID()
	if err != nil {
		m.logger.Warn("loading term selection failed", zap.Error(err))
		return 0
	}
	return id
}

// SetTermID persists the term selection.
func (m *Machine) SetTermID(id int) error {
	return m.store.SaveTermID(id)
}
