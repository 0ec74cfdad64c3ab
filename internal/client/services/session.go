package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/localboost/internal/client/client"
	"github.com/dmitrijs2005/localboost/internal/client/models"
	"github.com/dmitrijs2005/localboost/internal/client/tokenstore"
	"github.com/dmitrijs2005/localboost/internal/logging"
	"golang.org/x/sync/semaphore"
)

// Status is the coarse state of a Session.
type Status int

const (
	StatusRestoring Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusRestoring:
		return "restoring"
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is a point-in-time copy of the manager's state. User and Token are
// either both set or both empty.
type Session struct {
	User      *models.User
	Token     string
	IsLoading bool
}

func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

func (s Session) Status() Status {
	switch {
	case s.IsLoading:
		return StatusRestoring
	case s.IsAuthenticated():
		return StatusAuthenticated
	default:
		return StatusAnonymous
	}
}

// Option configures a SessionManager.
type Option func(*SessionManager)

// WithClock replaces time.Now for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *SessionManager) { m.now = now }
}

// SessionManager owns the authentication state for the lifetime of the
// process. Build exactly one and pass it to whatever needs it.
type SessionManager struct {
	client client.Client
	store  tokenstore.Store
	log    logging.Logger
	now    func() time.Time

	// serializes every state transition
	sem *semaphore.Weighted

	restoreOnce sync.Once
	restored    chan struct{}

	mu      sync.RWMutex
	session Session
	subs    map[int]chan Session
	nextSub int
}

func NewSessionManager(c client.Client, store tokenstore.Store, log logging.Logger, opts ...Option) *SessionManager {
	m := &SessionManager{
		client:   c,
		store:    store,
		log:      log.With("component", "session"),
		now:      time.Now,
		sem:      semaphore.NewWeighted(1),
		restored: make(chan struct{}),
		session:  Session{IsLoading: true},
		subs:     make(map[int]chan Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore resolves the initial state from the persisted token. Only the
// first call does any work; the rest block until it has finished.
func (m *SessionManager) Restore(ctx context.Context) {
	m.restoreOnce.Do(func() { m.restore(ctx) })
}

func (m *SessionManager) restore(ctx context.Context) {
	// cannot fail: the context never ends
	_ = m.sem.Acquire(context.WithoutCancel(ctx), 1)
	defer m.sem.Release(1)
	defer close(m.restored)

	token, ok, err := m.store.Get(ctx)
	if err != nil {
		m.log.Warn(ctx, "token store unreadable, starting anonymous", "error", err)
		m.publish(Session{})
		return
	}
	if !ok {
		m.log.Info(ctx, "no stored session")
		m.publish(Session{})
		return
	}

	if client.TokenExpired(token, m.now()) {
		m.log.Info(ctx, "stored token expired, discarding")
		m.discardToken(ctx)
		m.publish(Session{})
		return
	}

	user, err := m.client.FetchCurrentUser(client.WithBearer(ctx, token))
	if err != nil {
		m.log.Warn(ctx, "stored token could not be verified, discarding", "error", err)
		m.discardToken(ctx)
		m.publish(Session{})
		return
	}

	m.log.Info(ctx, "session restored", "user_id", user.ID)
	m.publish(Session{User: user, Token: token})
}

// Login authenticates with email and password. On error neither the
// in-memory session nor the stored token change.
func (m *SessionManager) Login(ctx context.Context, creds models.Credentials) error {
	return m.authenticate(ctx, "login", func(ctx context.Context) (*models.TokenResponse, error) {
		return m.client.Login(ctx, creds)
	})
}

// Register creates an account and signs it in. Same guarantees as Login.
func (m *SessionManager) Register(ctx context.Context, reg models.Registration) error {
	return m.authenticate(ctx, "register", func(ctx context.Context) (*models.TokenResponse, error) {
		return m.client.Register(ctx, reg)
	})
}

// LoginWithGoogle exchanges a Google ID token. Same guarantees as Login.
func (m *SessionManager) LoginWithGoogle(ctx context.Context, idToken string) error {
	return m.authenticate(ctx, "google", func(ctx context.Context) (*models.TokenResponse, error) {
		return m.client.LoginWithGoogle(ctx, idToken)
	})
}

func (m *SessionManager) authenticate(ctx context.Context, method string, call func(context.Context) (*models.TokenResponse, error)) error {
	m.Restore(ctx)

	if err := m.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer m.sem.Release(1)

	tr, err := call(ctx)
	if err != nil {
		m.log.Info(ctx, "authentication failed", "method", method, "error", err)
		return err
	}

	// the profile is fetched with the candidate token so nothing is
	// persisted until the whole sign-in has succeeded
	user, err := m.client.FetchCurrentUser(client.WithBearer(ctx, tr.AccessToken))
	if err != nil {
		m.log.Warn(ctx, "profile fetch after authentication failed", "method", method, "error", err)
		return err
	}

	if err := m.store.Set(ctx, tr.AccessToken); err != nil {
		m.log.Error(ctx, "could not persist token", "method", method, "error", err)
		return err
	}

	m.log.Info(ctx, "session authenticated", "method", method, "user_id", user.ID)
	m.publish(Session{User: user, Token: tr.AccessToken})
	return nil
}

// Logout always ends Anonymous. A failure to clear the stored token is
// logged and otherwise ignored.
func (m *SessionManager) Logout(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	m.Restore(ctx)

	_ = m.sem.Acquire(ctx, 1)
	defer m.sem.Release(1)

	m.discardToken(ctx)
	if m.Session().IsAuthenticated() {
		m.log.Info(ctx, "logged out")
	}
	m.publish(Session{})
}

func (m *SessionManager) discardToken(ctx context.Context) {
	if err := m.store.Delete(context.WithoutCancel(ctx)); err != nil {
		m.log.Warn(ctx, "could not delete stored token", "error", err)
	}
}

// Session returns a snapshot of the current state.
func (m *SessionManager) Session() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.clone()
}

// Wait blocks until the initial restore has resolved. It does not start the
// restore itself.
func (m *SessionManager) Wait(ctx context.Context) (Session, error) {
	select {
	case <-m.restored:
		return m.Session(), nil
	case <-ctx.Done():
		return Session{}, ctx.Err()
	}
}

// Subscribe returns a channel carrying the current session followed by every
// later transition. A slow reader misses intermediate values but the latest
// one is always waiting. cancel closes the channel.
func (m *SessionManager) Subscribe() (<-chan Session, func()) {
	ch := make(chan Session, 1)

	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	ch <- m.session.clone()
	m.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			close(ch)
			m.mu.Unlock()
		})
	}
	return ch, cancel
}

func (m *SessionManager) publish(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = s
	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s.clone():
		default:
		}
	}
}

func (s Session) clone() Session {
	if s.User != nil {
		u := *s.User
		u.Name = cloneString(u.Name)
		u.Phone = cloneString(u.Phone)
		s.User = &u
	}
	return s
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
