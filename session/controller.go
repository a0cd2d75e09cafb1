package session

import (
	"encoding/json"
	"sync"

	"github.com/lawbridge/go-session-core/identity"
	"github.com/lawbridge/go-session-core/routes"
	"github.com/lawbridge/go-session-core/store"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Snapshot is an immutable view of session state handed to subscribers and
// read by the route guard. Identity is a copy; mutating it has no effect on
// the controller.
type Snapshot struct {
	Identity      *identity.Identity
	Token         string
	Authenticated bool
	Impersonating bool
	Bootstrapped  bool
	AuthUIOpen    bool
}

// Role returns the normalized role of the snapshot identity, or RoleUnknown
// when no identity is present.
func (s Snapshot) Role() identity.Role {
	if s.Identity == nil {
		return identity.RoleUnknown
	}
	return s.Identity.NormalizedRole()
}

// Controller is the single in-process authority on who is logged in. All
// reads after Bootstrap go through it, never directly to the store; every
// mutation rewrites the store synchronously before returning so a reload
// immediately after any call observes consistent state.
type Controller struct {
	store store.Store
	nav   routes.Navigator
	log   zerolog.Logger

	lock          sync.RWMutex
	current       *identity.Identity
	authToken     string
	authenticated bool
	impersonating bool
	bootstrapped  bool
	authUIOpen    bool

	subLock     sync.Mutex
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// Option modifies a Controller at construction time.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithNavigator sets the navigation collaborator used by impersonation.
func WithNavigator(nav routes.Navigator) Option {
	return func(c *Controller) {
		c.nav = nav
	}
}

// New creates a Controller over the given store. The controller starts
// unbootstrapped; call Bootstrap once at process start.
func New(st store.Store, options ...Option) (*Controller, error) {
	if st == nil {
		return nil, errors.New("[New] session store is required")
	}

	c := &Controller{
		store:       st,
		nav:         nopNavigator{},
		log:         zerolog.Nop(),
		subscribers: make(map[int]func(Snapshot)),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Bootstrap reconstructs session state from the persistent store. It runs
// once at process start, before any asynchronous verification has completed.
// A corrupt stored identity is recovered by treating it as absent. The
// session authenticates only when both a non-empty token and the logged-in
// flag are present; either alone is insufficient.
func (c *Controller) Bootstrap() {
	c.lock.Lock()

	c.current = c.readStoredIdentity()

	tok, _ := c.store.Read(store.KeyToken)
	flag, _ := c.store.Read(store.KeyIsLoggedIn)
	c.authToken = tok
	c.authenticated = tok != "" && flag == store.TrueValue

	imp, _ := c.store.Read(store.KeyIsImpersonating)
	c.impersonating = imp == store.TrueValue

	c.bootstrapped = true
	c.lock.Unlock()

	c.log.Debug().
		Bool("authenticated", c.Authenticated()).
		Bool("impersonating", c.Impersonating()).
		Msg("session bootstrapped")
	c.notify()
}

// Login replaces the current identity wholesale and authenticates the
// session. An empty token means the caller already persisted the token
// out-of-band; the operation is idempotent either way. Any open
// authentication UI is closed.
func (c *Controller) Login(id identity.Identity, tok string) {
	id.Role = id.NormalizedRole()

	c.lock.Lock()
	c.current = &id
	c.authenticated = true
	if tok != "" {
		c.authToken = tok
		c.store.Write(store.KeyToken, tok)
	} else if c.authToken == "" {
		if stored, ok := c.store.Read(store.KeyToken); ok {
			c.authToken = stored
		}
	}
	c.persistIdentityLocked(&id)
	c.store.Write(store.KeyIsLoggedIn, store.TrueValue)
	c.authUIOpen = false
	c.lock.Unlock()

	c.log.Debug().Str("role", string(id.Role)).Msg("session login")
	c.notify()
}

// Logout clears the active session and its persisted keys and returns the
// state machine to normal. The impersonation frame keys (adminToken,
// adminUser, adminReferrer) are deliberately left alone; logging out
// mid-impersonation orphans them, and a later switch-back consumes or
// ignores them without crashing.
func (c *Controller) Logout() {
	c.lock.Lock()
	c.current = nil
	c.authToken = ""
	c.authenticated = false
	c.impersonating = false
	c.store.Remove(store.KeyUser)
	c.store.Remove(store.KeyIsLoggedIn)
	c.store.Remove(store.KeyUserRole)
	c.store.Remove(store.KeyToken)
	c.store.Remove(store.KeyIsImpersonating)
	c.lock.Unlock()

	c.log.Debug().Msg("session logout")
	c.notify()
}

// Refresh merges server-confirmed fields into the current identity and
// re-persists it. Authentication state and the token are never touched.
func (c *Controller) Refresh(patch identity.Patch) error {
	c.lock.Lock()
	if c.current == nil {
		c.lock.Unlock()
		return NoIdentityErr
	}
	merged := c.current.Merge(patch)
	c.current = &merged
	c.persistIdentityLocked(&merged)
	c.lock.Unlock()

	c.notify()
	return nil
}

// OpenAuthUI marks the authentication UI as open. Login closes it.
func (c *Controller) OpenAuthUI() {
	c.lock.Lock()
	c.authUIOpen = true
	c.lock.Unlock()
	c.notify()
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.snapshotLocked()
}

// Authenticated reports whether the session holds a live authentication.
func (c *Controller) Authenticated() bool {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.authenticated
}

// Impersonating reports whether an impersonation frame is active.
func (c *Controller) Impersonating() bool {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.impersonating
}

// Bootstrapped reports whether Bootstrap has completed.
func (c *Controller) Bootstrapped() bool {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.bootstrapped
}

// Identity returns a copy of the current identity, or nil.
func (c *Controller) Identity() *identity.Identity {
	c.lock.RLock()
	defer c.lock.RUnlock()
	if c.current == nil {
		return nil
	}
	id := *c.current
	return &id
}

// Token returns the active bearer token, empty when unauthenticated.
func (c *Controller) Token() string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.authToken
}

// Subscribe registers a listener invoked after every state change. The
// returned function unsubscribes.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.subLock.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.subLock.Unlock()

	return func() {
		c.subLock.Lock()
		delete(c.subscribers, id)
		c.subLock.Unlock()
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Token:         c.authToken,
		Authenticated: c.authenticated,
		Impersonating: c.impersonating,
		Bootstrapped:  c.bootstrapped,
		AuthUIOpen:    c.authUIOpen,
	}
	if c.current != nil {
		id := *c.current
		snap.Identity = &id
	}
	return snap
}

func (c *Controller) notify() {
	snap := c.Snapshot()

	c.subLock.Lock()
	fns := make([]func(Snapshot), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		fns = append(fns, fn)
	}
	c.subLock.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// readStoredIdentity parses the persisted identity record. Corrupt JSON is
// logged and treated as absent, never surfaced to the caller. Callers must
// hold the write lock.
func (c *Controller) readStoredIdentity() *identity.Identity {
	raw, ok := c.store.Read(store.KeyUser)
	if !ok || raw == "" {
		return nil
	}
	var id identity.Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		c.log.Warn().Err(err).Msg("stored identity unparseable, treating as absent")
		return nil
	}
	id.Role = id.NormalizedRole()
	return &id
}

// persistIdentityLocked writes the identity record and role key. Callers
// must hold the write lock. Marshal failure cannot occur for Identity but is
// logged for completeness rather than propagated: persistence is
// best-effort.
func (c *Controller) persistIdentityLocked(id *identity.Identity) {
	data, err := json.Marshal(id)
	if err != nil {
		c.log.Error().Err(err).Msg("identity marshal failed, store not updated")
		return
	}
	c.store.Write(store.KeyUser, string(data))
	c.store.Write(store.KeyUserRole, string(id.Role))
}

// nopNavigator satisfies routes.Navigator for controllers constructed
// without navigation, e.g. in tests that only exercise state transitions.
type nopNavigator struct{}

func (nopNavigator) Current() string              { return routes.PublicLanding }
func (nopNavigator) Navigate(path string, b bool) {}
