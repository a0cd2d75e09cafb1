package guard

import (
	"encoding/json"
	"time"

	"github.com/lawbridge/go-session-core/identity"
	"github.com/lawbridge/go-session-core/routes"
	"github.com/lawbridge/go-session-core/session"
	"github.com/lawbridge/go-session-core/store"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultGraceWindow bounds how long after mount the guard keeps rendering a
// loading state to tolerate identity verification finishing slightly after
// first render. It always elapses; nothing aborts it early.
const DefaultGraceWindow = 300 * time.Millisecond

// Kind enumerates guard outcomes.
type Kind int

const (
	// KindLoading means no authorization decision has been made yet; render
	// a blocking loading indicator and re-evaluate.
	KindLoading Kind = iota

	// KindAllow means the destination may render.
	KindAllow

	// KindRedirect means navigation must divert to Target.
	KindRedirect
)

// Decision is the guard's verdict for one navigation. For redirects, From
// carries the originally requested location for optional post-login
// redirect-back, and Replace indicates history replacement so the denied
// destination is not reachable via back-button.
type Decision struct {
	Kind    Kind
	Target  string
	Replace bool
	From    string
}

// Destination declares what a protected route requires. An empty AllowedRoles
// list means any authenticated identity may enter.
type Destination struct {
	Path         string
	AllowedRoles []identity.Role
}

// Guard decides, per navigation, whether the current identity may view a
// destination. It is a pure function of (session state, destination
// requirements); its only hidden state is the one-time grace window timer
// started at mount.
type Guard struct {
	sess    *session.Controller
	st      store.Store
	window  time.Duration
	now     func() time.Time
	mounted time.Time
	log     zerolog.Logger
}

// Option modifies a Guard at construction time.
type Option func(*Guard)

// WithGraceWindow overrides the post-mount grace window.
func WithGraceWindow(d time.Duration) Option {
	return func(g *Guard) {
		g.window = d
	}
}

// WithClock sets the time source (primarily for testing).
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		g.now = now
	}
}

// WithLogger sets the guard logger.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Guard) {
		g.log = log
	}
}

// New mounts a guard over the session controller and the persistent store.
// The store is consulted directly only as an eventual-consistency fallback:
// a concurrent tab or a just-completed login redirect may have written
// storage the in-memory controller has not observed yet.
func New(sess *session.Controller, st store.Store, options ...Option) (*Guard, error) {
	if sess == nil {
		return nil, errors.New("[New] session controller is required")
	}
	if st == nil {
		return nil, errors.New("[New] session store is required")
	}

	g := &Guard{
		sess:   sess,
		st:     st,
		window: DefaultGraceWindow,
		now:    time.Now,
		log:    zerolog.Nop(),
	}
	for _, opt := range options {
		opt(g)
	}
	g.mounted = g.now()
	return g, nil
}

// Evaluate computes the decision for one navigation. The decision is always
// recomputed from current state; nothing from before the grace window is
// cached.
func (g *Guard) Evaluate(dest Destination) Decision {
	if !g.sess.Bootstrapped() || g.now().Sub(g.mounted) < g.window {
		return Decision{Kind: KindLoading, From: dest.Path}
	}

	snap := g.sess.Snapshot()

	// The store token is an OR-fallback for state the controller has not
	// caught up with yet.
	storedToken, _ := g.st.Read(store.KeyToken)
	if !snap.Authenticated && storedToken == "" {
		g.log.Debug().Str("path", dest.Path).Msg("guard: unauthenticated, redirecting")
		return Decision{Kind: KindRedirect, Target: routes.PublicLanding, Replace: true, From: dest.Path}
	}

	if len(dest.AllowedRoles) > 0 {
		role := snap.Role()
		if role == identity.RoleUnknown {
			role = g.storedRole()
		}
		if !allowed(role, dest.AllowedRoles) {
			// Role mismatch redirects to the same public destination as
			// "not logged in": protected areas stay invisible to
			// disallowed roles.
			g.log.Debug().
				Str("path", dest.Path).
				Str("role", string(role)).
				Msg("guard: role not allowed, redirecting")
			return Decision{Kind: KindRedirect, Target: routes.PublicLanding, Replace: true, From: dest.Path}
		}
	}

	return Decision{Kind: KindAllow, From: dest.Path}
}

// storedRole resolves the role from the persisted user record when the
// controller has no identity yet. Corrupt records resolve to RoleUnknown.
func (g *Guard) storedRole() identity.Role {
	raw, ok := g.st.Read(store.KeyUser)
	if !ok || raw == "" {
		return identity.RoleUnknown
	}
	var id identity.Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		g.log.Warn().Err(err).Msg("guard: stored identity unparseable")
		return identity.RoleUnknown
	}
	return id.NormalizedRole()
}

func allowed(role identity.Role, allowList []identity.Role) bool {
	if !role.Known() {
		return false
	}
	for _, want := range allowList {
		if role.Equal(want) {
			return true
		}
	}
	return false
}
