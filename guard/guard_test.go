package guard_test

import (
	"testing"
	"time"

	"github.com/lawbridge/go-session-core/guard"
	"github.com/lawbridge/go-session-core/identity"
	"github.com/lawbridge/go-session-core/routes"
	"github.com/lawbridge/go-session-core/session"
	"github.com/lawbridge/go-session-core/store"
	"github.com/lawbridge/go-session-core/store/memstore"
	"github.com/stretchr/testify/require"
)

const testToken = "tok-1"

var (
	clientArea = guard.Destination{
		Path:         "/client/cases",
		AllowedRoles: []identity.Role{identity.RoleClient},
	}
	adminArea = guard.Destination{
		Path:         "/admin/members",
		AllowedRoles: []identity.Role{identity.RoleAdmin, identity.RoleSuperAdmin},
	}
	openArea = guard.Destination{Path: "/account"}
)

// testFixture wires a controller and guard over one store with a frozen,
// advanceable clock so the grace window is deterministic.
type testFixture struct {
	store *memstore.MemStore
	sess  *session.Controller
	guard *guard.Guard
	now   time.Time
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		store: memstore.New(),
		now:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	sess, err := session.New(f.store)
	require.NoError(t, err)
	f.sess = sess

	g, err := guard.New(sess, f.store, guard.WithClock(func() time.Time { return f.now }))
	require.NoError(t, err)
	f.guard = g
	return f
}

// settle bootstraps the session and advances past the grace window.
func (f *testFixture) settle() {
	f.sess.Bootstrap()
	f.now = f.now.Add(guard.DefaultGraceWindow)
}

func TestGuardLoadsUntilBootstrapAndGraceWindow(t *testing.T) {
	f := setupTestFixture(t)

	// Not bootstrapped: loading regardless of elapsed time.
	f.now = f.now.Add(time.Second)
	require.Equal(t, guard.KindLoading, f.guard.Evaluate(openArea).Kind)

	// Bootstrapped but inside the window: still loading.
	f2 := setupTestFixture(t)
	f2.sess.Bootstrap()
	f2.now = f2.now.Add(guard.DefaultGraceWindow / 2)
	require.Equal(t, guard.KindLoading, f2.guard.Evaluate(openArea).Kind)

	// Window elapsed: the decision is recomputed from current state.
	f2.now = f2.now.Add(guard.DefaultGraceWindow)
	require.Equal(t, guard.KindRedirect, f2.guard.Evaluate(openArea).Kind)
}

func TestGuardRedirectsAnonymousVisitors(t *testing.T) {
	f := setupTestFixture(t)
	f.settle()

	for _, dest := range []guard.Destination{openArea, clientArea, adminArea} {
		d := f.guard.Evaluate(dest)
		require.Equal(t, guard.KindRedirect, d.Kind)
		require.Equal(t, routes.PublicLanding, d.Target)
		require.True(t, d.Replace)
		require.Equal(t, dest.Path, d.From)
	}
}

func TestGuardRoleAllowList(t *testing.T) {
	tests := []struct {
		name string
		role identity.Role
		dest guard.Destination
		want guard.Kind
	}{
		{name: "client allowed into client area", role: "client", dest: clientArea, want: guard.KindAllow},
		{name: "case differs beyond allow-list entry", role: "CLIENT", dest: clientArea, want: guard.KindAllow},
		{name: "client denied admin area", role: "CLIENT", dest: adminArea, want: guard.KindRedirect},
		{name: "mixed-case admin allowed", role: "Admin", dest: adminArea, want: guard.KindAllow},
		{name: "superadmin allowed", role: "superadmin", dest: adminArea, want: guard.KindAllow},
		{name: "unknown role denied", role: "warlock", dest: clientArea, want: guard.KindRedirect},
		{name: "empty role denied", role: "", dest: clientArea, want: guard.KindRedirect},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := setupTestFixture(t)
			f.sess.Bootstrap()
			f.sess.Login(identity.Identity{ID: "u1", Role: tc.role}, testToken)
			f.now = f.now.Add(guard.DefaultGraceWindow)

			d := f.guard.Evaluate(tc.dest)
			require.Equal(t, tc.want, d.Kind)
			if tc.want == guard.KindRedirect {
				// Denied roles land on the public page, same as anonymous
				// visitors; there is no separate unauthorized page.
				require.Equal(t, routes.PublicLanding, d.Target)
			}
		})
	}
}

func TestGuardFallsBackToStoredToken(t *testing.T) {
	f := setupTestFixture(t)
	f.settle()

	// A concurrent tab wrote the token after this tab's bootstrap; the
	// controller has not caught up but the guard must tolerate it.
	f.store.Write(store.KeyToken, testToken)

	require.False(t, f.sess.Authenticated())
	require.Equal(t, guard.KindAllow, f.guard.Evaluate(openArea).Kind)
}

func TestGuardFallsBackToStoredRole(t *testing.T) {
	f := setupTestFixture(t)
	f.settle()

	f.store.Write(store.KeyToken, testToken)
	f.store.Write(store.KeyUser, `{"id":"u1","role":"CLIENT"}`)

	require.Equal(t, guard.KindAllow, f.guard.Evaluate(clientArea).Kind)
	require.Equal(t, guard.KindRedirect, f.guard.Evaluate(adminArea).Kind)
}

func TestGuardDeniesOnCorruptStoredIdentity(t *testing.T) {
	f := setupTestFixture(t)
	f.settle()

	f.store.Write(store.KeyToken, testToken)
	f.store.Write(store.KeyUser, "{not json")

	require.NotPanics(t, func() {
		require.Equal(t, guard.KindRedirect, f.guard.Evaluate(clientArea).Kind)
	})
	// Destinations with no allow-list still admit the token-bearing session.
	require.Equal(t, guard.KindAllow, f.guard.Evaluate(openArea).Kind)
}

func TestGuardScenarioClientSession(t *testing.T) {
	f := setupTestFixture(t)
	f.store.Write(store.KeyToken, "tok-1")
	f.store.Write(store.KeyIsLoggedIn, store.TrueValue)
	f.store.Write(store.KeyUser, `{"id":"u1","role":"client","name":"Asha","email":"a@x.com"}`)
	f.settle()

	require.True(t, f.sess.Authenticated())
	require.Equal(t, identity.RoleClient, f.sess.Identity().Role)

	require.Equal(t, guard.KindAllow, f.guard.Evaluate(clientArea).Kind)

	d := f.guard.Evaluate(adminArea)
	require.Equal(t, guard.KindRedirect, d.Kind)
	require.Equal(t, "/", d.Target)
}

func TestGuardRequiresDependencies(t *testing.T) {
	f := setupTestFixture(t)

	_, err := guard.New(nil, f.store)
	require.Error(t, err)
	_, err = guard.New(f.sess, nil)
	require.Error(t, err)
}
