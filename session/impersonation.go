package session

import (
	"encoding/json"

	"github.com/lawbridge/go-session-core/identity"
	"github.com/lawbridge/go-session-core/routes"
	"github.com/lawbridge/go-session-core/store"
	"github.com/lawbridge/go-session-core/token"
	"github.com/pkg/errors"
)

// Impersonate lets an administrator transparently act as target and return
// later without re-authenticating. The caller's token, identity and current
// location are saved as the impersonation frame; the active session is then
// replaced wholesale with target plus a synthetic bearer token derived from
// target's id, and navigation jumps to target's role landing page.
//
// Who may call this is enforced by the surrounding UI and server; this
// method only requires that some authenticated session exists to save.
// Impersonating while already impersonating overwrites the frame — the
// store is a flat key/value map, frames do not stack, and the first saved
// administrator becomes unrecoverable.
func (c *Controller) Impersonate(target identity.Identity) error {
	target.Role = target.NormalizedRole()

	synthetic, err := token.MintSynthetic(target.ID)
	if err != nil {
		return errors.Wrap(err, "[Impersonate] mint synthetic token")
	}

	c.lock.Lock()
	if !c.authenticated || c.current == nil {
		c.lock.Unlock()
		return NotAuthenticatedErr
	}

	// Save the frame before anything about the session changes.
	saved, err := json.Marshal(c.current)
	if err != nil {
		c.lock.Unlock()
		return errors.Wrap(err, "[Impersonate] marshal admin identity")
	}
	c.store.Write(store.KeyAdminToken, c.authToken)
	c.store.Write(store.KeyAdminUser, string(saved))
	c.store.Write(store.KeyAdminReferrer, c.nav.Current())

	c.current = &target
	c.authToken = synthetic
	c.impersonating = true
	c.persistIdentityLocked(&target)
	c.store.Write(store.KeyToken, synthetic)
	c.store.Write(store.KeyIsLoggedIn, store.TrueValue)
	c.store.Write(store.KeyIsImpersonating, store.TrueValue)
	c.lock.Unlock()

	c.log.Debug().
		Str("target", target.ID).
		Str("role", string(target.Role)).
		Msg("impersonation started")
	c.notify()

	c.nav.Navigate(routes.LandingPath(target.Role), false)
	return nil
}

// SwitchBackToAdmin restores the administrator session saved by Impersonate
// and navigates back to where impersonation began. With no frame present —
// storage cleared externally, or orphaned by a logout mid-impersonation —
// it fails open: the impersonation flag is cleared and navigation goes to
// the default administrator landing page. It never returns an error.
func (c *Controller) SwitchBackToAdmin() {
	c.lock.Lock()

	savedToken, hasToken := c.store.Read(store.KeyAdminToken)
	savedUser, hasUser := c.store.Read(store.KeyAdminUser)

	var admin *identity.Identity
	if hasToken && hasUser && savedToken != "" {
		var id identity.Identity
		if err := json.Unmarshal([]byte(savedUser), &id); err != nil {
			c.log.Warn().Err(err).Msg("saved admin identity unparseable, failing open")
		} else {
			id.Role = id.NormalizedRole()
			admin = &id
		}
	}

	target := routes.AdminHome
	if admin != nil {
		if referrer, ok := c.store.Read(store.KeyAdminReferrer); ok && referrer != "" {
			target = referrer
		}
		c.current = admin
		c.authToken = savedToken
		c.authenticated = true
		c.persistIdentityLocked(admin)
		c.store.Write(store.KeyToken, savedToken)
		c.store.Write(store.KeyIsLoggedIn, store.TrueValue)
	}

	c.impersonating = false
	c.store.Remove(store.KeyIsImpersonating)
	c.store.Remove(store.KeyAdminToken)
	c.store.Remove(store.KeyAdminUser)
	c.store.Remove(store.KeyAdminReferrer)
	c.lock.Unlock()

	c.log.Debug().Bool("restored", admin != nil).Msg("impersonation ended")
	c.notify()

	c.nav.Navigate(target, false)
}
