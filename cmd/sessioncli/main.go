package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lawbridge/go-session-core/credentials/credfake"
	"github.com/lawbridge/go-session-core/guard"
	"github.com/lawbridge/go-session-core/identity"
	"github.com/lawbridge/go-session-core/internal/config"
	"github.com/lawbridge/go-session-core/routes"
	"github.com/lawbridge/go-session-core/session"
	"github.com/lawbridge/go-session-core/store"
	"github.com/lawbridge/go-session-core/store/filestore"
	"github.com/lawbridge/go-session-core/store/memstore"
	"github.com/lawbridge/go-session-core/store/redisstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()
	c := config.New()
	displayAppname(c.GetAppName())

	log := newLogger(c)
	st, err := newStore(c, log)
	if err != nil {
		return err
	}

	nav := &consoleNavigator{current: routes.PublicLanding, log: log}
	sess, err := session.New(st, session.WithLogger(log), session.WithNavigator(nav))
	if err != nil {
		return errors.Wrap(err, "session.New")
	}

	unsubscribe := sess.Subscribe(func(snap session.Snapshot) {
		log.Debug().
			Bool("authenticated", snap.Authenticated).
			Bool("impersonating", snap.Impersonating).
			Str("role", string(snap.Role())).
			Msg("session changed")
	})
	defer unsubscribe()

	sess.Bootstrap()

	rg, err := guard.New(sess, st,
		guard.WithGraceWindow(c.GetGraceWindow()),
		guard.WithLogger(log),
	)
	if err != nil {
		return errors.Wrap(err, "guard.New")
	}

	return walkthrough(sess, rg, nav, log, c.GetGraceWindow())
}

// walkthrough scripts a full login / guard / impersonation / switch-back
// cycle so each piece can be observed end to end against a real store
// backend.
func walkthrough(sess *session.Controller, rg *guard.Guard, nav *consoleNavigator, log zerolog.Logger, grace time.Duration) error {
	exchanger := credfake.New()
	adminID := identity.Identity{Name: "Priya Nair", Email: "priya@lawbridge.example", Role: identity.RoleAdmin}
	clientID := identity.Identity{Name: "Asha Rao", Email: "asha@lawbridge.example", Role: identity.RoleClient, Plan: "free"}
	if _, err := exchanger.AddAccount(adminID, "Admin-Pass-1", "emergency-key-1"); err != nil {
		return errors.Wrap(err, "seed admin account")
	}
	if _, err := exchanger.AddAccount(clientID, "Client-Pass-1", ""); err != nil {
		return errors.Wrap(err, "seed client account")
	}

	adminArea := guard.Destination{
		Path:         routes.AdminDashboard,
		AllowedRoles: []identity.Role{identity.RoleAdmin, identity.RoleSuperAdmin},
	}

	// Before login the guard must send us to the public landing page once
	// the grace window has elapsed.
	time.Sleep(grace)
	report(log, "anonymous", rg.Evaluate(adminArea))

	result, err := exchanger.Exchange(context.Background(), adminID.Email, "Admin-Pass-1")
	if err != nil {
		return errors.Wrap(err, "credential exchange")
	}
	sess.Login(result.Identity, result.Token)
	nav.Navigate(routes.LandingPath(result.Identity.Role), true)
	report(log, "admin", rg.Evaluate(adminArea))

	target, err := exchanger.Exchange(context.Background(), clientID.Email, "Client-Pass-1")
	if err != nil {
		return errors.Wrap(err, "target exchange")
	}
	if err := sess.Impersonate(target.Identity); err != nil {
		return errors.Wrap(err, "impersonate")
	}
	report(log, "impersonated client", rg.Evaluate(adminArea))

	sess.SwitchBackToAdmin()
	report(log, "restored admin", rg.Evaluate(adminArea))

	sess.Logout()
	log.Info().Msg("walkthrough complete")
	return nil
}

func report(log zerolog.Logger, who string, d guard.Decision) {
	evt := log.Info().Str("as", who).Str("path", d.From)
	switch d.Kind {
	case guard.KindAllow:
		evt.Msg("guard: allowed")
	case guard.KindRedirect:
		evt.Str("redirect", d.Target).Msg("guard: redirected")
	default:
		evt.Msg("guard: loading")
	}
}

func newLogger(c config.Config) zerolog.Logger {
	if c.GetEnv() == "DEV" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

func newStore(c config.Config, log zerolog.Logger) (store.Store, error) {
	switch c.GetStoreBackend() {
	case config.StoreFile:
		return filestore.New(c.GetStorePath(), log), nil
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{Addr: c.GetRedisAddr()})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, errors.Wrap(err, "redis ping")
		}
		return redisstore.New(client, c.GetRedisNamespace(), log), nil
	default:
		return memstore.New(), nil
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

// consoleNavigator is the navigation collaborator for the CLI: it just
// tracks the current path and logs each move.
type consoleNavigator struct {
	current string
	log     zerolog.Logger
}

func (cn *consoleNavigator) Current() string {
	return cn.current
}

func (cn *consoleNavigator) Navigate(path string, replace bool) {
	cn.log.Info().Str("to", path).Bool("replace", replace).Msg("navigate")
	cn.current = path
}
