// Package guard gates entry to the authenticated area of the console.
//
// A guard starts in StateValidating and settles, per mount, in either
// StateAuthenticated (render the gated view) or StateRedirecting (send the
// operator to the login entry point). The credential is validated by a cheap
// authenticated probe (listing users) whose data result is incidental.
package guard

import (
	"context"
	"errors"

	"github.com/userdeck/userdeck/internal/console/api"
	"github.com/userdeck/userdeck/internal/console/session"
	"github.com/userdeck/userdeck/internal/logging"
)

// State is the guard's position in its admission state machine.
type State int

const (
	StateValidating State = iota
	StateAuthenticated
	StateRedirecting
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateAuthenticated:
		return "authenticated"
	case StateRedirecting:
		return "redirecting"
	default:
		return "unknown"
	}
}

// Navigator is the navigation collaborator: the only thing the guard (and
// the dashboard) ever ask of the routing layer is a jump to the login entry
// point.
type Navigator interface {
	GoToLogin()
}

// Guard validates the current session credential before gated content runs.
type Guard struct {
	session     *session.Store
	client      api.Client
	nav         Navigator
	log         logging.Logger
	unsubscribe func()

	state State
}

// New builds a guard in StateValidating and subscribes it to the session
// store so an external logout forces a redirect from any state.
func New(store *session.Store, client api.Client, nav Navigator, log logging.Logger) *Guard {
	g := &Guard{
		session: store,
		client:  client,
		nav:     nav,
		log:     log,
		state:   StateValidating,
	}
	g.unsubscribe = store.Subscribe(func(authenticated bool) {
		if !authenticated {
			g.redirect()
		}
	})
	return g
}

// State returns the guard's current state.
func (g *Guard) State() State {
	return g.state
}

// Close detaches the guard from the session store.
func (g *Guard) Close() {
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
}

// Admit runs the admission sequence and returns the terminal state.
//
//   - No credential: redirect, zero API calls.
//   - Probe rejected with 401: the credential is dead server-side, so clear
//     it and redirect.
//   - Probe failed any other way (network blip, 5xx): not proof of an
//     invalid session; log and admit.
//   - Probe succeeded: admit.
func (g *Guard) Admit(ctx context.Context) State {
	token := g.session.Token()
	if token == "" {
		g.redirect()
		return g.state
	}

	if _, err := g.client.ListUsers(ctx, token); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			g.log.Info(ctx, "session credential rejected by probe")
			_ = g.session.Clear()
			g.redirect()
			return g.state
		}
		g.log.Warn(ctx, "probe failed without an auth signal, admitting", "error", err)
	}

	if g.state == StateValidating {
		g.state = StateAuthenticated
	}
	return g.state
}

// redirect moves to StateRedirecting and triggers navigation exactly once.
func (g *Guard) redirect() {
	if g.state == StateRedirecting {
		return
	}
	g.state = StateRedirecting
	g.nav.GoToLogin()
}
