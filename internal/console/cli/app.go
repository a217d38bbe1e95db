package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/userdeck/userdeck/internal/console/api"
	"github.com/userdeck/userdeck/internal/console/config"
	"github.com/userdeck/userdeck/internal/console/dashboard"
	"github.com/userdeck/userdeck/internal/console/guard"
	"github.com/userdeck/userdeck/internal/console/session"
	"github.com/userdeck/userdeck/internal/console/userstore"
	"github.com/userdeck/userdeck/internal/logging"
)

// App wires the console together: gateway, session store, collection store,
// route guard and dashboard orchestrator, plus the terminal I/O around them.
//
// App itself is the Navigator and Notifier collaborator for the library
// packages: redirects become prompts to log in, notifications become lines
// on the terminal.
type App struct {
	config  *config.Config
	client  api.Client
	session *session.Store
	users   *userstore.Store
	guard   *guard.Guard
	dash    *dashboard.Dashboard
	log     logging.Logger

	reader    *bufio.Reader
	userEmail string
	atLogin   bool
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	gateway := api.NewGateway(c.APIBaseURL, c.RequestTimeout, log)
	store := session.NewStore(c.SessionFile, c.SessionTTL, log)
	users := userstore.New()

	app := &App{
		config:  c,
		client:  gateway,
		session: store,
		users:   users,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}
	app.guard = guard.New(store, gateway, app, log)
	app.dash = dashboard.New(store, users, gateway, app, app, log)
	return app, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Token() != ""
}

// GoToLogin implements the Navigator collaborator. In a terminal there is no
// route to jump to, so the redirect becomes a one-time prompt.
func (a *App) GoToLogin() {
	if a.atLogin {
		return
	}
	a.atLogin = true
	a.userEmail = ""
	printlnFn("Session ended. Type 'login' to continue.")
}

// Success implements the Notifier collaborator.
func (a *App) Success(message string) {
	printlnFn(message)
}

// Error implements the Notifier collaborator.
func (a *App) Error(message string) {
	printlnFn("Error: " + message)
}

func (a *App) Run(ctx context.Context) {
	defer a.guard.Close()
	a.Root(ctx)
}
