package cli

import (
	"context"
	"errors"

	"github.com/userdeck/userdeck/internal/console/forms"
)

// Login prompts for credentials and tries to authenticate.
//
// Only presence is checked locally; the server is the authority on
// credential correctness, and its message is surfaced verbatim on
// rejection. On success the token is persisted and the user collection is
// loaded right away.
func (a *App) Login(ctx context.Context) error {
	values, err := a.fillForm(forms.NewLoginForm())
	if err != nil {
		if !errors.Is(err, errDismissed) {
			printlnFn(err.Error())
		}
		return nil
	}

	token, err := a.client.Login(ctx, values["email"], values["password"])
	if err != nil {
		printlnFn("Error: " + err.Error())
		return nil
	}

	if err := a.session.SetToken(token); err != nil {
		printlnFn("Error: " + err.Error())
		return nil
	}

	a.userEmail = values["email"]
	a.atLogin = false
	printlnFn("Login successful")

	return a.dash.Load(ctx)
}

// Register prompts for the signup fields with the full rule set. Backend
// variants differ on whether signup returns a token: with one the operator
// is logged straight in, without one the server message is shown and the
// operator is directed to log in.
func (a *App) Register(ctx context.Context) error {
	values, err := a.fillForm(forms.NewRegisterForm())
	if err != nil {
		if !errors.Is(err, errDismissed) {
			printlnFn(err.Error())
		}
		return nil
	}

	token, message, err := a.client.Signup(ctx, values["name"], values["email"], values["password"])
	if err != nil {
		printlnFn("Error: " + err.Error())
		return nil
	}

	if token == "" {
		if message != "" {
			printlnFn(message)
		}
		printlnFn("Account created. Type 'login' to continue.")
		return nil
	}

	if err := a.session.SetToken(token); err != nil {
		printlnFn("Error: " + err.Error())
		return nil
	}

	a.userEmail = values["email"]
	a.atLogin = false
	printlnFn("Registration successful")

	return a.dash.Load(ctx)
}

// Logout ends the session immediately. No confirmation, per the dashboard
// contract.
func (a *App) Logout(ctx context.Context) error {
	a.dash.Logout()
	return nil
}

// Whoami prints the current operator identity.
func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}
	if a.userEmail != "" {
		printlnFn(a.userEmail)
		return nil
	}
	// A restored session knows the credential but not the email behind it.
	printlnFn("Authenticated (restored session)")
	return nil
}
