package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/userdeck/userdeck/internal/console/guard"
)

func (a *App) getStatus() string {
	s := ""
	if a.userEmail != "" {
		s = a.userEmail + " "
	}
	if a.isLoggedIn() {
		s = s + "authenticated"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the UserDeck console (type 'help' for commands)")

	// A credential persisted by a previous run is validated before it is
	// trusted.
	if a.isLoggedIn() {
		if a.guard.Admit(ctx) == guard.StateAuthenticated {
			printlnFn("Session restored.")
		}
	} else {
		a.atLogin = true
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
