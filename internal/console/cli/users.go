package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/userdeck/userdeck/internal/console/forms"
	"github.com/userdeck/userdeck/internal/console/models"
)

// List refreshes the collection from the server and prints it as a table.
// On a failed refresh any cached records are still shown, with the failure
// already surfaced by the orchestrator.
func (a *App) List(ctx context.Context) error {
	_ = a.dash.Load(ctx)

	users := a.users.Snapshot()
	if len(users) == 0 {
		printlnFn("No users found. Add your first user with 'add'.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tDEPARTMENT")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Department)
	}
	return w.Flush()
}

// Add runs the create dialog and submits the draft.
func (a *App) Add(ctx context.Context) error {
	values, err := a.fillForm(forms.NewUserForm(nil))
	if err != nil {
		if !errors.Is(err, errDismissed) {
			printlnFn(err.Error())
		}
		return nil
	}

	// Errors are surfaced by the orchestrator; the dialog equivalent here is
	// simply that nothing was added.
	_ = a.dash.Create(ctx, forms.UserPayload(values))
	return nil
}

// Edit runs the edit dialog for the given record, prompting for the id when
// none was passed. Pressing Enter on a field keeps its current value; an
// unchanged draft is not submitted.
func (a *App) Edit(ctx context.Context, id string) error {
	user, ok := a.pickUser(ctx, id)
	if !ok {
		return nil
	}

	values, err := a.fillForm(forms.NewUserForm(&user))
	if err != nil {
		switch {
		case errors.Is(err, forms.ErrNoChanges):
			printlnFn("No changes to save.")
		case errors.Is(err, errDismissed):
		default:
			printlnFn(err.Error())
		}
		return nil
	}

	_ = a.dash.Update(ctx, user.ID, forms.UserPayload(values))
	return nil
}

// Delete arms and, after an explicit confirmation, performs the delete.
// Anything but "y" declines and the record stays.
func (a *App) Delete(ctx context.Context, id string) error {
	user, ok := a.pickUser(ctx, id)
	if !ok {
		return nil
	}

	if err := a.dash.BeginDelete(user.ID); err != nil {
		printlnFn(err.Error())
		return nil
	}

	confirmed, err := GetConfirmation(a.reader, fmt.Sprintf("Delete %s <%s>?", user.Name, user.Email), os.Stdout)
	if err != nil || !confirmed {
		a.dash.CancelDelete()
		printlnFn("Cancelled.")
		return nil
	}

	_ = a.dash.ConfirmDelete(ctx)
	return nil
}

// pickUser resolves the target record, prompting for an id when needed. The
// collection is loaded first if this session has not fetched it yet.
func (a *App) pickUser(ctx context.Context, id string) (models.User, bool) {
	if a.users.Len() == 0 {
		if err := a.dash.Load(ctx); err != nil {
			return models.User{}, false
		}
	}

	if id == "" {
		entered, err := getSimpleText(a.reader, "User id", os.Stdout)
		if err != nil || entered == "" {
			printlnFn("Cancelled.")
			return models.User{}, false
		}
		id = entered
	}

	user, err := a.users.Get(id)
	if err != nil {
		printlnFn("No user with id " + id)
		return models.User{}, false
	}
	return user, true
}
