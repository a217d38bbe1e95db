// Package dashboard coordinates the authenticated area: loading the user
// collection, the add/edit/delete flows, error-to-notification mapping, and
// redirect-on-auth-failure.
//
// The orchestrator owns no rendering. It talks to the session and collection
// stores, the API gateway, and two injected collaborators: a Navigator for
// the redirect-to-login jump and a Notifier for operator-facing messages.
package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/userdeck/userdeck/internal/console/api"
	"github.com/userdeck/userdeck/internal/console/guard"
	"github.com/userdeck/userdeck/internal/console/models"
	"github.com/userdeck/userdeck/internal/console/session"
	"github.com/userdeck/userdeck/internal/console/userstore"
	"github.com/userdeck/userdeck/internal/logging"
)

// Notifier is the notification collaborator. Rendering of the messages is
// outside this package.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// ErrBusy is returned when an operation is refused because the same logical
// action is already in flight. The triggering control should have been
// disabled; this is the backstop.
var ErrBusy = errors.New("operation already in progress")

// ErrNoPendingDelete is returned by ConfirmDelete when no delete was armed.
var ErrNoPendingDelete = errors.New("no delete pending confirmation")

// Dashboard sequences every dashboard-level flow against the stores and the
// gateway.
type Dashboard struct {
	session *session.Store
	users   *userstore.Store
	client  api.Client
	nav     guard.Navigator
	notify  Notifier
	log     logging.Logger

	mu            sync.Mutex
	loading       bool
	saving        bool
	deleting      bool
	lastError     string
	pendingDelete *models.User
}

func New(store *session.Store, users *userstore.Store, client api.Client, nav guard.Navigator, notify Notifier, log logging.Logger) *Dashboard {
	return &Dashboard{
		session: store,
		users:   users,
		client:  client,
		nav:     nav,
		notify:  notify,
		log:     log,
	}
}

// Loading reports whether a load is in flight.
func (d *Dashboard) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// Saving reports whether a create or update is in flight.
func (d *Dashboard) Saving() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saving
}

// LastError returns the message of the most recent failed load, for the
// retry affordance. Empty after a successful load.
func (d *Dashboard) LastError() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastError
}

// Load fetches the collection and replaces the store wholesale.
//
// Without a token it redirects to login and issues no API call. A 401 kills
// the session and redirects. Any other failure keeps whatever data is
// already cached, records the message for the retry affordance, and
// surfaces it.
func (d *Dashboard) Load(ctx context.Context) error {
	token := d.session.Token()
	if token == "" {
		d.nav.GoToLogin()
		return api.ErrUnauthorized
	}

	d.mu.Lock()
	if d.loading {
		d.mu.Unlock()
		return ErrBusy
	}
	d.loading = true
	d.mu.Unlock()
	defer d.setLoading(false)

	users, err := d.client.ListUsers(ctx, token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			d.log.Info(ctx, "load rejected, session is no longer valid")
			_ = d.session.Clear()
			d.nav.GoToLogin()
			return err
		}
		d.setLastError(err.Error())
		d.notify.Error(err.Error())
		return err
	}

	d.setLastError("")
	d.users.ReplaceAll(users)
	d.log.Debug(ctx, "user collection loaded", "count", len(users))
	return nil
}

// Retry re-runs the failed load.
func (d *Dashboard) Retry(ctx context.Context) error {
	return d.Load(ctx)
}

// Create submits a validated draft. On success the canonical server record
// (with its server-assigned id) enters the store and the dialog may close.
// On failure the error is returned so the dialog stays open for correction.
func (d *Dashboard) Create(ctx context.Context, payload models.UserPayload) error {
	token, err := d.mutationToken()
	if err != nil {
		return err
	}
	if !d.beginSave() {
		return ErrBusy
	}
	defer d.endSave()

	created, err := d.client.CreateUser(ctx, token, payload)
	if err != nil {
		return d.failMutation(ctx, err)
	}

	if err := d.users.Insert(created); err != nil {
		// The server answered with an id we already hold. Keep the cached
		// record and tell the operator something is off.
		d.notify.Error(err.Error())
		return err
	}

	d.notify.Success("User added successfully")
	return nil
}

// Update replaces the record with the given id. Some backend variants omit
// the identity field from update responses, so the known id is reattached
// before the store is touched.
func (d *Dashboard) Update(ctx context.Context, id string, payload models.UserPayload) error {
	token, err := d.mutationToken()
	if err != nil {
		return err
	}
	if !d.beginSave() {
		return ErrBusy
	}
	defer d.endSave()

	updated, err := d.client.UpdateUser(ctx, token, id, payload)
	if err != nil {
		return d.failMutation(ctx, err)
	}

	updated.ID = id
	d.users.UpdateByID(updated)
	d.notify.Success("User updated successfully")
	return nil
}

// BeginDelete arms the delete confirmation for the given record. Deletion
// never proceeds from the primary action alone.
func (d *Dashboard) BeginDelete(id string) error {
	user, err := d.users.Get(id)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.pendingDelete = &user
	d.mu.Unlock()
	return nil
}

// PendingDelete returns the record awaiting confirmation, or nil.
func (d *Dashboard) PendingDelete() *models.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pendingDelete
}

// Deleting reports whether a confirmed delete is in flight.
func (d *Dashboard) Deleting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deleting
}

// CancelDelete disarms the pending confirmation.
func (d *Dashboard) CancelDelete() {
	d.mu.Lock()
	d.pendingDelete = nil
	d.mu.Unlock()
}

// ConfirmDelete performs the armed delete. On success the record leaves the
// store and the confirmation disarms. On failure the record stays, the
// confirmation stays armed, and it returns to an actionable (non-busy)
// state either way.
func (d *Dashboard) ConfirmDelete(ctx context.Context) error {
	d.mu.Lock()
	if d.pendingDelete == nil {
		d.mu.Unlock()
		return ErrNoPendingDelete
	}
	if d.deleting {
		d.mu.Unlock()
		return ErrBusy
	}
	target := *d.pendingDelete
	d.deleting = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.deleting = false
		d.mu.Unlock()
	}()

	token, err := d.mutationToken()
	if err != nil {
		return err
	}

	if err := d.client.DeleteUser(ctx, token, target.ID); err != nil {
		return d.failMutation(ctx, err)
	}

	d.users.DeleteByID(target.ID)
	d.mu.Lock()
	d.pendingDelete = nil
	d.mu.Unlock()

	d.notify.Success("User deleted successfully")
	return nil
}

// Logout clears the session and returns to the login entry point. Always
// available from the gated view.
func (d *Dashboard) Logout() {
	_ = d.session.Clear()
	d.nav.GoToLogin()
}

// mutationToken fetches the current token, redirecting when the session is
// already gone.
func (d *Dashboard) mutationToken() (string, error) {
	token := d.session.Token()
	if token == "" {
		d.nav.GoToLogin()
		return "", api.ErrUnauthorized
	}
	return token, nil
}

// failMutation surfaces a mutation failure. The feedback goes out first: a
// user-initiated action must not appear to vanish silently, even when the
// session is being torn down right after.
func (d *Dashboard) failMutation(ctx context.Context, err error) error {
	d.notify.Error(err.Error())
	if errors.Is(err, api.ErrUnauthorized) {
		d.log.Info(ctx, "mutation rejected, session is no longer valid")
		_ = d.session.Clear()
		d.nav.GoToLogin()
	}
	return err
}

func (d *Dashboard) beginSave() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.saving {
		return false
	}
	d.saving = true
	return true
}

func (d *Dashboard) endSave() {
	d.mu.Lock()
	d.saving = false
	d.mu.Unlock()
}

func (d *Dashboard) setLoading(v bool) {
	d.mu.Lock()
	d.loading = v
	d.mu.Unlock()
}

func (d *Dashboard) setLastError(msg string) {
	d.mu.Lock()
	d.lastError = msg
	d.mu.Unlock()
}
