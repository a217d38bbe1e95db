package stubapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userdeck/userdeck/internal/console/api"
	"github.com/userdeck/userdeck/internal/console/config"
	"github.com/userdeck/userdeck/internal/console/models"
	"github.com/userdeck/userdeck/internal/logging"
)

// newFixture spins up the stub server and a real gateway pointed at it, so
// these tests cover the full round trip the console performs.
func newFixture(t *testing.T) (*api.Gateway, *Store) {
	t.Helper()

	store := NewStore()
	store.Seed()
	srv := NewServer(store, []byte("test-secret"), time.Hour, logging.NewDiscardLogger())

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return api.NewGateway(ts.URL, 5*time.Second, logging.NewDiscardLogger()), store
}

func signupAndLogin(t *testing.T, gw *api.Gateway) string {
	t.Helper()
	ctx := context.Background()

	_, _, err := gw.Signup(ctx, "Op One", "op@example.com", "Abc123!@")
	require.NoError(t, err)

	token, err := gw.Login(ctx, "op@example.com", "Abc123!@")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	return token
}

func TestSignupAndLogin(t *testing.T) {
	gw, _ := newFixture(t)
	ctx := context.Background()

	token, message, err := gw.Signup(ctx, "Op One", "op@example.com", "Abc123!@")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Account created successfully", message)

	loginToken, err := gw.Login(ctx, "op@example.com", "Abc123!@")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	gw, _ := newFixture(t)
	ctx := context.Background()

	_, _, err := gw.Signup(ctx, "Op One", "op@example.com", "Abc123!@")
	require.NoError(t, err)

	_, err = gw.Login(ctx, "op@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnauthorized)

	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid email or password", apiErr.Message)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	gw, _ := newFixture(t)
	ctx := context.Background()

	_, _, err := gw.Signup(ctx, "Op One", "op@example.com", "Abc123!@")
	require.NoError(t, err)

	_, _, err = gw.Signup(ctx, "Op Two", "op@example.com", "Xyz789!@")
	require.Error(t, err)

	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "email already registered", apiErr.Message)
}

func TestProtectedEndpoints_RejectMissingOrBadToken(t *testing.T) {
	gw, _ := newFixture(t)
	ctx := context.Background()

	_, err := gw.ListUsers(ctx, "")
	assert.ErrorIs(t, err, api.ErrUnauthorized)

	_, err = gw.ListUsers(ctx, "not-a-jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnauthorized)

	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "unauthorized", apiErr.Message)
}

func TestExpiredToken_Rejected(t *testing.T) {
	store := NewStore()
	srv := NewServer(store, []byte("test-secret"), -time.Minute, logging.NewDiscardLogger())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	gw := api.NewGateway(ts.URL, 5*time.Second, logging.NewDiscardLogger())
	ctx := context.Background()

	token, _, err := gw.Signup(ctx, "Op One", "op@example.com", "Abc123!@")
	require.NoError(t, err)

	_, err = gw.ListUsers(ctx, token)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

// TestDefaultConfigReachesStubEndpoints pins the endpoint mount point to the
// console's default base URL: the two binaries must talk to each other out of
// the box, so the default may not carry a path prefix the stub does not serve.
func TestDefaultConfigReachesStubEndpoints(t *testing.T) {
	store := NewStore()
	srv := NewServer(store, []byte("test-secret"), time.Hour, logging.NewDiscardLogger())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	var cfg config.Config
	cfg.LoadDefaults()
	base, err := url.Parse(cfg.APIBaseURL)
	require.NoError(t, err)

	// Same scheme and path as the default, host swapped for the test server.
	tsURL, err := url.Parse(ts.URL)
	require.NoError(t, err)
	base.Host = tsURL.Host

	gw := api.NewGateway(base.String(), 5*time.Second, logging.NewDiscardLogger())

	token, _, err := gw.Signup(context.Background(), "Op One", "op@example.com", "Abc123!@")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	users, err := gw.ListUsers(context.Background(), token)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestFullCRUDRoundTrip(t *testing.T) {
	gw, _ := newFixture(t)
	ctx := context.Background()
	token := signupAndLogin(t, gw)

	seeded, err := gw.ListUsers(ctx, token)
	require.NoError(t, err)
	require.Len(t, seeded, 3)

	created, err := gw.CreateUser(ctx, token, models.UserPayload{Name: "Dee Eff", Email: "dee@example.com", Department: "Finance"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Dee Eff", created.Name)

	// The stub answers updates with the wrapped shape; the gateway must
	// still hand back a plain record.
	updated, err := gw.UpdateUser(ctx, token, created.ID, models.UserPayload{Name: "Dee Eff", Email: "dee@example.com", Department: "Legal"})
	require.NoError(t, err)
	assert.Equal(t, "Legal", updated.Department)
	assert.Equal(t, created.ID, updated.ID)

	require.NoError(t, gw.DeleteUser(ctx, token, created.ID))

	after, err := gw.ListUsers(ctx, token)
	require.NoError(t, err)
	assert.Len(t, after, 3)
}

func TestUpdate_UnknownID(t *testing.T) {
	gw, _ := newFixture(t)
	ctx := context.Background()
	token := signupAndLogin(t, gw)

	_, err := gw.UpdateUser(ctx, token, "ghost", models.UserPayload{Name: "No One", Email: "no@example.com", Department: "Void"})
	require.Error(t, err)

	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestCreate_RejectsIncompletePayload(t *testing.T) {
	gw, _ := newFixture(t)
	ctx := context.Background()
	token := signupAndLogin(t, gw)

	_, err := gw.CreateUser(ctx, token, models.UserPayload{Name: "Only Name"})
	require.Error(t, err)

	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}
