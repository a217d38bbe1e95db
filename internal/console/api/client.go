package api

import (
	"context"

	"github.com/userdeck/userdeck/internal/console/models"
)

// Client is the transport-agnostic contract for talking to the user
// directory backend. The concrete implementation is Gateway; tests provide
// fakes.
//
// Authenticated calls take the bearer token explicitly so the caller stays
// in charge of the credential lifecycle.
type Client interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)

	// Signup registers a new operator account. Depending on the backend
	// variant the response carries a token (logged straight in), a message,
	// or both.
	Signup(ctx context.Context, name, email, password string) (token string, message string, err error)

	// ListUsers fetches all directory records in server order.
	ListUsers(ctx context.Context, token string) ([]models.User, error)

	// CreateUser submits a new record and returns the canonical server copy,
	// including the server-assigned id.
	CreateUser(ctx context.Context, token string, payload models.UserPayload) (models.User, error)

	// UpdateUser replaces the record with the given id. The returned record
	// may carry an empty id: some backend variants omit identity from update
	// responses.
	UpdateUser(ctx context.Context, token, id string, payload models.UserPayload) (models.User, error)

	// DeleteUser removes the record with the given id.
	DeleteUser(ctx context.Context, token, id string) error
}
