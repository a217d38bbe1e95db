// Package api is the single place where raw HTTP outcomes are classified
// into the console's error taxonomy.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (the Client interface) covering every
//     backend operation the console performs: Login/Signup, ListUsers,
//     CreateUser, UpdateUser, DeleteUser.
//  2. A concrete HTTP implementation (Gateway) with one request choke point
//     that attaches the JSON content type and the bearer token, and decodes
//     responses against declared shapes.
//  3. Classified errors (*Error) carrying a human-readable message plus the
//     HTTP status, matched against sentinels with errors.Is.
//
// # Error Handling
//
// A non-2xx response becomes *Error{Message, Status} where Message is the
// server's {"message": ...} body when present, else the HTTP status text.
// A transport failure (no response at all) becomes *Error with Status 0 so
// it can never be mistaken for an auth failure.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/userdeck/userdeck/internal/console/models"
	"github.com/userdeck/userdeck/internal/logging"
)

// networkErrorMessage is the generic connectivity message surfaced when no
// response was received.
const networkErrorMessage = "network error: could not reach the server"

// Gateway is the HTTP implementation of Client.
type Gateway struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewGateway builds a Gateway for the backend at baseURL. Every request is
// bounded by timeout.
func NewGateway(baseURL string, timeout time.Duration, log logging.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

var _ Client = (*Gateway)(nil)

// request performs one HTTP round trip and normalizes the outcome.
//
// On 2xx it returns the raw JSON body (nil for 204 No Content) for a typed
// decode by the caller. Every failure path returns a classified *Error.
func (g *Gateway) request(ctx context.Context, method, path string, body any, token string) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		g.log.Warn(ctx, "no response received", "method", method, "path", path, "error", err)
		return nil, &Error{Message: networkErrorMessage}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		g.log.Warn(ctx, "response body aborted", "method", method, "path", path, "error", err)
		return nil, &Error{Message: networkErrorMessage}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if resp.StatusCode == http.StatusNoContent || len(data) == 0 {
			return nil, nil
		}
		return json.RawMessage(data), nil
	}

	apiErr := &Error{Message: errorMessage(data, resp.StatusCode), Status: resp.StatusCode}
	g.log.Warn(ctx, "request failed", "method", method, "path", path, "status", resp.StatusCode, "message", apiErr.Message)
	return nil, apiErr
}

// errorMessage extracts a human-readable message from an error response
// body, falling back to the HTTP status text.
func errorMessage(body []byte, status int) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", status)
}

type credentialsRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login exchanges credentials for a bearer token. A 2xx response without a
// token is treated as a decode failure: the caller must never end up with an
// empty credential that looks authenticated.
func (g *Gateway) Login(ctx context.Context, email, password string) (string, error) {
	raw, err := g.request(ctx, http.MethodPost, "/login", credentialsRequest{Email: email, Password: password}, "")
	if err != nil {
		return "", err
	}

	var resp authResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login response carried no token")
	}
	return resp.Token, nil
}

// Signup registers a new operator account and returns whatever the backend
// sent back: a token, a message, or both.
func (g *Gateway) Signup(ctx context.Context, name, email, password string) (string, string, error) {
	raw, err := g.request(ctx, http.MethodPost, "/signup", credentialsRequest{Name: name, Email: email, Password: password}, "")
	if err != nil {
		return "", "", err
	}

	var resp authResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", "", fmt.Errorf("decode signup response: %w", err)
	}
	return resp.Token, resp.Message, nil
}

// ListUsers fetches all directory records in server order.
func (g *Gateway) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	raw, err := g.request(ctx, http.MethodGet, "/dashboard/users", nil, token)
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode user list: %w", err)
	}
	return users, nil
}

// CreateUser submits a new record. The canonical copy comes back from the
// server; a missing id is a decode failure because downstream stores key
// records by id.
func (g *Gateway) CreateUser(ctx context.Context, token string, payload models.UserPayload) (models.User, error) {
	raw, err := g.request(ctx, http.MethodPost, "/dashboard/user", payload, token)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return models.User{}, fmt.Errorf("decode created user: %w", err)
	}
	if user.ID == "" {
		return models.User{}, fmt.Errorf("created user carried no id")
	}
	return user, nil
}

// UpdateUser replaces the record with the given id. Backend variants answer
// either with the bare record or with an {updatedUser: ...} wrapper; both
// are decoded explicitly, never passed through untyped. The returned record
// may still carry an empty id; reattaching identity is the caller's job.
func (g *Gateway) UpdateUser(ctx context.Context, token, id string, payload models.UserPayload) (models.User, error) {
	raw, err := g.request(ctx, http.MethodPut, "/dashboard/user/"+url.PathEscape(id), payload, token)
	if err != nil {
		return models.User{}, err
	}

	var wrapped struct {
		UpdatedUser *models.User `json:"updatedUser"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.UpdatedUser != nil {
		return *wrapped.UpdatedUser, nil
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return models.User{}, fmt.Errorf("decode updated user: %w", err)
	}
	return user, nil
}

// DeleteUser removes the record with the given id. The backend answers with
// 204 or a small JSON body; either way the body is discarded.
func (g *Gateway) DeleteUser(ctx context.Context, token, id string) error {
	_, err := g.request(ctx, http.MethodDelete, "/dashboard/user/"+url.PathEscape(id), nil, token)
	return err
}
