// Package stubapi is a development stand-in for the directory backend. It
// serves the documented endpoint contract from an in-memory table, so the
// console can be exercised end to end without the production service. Not a
// product backend: no persistence, single process, single secret.
package stubapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/userdeck/userdeck/internal/common"
	"github.com/userdeck/userdeck/internal/console/models"
	"github.com/userdeck/userdeck/internal/logging"
)

type Server struct {
	store    *Store
	secret   []byte
	tokenTTL time.Duration
	log      logging.Logger
}

func NewServer(store *Store, secret []byte, tokenTTL time.Duration, log logging.Logger) *Server {
	return &Server{store: store, secret: secret, tokenTTL: tokenTTL, log: log}
}

// Router assembles the endpoint surface the console consumes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/login", s.handleLogin)
	r.Post("/signup", s.handleSignup)

	r.Group(func(pr chi.Router) {
		pr.Use(s.authMiddleware)
		pr.Get("/dashboard/users", s.handleList)
		pr.Post("/dashboard/user", s.handleCreate)
		pr.Put("/dashboard/user/{id}", s.handleUpdate)
		pr.Delete("/dashboard/user/{id}", s.handleDelete)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// authMiddleware admits requests carrying a valid bearer token.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		email, err := GetEmailFromToken(token, s.secret)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r.WithContext(withOperator(r.Context(), email)))
	})
}

type ctxKey int

const operatorKey ctxKey = 0

func withOperator(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, operatorKey, email)
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hash, ok := s.store.OperatorHash(creds.Email)
	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(creds.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := GenerateToken(creds.Email, s.secret, s.tokenTTL)
	if err != nil {
		s.log.Error(r.Context(), "token generation failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if creds.Email == "" || creds.Password == "" {
		writeMessage(w, http.StatusBadRequest, "email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := s.store.AddOperator(creds.Email, hash); err != nil {
		if errors.Is(err, common.ErrorDuplicateID) {
			writeMessage(w, http.StatusConflict, "email already registered")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := GenerateToken(creds.Email, s.secret, s.tokenTTL)
	if err != nil {
		s.log.Error(r.Context(), "token generation failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"token":   token,
		"message": "Account created successfully",
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.List())
}

func decodePayload(r *http.Request) (models.UserPayload, string) {
	var p models.UserPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return p, "invalid request body"
	}
	if p.Name == "" || p.Email == "" || p.Department == "" {
		return p, "name, email and department are required"
	}
	return p, ""
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	payload, msg := decodePayload(r)
	if msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	user := s.store.Create(payload)
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	payload, msg := decodePayload(r)
	if msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	user, err := s.store.Update(chi.URLParam(r, "id"), payload)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "user not found")
		return
	}

	// The production backend wraps update responses; serving the same shape
	// keeps the gateway's unwrap path honest.
	writeJSON(w, http.StatusOK, map[string]models.User{"updatedUser": user})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(chi.URLParam(r, "id")); err != nil {
		writeMessage(w, http.StatusNotFound, "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
