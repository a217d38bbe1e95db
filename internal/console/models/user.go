// Package models defines the data shapes shared by the console packages.
package models

// User is a single directory record. ID is assigned by the server, unique,
// and immutable after creation.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// UserPayload is the body of a create or update request. It carries no ID:
// the server assigns identity on create and the caller addresses it on
// update.
type UserPayload struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// Payload returns the mutable fields of u as a request body.
func (u User) Payload() UserPayload {
	return UserPayload{Name: u.Name, Email: u.Email, Department: u.Department}
}
