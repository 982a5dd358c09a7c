// Package models holds the server-side records persisted by repositories.
package models

import "time"

// User is a stored credential record. ID is assigned by the store.
//
// PasswordHash is an encoded digest with its salt embedded (bcrypt or
// argon2id). It is excluded from JSON so that HTTP responses never carry
// it, even though services hand the full record to their callers.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
