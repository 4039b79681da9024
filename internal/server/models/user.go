// Package models defines the server-side records persisted in PostgreSQL
// and returned by the JSON API.
package models

import "time"

type User struct {
	ID           string    `json:"id"`
	UserName     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
