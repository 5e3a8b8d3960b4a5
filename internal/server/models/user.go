package models

import "time"

type Role string

const (
	RoleUser     Role = "user"
	RoleCandidat Role = "candidat"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleCandidat, RoleAdmin:
		return true
	}
	return false
}

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Nom          string    `json:"nom"`
	Postnom      string    `json:"postnom"`
	Prenom       string    `json:"prenom"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Telephone    string    `json:"telephone"`
	Adresse      string    `json:"adresse"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
