package models

import "time"

// Candidature is a user's application. A user has at most one.
type Candidature struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	PaiementOnline bool      `json:"paiementOnline"`
	PaiementCash   bool      `json:"paiementCash"`
	DocumentKey    *string   `json:"documentKey,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
