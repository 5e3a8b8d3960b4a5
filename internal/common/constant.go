// Package common contains shared constants and sentinel errors used across
// the API components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// RequestTimeoutSeconds bounds every request, including the database work it triggers.
const RequestTimeoutSeconds = 30
