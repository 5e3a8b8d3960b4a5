package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicError(t *testing.T) {
	err := fmt.Errorf("registering: %w", NewPublicError(ErrConflict, "email already registered"))

	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrorNotFound)

	var pe *PublicError
	if assert.True(t, errors.As(err, &pe)) {
		assert.Equal(t, "email already registered", pe.Message)
	}
}
