package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindMatching(t *testing.T) {
	nf := NotFound("project %d not found", 7)
	assert.True(t, errors.Is(nf, ErrNotFound))
	assert.False(t, errors.Is(nf, ErrValidation))
	assert.Equal(t, "project 7 not found", nf.Error())

	wrapped := fmt.Errorf("service: %w", nf)
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestWrapKeepsClassifiedErrors(t *testing.T) {
	auth := Authentication(errors.New("bad password"))
	assert.Same(t, auth, Wrap(auth, "login"))

	raw := errors.New("connection refused")
	w := Wrap(raw, "find customer")
	assert.Equal(t, KindUnexpected, KindOf(w))
	assert.ErrorIs(t, w, raw)
	assert.Nil(t, Wrap(nil, "noop"))
}

func TestFieldMap(t *testing.T) {
	err := Validation(
		FieldError{Field: "username", Message: "is required"},
		FieldError{Field: "password", Message: "must have at least 3 characters"},
	)
	assert.Equal(t, map[string]string{
		"username": "is required",
		"password": "must have at least 3 characters",
	}, err.FieldMap())
	assert.Equal(t, "validation", err.Kind.String())
}
