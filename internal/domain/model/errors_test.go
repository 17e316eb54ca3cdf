package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := ErrDuplicate("community %q already exists", "TestDAO")
	assert.Equal(t, KindDuplicate, KindOf(err))

	wrapped := fmt.Errorf("initialize community: %w", err)
	assert.Equal(t, KindDuplicate, KindOf(wrapped))

	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("cast vote: %w", ErrExpired("voting ended"))
	assert.True(t, errors.Is(err, NewError(KindExpired, "")))
	assert.False(t, errors.Is(err, NewError(KindUnauthorized, "")))
}
