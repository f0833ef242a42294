package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	_, ok = FromContext(WithSession(context.Background(), Session{}))
	assert.False(t, ok, "nil user id is anonymous")

	id := uuid.New()
	s, ok := FromContext(WithSession(context.Background(), Session{UserID: id}))
	assert.True(t, ok)
	assert.Equal(t, id, s.UserID)
}
