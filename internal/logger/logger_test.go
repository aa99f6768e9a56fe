package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDContext(t *testing.T) {
	id := NewRequestID()
	assert.NotEmpty(t, id)

	ctx := ContextWithRequestID(context.Background(), id)
	got, ok := RequestIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = RequestIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestStaffEmailContext(t *testing.T) {
	ctx := ContextWithStaffEmail(context.Background(), "gate-1@atelier.example")
	email, ok := StaffEmailFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "gate-1@atelier.example", email)

	_, ok = StaffEmailFromContext(context.Background())
	assert.False(t, ok)
}
