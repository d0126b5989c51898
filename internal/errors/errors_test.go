package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAny(t *testing.T) {
	first := New("first")
	second := New("second")
	wrapped := Wrap(second, "context")

	assert.True(t, IsAny(wrapped, first, second))
	assert.False(t, IsAny(wrapped, first))
	assert.False(t, IsAny(nil, first))
}

func TestWrap_NilStaysNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "context"))
	assert.NoError(t, WithStack(nil))
}
