package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndIsCode(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CodeStorage, "failed to save", cause)
	require.EqualError(t, err, "failed to save: boom")
	require.True(t, IsCode(err, CodeStorage))
	require.False(t, IsCode(err, CodeNotFound))
	require.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("outer: %w", err)
	require.True(t, IsCode(wrapped, CodeStorage))
	require.Equal(t, CodeStorage, CodeOf(wrapped))
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(CodeInvalidInput, "destination cannot be empty", nil)
	require.EqualError(t, err, "destination cannot be empty")
	require.Equal(t, "", CodeOf(errors.New("plain")))
}
