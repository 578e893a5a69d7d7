package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "failed to load airline")

	assert.ErrorIs(t, err, cause)
	assert.True(t, HasCode(err, CodeInternal))
	assert.Equal(t, "failed to load airline: connection refused", err.Error())
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
}

func TestHasCodeWalksNestedErrors(t *testing.T) {
	inner := New(CodeTimeout, "deadline")
	outer := Wrap(inner, CodeInternal, "ledger tx")

	assert.True(t, HasCode(outer, CodeTimeout))
	assert.True(t, Is(outer, CodeInternal))
	assert.False(t, HasCode(outer, CodeValidation))
	assert.Equal(t, CodeInternal, CodeOf(outer))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.False(t, HasCode(errors.New("boom"), CodeInternal))
}
