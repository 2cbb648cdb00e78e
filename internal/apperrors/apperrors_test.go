package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	base := Conflict(CodeInsufficientAvailable, "not enough available balance")
	wrapped := fmt.Errorf("process refund: %w", base)

	assert.True(t, errors.Is(wrapped, Conflict(CodeInsufficientAvailable, "other text")))
	assert.False(t, errors.Is(wrapped, Conflict(CodeDuplicateRefundRequest, "x")))
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(Validation(CodeInvalidAmount, "bad amount"))
	assert.True(t, ok)
	assert.Equal(t, KindValidation, kind)

	kind, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
	assert.Equal(t, KindTransient, kind)
}

func TestCodeOf(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NotFound("auction not found"))
	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
}

func TestTransientUnwraps(t *testing.T) {
	cause := errors.New("serialization failure")
	err := Transient("tx conflict", cause)
	assert.True(t, errors.Is(err, cause))
}
