package scheduling_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"slotbook/internal/scheduling"
)

func TestError_Is(t *testing.T) {
	custom := scheduling.NewError(scheduling.KindInvalidWindow, "endDateTime must be a valid RFC 3339 timestamp")

	assert.ErrorIs(t, custom, scheduling.ErrInvalidWindow)
	assert.NotErrorIs(t, custom, scheduling.ErrOverlapConflict)

	wrapped := fmt.Errorf("failed to create slot: %w", scheduling.ErrOverlapConflict)
	assert.ErrorIs(t, wrapped, scheduling.ErrOverlapConflict)

	kind, ok := scheduling.KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, scheduling.KindOverlapConflict, kind)

	_, ok = scheduling.KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestInternal(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := scheduling.Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal error", err.Error())

	kind, ok := scheduling.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, scheduling.KindInternal, kind)

	assert.NoError(t, scheduling.Internal(nil))
}

func TestClassify(t *testing.T) {
	assert.NoError(t, scheduling.Classify(nil))
	assert.Same(t, scheduling.ErrSlotInUse, scheduling.Classify(scheduling.ErrSlotInUse))

	cause := errors.New("deadlock detected")
	err := scheduling.Classify(fmt.Errorf("failed to commit transaction: %w", cause))

	kind, _ := scheduling.KindOf(err)
	assert.Equal(t, scheduling.KindInternal, kind)
	assert.ErrorIs(t, err, cause)
}
