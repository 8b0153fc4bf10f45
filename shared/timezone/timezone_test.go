package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"slotbook/shared/timezone"
)

func TestNow(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
}

func TestFormatKeepsInstant(t *testing.T) {
	instant := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	parsed, err := time.Parse(time.RFC3339, timezone.Format(instant, time.RFC3339))

	assert.NoError(t, err)
	assert.True(t, parsed.Equal(instant))
	assert.True(t, timezone.ToAppTime(instant).Equal(instant))
}

func TestParse(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02", "2026-03-02")

	assert.NoError(t, err)
	assert.Equal(t, 2, parsed.Day())

	_, err = timezone.Parse("2006-01-02", "02/03/2026")
	assert.Error(t, err)
}
