package timezone_test

import (
	"testing"
	"time"

	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { timezone.Init("UTC") })

	timezone.Init("Asia/Jakarta")
	assert.Equal(t, "Asia/Jakarta", timezone.GetLocation().String())

	timezone.Init("Mars/Olympus")
	assert.Equal(t, time.UTC, timezone.GetLocation())

	timezone.Init("")
	assert.Equal(t, time.UTC, timezone.GetLocation())
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	assert.Equal(t, time.UTC, today.Location())
	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())

	year, month, day := timezone.Now().Date()
	assert.Equal(t, time.Date(year, month, day, 0, 0, 0, 0, time.UTC), today)
}

func TestParseAndFormat(t *testing.T) {
	t.Cleanup(func() { timezone.Init("UTC") })
	timezone.Init("Asia/Jakarta")

	parsed, err := timezone.Parse("2006-01-02 15:04", "2025-04-10 14:00")
	require.NoError(t, err)

	assert.Equal(t, "2025-04-10T07:00:00Z", parsed.UTC().Format(time.RFC3339))
	assert.Equal(t, "2025-04-10 14:00", timezone.Format(parsed.UTC(), "2006-01-02 15:04"))
}
