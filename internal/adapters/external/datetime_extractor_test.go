package external

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhenDatetimeExtractor(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	anchor := time.Date(2024, 3, 1, 8, 0, 0, 0, chicago)
	extractor := NewWhenDatetimeExtractor()

	t.Run("NothingNamed", func(t *testing.T) {
		extracted, err := extractor.Extract("what's the weather", anchor, "en-us")
		require.NoError(t, err)
		assert.Nil(t, extracted)

		extracted, err = extractor.Extract("  ", anchor, "en-us")
		require.NoError(t, err)
		assert.Nil(t, extracted)
	})

	t.Run("DayOnlyIsMidnight", func(t *testing.T) {
		extracted, err := extractor.Extract("what's the weather tomorrow", anchor, "en-us")
		require.NoError(t, err)
		require.NotNil(t, extracted)
		assert.True(t, time.Date(2024, 3, 2, 0, 0, 0, 0, chicago).Equal(extracted.When), "got %s", extracted.When)
		assert.Equal(t, chicago, extracted.When.Location())
		assert.Equal(t, "what's the weather", extracted.Remainder)
	})

	t.Run("ClockTimeKept", func(t *testing.T) {
		extracted, err := extractor.Extract("will it rain tomorrow at 5 pm", anchor, "en-us")
		require.NoError(t, err)
		require.NotNil(t, extracted)
		assert.Equal(t, 2, extracted.When.Day())
		assert.Equal(t, 17, extracted.When.Hour())
	})
}

func TestSameClockAndDay(t *testing.T) {
	a := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)

	assert.True(t, sameClock(a, a.AddDate(0, 0, 3)))
	assert.False(t, sameClock(a, a.Add(time.Minute)))
	assert.True(t, sameDay(a, a.Add(time.Hour)))
	assert.False(t, sameDay(a, a.Add(16*time.Hour)))
}
