package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHourClockReference(t *testing.T) {
	cases := []struct {
		text string
		hour int
	}{
		{"fix ac at 5pm", 17},
		{"come at 9am", 9},
		{"come at 9 am", 9},
		{"free at 12pm", 12},
		{"free at 12am", 0},
	}
	for _, tc := range cases {
		hour, ok := ExtractHour(tc.text)
		require.True(t, ok, tc.text)
		assert.Equal(t, tc.hour, hour, tc.text)
	}
}

func TestExtractHourAfterAndAround(t *testing.T) {
	hour, ok := ExtractHour("only free after 16")
	require.True(t, ok)
	assert.Equal(t, 16, hour)

	hour, ok = ExtractHour("around 9 would be good")
	require.True(t, ok)
	assert.Equal(t, 9, hour)
}

func TestExtractHourDayParts(t *testing.T) {
	cases := map[string]int{
		"free in the morning":   10,
		"sometime afternoon":    14,
		"free in the evening":   18,
		"fan stopped last night": 20,
	}
	for text, want := range cases {
		hour, ok := ExtractHour(text)
		require.True(t, ok, text)
		assert.Equal(t, want, hour, text)
	}
}

func TestExtractHourPriorityOrder(t *testing.T) {
	// A clock reference beats a day-part keyword in the same query.
	hour, ok := ExtractHour("fix ac in the evening around 5pm")
	require.True(t, ok)
	assert.Equal(t, 17, hour)

	// "after N" beats day-part keywords.
	hour, ok = ExtractHour("after 11 in the morning")
	require.True(t, ok)
	assert.Equal(t, 11, hour)
}

func TestExtractHourNoTimePhrase(t *testing.T) {
	_, ok := ExtractHour("fan not working please fix please")
	assert.False(t, ok)
}
