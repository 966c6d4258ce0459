package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	got, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(570), got)
	assert.Equal(t, "09:30", got.String())

	_, err = ParseClock("25:00")
	assert.Error(t, err)
	_, err = ParseClock("not a time")
	assert.Error(t, err)
}

func TestParseWeekdayIsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"Monday", "monday", "MONDAY", "mon", " Mon "} {
		d, err := ParseWeekday(name)
		require.NoError(t, err, name)
		assert.Equal(t, time.Monday, d, name)
	}

	_, err := ParseWeekday("someday")
	assert.Error(t, err)
}

func TestOpenAtMatchesDayAndWindow(t *testing.T) {
	avail := WeeklyAvailability{
		Days:    []time.Weekday{time.Monday, time.Wednesday},
		Windows: []TimeWindow{{Start: 540, End: 720}}, // 09:00-12:00
	}

	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)
	tuesday := monday.AddDate(0, 0, 1)

	assert.True(t, avail.OpenAt(monday, 540))
	assert.True(t, avail.OpenAt(monday, 719))
	// End boundary is exclusive.
	assert.False(t, avail.OpenAt(monday, 720))
	assert.False(t, avail.OpenAt(tuesday, 540))
}

func TestZeroWidthWindowMatchesNothing(t *testing.T) {
	avail := WeeklyAvailability{
		Days:    []time.Weekday{time.Monday},
		Windows: []TimeWindow{{Start: 600, End: 600}},
	}
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)

	assert.False(t, avail.OpenAt(monday, 600))
	assert.False(t, avail.TimeOpen(599))
	assert.False(t, avail.TimeOpen(601))
}

func TestOverlappingWindowsActAsUnion(t *testing.T) {
	avail := WeeklyAvailability{
		Days: []time.Weekday{time.Friday},
		Windows: []TimeWindow{
			{Start: 540, End: 660},
			{Start: 600, End: 720},
		},
	}
	assert.True(t, avail.TimeOpen(630))
	assert.True(t, avail.TimeOpen(700))
	assert.False(t, avail.TimeOpen(720))
}

func TestNormalizeCollapsesDuplicateDays(t *testing.T) {
	in := AvailabilityInput{Days: []string{"Monday", "monday", "MON", "Tuesday"}}
	out, err := in.Normalize()
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday}, out.Days)
}

func TestNormalizeRejectsInvertedWindow(t *testing.T) {
	in := AvailabilityInput{}
	in.TimeSlots = []struct {
		Start string `json:"start" binding:"required"`
		End   string `json:"end" binding:"required"`
	}{
		{Start: "14:00", End: "10:00"},
	}
	_, err := in.Normalize()
	assert.Error(t, err)
}

func TestNormalizeKeepsDegenerateWindow(t *testing.T) {
	in := AvailabilityInput{}
	in.TimeSlots = []struct {
		Start string `json:"start" binding:"required"`
		End   string `json:"end" binding:"required"`
	}{
		{Start: "10:00", End: "10:00"},
	}
	out, err := in.Normalize()
	require.NoError(t, err)
	require.Len(t, out.Windows, 1)
	assert.False(t, out.TimeOpen(600))
}

func TestTimeOfDayAtAnchorsOntoDate(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)
	at := TimeOfDay(570).At(day)
	assert.Equal(t, 9, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, day.Day(), at.Day())
}
