package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatClock(t *testing.T) {
	require.Equal(t, "08:00 AM", FormatClock("08:00"))
	require.Equal(t, "12:30 PM", FormatClock("12:30"))
	require.Equal(t, "04:30 PM", FormatClock("16:30"))
	require.Equal(t, "12:05 AM", FormatClock("00:05"))
	require.Equal(t, "", FormatClock(""))
	require.Equal(t, "", FormatClock("8am"))
}

func TestFormatDates(t *testing.T) {
	d := time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "06/05/2023", FormatDate(d))
	require.Equal(t, "Mon 06/05", FormatDateShort(d))
	require.Equal(t, "", FormatDate(time.Time{}))
	require.Equal(t, "", FormatDateShort(time.Time{}))
}

func TestFormatHours(t *testing.T) {
	require.Equal(t, "8.0", FormatHours(8))
	require.Equal(t, "7.5", FormatHours(7.5))
	require.Equal(t, "", FormatHours(0))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-06-05")
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("06/05/2023")
	require.Error(t, err)
}
