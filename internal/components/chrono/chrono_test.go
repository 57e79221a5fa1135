package chrono

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPeriod(t *testing.T) {
	cases := []struct {
		period   string
		expected time.Time
	}{
		{period: "03.09.2024", expected: time.Date(2024, time.September, 3, 0, 0, 0, 0, Moscow())},
		{period: "31.12.2023", expected: time.Date(2023, time.December, 31, 0, 0, 0, 0, Moscow())},
	}

	for _, test := range cases {
		parsed, err := ParsePeriod(test.period)
		require.NoError(t, err)
		require.True(t, test.expected.Equal(parsed))
		require.Equal(t, test.period, FormatPeriod(parsed))
	}

	_, err := ParsePeriod("2024-09-03")
	require.Error(t, err)
}

func TestRange(t *testing.T) {
	now := time.Date(2024, time.December, 25, 12, 0, 0, 0, Moscow())
	from, to := Range(now, 10)
	require.Equal(t, "25.12.2024", from)
	require.Equal(t, "04.01.2025", to)
}

func TestFixedTime(t *testing.T) {
	instant := time.Date(2024, time.May, 1, 6, 0, 0, 0, time.UTC)
	clock := FixedTime(instant)
	require.True(t, instant.Equal(clock.Now()))
	require.Equal(t, Moscow(), clock.Now().Location())
}
