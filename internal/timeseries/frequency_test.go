package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrequency(t *testing.T) {
	testCases := []struct {
		raw       string
		expectErr bool
		expected  Frequency
	}{
		{raw: "Daily", expected: Daily},
		{raw: "Weekly", expected: Weekly},
		{raw: "Monthly", expected: Monthly},
		{raw: "Quarterly", expected: Quarterly},
		{raw: "Yearly", expected: Yearly},
		{raw: "weekly", expectErr: true},
		{raw: "Fortnightly", expectErr: true},
		{raw: "", expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			freq, err := ParseFrequency(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, freq)
			assert.Equal(t, tc.raw, freq.String())
		})
	}
}

func TestPerYear(t *testing.T) {
	assert.Equal(t, 52.0, Weekly.PerYear())
	assert.Equal(t, 4.0, Quarterly.PerYear())
	assert.Equal(t, 13.0, Weekly.PerYear()/Quarterly.PerYear(), "weeks per quarter")
}

func TestShift(t *testing.T) {
	date, err := ParseDate("2022-02-04")
	require.NoError(t, err)

	assert.Equal(t, "2022-01-28", FormatDate(Weekly.Shift(date, -1)))
	assert.Equal(t, "2021-11-04", FormatDate(Quarterly.Shift(date, -1)))
	assert.Equal(t, "2022-02-11", FormatDate(Weekly.Shift(date, 1)))
	assert.Equal(t, "2023-02-04", FormatDate(Yearly.Shift(date, 1)))
	assert.Equal(t, "2022-02-03", FormatDate(Daily.Shift(date, -1)))
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2022-02-04")
	require.NoError(t, err)
	assert.Equal(t, time.February, date.Month())

	_, err = ParseDate("04/02/2022")
	assert.Error(t, err)
	_, err = ParseDate("2022-2-4")
	assert.Error(t, err)
}

func TestNoun(t *testing.T) {
	assert.Equal(t, "week", Weekly.Noun())
	assert.Equal(t, "quarter", Quarterly.Noun())
}
