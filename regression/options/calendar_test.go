package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalendarValid(t *testing.T) {
	testData := map[string]struct {
		c   *Calendar
		err error
	}{
		"valid":        {c: NewCalendar("offmarket", 1)},
		"no name":      {c: &Calendar{WindowDays: 1}, err: ErrNoCalendarName},
		"negative win": {c: &Calendar{Name: "offmarket", WindowDays: -1}, err: ErrNegativeWindowDays},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, td.c.Valid(), td.err)
		})
	}
}

func TestCalendarMask(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	testData := map[string]struct {
		c        *Calendar
		dates    []time.Time
		expected []float64
	}{
		"weekends": {
			c: NewCalendar("offmarket", 0),
			dates: []time.Time{
				day(2014, 10, 10), // friday
				day(2014, 10, 11), // saturday
				day(2014, 10, 12), // sunday
				day(2014, 10, 13), // monday, columbus day
				day(2014, 10, 15), // wednesday
			},
			expected: []float64{0, 1, 1, 1, 0},
		},
		"holiday window": {
			c: NewCalendar("offmarket", 1),
			dates: []time.Time{
				day(2014, 7, 2), // wednesday, two days before july 4th
				day(2014, 7, 3), // thursday, day before july 4th
				day(2014, 7, 4), // friday, july 4th
				day(2014, 7, 8), // tuesday
			},
			expected: []float64{0, 1, 1, 0},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, td.c.Mask(td.dates))
		})
	}
}
