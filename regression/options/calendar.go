package options

import (
	"errors"
	"time"

	"github.com/aouyang1/go-regressor/feature"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

var (
	ErrNoCalendarName     = errors.New("no calendar feature name")
	ErrNegativeWindowDays = errors.New("negative window days")
)

// Calendar declares a sale-timing flag feature derived from the dataset's
// date column. An observation is flagged when its date falls on a weekend or
// within WindowDays of a US holiday.
type Calendar struct {
	Name       string `json:"name"`
	WindowDays int    `json:"window_days"`
}

func NewCalendar(name string, windowDays int) *Calendar {
	return &Calendar{Name: name, WindowDays: windowDays}
}

func (c *Calendar) Valid() error {
	if c.Name == "" {
		return ErrNoCalendarName
	}
	if c.WindowDays < 0 {
		return ErrNegativeWindowDays
	}
	return nil
}

// Feature returns the feature descriptor for this calendar flag.
func (c *Calendar) Feature() feature.Feature {
	return feature.NewCalendar(c.Name, c.WindowDays)
}

// Mask computes the flag values for the given dates.
func (c *Calendar) Mask(dates []time.Time) []float64 {
	bc := cal.NewBusinessCalendar()
	bc.AddHoliday(us.Holidays...)

	mask := make([]float64, len(dates))
	for i, d := range dates {
		if c.flagged(bc, d) {
			mask[i] = 1.0
		}
	}
	return mask
}

func (c *Calendar) flagged(bc *cal.BusinessCalendar, d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	for offset := -c.WindowDays; offset <= c.WindowDays; offset++ {
		actual, observed, _ := bc.IsHoliday(d.AddDate(0, 0, offset))
		if actual || observed {
			return true
		}
	}
	return false
}
