package feature

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Calendar represents a binary flag column derived from the dataset's sale
// dates marking weekend sales and sales within a window of a US holiday.
type Calendar struct {
	Name       string `json:"name"`
	WindowDays int    `json:"window_days"`
}

func NewCalendar(name string, windowDays int) *Calendar {
	return &Calendar{name, windowDays}
}

// String returns the string representation of the calendar feature
func (c Calendar) String() string {
	return fmt.Sprintf("cal_%s", c.Name)
}

// Get returns the value of an arbitrary label along with whether the label
// exists
func (c Calendar) Get(label string) (string, bool) {
	switch strings.ToLower(label) {
	case "name":
		return c.Name, true
	case "window_days":
		return strconv.Itoa(c.WindowDays), true
	}
	return "", false
}

// Type returns the type of this feature
func (c Calendar) Type() FeatureType {
	return FeatureTypeCalendar
}

// Decode converts the feature into a map of label values
func (c Calendar) Decode() map[string]string {
	res := make(map[string]string)
	res["name"] = c.Name
	res["window_days"] = strconv.Itoa(c.WindowDays)
	return res
}

// UnmarshalJSON is the custom unmarshalling to convert a map[string]string
// to a calendar feature
func (c *Calendar) UnmarshalJSON(data []byte) error {
	var labelStr struct {
		Name       string `json:"name"`
		WindowDays string `json:"window_days"`
	}
	err := json.Unmarshal(data, &labelStr)
	if err != nil {
		return err
	}
	c.Name = labelStr.Name
	if labelStr.WindowDays == "" {
		c.WindowDays = 0
		return nil
	}
	c.WindowDays, err = strconv.Atoi(labelStr.WindowDays)
	return err
}
