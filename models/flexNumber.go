package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// FlexFloat accepts JSON numbers as well as numeric strings ("3", " 2.5 ", "").
// Form inputs on the client post whatever the user typed, and a blank field means zero.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var v float64
	switch value := raw.(type) {
	case float64:
		v = value
	case string:
		value = strings.TrimSpace(value)
		if value == "" {
			*f = 0
			return nil
		}
		parsed, err := cast.ToFloat64E(value)
		if err != nil {
			return fmt.Errorf("invalid number %s", string(data))
		}
		v = parsed
	default:
		return fmt.Errorf("invalid number %s", string(data))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid number %s", string(data))
	}
	*f = FlexFloat(v)
	return nil
}

func (f *FlexFloat) Float() float64 {
	if f == nil {
		return 0
	}
	return float64(*f)
}

// Int returns the value as a whole number, failing on fractions.
func (f *FlexFloat) Int() (int, error) {
	v := f.Float()
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%v is not a whole number", v)
	}
	if math.Abs(v) > 1<<53 {
		return 0, fmt.Errorf("%v is out of range", v)
	}
	return int(v), nil
}
