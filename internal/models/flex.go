package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexString accepts a JSON string or number and keeps it as text. Models
// answer "30 mins" and 30 interchangeably.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexString(str)
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*s = FlexString(strconv.FormatFloat(num, 'f', -1, 64))
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = FlexString(strconv.FormatBool(b))
		return nil
	}

	return fmt.Errorf("invalid value for text field: %s", string(data))
}

// FlexBool accepts true/false as booleans or strings.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = false
		return nil
	}

	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = FlexBool(v)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		parsed, err := strconv.ParseBool(str)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", str)
		}
		*b = FlexBool(parsed)
		return nil
	}

	return fmt.Errorf("invalid boolean: %s", string(data))
}

// FlexStrings accepts a JSON array of strings or numbers.
type FlexStrings []string

func (s *FlexStrings) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}

	var items []FlexString
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = string(item)
	}
	*s = out
	return nil
}
