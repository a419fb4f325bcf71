package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt is an integer field that tolerates the loose typing found in the
// JSON collections: numbers, numeric strings, or garbage. Garbage values
// unmarshal as invalid instead of failing the whole collection load.
type FlexInt struct {
	Value int
	Valid bool
}

// NewFlexInt creates a valid FlexInt
func NewFlexInt(v int) FlexInt {
	return FlexInt{Value: v, Valid: true}
}

// IntOr returns the value, or def if the field was missing or non-numeric
func (f FlexInt) IntOr(def int) int {
	if f.Valid {
		return f.Value
	}
	return def
}

// UnmarshalJSON accepts numbers and numeric strings
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = FlexInt{}
		return nil
	}
	s := strings.Trim(string(data), `"`)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		// Try float-shaped values ("2.0") before giving up
		if fv, ferr := strconv.ParseFloat(strings.TrimSpace(s), 64); ferr == nil {
			*f = FlexInt{Value: int(fv), Valid: true}
			return nil
		}
		*f = FlexInt{}
		return nil
	}
	*f = FlexInt{Value: n, Valid: true}
	return nil
}

// MarshalJSON writes the value as a plain number, or null when invalid
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(f.Value)), nil
}

// FlexString is a string field that tolerates numeric values in the source
// JSON (candidate job_id is a string in some records and a number in others)
type FlexString string

// UnmarshalJSON accepts strings and numbers
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the underlying string value
func (f FlexString) String() string {
	return string(f)
}
