package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a recorded answer: either a number or a string. Strings that
// parse as numbers are coerced when graded.
type Value struct {
	num   float64
	str   string
	isStr bool
}

// Number returns a numeric Value.
func Number(n float64) Value { return Value{num: n} }

// Int returns a numeric Value from an int.
func Int(n int) Value { return Value{num: float64(n)} }

// String returns a string Value.
func String(s string) Value { return Value{str: s, isStr: true} }

// IsString reports whether the value was recorded as a string.
func (v Value) IsString() bool { return v.isStr }

// Float coerces the value to a number. The second result is false when a
// string value does not parse or the number is not finite.
func (v Value) Float() (float64, bool) {
	n := v.num
	if v.isStr {
		s := strings.TrimSpace(v.str)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		n = f
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func (v Value) String() string {
	if v.isStr {
		return v.str
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isStr {
		return json.Marshal(v.str)
	}
	if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
		return nil, fmt.Errorf("value %v is not representable in JSON", v.num)
	}
	return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value must be a number or string: %w", err)
	}
	*v = Number(n)
	return nil
}
