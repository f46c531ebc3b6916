package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is a request field that accepts a JSON number or a numeric string.
// Set is false when the field was absent or null.
type Number struct {
	Value float64
	Set   bool
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", v)
		}
		value = parsed
	default:
		return fmt.Errorf("expected a number, got %s", string(data))
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("expected a finite number, got %s", string(data))
	}
	*n = Number{Value: value, Set: true}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns the value, or nil when n is nil or unset.
func (n *Number) Ptr() *float64 {
	if n == nil || !n.Set {
		return nil
	}
	value := n.Value
	return &value
}
