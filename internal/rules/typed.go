package rules

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueType controls how a raw CLI value string is interpreted.
type ValueType string

const (
	TypeAuto   ValueType = "auto"
	TypeString ValueType = "str"
	TypeInt    ValueType = "int"
	TypeFloat  ValueType = "float"
	TypeBool   ValueType = "bool"
	TypeNull   ValueType = "null"
	TypeJSON   ValueType = "json"
)

// ParseTypedValue interprets a raw string per the requested type. The
// auto type tries null, bool, int and float before falling back to the
// raw string. Numbers are returned as json.Number so they survive
// re-encoding without float formatting artifacts.
func ParseTypedValue(raw string, typ ValueType) (any, error) {
	switch typ {
	case TypeString:
		return raw, nil
	case TypeInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse integer from %q", raw)
		}
		return json.Number(strconv.FormatInt(n, 10)), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse float from %q", raw)
		}
		return json.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	case TypeBool:
		return parseBool(raw)
	case TypeNull:
		return nil, nil
	case TypeJSON:
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("cannot parse JSON literal from %q: %w", raw, err)
		}
		return v, nil
	case TypeAuto, "":
		return parseAuto(raw), nil
	default:
		return nil, fmt.Errorf("unknown value type %q", typ)
	}
}

func parseBool(raw string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y", "on":
		return true, nil
	case "false", "0", "no", "n", "off":
		return false, nil
	}
	return nil, fmt.Errorf("cannot parse boolean from %q", raw)
}

func parseAuto(raw string) any {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "", "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if _, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return json.Number(trimmed)
	}
	// json.Unmarshal rejects NaN/Inf spellings that ParseFloat accepts.
	if json.Valid([]byte(trimmed)) {
		if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return json.Number(trimmed)
		}
	}
	return raw
}
