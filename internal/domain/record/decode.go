package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// kintone field types that need more than plain JSON inference
const (
	typeNumber      = "NUMBER"
	typeCalc        = "CALC"
	typeDate        = "DATE"
	typeDateTime    = "DATETIME"
	typeCreatedTime = "CREATED_TIME"
	typeUpdatedTime = "UPDATED_TIME"
	typeSubtable    = "SUBTABLE"
)

const dateLayout = "2006-01-02"

// UnmarshalJSON decodes a kintone record object, preserving field order.
// Each member is either a {"type":..,"value":..} envelope or a plain JSON value.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read record: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object, got %v", tok)
	}

	*r = New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read field code: %w", err)
		}
		code, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to read field %q: %w", code, err)
		}

		field, err := decodeField(raw)
		if err != nil {
			return fmt.Errorf("failed to decode field %q: %w", code, err)
		}
		r.Set(code, field)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to close record: %w", err)
	}
	return nil
}

// envelope is the kintone wrapper around every field value
type envelope struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type subtableRow struct {
	ID    string `json:"id"`
	Value Record `json:"value"`
}

func decodeField(raw json.RawMessage) (Field, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var members map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &members); err != nil {
			return Field{}, err
		}
		if _, ok := members["value"]; ok {
			var env envelope
			if err := json.Unmarshal(trimmed, &env); err != nil {
				return Field{}, err
			}
			return decodeTyped(env.Type, env.Value)
		}
	}
	return inferField(trimmed)
}

func decodeTyped(fieldType string, value json.RawMessage) (Field, error) {
	value = bytes.TrimSpace(value)
	if len(value) == 0 || string(value) == "null" {
		return Absent(), nil
	}

	switch fieldType {
	case typeNumber, typeCalc:
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return inferField(value)
		}
		if strings.TrimSpace(s) == "" {
			return Absent(), nil
		}
		return parseNumber(s), nil

	case typeDate:
		return parseTime(value, dateLayout)

	case typeDateTime, typeCreatedTime, typeUpdatedTime:
		return parseTime(value, time.RFC3339)

	case typeSubtable:
		var rows []subtableRow
		if err := json.Unmarshal(value, &rows); err != nil {
			return Field{}, fmt.Errorf("invalid subtable: %w", err)
		}
		records := make([]Record, 0, len(rows))
		for _, row := range rows {
			records = append(records, row.Value)
		}
		return Table(records, string(value)), nil

	default:
		return inferField(value)
	}
}

func parseTime(value json.RawMessage, layout string) (Field, error) {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return inferField(value)
	}
	if s == "" {
		return Absent(), nil
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Text(s), nil
	}
	return Date(t, s), nil
}

func parseNumber(s string) Field {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Integer(i, s)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f, s)
	}
	return Text(s)
}

// inferField decodes a value that carries no kintone type.
func inferField(value json.RawMessage) (Field, error) {
	if len(value) == 0 {
		return Absent(), nil
	}

	switch value[0] {
	case 'n':
		return Absent(), nil
	case '"':
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return Field{}, err
		}
		return Text(s), nil
	case 't', 'f':
		return Text(string(value)), nil
	case '[':
		return inferList(value), nil
	case '{':
		var named struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(value, &named); err == nil && named.Name != "" {
			return Text(named.Name), nil
		}
		return Text(compact(value)), nil
	default:
		return parseNumber(string(value)), nil
	}
}

// inferList handles CHECK_BOX and MULTI_SELECT (string arrays) and the
// USER_SELECT family (arrays of {code,name}).
func inferList(value json.RawMessage) Field {
	var strs []string
	if err := json.Unmarshal(value, &strs); err == nil {
		return Text(strings.Join(strs, ", "))
	}

	var named []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(value, &named); err == nil {
		names := make([]string, 0, len(named))
		for _, n := range named {
			if n.Name == "" {
				return Text(compact(value))
			}
			names = append(names, n.Name)
		}
		return Text(strings.Join(names, ", "))
	}

	return Text(compact(value))
}

func compact(value json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, value); err != nil {
		return string(value)
	}
	return buf.String()
}
