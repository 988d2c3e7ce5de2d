package fixture

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Record is one decoded fixture entry: a flat or nested property map.
type Record map[string]any

// Serializer defines how to read and write records in a specific file format.
type Serializer interface {
	// Parse reads from r. A document holding a single object yields one record.
	Parse(r io.Reader) ([]Record, error)
	// Serialize writes records in the format Parse accepts.
	Serialize(records []Record) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers keyed by file extension.
func DefaultSerializers(strict bool) map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(strict),
		".yaml": NewYAMLSerializer(strict),
		".yml":  NewYAMLSerializer(strict),
		".csv":  NewCSVSerializer(strict),
	}
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON fixtures.
type JSONSerializer struct {
	// Strict decodes numbers as json.Number to avoid precision loss.
	Strict bool
}

func NewJSONSerializer(strict bool) *JSONSerializer {
	return &JSONSerializer{Strict: strict}
}

func (s *JSONSerializer) Parse(r io.Reader) ([]Record, error) {
	var payload any
	decoder := json.NewDecoder(r)
	if s.Strict {
		decoder.UseNumber()
	}
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return toRecords(payload)
}

func (s *JSONSerializer) Serialize(records []Record) ([]byte, error) {
	return json.MarshalIndent(records, "", "  ")
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing YAML fixtures.
type YAMLSerializer struct {
	// Strict converts numbers to json.Number, matching JSONSerializer.
	Strict bool
}

func NewYAMLSerializer(strict bool) *YAMLSerializer {
	return &YAMLSerializer{Strict: strict}
}

func (s *YAMLSerializer) Parse(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if s.Strict {
		payload = recursiveNormalize(payload)
	}
	return toRecords(payload)
}

func (s *YAMLSerializer) Serialize(records []Record) ([]byte, error) {
	return yaml.Marshal(records)
}

// --- CSV Serializer ---

// CSVSerializer reads a header row followed by one record per row.
type CSVSerializer struct {
	// Strict keeps every cell as text except JSON containers.
	Strict bool
}

func NewCSVSerializer(strict bool) *CSVSerializer {
	return &CSVSerializer{Strict: strict}
}

func (s *CSVSerializer) Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", line, err)
		}

		rec := make(Record, len(headers))
		for i, h := range headers {
			rec[h] = UnmarshalCSVValue(strings.TrimSpace(row[i]), s.Strict)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Serialize writes the union of record keys, sorted, as the header row.
func (s *CSVSerializer) Serialize(records []Record) ([]byte, error) {
	var keys []string
	for _, rec := range records {
		for k := range rec {
			if !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
	}
	slices.Sort(keys)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(keys); err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := make([]string, len(keys))
		for i, k := range keys {
			row[i] = MarshalCSVValue(rec[k])
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// --- Helpers ---

// UnmarshalCSVValue parses cells that look like JSON objects or arrays.
// Outside strict mode the literals true, false and the empty cell become bool and nil.
//
// CAVEAT: the JSON check is a heuristic (starts/ends with {} or []), so a raw
// string such as "[draft]" that happens to be valid JSON is decoded.
func UnmarshalCSVValue(val string, strict bool) any {
	if (strings.HasPrefix(val, "{") && strings.HasSuffix(val, "}")) ||
		(strings.HasPrefix(val, "[") && strings.HasSuffix(val, "]")) {
		var parsed any
		decoder := json.NewDecoder(strings.NewReader(val))
		if strict {
			decoder.UseNumber()
		}
		if err := decoder.Decode(&parsed); err == nil {
			return parsed
		}
	}
	if strict {
		return val
	}
	switch val {
	case "":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	return val
}

// MarshalCSVValue converts a value to a cell, using JSON for containers.
// Pointers are followed; nil becomes the empty cell and times are RFC 3339.
func MarshalCSVValue(v any) string {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return MarshalCSVValue(rv.Elem().Interface())
	}

	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case map[string]any, []any, map[string]string, []string, Record:
		b, err := json.Marshal(v)
		if err == nil {
			return string(b)
		}
	}
	return fmt.Sprintf("%v", v)
}

func toRecords(payload any) ([]Record, error) {
	switch v := payload.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return []Record{v}, nil
	case []any:
		records := make([]Record, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("item %d: expected an object, got %T", i, item)
			}
			records = append(records, m)
		}
		return records, nil
	}
	return nil, fmt.Errorf("expected an object or a list of objects, got %T", payload)
}

// recursiveNormalize converts numeric types to json.Number, for consistency with strict JSON.
func recursiveNormalize(val any) any {
	switch v := val.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[k] = recursiveNormalize(val)
		}
		return m
	case []any:
		l := make([]any, len(v))
		for i, val := range v {
			l[i] = recursiveNormalize(val)
		}
		return l
	case int:
		return json.Number(fmt.Sprintf("%d", v))
	case int64:
		return json.Number(fmt.Sprintf("%d", v))
	case float64:
		return json.Number(fmt.Sprintf("%v", v))
	default:
		return v
	}
}
