package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Override is a single named report parameter.
type Override struct {
	Name  string
	Value string
}

// Overrides is an ordered collection of report parameters. Caller insertion
// order is preserved through JSON round-trips; parameter-set identity for
// grouping is the order-insensitive Fingerprint.
type Overrides []Override

// MarshalJSON encodes the overrides as a JSON object with keys in insertion order.
func (o Overrides) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ov := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(ov.Name)
		if err != nil {
			return nil, fmt.Errorf("marshal override name: %w", err)
		}
		value, err := json.Marshal(ov.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal override value: %w", err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping keys in document order.
// Non-string values are kept verbatim in their compact JSON encoding.
func (o *Overrides) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode overrides: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("overrides must be a JSON object, got %v", tok)
	}

	var out Overrides
	for dec.More() {
		keyTok, keyErr := dec.Token()
		if keyErr != nil {
			return fmt.Errorf("decode override name: %w", keyErr)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("override name must be a string, got %v", keyTok)
		}

		var raw json.RawMessage
		if decodeErr := dec.Decode(&raw); decodeErr != nil {
			return fmt.Errorf("decode override %q: %w", name, decodeErr)
		}

		out = append(out, Override{Name: name, Value: rawToValue(raw)})
	}

	if _, err = dec.Token(); err != nil {
		return fmt.Errorf("decode overrides: %w", err)
	}

	*o = out
	return nil
}

// rawToValue unwraps JSON strings; any other value keeps its compact encoding.
func rawToValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

// Label concatenates name_value pairs in insertion order, used as the snapshot
// file stem (e.g. {"region":"EU","year":"2024"} -> "region_EUyear_2024").
func (o Overrides) Label() string {
	var b strings.Builder
	for _, ov := range o {
		b.WriteString(ov.Name)
		b.WriteByte('_')
		b.WriteString(ov.Value)
	}
	return b.String()
}

// Fingerprint returns an order-insensitive canonical form of the parameter set.
// Two overrides with the same pairs in different order share a fingerprint.
func (o Overrides) Fingerprint() string {
	pairs := make([]string, len(o))
	for i, ov := range o {
		pairs[i] = ov.Name + "=" + ov.Value
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "\x1f")
}

// Equal reports whether two overrides describe the same parameter set,
// ignoring insertion order.
func (o Overrides) Equal(other Overrides) bool {
	return len(o) == len(other) && o.Fingerprint() == other.Fingerprint()
}

// Get returns the value for name and whether it is present.
func (o Overrides) Get(name string) (string, bool) {
	for _, ov := range o {
		if ov.Name == name {
			return ov.Value, true
		}
	}
	return "", false
}

// Clone returns a copy that shares no backing storage with the original.
func (o Overrides) Clone() Overrides {
	if o == nil {
		return nil
	}
	out := make(Overrides, len(o))
	copy(out, o)
	return out
}
