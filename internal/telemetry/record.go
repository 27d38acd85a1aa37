package telemetry

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies which member of the value variant is set.
type Kind int

const (
	// KindNumber is a numeric value (JSON numbers decode as float64).
	KindNumber Kind = iota
	// KindBool is a boolean value.
	KindBool
	// KindText is a string value.
	KindText
	// KindObject is a nested record.
	KindObject
)

// Value is the closed variant a telemetry field can hold. The zero
// value is the empty text value.
type Value struct {
	kind Kind
	num  float64
	b    bool
	text string
	obj  *Record

	// set distinguishes the zero Value from constructed ones so the
	// zero value reports KindText with empty text.
	set bool
}

// Number constructs a numeric value.
func Number(v float64) Value { return Value{kind: KindNumber, num: v, set: true} }

// Bool constructs a boolean value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v, set: true} }

// Text constructs a text value.
func Text(s string) Value { return Value{kind: KindText, text: s, set: true} }

// Object constructs a nested-record value.
func Object(r *Record) Value { return Value{kind: KindObject, obj: r, set: true} }

// Kind reports which variant member is set.
func (v Value) Kind() Kind {
	if !v.set {
		return KindText
	}
	return v.kind
}

// Number returns the numeric member; zero unless Kind is KindNumber.
func (v Value) Number() float64 { return v.num }

// Bool returns the boolean member; false unless Kind is KindBool.
func (v Value) Bool() bool { return v.b }

// Text returns the text member; empty unless Kind is KindText.
func (v Value) Text() string { return v.text }

// Object returns the nested record; nil unless Kind is KindObject.
func (v Value) Object() *Record { return v.obj }

// MarshalJSON renders the variant back to its JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind() {
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindObject:
		return json.Marshal(v.obj)
	default:
		return json.Marshal(v.text)
	}
}

// Record is a mapping of string keys to telemetry values that preserves
// insertion order. Iteration order is the order keys were set (for
// decoded records, JSON document order), which is what makes report
// output deterministic; Go's native maps cannot provide that guarantee.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]Value)}
}

// Set stores a value under key, appending the key to the iteration
// order on first insert. It returns the record for chaining.
func (r *Record) Set(key string, v Value) *Record {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
	return r
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (Value, bool) {
	if r == nil || r.values == nil {
		return Value{}, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in insertion order. The returned slice is
// shared with the record and must not be modified.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return r.keys
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Number returns the numeric field stored under key, if present.
func (r *Record) Number(key string) (float64, bool) {
	v, ok := r.Get(key)
	if !ok || v.Kind() != KindNumber {
		return 0, false
	}
	return v.Number(), true
}

// Bool returns the boolean field stored under key, if present.
func (r *Record) Bool(key string) (bool, bool) {
	v, ok := r.Get(key)
	if !ok || v.Kind() != KindBool {
		return false, false
	}
	return v.Bool(), true
}

// Text returns the text field stored under key, if present.
func (r *Record) Text(key string) (string, bool) {
	v, ok := r.Get(key)
	if !ok || v.Kind() != KindText {
		return "", false
	}
	return v.Text(), true
}

// UnmarshalJSON decodes a JSON object into the record, preserving the
// document's key order via token-level decoding.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("telemetry: expected JSON object, got %v", tok)
	}

	r.keys = nil
	r.values = make(map[string]Value)
	return r.decodeObject(dec)
}

// MarshalJSON renders the record as a JSON object in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeObject consumes key/value pairs up to and including the
// object's closing brace.
func (r *Record) decodeObject(dec *json.Decoder) error {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("telemetry: expected object key, got %v", keyTok)
		}

		v, err := decodeValue(dec)
		if err != nil {
			return err
		}
		r.Set(key, v)
	}

	_, err := dec.Token() // closing '}'
	return err
}

// decodeValue reads one JSON value and maps it onto the variant.
func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			nested := NewRecord()
			if err := nested.decodeObject(dec); err != nil {
				return Value{}, err
			}
			return Object(nested), nil
		case '[':
			// Arrays fall outside the telemetry variant. They are
			// preserved as their compact JSON text so unfamiliar shapes
			// still render rather than failing the report.
			raw, err := decodeArrayText(dec)
			if err != nil {
				return Value{}, err
			}
			return Text(raw), nil
		}
		return Value{}, fmt.Errorf("telemetry: unexpected delimiter %v", t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case bool:
		return Bool(t), nil
	case string:
		return Text(t), nil
	case nil:
		return Text("null"), nil
	}
	return Value{}, fmt.Errorf("telemetry: unexpected token %v", tok)
}

// decodeArrayText consumes an array, returning its compact JSON form.
func decodeArrayText(dec *json.Decoder) (string, error) {
	items := make([]Value, 0)
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return "", err
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return "", err
	}

	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
