package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Pair is one entry of an ordered string-keyed mapping.
type Pair[V any] struct {
	Key   string
	Value V
}

// Pairs is a string-keyed mapping that keeps insertion order. It marshals to
// a JSON object whose members appear in slice order.
type Pairs[V any] []Pair[V]

// Get returns the value stored under key.
func (p Pairs[V]) Get(key string) (V, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	var zero V
	return zero, false
}

// Keys returns the keys in order.
func (p Pairs[V]) Keys() []string {
	keys := make([]string, len(p))
	for i, kv := range p {
		keys[i] = kv.Key
	}
	return keys
}

// Head returns at most the first n entries.
func (p Pairs[V]) Head(n int) Pairs[V] {
	if len(p) <= n {
		return p
	}
	return p[:n]
}

func (p Pairs[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var errNotObject = errors.New("ordered mapping must be a JSON object")

func (p *Pairs[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errNotObject
	}

	out := Pairs[V]{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", tok)
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("value for %q: %w", key, err)
		}
		out = append(out, Pair[V]{Key: key, Value: v})
	}
	*p = out
	return nil
}
