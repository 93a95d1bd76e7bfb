package model

import (
	"bytes"
	"encoding/json"
)

const unknownError = "unknown error"

// Section is the outcome of one analyzer: either a complete metric record or
// an error message, never both. A failed section marshals to exactly
// {"error": "<message>"}.
type Section[T any] struct {
	value  T
	err    string
	failed bool
}

// Ok returns a successful section holding v.
func Ok[T any](v T) *Section[T] {
	return &Section[T]{value: v}
}

// Failed returns a failed section. An empty message is replaced so that a
// failed section always carries a non-empty reason.
func Failed[T any](message string) *Section[T] {
	if message == "" {
		message = unknownError
	}
	return &Section[T]{err: message, failed: true}
}

// Value returns the metric record and whether the analyzer succeeded.
// It is safe to call on a nil section.
func (s *Section[T]) Value() (T, bool) {
	if s == nil || s.failed {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Get returns the metric record, or its zero value when the section is nil
// or failed.
func (s *Section[T]) Get() T {
	v, _ := s.Value()
	return v
}

// Err returns the failure message, or "" for successful and nil sections.
func (s *Section[T]) Err() string {
	if s == nil {
		return ""
	}
	return s.err
}

// Failed reports whether the analyzer failed.
func (s *Section[T]) Failed() bool {
	return s != nil && s.failed
}

type errorBody struct {
	Error string `json:"error"`
}

func (s Section[T]) MarshalJSON() ([]byte, error) {
	if s.failed {
		return json.Marshal(errorBody{Error: s.err})
	}
	return json.Marshal(s.value)
}

func (s *Section[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("{")) {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(data, &probe); err != nil {
			return err
		}
		if raw, ok := probe["error"]; ok && len(probe) == 1 {
			var msg string
			if err := json.Unmarshal(raw, &msg); err != nil {
				return err
			}
			*s = *Failed[T](msg)
			return nil
		}
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Section[T]{value: v}
	return nil
}
