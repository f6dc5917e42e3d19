package survey

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Answer is one response value.
type Answer string

const (
	Yes   Answer = "Yes"
	Maybe Answer = "Maybe"
	No    Answer = "No"
)

// Valid reports whether a is one of Yes, Maybe, No.
func (a Answer) Valid() bool {
	switch a {
	case Yes, Maybe, No:
		return true
	}
	return false
}

// ParseAnswer is exact and case-sensitive.
func ParseAnswer(s string) (Answer, error) {
	a := Answer(s)
	if !a.Valid() {
		return "", fmt.Errorf("invalid answer %q: must be Yes, Maybe or No", s)
	}
	return a, nil
}

// Answers maps question id to answer. JSON keys are the decimal ids.
type Answers map[int]Answer

// Validate checks every id against the catalog and every value against the
// enumeration.
func (a Answers) Validate(c *Catalog) error {
	for id, v := range a {
		if !c.Has(id) {
			return fmt.Errorf("unknown question id %d", id)
		}
		if !v.Valid() {
			return fmt.Errorf("question %d: invalid answer %q", id, string(v))
		}
	}
	return nil
}

// DecodeStoredAnswers decodes a stored answers object leniently: keys that are
// not integers and values outside the enumeration are dropped.
func DecodeStoredAnswers(data []byte) (Answers, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode answers: %w", err)
	}
	out := make(Answers, len(raw))
	for k, v := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if a := Answer(s); a.Valid() {
			out[id] = a
		}
	}
	return out, nil
}
