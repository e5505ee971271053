package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Answer is a correct answer as sent by the backend: either one string or a
// list of accepted strings.
type Answer struct {
	Values   []string
	Multiple bool
}

func TextAnswer(s string) Answer {
	return Answer{Values: []string{s}}
}

func ListAnswer(values ...string) Answer {
	return Answer{Values: append([]string{}, values...), Multiple: true}
}

// Text returns the single answer, or the first entry of a list answer.
func (a Answer) Text() string {
	if len(a.Values) == 0 {
		return ""
	}
	return a.Values[0]
}

func (a Answer) IsEmpty() bool {
	for _, v := range a.Values {
		if v != "" {
			return false
		}
	}
	return true
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multiple {
		values := a.Values
		if values == nil {
			values = []string{}
		}
		return json.Marshal(values)
	}
	return json.Marshal(a.Text())
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = Answer{}
	switch {
	case len(data) == 0 || string(data) == "null":
		return nil
	case data[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		a.Multiple = true
		a.Values = make([]string, 0, len(items))
		for _, item := range items {
			a.Values = append(a.Values, scalarText(item))
		}
		return nil
	default:
		a.Values = []string{scalarText(data)}
		return nil
	}
}

// scalarText renders a JSON value as plain text: strings are unquoted, other
// values keep their JSON spelling.
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	if string(raw) == "null" {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
