package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// OptionsKind tags the shape the backend used for a question's options.
type OptionsKind int

const (
	OptionsAbsent OptionsKind = iota
	OptionsStringList
	OptionsPairList
	OptionsLetterMap
	OptionsDelimitedText
	OptionsUnrecognized
)

func (k OptionsKind) String() string {
	switch k {
	case OptionsAbsent:
		return "absent"
	case OptionsStringList:
		return "string_list"
	case OptionsPairList:
		return "pair_list"
	case OptionsLetterMap:
		return "letter_map"
	case OptionsDelimitedText:
		return "delimited_text"
	default:
		return "unrecognized"
	}
}

// OptionPair is one element of an options array made of objects.
type OptionPair struct {
	ID      string
	Text    string
	HasText bool
	Raw     string // compact JSON of the element, used when it has no text
}

type LetterOption struct {
	Key   string
	Value string
}

// OptionsPayload is the options field of a backend question, classified once
// at decode time. Only the slice or string matching Kind is populated.
type OptionsPayload struct {
	Kind    OptionsKind
	Strings []string
	Pairs   []OptionPair
	Letters []LetterOption
	Text    string
}

func StringListPayload(items ...string) OptionsPayload {
	return OptionsPayload{Kind: OptionsStringList, Strings: append([]string{}, items...)}
}

func LetterMapPayload(entries ...LetterOption) OptionsPayload {
	return OptionsPayload{Kind: OptionsLetterMap, Letters: append([]LetterOption{}, entries...)}
}

func DelimitedTextPayload(text string) OptionsPayload {
	return OptionsPayload{Kind: OptionsDelimitedText, Text: text}
}

// HasABCD reports whether the payload is the TOEIC four-option map with
// non-empty A, B, C and D entries. Extra letter keys do not disqualify it.
func (p OptionsPayload) HasABCD() bool {
	if p.Kind != OptionsLetterMap {
		return false
	}
	found := map[string]bool{}
	for _, l := range p.Letters {
		if l.Value != "" {
			found[l.Key] = true
		}
	}
	return found["A"] && found["B"] && found["C"] && found["D"]
}

func (p *OptionsPayload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*p = OptionsPayload{}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	switch data[0] {
	case '[':
		return p.decodeArray(data)
	case '{':
		return p.decodeObject(data)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		p.Text = s
		if strings.Contains(s, "\n") {
			p.Kind = OptionsDelimitedText
		} else {
			p.Kind = OptionsUnrecognized
		}
		return nil
	default:
		p.Kind = OptionsUnrecognized
		return nil
	}
}

func (p *OptionsPayload) decodeArray(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	if len(items) == 0 {
		p.Kind = OptionsStringList
		p.Strings = []string{}
		return nil
	}
	switch first := bytes.TrimSpace(items[0]); {
	case len(first) > 0 && first[0] == '"':
		p.Kind = OptionsStringList
		p.Strings = make([]string, 0, len(items))
		for _, item := range items {
			p.Strings = append(p.Strings, scalarText(item))
		}
	case isObject(first):
		p.Kind = OptionsPairList
		p.Pairs = make([]OptionPair, 0, len(items))
		for _, item := range items {
			p.Pairs = append(p.Pairs, decodePair(item))
		}
	default:
		p.Kind = OptionsUnrecognized
	}
	return nil
}

func decodePair(item json.RawMessage) OptionPair {
	var compact bytes.Buffer
	if err := json.Compact(&compact, item); err != nil {
		compact.Write(item)
	}
	pair := OptionPair{Raw: compact.String()}

	if !isObject(item) {
		pair.Text = scalarText(item)
		pair.HasText = pair.Text != ""
		return pair
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return pair
	}
	if id, ok := fields["id"]; ok {
		pair.ID = scalarText(id)
	}
	if text, ok := fields["text"]; ok {
		pair.Text = scalarText(text)
		pair.HasText = pair.Text != ""
	}
	return pair
}

// decodeObject walks the object with a token stream so entries keep their
// document order.
func (p *OptionsPayload) decodeObject(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	var letters []LetterOption
	allLetters := true
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		if !isLetterKey(key) {
			allLetters = false
		}
		letters = append(letters, LetterOption{Key: key, Value: scalarText(value)})
	}
	if len(letters) == 0 || !allLetters {
		p.Kind = OptionsUnrecognized
		return nil
	}
	p.Kind = OptionsLetterMap
	p.Letters = letters
	return nil
}

func isLetterKey(key string) bool {
	if len(key) != 1 {
		return false
	}
	return key[0] >= 'A' && key[0] <= 'Z'
}
