package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lshigami/paper2exam/internal/model"
)

var labelledOptionLine = regexp.MustCompile(`^([A-Z1-9])[.)]?\s+(.*)$`)

// OptionLetter returns the synthesized id for position i: A..Z, then AA, AB, ...
func OptionLetter(i int) string {
	if i < 0 {
		return ""
	}
	var b []byte
	for n := i; ; n = n/26 - 1 {
		b = append([]byte{byte('A' + n%26)}, b...)
		if n < 26 {
			break
		}
	}
	return string(b)
}

// NormalizeOptions turns any backend options shape into one option list.
// It returns nil when the shape is absent or unrecognized and an empty,
// non-nil slice when the backend sent an empty list.
func NormalizeOptions(p model.OptionsPayload) []model.Option {
	var opts []model.Option
	switch p.Kind {
	case model.OptionsStringList:
		opts = make([]model.Option, 0, len(p.Strings))
		for i, s := range p.Strings {
			opts = append(opts, model.Option{ID: OptionLetter(i), Text: s})
		}
	case model.OptionsPairList:
		opts = make([]model.Option, 0, len(p.Pairs))
		for i, pair := range p.Pairs {
			id := pair.ID
			if id == "" {
				id = OptionLetter(i)
			}
			text := pair.Text
			if !pair.HasText {
				text = pair.Raw
			}
			opts = append(opts, model.Option{ID: id, Text: text})
		}
	case model.OptionsLetterMap:
		opts = make([]model.Option, 0, len(p.Letters))
		for _, l := range p.Letters {
			opts = append(opts, model.Option{ID: l.Key, Text: l.Value})
		}
	case model.OptionsDelimitedText:
		opts = splitDelimitedOptions(p.Text)
	default:
		return nil
	}
	return ensureUniqueOptionIDs(opts)
}

func splitDelimitedOptions(text string) []model.Option {
	opts := []model.Option{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := labelledOptionLine.FindStringSubmatch(line); m != nil {
			opts = append(opts, model.Option{ID: m[1], Text: strings.TrimSpace(m[2])})
			continue
		}
		opts = append(opts, model.Option{ID: OptionLetter(len(opts)), Text: line})
	}
	return opts
}

// ensureUniqueOptionIDs replaces a repeated id with the positional letter,
// or with a numbered variant when that letter is taken as well.
func ensureUniqueOptionIDs(opts []model.Option) []model.Option {
	seen := make(map[string]bool, len(opts))
	for i := range opts {
		id := opts[i].ID
		if seen[id] {
			id = OptionLetter(i)
			for n := 2; seen[id]; n++ {
				id = fmt.Sprintf("%s%d", OptionLetter(i), n)
			}
			opts[i].ID = id
		}
		seen[id] = true
	}
	return opts
}

// DenormalizeOptions is the inverse of NormalizeOptions: it renders a
// normalized list back into a backend pair-list payload.
func DenormalizeOptions(opts []model.Option) model.OptionsPayload {
	if opts == nil {
		return model.OptionsPayload{}
	}
	pairs := make([]model.OptionPair, 0, len(opts))
	for _, o := range opts {
		pairs = append(pairs, model.OptionPair{ID: o.ID, Text: o.Text, HasText: true})
	}
	return model.OptionsPayload{Kind: model.OptionsPairList, Pairs: pairs}
}

// PlaceholderOptions is shown for four-choice questions that arrived
// without any usable options.
func PlaceholderOptions() []model.Option {
	return []model.Option{
		{ID: "A", Text: "Option A"},
		{ID: "B", Text: "Option B"},
		{ID: "C", Text: "Option C"},
		{ID: "D", Text: "Option D"},
	}
}
