package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// The Raw* types mirror the generation backend's result document. The backend
// output comes from an LLM, so every field is decoded on its own: a field with
// an unexpected shape is logged and left at its zero value instead of failing
// the whole document.

// FlexInt accepts a JSON number or a numeric string.
type FlexInt struct {
	Value int
	Set   bool
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	*f = FlexInt{}
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt{Value: int(n), Set: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("not a number: %s", data)
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*f = FlexInt{Value: v, Set: true}
	return nil
}

// Or returns the value when it is set and non-zero, def otherwise.
func (f FlexInt) Or(def int) int {
	if f.Set && f.Value != 0 {
		return f.Value
	}
	return def
}

type RawPassage struct {
	Title         string
	Content       string
	WordCount     FlexInt
	PassageType   string
	PassageNumber FlexInt
}

func (p *RawPassage) UnmarshalJSON(data []byte) error {
	return decodeFields(data, "passage", map[string]any{
		"title":          &p.Title,
		"content":        &p.Content,
		"word_count":     &p.WordCount,
		"passage_type":   &p.PassageType,
		"passage_number": &p.PassageNumber,
	})
}

type RawPassageAnalysis struct {
	PassageNumber   FlexInt
	DifficultyLevel string
	MainTopic       string
	QuestionTypes   []string
	VocabularyLevel string
	SuggestedTime   FlexInt
	TargetWordCount *WordCountRange
}

func (a *RawPassageAnalysis) UnmarshalJSON(data []byte) error {
	return decodeFields(data, "passage_analysis", map[string]any{
		"passage_number":    &a.PassageNumber,
		"difficulty_level":  &a.DifficultyLevel,
		"main_topic":        &a.MainTopic,
		"question_types":    &a.QuestionTypes,
		"vocabulary_level":  &a.VocabularyLevel,
		"suggested_time":    &a.SuggestedTime,
		"target_word_count": &a.TargetWordCount,
	})
}

type RawQuestion struct {
	QuestionType     string
	QuestionText     string
	Options          OptionsPayload
	OptionA          string
	OptionB          string
	OptionC          string
	OptionD          string
	CorrectAnswer    Answer
	Explanation      string
	Part             FlexInt
	QuestionCategory FlexInt
	QuestionNumber   FlexInt
	PassageReference FlexInt
	GrammarPoint     string
}

func (q *RawQuestion) UnmarshalJSON(data []byte) error {
	return decodeFields(data, "question", map[string]any{
		"question_type":     &q.QuestionType,
		"question_text":     &q.QuestionText,
		"options":           &q.Options,
		"option_a":          &q.OptionA,
		"option_b":          &q.OptionB,
		"option_c":          &q.OptionC,
		"option_d":          &q.OptionD,
		"correct_answer":    &q.CorrectAnswer,
		"explanation":       &q.Explanation,
		"part":              &q.Part,
		"question_category": &q.QuestionCategory,
		"question_number":   &q.QuestionNumber,
		"passage_reference": &q.PassageReference,
		"grammar_point":     &q.GrammarPoint,
	})
}

// DiscreteOptions returns the option_a..option_d fields when all four are present.
func (q *RawQuestion) DiscreteOptions() ([]Option, bool) {
	if q.OptionA == "" || q.OptionB == "" || q.OptionC == "" || q.OptionD == "" {
		return nil, false
	}
	return []Option{
		{ID: "A", Text: q.OptionA},
		{ID: "B", Text: q.OptionB},
		{ID: "C", Text: q.OptionC},
		{ID: "D", Text: q.OptionD},
	}, true
}

type RawResult struct {
	ReadingPassages        []RawPassage
	PassageAnalysis        []RawPassageAnalysis
	Questions              []RawQuestion
	PartNumber             *FlexInt // nil when the key is absent
	EstimatedScore         *float64
	OverallScore           *float64
	Strengths              []string
	Weaknesses             []string
	ImprovementSuggestions []string
}

func (r *RawResult) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		return fmt.Errorf("exam result is not an object")
	}
	return decodeFields(data, "result", map[string]any{
		"reading_passages":        &r.ReadingPassages,
		"passage_analysis":        &r.PassageAnalysis,
		"questions":               &r.Questions,
		"part_number":             &r.PartNumber,
		"estimated_score":         &r.EstimatedScore,
		"overall_score":           &r.OverallScore,
		"strengths":               &r.Strengths,
		"weaknesses":              &r.Weaknesses,
		"improvement_suggestions": &r.ImprovementSuggestions,
	})
}

// HasPartNumber reports whether the result carried a part_number key at all.
func (r *RawResult) HasPartNumber() bool {
	return r.PartNumber != nil
}

func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}

// decodeFields decodes each known key of a JSON object into its destination.
// Non-object input is logged and ignored so one bad array element does not
// discard its siblings.
func decodeFields(data []byte, what string, fields map[string]any) error {
	if !isObject(data) {
		log.Warn().Str("entity", what).Str("raw", truncate(string(data), 80)).Msg("Ignoring non-object entry in exam result")
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, dst := range fields {
		value, ok := raw[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, dst); err != nil {
			log.Warn().Err(err).Str("entity", what).Str("field", key).Msg("Malformed field in exam result, using default")
			v := reflect.ValueOf(dst).Elem()
			v.Set(reflect.Zero(v.Type()))
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
