package service

import (
	"strings"

	"github.com/lshigami/paper2exam/internal/model"
	"github.com/rs/zerolog/log"
)

type questionTypeRule struct {
	patterns []string
	qType    model.QuestionType
}

// Checked in order; the first rule with a pattern contained in the label wins.
var questionTypeRules = []questionTypeRule{
	{[]string{"true/false", "true_false"}, model.TrueFalseNotGiven},
	{[]string{"yes/no"}, model.YesNoNotGiven},
	{[]string{"matching headings"}, model.MatchingHeadings},
	{[]string{"matching information"}, model.MatchingInformation},
	{[]string{"matching features"}, model.MatchingFeatures},
	{[]string{"matching sentence"}, model.MatchingSentenceEndings},
	{[]string{"sentence completion"}, model.SentenceCompletion},
	{[]string{"summary"}, model.SummaryCompletion},
	{[]string{"note"}, model.NoteCompletion},
	{[]string{"table"}, model.TableCompletion},
	{[]string{"flow"}, model.FlowChartCompletion},
	{[]string{"diagram"}, model.DiagramLabelCompletion},
	{[]string{"multiple choice"}, model.MultipleChoice},
	{[]string{"list selection"}, model.ListSelection},
	{[]string{"short"}, model.ShortAnswer},
}

// ClassifyQuestionType maps a backend question-type label onto the fixed
// taxonomy. Unknown labels fall back to multiple_choice with a warning.
func ClassifyQuestionType(label string) model.QuestionType {
	lower := strings.ToLower(label)
	for _, rule := range questionTypeRules {
		for _, p := range rule.patterns {
			if strings.Contains(lower, p) {
				return rule.qType
			}
		}
	}
	log.Warn().Str("question_type", label).Msg("Unknown question type, defaulting to multiple_choice")
	return model.MultipleChoice
}
