package service

import (
	"testing"

	"github.com/lshigami/paper2exam/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cityOptions = []model.Option{{ID: "A", Text: "Paris"}, {ID: "B", Text: "Lyon"}}

func TestIsCorrectMultipleChoice(t *testing.T) {
	correct := model.TextAnswer("Paris")
	assert.True(t, IsCorrect(model.MultipleChoice, "A", correct, cityOptions))
	assert.False(t, IsCorrect(model.MultipleChoice, "B", correct, cityOptions))
	assert.False(t, IsCorrect(model.MultipleChoice, "C", correct, cityOptions))
	assert.False(t, IsCorrect(model.MultipleChoice, "", correct, cityOptions))
	assert.False(t, IsCorrect(model.MultipleChoice, "A", correct, nil))
	assert.False(t, IsCorrect(model.MultipleChoice, "A", model.TextAnswer("paris"), cityOptions))
}

func TestIsCorrectMultipleChoiceLetterAnswer(t *testing.T) {
	opts := []model.Option{{ID: "A", Text: "go"}, {ID: "B", Text: "goes"}, {ID: "C", Text: "going"}, {ID: "D", Text: "gone"}}
	assert.True(t, IsCorrect(model.MultipleChoice, "B", model.TextAnswer("B"), opts))
	assert.False(t, IsCorrect(model.MultipleChoice, "A", model.TextAnswer("B"), opts))
	assert.True(t, IsCorrect(model.MultipleChoice, "C", model.TextAnswer("going"), opts))
}

func TestIsCorrectMultipleChoicePrefersOptionText(t *testing.T) {
	opts := []model.Option{{ID: "A", Text: "B"}, {ID: "B", Text: "C"}}
	assert.True(t, IsCorrect(model.MultipleChoice, "A", model.TextAnswer("B"), opts))
	assert.False(t, IsCorrect(model.MultipleChoice, "B", model.TextAnswer("B"), opts))
}

func TestIsCorrectListAnswerNeverEqualsString(t *testing.T) {
	assert.False(t, IsCorrect(model.ListSelection, "B", model.ListAnswer("B", "D"), nil))
	assert.False(t, IsCorrect(model.ShortAnswer, "ii", model.ListAnswer("ii", "iii"), nil))
	assert.False(t, IsCorrect(model.ShortAnswer, "iii", model.ListAnswer("ii", "iii"), nil))
	assert.False(t, IsCorrect(model.SentenceCompletion, "hot", model.ListAnswer("hot"), nil))
	assert.False(t, IsCorrect(model.MultipleChoice, "A", model.ListAnswer("Paris"), cityOptions))
	assert.True(t, IsCorrect(model.MatchingHeadings, "iii", model.ListAnswer("ii", "iii"), nil))
}

func TestMatchHeadingAnswer(t *testing.T) {
	cases := []struct {
		name    string
		user    string
		correct model.Answer
		want    bool
	}{
		{"letter with dot", "b. Supported tasks", model.TextAnswer("b"), true},
		{"letter with space", "B Supported tasks", model.TextAnswer("b"), true},
		{"exact letter", " B ", model.TextAnswer("b"), true},
		{"wrong letter", "a. Something", model.TextAnswer("b"), false},
		{"letter prefix without separator", "ba", model.TextAnswer("b"), false},
		{"list contains", "iii", model.ListAnswer("ii", "iii"), true},
		{"list normalized", " III ", model.ListAnswer("ii", "iii"), true},
		{"list misses", "iv", model.ListAnswer("ii", "iii"), false},
		{"lettered both sides", "c. Rising costs", model.TextAnswer("C. Rising costs of energy"), true},
		{"lettered against plain text", "c. rising costs", model.TextAnswer("Rising costs"), false},
		{"full text", "The history of jazz", model.TextAnswer("the history of jazz "), true},
		{"full text mismatch", "The history of rock", model.TextAnswer("the history of jazz"), false},
		{"roman numeral", "iv", model.TextAnswer("iv"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchHeadingAnswer(tc.user, tc.correct))
			assert.Equal(t, tc.want, IsCorrect(model.MatchingHeadings, tc.user, tc.correct, nil))
		})
	}
}

func TestIsCorrectExactTypes(t *testing.T) {
	for _, qt := range []model.QuestionType{
		model.TrueFalseNotGiven, model.YesNoNotGiven, model.SentenceCompletion,
		model.SummaryCompletion, model.ShortAnswer, model.MatchingSentenceEndings,
	} {
		assert.True(t, IsCorrect(qt, "TRUE", model.TextAnswer("TRUE"), nil), qt)
		assert.False(t, IsCorrect(qt, "true", model.TextAnswer("TRUE"), nil), qt)
		assert.False(t, IsCorrect(qt, "TRUE ", model.TextAnswer("TRUE"), nil), qt)
		assert.False(t, IsCorrect(qt, "", model.TextAnswer(""), nil), qt)
	}
}

func scoringExam() *model.Exam {
	return &model.Exam{
		Questions: []model.Question{
			{ID: 1, Type: model.MultipleChoice, Options: cityOptions, Answer: model.TextAnswer("Paris")},
			{ID: 2, Type: model.MatchingHeadings, Answer: model.TextAnswer("b")},
			{ID: 3, Type: model.TrueFalseNotGiven, Answer: model.TextAnswer("NOT GIVEN")},
		},
	}
}

func TestScoreExam(t *testing.T) {
	exam := scoringExam()

	none := ScoreExam(exam, model.UserAnswers{})
	assert.Equal(t, 0, none.CorrectCount)
	assert.Equal(t, 0, none.Percentage)
	assert.Equal(t, 3, none.Total)
	require.Len(t, none.Results, 3)
	for _, r := range none.Results {
		assert.False(t, r.Correct)
	}

	all := ScoreExam(exam, model.UserAnswers{1: "A", 2: "b. Heading", 3: "NOT GIVEN"})
	assert.Equal(t, 3, all.CorrectCount)
	assert.Equal(t, 100, all.Percentage)

	some := ScoreExam(exam, model.UserAnswers{1: "A", 2: "a", 3: "FALSE"})
	assert.Equal(t, 1, some.CorrectCount)
	assert.Equal(t, 33, some.Percentage)

	two := ScoreExam(exam, model.UserAnswers{1: "A", 2: "b"})
	assert.Equal(t, 67, two.Percentage)
	assert.Equal(t, "b", two.Results[1].UserAnswer)
}

func TestScoreExamWithoutQuestions(t *testing.T) {
	assert.Equal(t, 0, ScoreExam(&model.Exam{}, nil).Percentage)
	assert.Equal(t, ScoreSummary{}, ScoreExam(nil, nil))
}

func TestCompletionPercentage(t *testing.T) {
	exam := scoringExam()
	assert.Equal(t, 0, CompletionPercentage(exam, nil))
	assert.Equal(t, 67, CompletionPercentage(exam, model.UserAnswers{1: "A", 3: "TRUE", 99: "x"}))
	assert.Equal(t, 0, CompletionPercentage(&model.Exam{}, model.UserAnswers{1: "A"}))
}
