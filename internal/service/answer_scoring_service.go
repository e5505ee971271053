package service

import (
	"math"
	"regexp"
	"strings"

	"github.com/lshigami/paper2exam/internal/model"
)

var leadingLetterDot = regexp.MustCompile(`(?i)^[a-z]\.`)

// QuestionResult is the outcome for one question of a scored exam.
type QuestionResult struct {
	QuestionID    int
	Type          model.QuestionType
	UserAnswer    string
	CorrectAnswer model.Answer
	Correct       bool
}

type ScoreSummary struct {
	CorrectCount int
	Total        int
	Percentage   int
	Results      []QuestionResult
}

// IsCorrect decides whether a user answer matches the backend's correct answer
// under the comparison rule of the question type. It never panics: missing or
// malformed options make the answer incorrect, and so does an empty answer.
// Outside matching headings a list-valued correct answer never equals the
// single string the user submits.
func IsCorrect(t model.QuestionType, userAnswer string, correct model.Answer, options []model.Option) bool {
	if userAnswer == "" {
		return false
	}
	if t == model.MatchingHeadings {
		return MatchHeadingAnswer(userAnswer, correct)
	}
	if correct.Multiple {
		return false
	}
	if t == model.MultipleChoice {
		return matchMultipleChoice(userAnswer, correct.Text(), options)
	}
	return userAnswer == correct.Text()
}

// matchMultipleChoice resolves the chosen option id to its text and compares
// that text with the correct answer. TOEIC results name the correct option by
// its letter, so when no option text equals the correct answer it is compared
// against option ids instead.
func matchMultipleChoice(userAnswer, want string, options []model.Option) bool {
	var selected *model.Option
	for i := range options {
		if options[i].ID == userAnswer {
			selected = &options[i]
			break
		}
	}
	if selected == nil {
		return false
	}
	for _, o := range options {
		if o.Text == want {
			return selected.Text == want
		}
	}
	for _, o := range options {
		if o.ID == want {
			return selected.ID == want
		}
	}
	return false
}

// MatchHeadingAnswer compares a matching-headings answer. Both sides are
// lowercased and trimmed, then the first matching case applies:
//
//  1. list answer: the user answer equals any list entry.
//  2. single-letter answer ("b"): the user answer is that letter, or starts
//     with the letter followed by "." or " " ("b. Supported tasks").
//  3. the user answer starts with "x." and the correct answer is longer than
//     two characters: when the correct answer is also lettered ("b. ...") the
//     two letters are compared, otherwise the full strings must be equal.
//  4. plain equality.
func MatchHeadingAnswer(userAnswer string, correct model.Answer) bool {
	user := strings.ToLower(strings.TrimSpace(userAnswer))

	if correct.Multiple {
		for _, v := range correct.Values {
			if strings.ToLower(strings.TrimSpace(v)) == user {
				return true
			}
		}
		return false
	}

	want := strings.ToLower(strings.TrimSpace(correct.Text()))
	switch {
	case len(want) == 1 && want[0] >= 'a' && want[0] <= 'z':
		return user == want || strings.HasPrefix(user, want+".") || strings.HasPrefix(user, want+" ")
	case leadingLetterDot.MatchString(user) && len(want) > 2:
		if leadingLetterDot.MatchString(want) {
			return user[:1] == want[:1]
		}
		return user == want
	default:
		return user == want
	}
}

// ScoreExam applies IsCorrect to every question. Unanswered questions count
// as incorrect; an exam without questions scores 0%.
func ScoreExam(exam *model.Exam, answers model.UserAnswers) ScoreSummary {
	summary := ScoreSummary{}
	if exam == nil {
		return summary
	}
	summary.Total = len(exam.Questions)
	summary.Results = make([]QuestionResult, 0, len(exam.Questions))
	for _, q := range exam.Questions {
		user := answers[q.ID]
		ok := IsCorrect(q.Type, user, q.Answer, q.Options)
		if ok {
			summary.CorrectCount++
		}
		summary.Results = append(summary.Results, QuestionResult{
			QuestionID:    q.ID,
			Type:          q.Type,
			UserAnswer:    user,
			CorrectAnswer: q.Answer,
			Correct:       ok,
		})
	}
	if summary.Total > 0 {
		summary.Percentage = int(math.Round(float64(summary.CorrectCount) / float64(summary.Total) * 100))
	}
	return summary
}

// CompletionPercentage is the share of questions with a non-empty answer.
func CompletionPercentage(exam *model.Exam, answers model.UserAnswers) int {
	if exam == nil || len(exam.Questions) == 0 {
		return 0
	}
	answered := 0
	for _, q := range exam.Questions {
		if answers[q.ID] != "" {
			answered++
		}
	}
	return int(math.Round(float64(answered) / float64(len(exam.Questions)) * 100))
}
