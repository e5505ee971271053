package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lshigami/paper2exam/internal/model"
	"github.com/rs/zerolog/log"
)

const (
	defaultDifficulty        = "7.0"
	defaultTOEICPart         = 5
	defaultPassageMinutes    = 20
	defaultDifficultyLevel   = "Medium"
	defaultVocabularyLevel   = "Intermediate"
	defaultQuestionCategory  = 1
	defaultIELTSTitle        = "Exam"
	defaultTOEICInstructions = "Choose the best answer from the options given."
)

// toeicPartMinutes is the suggested time per TOEIC reading part.
var toeicPartMinutes = map[int]int{5: 30, 6: 16, 7: 54}

var toeicParts = map[int]struct{ title, instructions string }{
	5: {"Part 5: Incomplete Sentences", "Choose the word or phrase that best completes each sentence."},
	6: {"Part 6: Text Completion", "Read the text and choose the word or phrase that best completes each blank."},
	7: {"Part 7: Reading Comprehension", "Read the passage and choose the best answer to each question."},
}

// ExamBuilderService turns a backend result document into an immutable Exam.
type ExamBuilderService interface {
	BuildExam(sessionID string, meta model.SessionInfo, result *model.RawResult) (*model.Exam, error)
}

type examBuilderService struct {
	now func() time.Time
}

func NewExamBuilderService() ExamBuilderService {
	return &examBuilderService{now: time.Now}
}

// BuildExam only fails when result is nil; every other missing or malformed
// field falls back to a default.
func (s *examBuilderService) BuildExam(sessionID string, meta model.SessionInfo, result *model.RawResult) (*model.Exam, error) {
	if result == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrExamUnavailable)
	}

	examType := DetectExamType(meta, result)
	exam := &model.Exam{
		ID:                     sessionID,
		ExamType:               examType,
		Difficulty:             firstNonEmpty(meta.Difficulty, defaultDifficulty),
		Passages:               buildPassages(result.ReadingPassages),
		PassageAnalysis:        []model.PassageAnalysis{},
		OverallScore:           overallScore(result),
		Strengths:              nonNil(result.Strengths),
		Weaknesses:             nonNil(result.Weaknesses),
		ImprovementSuggestions: nonNil(result.ImprovementSuggestions),
		CreatedAt:              s.now(),
	}

	if examType == model.ExamTypeTOEIC {
		exam.PartNumber = toeicPartNumber(result)
		exam.Title = fmt.Sprintf("TOEIC Part %d Practice Test", exam.PartNumber)
	} else {
		exam.PassageAnalysis = buildPassageAnalysis(result.PassageAnalysis)
		exam.Title = defaultIELTSTitle
		if len(exam.Passages) > 0 && strings.TrimSpace(exam.Passages[0].Title) != "" {
			exam.Title = exam.Passages[0].Title
		}
		for _, p := range exam.Passages {
			exam.TotalWordCount += p.WordCount
		}
	}

	// TOEIC questions without their own part belong to the exam's part.
	category := defaultQuestionCategory
	if examType == model.ExamTypeTOEIC {
		category = exam.PartNumber
	}
	exam.Questions = buildQuestions(examType, category, result.Questions)
	exam.SuggestedMinutes = SuggestedMinutes(exam)
	exam.Sections = GroupSections(exam)

	log.Info().
		Str("sessionID", sessionID).
		Str("examType", string(examType)).
		Int("passages", len(exam.Passages)).
		Int("questions", len(exam.Questions)).
		Int("suggestedMinutes", exam.SuggestedMinutes).
		Msg("Exam built from backend result")
	return exam, nil
}

// DetectExamType picks TOEIC when the session says so, when the result has a
// part_number, or when any question carries the A-D option map. Anything else
// is IELTS.
func DetectExamType(meta model.SessionInfo, result *model.RawResult) model.ExamType {
	if strings.EqualFold(strings.TrimSpace(meta.ExamType), string(model.ExamTypeTOEIC)) {
		return model.ExamTypeTOEIC
	}
	if result == nil {
		return model.ExamTypeIELTS
	}
	// An explicit null part_number counts as absent.
	if result.HasPartNumber() {
		return model.ExamTypeTOEIC
	}
	for i := range result.Questions {
		if result.Questions[i].Options.HasABCD() {
			return model.ExamTypeTOEIC
		}
	}
	return model.ExamTypeIELTS
}

func toeicPartNumber(result *model.RawResult) int {
	if result.PartNumber != nil && result.PartNumber.Set {
		return result.PartNumber.Or(defaultTOEICPart)
	}
	if len(result.Questions) > 0 {
		return result.Questions[0].Part.Or(defaultTOEICPart)
	}
	return defaultTOEICPart
}

func buildPassages(raw []model.RawPassage) []model.Passage {
	passages := make([]model.Passage, 0, len(raw))
	for i, p := range raw {
		passages = append(passages, model.Passage{
			ID:            i + 1,
			Title:         firstNonEmpty(p.Title, fmt.Sprintf("Passage %d", i+1)),
			Content:       p.Content,
			WordCount:     p.WordCount.Or(0),
			PassageType:   firstNonEmpty(p.PassageType, fmt.Sprintf("Passage %d", i+1)),
			PassageNumber: p.PassageNumber.Or(i + 1),
		})
	}
	return passages
}

func buildPassageAnalysis(raw []model.RawPassageAnalysis) []model.PassageAnalysis {
	analysis := make([]model.PassageAnalysis, 0, len(raw))
	for i, a := range raw {
		analysis = append(analysis, model.PassageAnalysis{
			ID:              i + 1,
			PassageNumber:   a.PassageNumber.Or(i + 1),
			DifficultyLevel: firstNonEmpty(a.DifficultyLevel, defaultDifficultyLevel),
			MainTopic:       a.MainTopic,
			QuestionTypes:   nonNil(a.QuestionTypes),
			VocabularyLevel: firstNonEmpty(a.VocabularyLevel, defaultVocabularyLevel),
			SuggestedTime:   a.SuggestedTime.Or(defaultPassageMinutes),
			TargetWordCount: a.TargetWordCount,
		})
	}
	return analysis
}

func buildQuestions(examType model.ExamType, defaultCategory int, raw []model.RawQuestion) []model.Question {
	questions := make([]model.Question, 0, len(raw))
	seen := make(map[int]bool, len(raw))
	for i := range raw {
		q := buildQuestion(examType, defaultCategory, i, &raw[i])
		if seen[q.ID] {
			log.Warn().Int("questionID", q.ID).Msg("Duplicate question number in exam result")
		}
		seen[q.ID] = true
		questions = append(questions, q)
	}
	return questions
}

func buildQuestion(examType model.ExamType, defaultCategory, index int, raw *model.RawQuestion) model.Question {
	toeicFormat := examType == model.ExamTypeTOEIC || raw.Options.HasABCD()

	qType := model.MultipleChoice
	if !toeicFormat {
		qType = ClassifyQuestionType(raw.QuestionType)
	}

	options := NormalizeOptions(raw.Options)
	if options == nil {
		if discrete, ok := raw.DiscreteOptions(); ok {
			options = discrete
		}
	}
	if toeicFormat && len(options) == 0 {
		log.Error().Int("questionNumber", raw.QuestionNumber.Or(index+1)).Str("optionsKind", raw.Options.Kind.String()).Msg("No valid options found for TOEIC question, using placeholders")
		options = PlaceholderOptions()
	}

	var passageID *int
	if ref := raw.PassageReference.Or(0); ref != 0 {
		passageID = &ref
	}

	number := raw.QuestionNumber.Or(index + 1)
	return model.Question{
		ID:               number,
		Text:             raw.QuestionText,
		Type:             qType,
		Options:          options,
		Answer:           raw.CorrectAnswer,
		Explanation:      raw.Explanation,
		PassageID:        passageID,
		QuestionCategory: raw.Part.Or(raw.QuestionCategory.Or(defaultCategory)),
		QuestionNumber:   number,
		GrammarPoint:     raw.GrammarPoint,
		RawType:          raw.QuestionType,
	}
}

// SuggestedMinutes is the exam length: a fixed table per TOEIC part, or the
// sum of the passages' suggested times for IELTS.
func SuggestedMinutes(exam *model.Exam) int {
	if exam.ExamType == model.ExamTypeTOEIC {
		if m, ok := toeicPartMinutes[exam.PartNumber]; ok {
			return m
		}
		return toeicPartMinutes[defaultTOEICPart]
	}
	total := 0
	for _, a := range exam.PassageAnalysis {
		if a.SuggestedTime > 0 {
			total += a.SuggestedTime
		} else {
			total += defaultPassageMinutes
		}
	}
	if total == 0 {
		// No analysis: one default slot per passage, at least one slot.
		total = defaultPassageMinutes * max(len(exam.Passages), 1)
	}
	return total
}

// GroupSections groups questions by category, ordered by category number.
func GroupSections(exam *model.Exam) []model.Section {
	groups := map[int][]model.Question{}
	for _, q := range exam.Questions {
		groups[q.QuestionCategory] = append(groups[q.QuestionCategory], q)
	}
	categories := make([]int, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Ints(categories)

	sections := make([]model.Section, 0, len(categories))
	for _, c := range categories {
		title, instructions := sectionHeading(exam.ExamType, c, groups[c][0].Type)
		sections = append(sections, model.Section{
			Category:     c,
			Title:        title,
			Instructions: instructions,
			Questions:    groups[c],
		})
	}
	return sections
}

func sectionHeading(examType model.ExamType, category int, first model.QuestionType) (string, string) {
	if examType == model.ExamTypeTOEIC {
		if part, ok := toeicParts[category]; ok {
			return part.title, part.instructions
		}
		return fmt.Sprintf("Part %d", category), defaultTOEICInstructions
	}
	if !first.Valid() {
		return fmt.Sprintf("Category %d Questions", category), ""
	}
	return first.Title(), first.Instructions()
}

func overallScore(result *model.RawResult) *float64 {
	if result.EstimatedScore != nil && *result.EstimatedScore != 0 {
		return result.EstimatedScore
	}
	return result.OverallScore
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
