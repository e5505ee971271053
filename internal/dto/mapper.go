package dto

import (
	"github.com/jinzhu/copier"
	"github.com/lshigami/paper2exam/internal/model"
	"github.com/lshigami/paper2exam/internal/repository"
	"github.com/lshigami/paper2exam/internal/service"
	"github.com/rs/zerolog/log"
)

func NewUploadResponse(res *repository.UploadResult) UploadResponse {
	var out UploadResponse
	if err := copier.Copy(&out, res); err != nil {
		log.Error().Err(err).Msg("Failed to map upload result")
	}
	return out
}

func NewSessionInfoResponse(info *model.SessionInfo) SessionInfoResponse {
	var out SessionInfoResponse
	if err := copier.Copy(&out, info); err != nil {
		log.Error().Err(err).Msg("Failed to map session info")
	}
	return out
}

func NewExamDTO(exam *model.Exam) ExamDTO {
	out := ExamDTO{
		ID:                     exam.ID,
		Title:                  exam.Title,
		ExamType:               exam.ExamType,
		Difficulty:             exam.Difficulty,
		PartNumber:             exam.PartNumber,
		Passages:               []PassageDTO{},
		PassageAnalysis:        []PassageAnalysisDTO{},
		Questions:              newQuestionDTOs(exam.Questions),
		Sections:               make([]SectionDTO, 0, len(exam.Sections)),
		TotalWordCount:         exam.TotalWordCount,
		SuggestedMinutes:       exam.SuggestedMinutes,
		OverallScore:           exam.OverallScore,
		Strengths:              exam.Strengths,
		Weaknesses:             exam.Weaknesses,
		ImprovementSuggestions: exam.ImprovementSuggestions,
		CreatedAt:              exam.CreatedAt,
	}
	if err := copier.Copy(&out.Passages, &exam.Passages); err != nil {
		log.Error().Err(err).Str("examID", exam.ID).Msg("Failed to map passages")
	}
	if err := copier.Copy(&out.PassageAnalysis, &exam.PassageAnalysis); err != nil {
		log.Error().Err(err).Str("examID", exam.ID).Msg("Failed to map passage analysis")
	}
	for _, s := range exam.Sections {
		out.Sections = append(out.Sections, SectionDTO{
			Category:     s.Category,
			Title:        s.Title,
			Instructions: s.Instructions,
			Questions:    newQuestionDTOs(s.Questions),
		})
	}
	return out
}

// newQuestionDTOs keeps the nil/empty distinction of each question's options.
func newQuestionDTOs(questions []model.Question) []QuestionDTO {
	out := make([]QuestionDTO, 0, len(questions))
	for _, q := range questions {
		var options []OptionDTO
		if q.Options != nil {
			options = make([]OptionDTO, 0, len(q.Options))
			for _, o := range q.Options {
				options = append(options, OptionDTO{ID: o.ID, Text: o.Text})
			}
		}
		out = append(out, QuestionDTO{
			ID:               q.ID,
			Text:             q.Text,
			Type:             q.Type,
			Options:          options,
			Answer:           q.Answer,
			Explanation:      q.Explanation,
			PassageID:        q.PassageID,
			QuestionCategory: q.QuestionCategory,
			QuestionNumber:   q.QuestionNumber,
			GrammarPoint:     q.GrammarPoint,
		})
	}
	return out
}

func NewTimerResponse(s service.TimerSnapshot) TimerResponse {
	return TimerResponse{
		State:            string(s.State),
		RemainingSeconds: s.RemainingSeconds,
		TotalSeconds:     s.TotalSeconds,
		Display:          s.Display,
	}
}

func NewSubmissionResponse(sub *service.Submission) SubmissionResponse {
	out := SubmissionResponse{
		SubmissionID: sub.ID,
		SessionID:    sub.SessionID,
		SubmittedAt:  sub.SubmittedAt,
		CorrectCount: sub.Score.CorrectCount,
		Total:        sub.Score.Total,
		Percentage:   sub.Score.Percentage,
		Completion:   sub.Completion,
		Results:      []QuestionResultDTO{},
		Feedback:     sub.Feedback,
		FeedbackNote: sub.FeedbackNote,
		Timer:        NewTimerResponse(sub.Timer),
	}
	if err := copier.Copy(&out.Results, &sub.Score.Results); err != nil {
		log.Error().Err(err).Str("submissionID", sub.ID).Msg("Failed to map question results")
	}
	if sub.Estimated != nil {
		out.Estimated = &EstimatedScoreDTO{Scale: sub.Estimated.Scale, Value: sub.Estimated.Value}
	}
	return out
}
