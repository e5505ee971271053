package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type UploadResponse struct {
	SessionID string `json:"session_id"`
	Filename  string `json:"filename"`
	WordCount int    `json:"word_count"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

type GenerateExamResponse struct {
	SessionID    string  `json:"session_id"`
	Status       string  `json:"status"`
	Deduplicated bool    `json:"deduplicated"`
	Exam         ExamDTO `json:"exam"`
}

type SessionInfoResponse struct {
	SessionID   string `json:"session_id"`
	Filename    string `json:"filename"`
	HasResult   bool   `json:"has_result"`
	Status      string `json:"status"`
	ExamType    string `json:"exam_type"`
	Difficulty  string `json:"difficulty"`
	PassageType string `json:"passage_type"`
}

type TimerResponse struct {
	State            string `json:"state" example:"running"`
	RemainingSeconds int    `json:"remaining_seconds" example:"1795"`
	TotalSeconds     int    `json:"total_seconds" example:"1800"`
	Display          string `json:"display" example:"29:55"`
}

type EstimatedScoreDTO struct {
	Scale string  `json:"scale"`
	Value float64 `json:"value"`
}

type SubmissionResponse struct {
	SubmissionID string              `json:"submission_id"`
	SessionID    string              `json:"session_id"`
	SubmittedAt  time.Time           `json:"submitted_at"`
	CorrectCount int                 `json:"correct_count"`
	Total        int                 `json:"total"`
	Percentage   int                 `json:"percentage"`
	Completion   int                 `json:"completion"`
	Estimated    *EstimatedScoreDTO  `json:"estimated_score,omitempty"`
	Results      []QuestionResultDTO `json:"results"`
	Feedback     map[int]string      `json:"feedback,omitempty"`
	FeedbackNote string              `json:"feedback_note,omitempty"`
	Timer        TimerResponse       `json:"timer"`
}
