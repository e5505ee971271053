package dto

// UploadPaperRequest documents the multipart form of POST /papers. Either
// pdf_file or url must be set.
type UploadPaperRequest struct {
	URL string `form:"url"`
}

type GenerateExamRequest struct {
	ExamType    string `json:"exam_type" binding:"required,oneof=IELTS TOEIC"`
	Difficulty  string `json:"difficulty"`
	PassageType string `json:"passage_type"`
}

// SubmitAnswersRequest maps question IDs to the answers the user entered.
type SubmitAnswersRequest struct {
	Answers      map[int]string `json:"answers" binding:"required"`
	WithFeedback bool           `json:"with_feedback"`
}
