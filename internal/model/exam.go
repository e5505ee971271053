package model

import "time"

type ExamType string

const (
	ExamTypeIELTS ExamType = "IELTS"
	ExamTypeTOEIC ExamType = "TOEIC"
)

type Passage struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	WordCount     int    `json:"word_count"`
	PassageType   string `json:"passage_type"`
	PassageNumber int    `json:"passage_number"`
}

type WordCountRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type PassageAnalysis struct {
	ID              int             `json:"id"`
	PassageNumber   int             `json:"passage_number"`
	DifficultyLevel string          `json:"difficulty_level"`
	MainTopic       string          `json:"main_topic"`
	QuestionTypes   []string        `json:"question_types"`
	VocabularyLevel string          `json:"vocabulary_level"`
	SuggestedTime   int             `json:"suggested_time"` // minutes
	TargetWordCount *WordCountRange `json:"target_word_count,omitempty"`
}

// Option is one answer choice. IDs are unique within a question.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is a classified, normalized exam question. Options is nil when the
// backend sent nothing recognizable, and empty when it sent an empty list.
type Question struct {
	ID               int          `json:"id"`
	Text             string       `json:"text"`
	Type             QuestionType `json:"type"`
	Options          []Option     `json:"options"`
	Answer           Answer       `json:"answer"`
	Explanation      string       `json:"explanation,omitempty"`
	PassageID        *int         `json:"passage_id"`
	QuestionCategory int          `json:"question_category"`
	QuestionNumber   int          `json:"question_number"`
	GrammarPoint     string       `json:"grammar_point,omitempty"`
	RawType          string       `json:"raw_type,omitempty"`
}

// Section groups the questions of one category (IELTS question group or TOEIC part).
type Section struct {
	Category     int        `json:"category"`
	Title        string     `json:"title"`
	Instructions string     `json:"instructions"`
	Questions    []Question `json:"questions"`
}

// Exam is built once per session load and never mutated afterwards.
type Exam struct {
	ID                     string            `json:"id"`
	Title                  string            `json:"title"`
	ExamType               ExamType          `json:"exam_type"`
	Difficulty             string            `json:"difficulty"`
	PartNumber             int               `json:"part_number,omitempty"`
	Passages               []Passage         `json:"passages"`
	PassageAnalysis        []PassageAnalysis `json:"passage_analysis"`
	Questions              []Question        `json:"questions"`
	Sections               []Section         `json:"sections"`
	TotalWordCount         int               `json:"total_word_count"`
	SuggestedMinutes       int               `json:"suggested_minutes"`
	OverallScore           *float64          `json:"overall_score,omitempty"`
	Strengths              []string          `json:"strengths"`
	Weaknesses             []string          `json:"weaknesses"`
	ImprovementSuggestions []string          `json:"improvement_suggestions"`
	CreatedAt              time.Time         `json:"created_at"`
}

func (e *Exam) QuestionByID(id int) (Question, bool) {
	for _, q := range e.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// SuggestedSeconds is the countdown length for the exam timer.
func (e *Exam) SuggestedSeconds() int {
	return e.SuggestedMinutes * 60
}

// UserAnswers maps a question ID to the answer the user entered.
type UserAnswers map[int]string

// SessionInfo mirrors the backend's session-info document.
type SessionInfo struct {
	SessionID   string `json:"session_id"`
	Filename    string `json:"filename"`
	HasResult   bool   `json:"has_result"`
	Status      string `json:"status"`
	ExamType    string `json:"exam_type"`
	Difficulty  string `json:"difficulty"`
	PassageType string `json:"passage_type"`
}
