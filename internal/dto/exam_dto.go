package dto

import (
	"time"

	"github.com/lshigami/paper2exam/internal/model"
)

type OptionDTO struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type PassageDTO struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	WordCount     int    `json:"word_count"`
	PassageType   string `json:"passage_type"`
	PassageNumber int    `json:"passage_number"`
}

type PassageAnalysisDTO struct {
	ID              int                   `json:"id"`
	PassageNumber   int                   `json:"passage_number"`
	DifficultyLevel string                `json:"difficulty_level"`
	MainTopic       string                `json:"main_topic"`
	QuestionTypes   []string              `json:"question_types"`
	VocabularyLevel string                `json:"vocabulary_level"`
	SuggestedTime   int                   `json:"suggested_time"`
	TargetWordCount *model.WordCountRange `json:"target_word_count,omitempty"`
}

// QuestionDTO carries the correct answer as a string or a list of strings,
// the way the backend sent it. Options is null when none were recognized.
type QuestionDTO struct {
	ID               int                `json:"id"`
	Text             string             `json:"text"`
	Type             model.QuestionType `json:"type" swaggertype:"string"`
	Options          []OptionDTO        `json:"options"`
	Answer           model.Answer       `json:"correct_answer" swaggertype:"string"`
	Explanation      string             `json:"explanation,omitempty"`
	PassageID        *int               `json:"passage_id"`
	QuestionCategory int                `json:"question_category"`
	QuestionNumber   int                `json:"question_number"`
	GrammarPoint     string             `json:"grammar_point,omitempty"`
}

type SectionDTO struct {
	Category     int           `json:"category"`
	Title        string        `json:"title"`
	Instructions string        `json:"instructions"`
	Questions    []QuestionDTO `json:"questions"`
}

type ExamDTO struct {
	ID                     string               `json:"id"`
	Title                  string               `json:"title"`
	ExamType               model.ExamType       `json:"exam_type" swaggertype:"string" enums:"IELTS,TOEIC"`
	Difficulty             string               `json:"difficulty"`
	PartNumber             int                  `json:"part_number,omitempty"`
	Passages               []PassageDTO         `json:"passages"`
	PassageAnalysis        []PassageAnalysisDTO `json:"passage_analysis"`
	Questions              []QuestionDTO        `json:"questions"`
	Sections               []SectionDTO         `json:"sections"`
	TotalWordCount         int                  `json:"total_word_count"`
	SuggestedMinutes       int                  `json:"suggested_minutes"`
	OverallScore           *float64             `json:"overall_score,omitempty"`
	Strengths              []string             `json:"strengths"`
	Weaknesses             []string             `json:"weaknesses"`
	ImprovementSuggestions []string             `json:"improvement_suggestions"`
	CreatedAt              time.Time            `json:"created_at"`
}

type QuestionResultDTO struct {
	QuestionID    int                `json:"question_id"`
	Type          model.QuestionType `json:"type" swaggertype:"string"`
	UserAnswer    string             `json:"user_answer"`
	CorrectAnswer model.Answer       `json:"correct_answer" swaggertype:"string"`
	Correct       bool               `json:"correct"`
}
