package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/paper2exam/config"
	"github.com/lshigami/paper2exam/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

var ErrFeedbackUnavailable = errors.New("AI feedback is not configured")

// FeedbackLLMService explains to the learner why an answer was wrong.
type FeedbackLLMService interface {
	Enabled() bool
	ExplainAnswer(ctx context.Context, exam *model.Exam, question *model.Question, userAnswer string) (string, error)
}

// contentGenerator is the part of *genai.GenerativeModel the service needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type feedbackLLMService struct {
	model contentGenerator
}

// NewFeedbackLLMService returns a disabled service when GEMINI_API_KEY is unset.
func NewFeedbackLLMService(cfg *config.Config) (FeedbackLLMService, error) {
	if cfg.Gemini.ApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Answer feedback will be disabled.")
		return &feedbackLLMService{}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.ApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	gm := client.GenerativeModel(cfg.Gemini.Model)
	gm.SetTemperature(0.3)
	return &feedbackLLMService{model: gm}, nil
}

func (s *feedbackLLMService) Enabled() bool {
	return s.model != nil
}

func (s *feedbackLLMService) ExplainAnswer(ctx context.Context, exam *model.Exam, question *model.Question, userAnswer string) (string, error) {
	if s.model == nil {
		return "", ErrFeedbackUnavailable
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(buildFeedbackPrompt(exam, question, userAnswer)))
	if err != nil {
		log.Error().Err(err).Int("questionID", question.ID).Msg("Gemini API error during feedback")
		return "", fmt.Errorf("gemini feedback for question %d: %w", question.ID, err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates for question %d", question.ID)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	feedback := parseFeedback(text.String())
	if feedback == "" {
		return "", fmt.Errorf("gemini returned no text content for question %d", question.ID)
	}
	return feedback, nil
}

func buildFeedbackPrompt(exam *model.Exam, q *model.Question, userAnswer string) string {
	var b strings.Builder
	examType := model.ExamTypeIELTS
	if exam != nil {
		examType = exam.ExamType
	}
	fmt.Fprintf(&b, "You are an experienced %s Reading instructor.\n", examType)
	b.WriteString("A learner answered the following question incorrectly. Explain briefly why the correct answer is right and what misled the learner.\n\n")

	if exam != nil && q.PassageID != nil {
		for _, p := range exam.Passages {
			if p.ID == *q.PassageID || p.PassageNumber == *q.PassageID {
				fmt.Fprintf(&b, "Passage \"%s\":\n---\n%s\n---\n\n", p.Title, p.Content)
				break
			}
		}
	}

	title := string(q.Type)
	if q.Type.Valid() {
		title = q.Type.Title()
	}
	fmt.Fprintf(&b, "Question type: %s\n", title)
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	if len(q.Options) > 0 {
		b.WriteString("Options:\n")
		for _, o := range q.Options {
			fmt.Fprintf(&b, "  %s. %s\n", o.ID, o.Text)
		}
	}
	if q.GrammarPoint != "" {
		fmt.Fprintf(&b, "Grammar point: %s\n", q.GrammarPoint)
	}
	fmt.Fprintf(&b, "Correct answer: %s\n", strings.Join(q.Answer.Values, " / "))
	fmt.Fprintf(&b, "Learner's answer: %s\n", userAnswer)
	if q.Explanation != "" {
		fmt.Fprintf(&b, "Reference explanation: %s\n", q.Explanation)
	}
	b.WriteString("\nKeep it under 80 words. Format your response strictly as:\nFeedback: [your feedback]\n")
	return b.String()
}

// parseFeedback strips the "Feedback:" label the prompt asks for. A response
// without the label is used as is.
func parseFeedback(raw string) string {
	const prefix = "feedback:"
	text := strings.TrimSpace(raw)
	if i := strings.Index(strings.ToLower(text), prefix); i != -1 {
		text = strings.TrimSpace(text[i+len(prefix):])
	}
	return text
}
