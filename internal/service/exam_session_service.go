package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/paper2exam/internal/model"
	"github.com/lshigami/paper2exam/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// GenerateOutcome is the result of a generate-exam call. Deduplicated is set
// when the call joined an identical request that was already in flight.
type GenerateOutcome struct {
	SessionID    string
	Status       string
	Exam         *model.Exam
	Deduplicated bool
}

type Submission struct {
	ID           string
	SessionID    string
	SubmittedAt  time.Time
	Score        ScoreSummary
	Completion   int
	Estimated    *EstimatedScore
	Feedback     map[int]string
	FeedbackNote string
	Timer        TimerSnapshot
}

// ExamSessionService drives one exam session: upload, generation, loading,
// submission and the countdown timer.
type ExamSessionService interface {
	UploadPDF(ctx context.Context, filename string, pdf io.Reader) (*repository.UploadResult, error)
	UploadURL(ctx context.Context, url string) (*repository.UploadResult, error)
	GenerateExam(ctx context.Context, sessionID string, req repository.GenerateRequest) (*GenerateOutcome, error)
	SessionInfo(ctx context.Context, sessionID string) (*model.SessionInfo, error)
	LoadExam(ctx context.Context, sessionID string) (*model.Exam, error)
	SubmitAnswers(ctx context.Context, sessionID string, answers model.UserAnswers, withFeedback bool) (*Submission, error)
	TimerSnapshot(ctx context.Context, sessionID string) (TimerSnapshot, error)
	StartTimer(ctx context.Context, sessionID string) (TimerSnapshot, error)
	PauseTimer(ctx context.Context, sessionID string) (TimerSnapshot, error)
	ResetTimer(ctx context.Context, sessionID string) (TimerSnapshot, error)
	DownloadResult(ctx context.Context, sessionID string) (*repository.ResultFile, error)
	Shutdown()
}

// defaultSessionIdleTTL bounds how long an unused exam stays cached.
const defaultSessionIdleTTL = 2 * time.Hour

type examSession struct {
	exam     *model.Exam
	timer    *ExamTimer
	lastUsed time.Time
}

type examSessionService struct {
	repo          repository.SessionRepository
	builder       ExamBuilderService
	feedback      FeedbackLLMService
	converter     ScoreConverterService
	generateGroup singleflight.Group
	tickInterval  time.Duration
	idleTTL       time.Duration
	now           func() time.Time

	mu       sync.Mutex
	sessions map[string]*examSession
}

func NewExamSessionService(repo repository.SessionRepository, builder ExamBuilderService, feedback FeedbackLLMService, converter ScoreConverterService) ExamSessionService {
	return &examSessionService{
		repo:         repo,
		builder:      builder,
		feedback:     feedback,
		converter:    converter,
		tickInterval: time.Second,
		idleTTL:      defaultSessionIdleTTL,
		now:          time.Now,
		sessions:     make(map[string]*examSession),
	}
}

func (s *examSessionService) UploadPDF(ctx context.Context, filename string, pdf io.Reader) (*repository.UploadResult, error) {
	out, err := s.repo.UploadPDF(ctx, filename, pdf)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	log.Info().Str("sessionID", out.SessionID).Str("filename", out.Filename).Int("wordCount", out.WordCount).Msg("Paper uploaded")
	return out, nil
}

func (s *examSessionService) UploadURL(ctx context.Context, url string) (*repository.UploadResult, error) {
	out, err := s.repo.UploadURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("upload from url: %w", err)
	}
	log.Info().Str("sessionID", out.SessionID).Str("url", url).Int("wordCount", out.WordCount).Msg("Paper uploaded from URL")
	return out, nil
}

// GenerateExam forwards to the backend. Identical concurrent requests for a
// session share one backend call; sequential repeats are forwarded again.
func (s *examSessionService) GenerateExam(ctx context.Context, sessionID string, req repository.GenerateRequest) (*GenerateOutcome, error) {
	key := fmt.Sprintf("%s|%s|%s|%s", sessionID, req.ExamType, req.Difficulty, req.PassageType)
	v, err, shared := s.generateGroup.Do(key, func() (interface{}, error) {
		return s.generate(context.WithoutCancel(ctx), sessionID, req)
	})
	if err != nil {
		return nil, err
	}
	outcome := *v.(*GenerateOutcome)
	outcome.Deduplicated = shared
	if shared {
		log.Info().Str("sessionID", sessionID).Msg("Generate request joined an in-flight call")
	}
	return &outcome, nil
}

func (s *examSessionService) generate(ctx context.Context, sessionID string, req repository.GenerateRequest) (*GenerateOutcome, error) {
	log.Info().Str("sessionID", sessionID).Str("examType", req.ExamType).Str("difficulty", req.Difficulty).Msg("Generating exam")
	res, err := s.repo.GenerateExam(ctx, sessionID, req)
	if err != nil {
		return nil, fmt.Errorf("generate exam for session %s: %w", sessionID, err)
	}
	meta := model.SessionInfo{
		SessionID:   sessionID,
		HasResult:   true,
		Status:      res.Status,
		ExamType:    req.ExamType,
		Difficulty:  req.Difficulty,
		PassageType: req.PassageType,
	}
	exam, err := s.builder.BuildExam(sessionID, meta, res.Result)
	if err != nil {
		return nil, err
	}
	s.store(sessionID, exam)
	return &GenerateOutcome{SessionID: sessionID, Status: res.Status, Exam: exam}, nil
}

func (s *examSessionService) SessionInfo(ctx context.Context, sessionID string) (*model.SessionInfo, error) {
	info, err := s.repo.SessionInfo(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session info for %s: %w", sessionID, err)
	}
	return info, nil
}

// LoadExam returns the cached exam for a session, fetching and building it
// from the backend on first use.
func (s *examSessionService) LoadExam(ctx context.Context, sessionID string) (*model.Exam, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.exam, nil
}

func (s *examSessionService) session(ctx context.Context, sessionID string) (*examSession, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		sess.lastUsed = s.now()
	}
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	info, err := s.repo.SessionInfo(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session info for %s: %w", sessionID, err)
	}
	if !info.HasResult {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrExamNotGenerated)
	}
	result, err := s.repo.ExamData(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("exam data for %s: %w", sessionID, err)
	}
	exam, err := s.builder.BuildExam(sessionID, *info, result)
	if err != nil {
		return nil, err
	}
	return s.storeIfAbsent(sessionID, exam), nil
}

// store replaces any cached exam for the session, along with its timer.
func (s *examSessionService) store(sessionID string, exam *model.Exam) *examSession {
	sess := s.newSession(sessionID, exam)
	s.mu.Lock()
	s.evictIdleLocked()
	old := s.sessions[sessionID]
	s.sessions[sessionID] = sess
	s.mu.Unlock()
	if old != nil {
		old.timer.Stop()
	}
	return sess
}

func (s *examSessionService) storeIfAbsent(sessionID string, exam *model.Exam) *examSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.lastUsed = s.now()
		return sess
	}
	s.evictIdleLocked()
	sess := s.newSession(sessionID, exam)
	s.sessions[sessionID] = sess
	return sess
}

func (s *examSessionService) newSession(sessionID string, exam *model.Exam) *examSession {
	return &examSession{
		exam:     exam,
		timer:    newExamTimer(sessionID, exam.SuggestedSeconds(), s.tickInterval),
		lastUsed: s.now(),
	}
}

// evictIdleLocked drops sessions unused for longer than idleTTL whose timer is
// not running. Evicted sessions are rebuilt from the backend on next use.
func (s *examSessionService) evictIdleLocked() {
	cutoff := s.now().Add(-s.idleTTL)
	for id, sess := range s.sessions {
		if sess.lastUsed.After(cutoff) || sess.timer.Snapshot().State == TimerRunning {
			continue
		}
		sess.timer.Stop()
		delete(s.sessions, id)
		log.Debug().Str("sessionID", id).Msg("Evicted idle exam session")
	}
}

// SubmitAnswers scores the answers and pauses the session timer. With
// withFeedback set and Gemini configured, each incorrect answered question
// gets a short explanation.
func (s *examSessionService) SubmitAnswers(ctx context.Context, sessionID string, answers model.UserAnswers, withFeedback bool) (*Submission, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	unknown := 0
	for id := range answers {
		if _, ok := sess.exam.QuestionByID(id); !ok {
			unknown++
		}
	}
	if unknown > 0 {
		log.Warn().Str("sessionID", sessionID).Int("unknownQuestions", unknown).Msg("Submitted answers for questions not part of this exam, ignoring them")
	}

	summary := ScoreExam(sess.exam, answers)
	sub := &Submission{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		SubmittedAt: time.Now(),
		Score:       summary,
		Completion:  CompletionPercentage(sess.exam, answers),
		Feedback:    map[int]string{},
		Timer:       sess.timer.Pause(),
	}

	if s.converter != nil {
		if est, err := s.converter.Estimate(sess.exam.ExamType, summary.CorrectCount, summary.Total); err != nil {
			log.Warn().Err(err).Str("sessionID", sessionID).Msg("Could not estimate scaled score")
		} else {
			sub.Estimated = &est
		}
	}

	if withFeedback {
		if s.feedback == nil || !s.feedback.Enabled() {
			sub.FeedbackNote = ErrFeedbackUnavailable.Error()
		} else {
			sub.Feedback = s.collectFeedback(ctx, sess.exam, summary.Results)
		}
	}

	log.Info().
		Str("sessionID", sessionID).
		Str("submissionID", sub.ID).
		Int("correct", summary.CorrectCount).
		Int("total", summary.Total).
		Int("percentage", summary.Percentage).
		Msg("Exam submitted")
	return sub, nil
}

type feedbackResult struct {
	questionID int
	text       string
	err        error
}

func (s *examSessionService) collectFeedback(ctx context.Context, exam *model.Exam, results []QuestionResult) map[int]string {
	var wg sync.WaitGroup
	resultsChan := make(chan feedbackResult, len(results))

	for _, r := range results {
		if r.Correct || r.UserAnswer == "" {
			continue
		}
		q, ok := exam.QuestionByID(r.QuestionID)
		if !ok {
			continue
		}
		wg.Add(1)
		go func(q model.Question, userAnswer string) {
			defer wg.Done()
			text, err := s.feedback.ExplainAnswer(ctx, exam, &q, userAnswer)
			resultsChan <- feedbackResult{questionID: q.ID, text: text, err: err}
		}(q, r.UserAnswer)
	}

	wg.Wait()
	close(resultsChan)

	feedback := make(map[int]string)
	for res := range resultsChan {
		if res.err != nil {
			log.Warn().Err(res.err).Int("questionID", res.questionID).Msg("No feedback for answer")
			continue
		}
		feedback[res.questionID] = res.text
	}
	return feedback
}

func (s *examSessionService) TimerSnapshot(ctx context.Context, sessionID string) (TimerSnapshot, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return TimerSnapshot{}, err
	}
	return sess.timer.Snapshot(), nil
}

func (s *examSessionService) StartTimer(ctx context.Context, sessionID string) (TimerSnapshot, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return TimerSnapshot{}, err
	}
	return sess.timer.Start(), nil
}

func (s *examSessionService) PauseTimer(ctx context.Context, sessionID string) (TimerSnapshot, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return TimerSnapshot{}, err
	}
	return sess.timer.Pause(), nil
}

// ResetTimer recomputes the remaining time from the exam's suggested length.
func (s *examSessionService) ResetTimer(ctx context.Context, sessionID string) (TimerSnapshot, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return TimerSnapshot{}, err
	}
	return sess.timer.Reset(sess.exam.SuggestedSeconds()), nil
}

func (s *examSessionService) DownloadResult(ctx context.Context, sessionID string) (*repository.ResultFile, error) {
	file, err := s.repo.DownloadResult(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("download result for %s: %w", sessionID, err)
	}
	return file, nil
}

// Shutdown stops every session timer.
func (s *examSessionService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		sess.timer.Stop()
	}
	log.Info().Int("sessions", len(s.sessions)).Msg("Exam session timers stopped")
}
