package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/lshigami/paper2exam/config"
	"github.com/lshigami/paper2exam/internal/model"
	"github.com/rs/zerolog/log"
)

const defaultOutputFormat = "json"

type UploadResult struct {
	SessionID string `json:"session_id"`
	Filename  string `json:"filename"`
	WordCount int    `json:"word_count"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

type GenerateRequest struct {
	ExamType     string `json:"exam_type"`
	Difficulty   string `json:"difficulty"`
	PassageType  string `json:"passage_type"`
	OutputFormat string `json:"output_format"`
}

// GenerateResult is the backend's answer to generate-exam. Result is nil when
// the backend sent no usable result object.
type GenerateResult struct {
	SessionID string
	Status    string
	Result    *model.RawResult
}

type ResultFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// SessionRepository talks to the PDF-to-exam generation backend. Backend
// sessions live there; nothing is stored locally.
type SessionRepository interface {
	UploadPDF(ctx context.Context, filename string, pdf io.Reader) (*UploadResult, error)
	UploadURL(ctx context.Context, url string) (*UploadResult, error)
	GenerateExam(ctx context.Context, sessionID string, req GenerateRequest) (*GenerateResult, error)
	SessionInfo(ctx context.Context, sessionID string) (*model.SessionInfo, error)
	ExamData(ctx context.Context, sessionID string) (*model.RawResult, error)
	DownloadResult(ctx context.Context, sessionID string) (*ResultFile, error)
}

type sessionRepository struct {
	client *resty.Client
}

func NewSessionRepository(cfg *config.Config) SessionRepository {
	client := resty.New().
		SetBaseURL(cfg.Backend.BaseURL).
		SetTimeout(cfg.Backend.Timeout).
		SetHeader("Accept", "application/json")
	return &sessionRepository{client: client}
}

func (r *sessionRepository) UploadPDF(ctx context.Context, filename string, pdf io.Reader) (*UploadResult, error) {
	req := r.client.R().SetContext(ctx).SetFileReader("pdf_file", filename, pdf)
	var out UploadResult
	if err := r.do(req, http.MethodPost, "/upload-pdf", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sessionRepository) UploadURL(ctx context.Context, url string) (*UploadResult, error) {
	req := r.client.R().SetContext(ctx).SetMultipartFormData(map[string]string{"url": url})
	var out UploadResult
	if err := r.do(req, http.MethodPost, "/upload-pdf", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sessionRepository) GenerateExam(ctx context.Context, sessionID string, body GenerateRequest) (*GenerateResult, error) {
	if body.OutputFormat == "" {
		body.OutputFormat = defaultOutputFormat
	}
	req := r.client.R().
		SetContext(ctx).
		SetPathParam("sessionID", sessionID).
		SetHeader("Content-Type", "application/json").
		SetBody(body)

	var envelope resultEnvelope
	if err := r.do(req, http.MethodPost, "/generate-exam/{sessionID}", &envelope); err != nil {
		return nil, err
	}
	return &GenerateResult{
		SessionID: envelope.SessionID,
		Status:    envelope.Status,
		Result:    envelope.decodeResult(sessionID),
	}, nil
}

func (r *sessionRepository) SessionInfo(ctx context.Context, sessionID string) (*model.SessionInfo, error) {
	req := r.client.R().SetContext(ctx).SetPathParam("sessionID", sessionID)
	var out model.SessionInfo
	if err := r.do(req, http.MethodGet, "/session-info/{sessionID}", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExamData returns the stored result for a session, or nil when the backend
// answered without a result object.
func (r *sessionRepository) ExamData(ctx context.Context, sessionID string) (*model.RawResult, error) {
	req := r.client.R().SetContext(ctx).SetPathParam("sessionID", sessionID)
	var envelope resultEnvelope
	if err := r.do(req, http.MethodGet, "/exam-data/{sessionID}", &envelope); err != nil {
		return nil, err
	}
	return envelope.decodeResult(sessionID), nil
}

func (r *sessionRepository) DownloadResult(ctx context.Context, sessionID string) (*ResultFile, error) {
	req := r.client.R().SetContext(ctx).SetPathParam("sessionID", sessionID)
	resp, err := r.send(req, http.MethodGet, "/download-result/{sessionID}")
	if err != nil {
		return nil, err
	}
	file := &ResultFile{
		Filename:    sessionID + "." + defaultOutputFormat,
		ContentType: resp.Header().Get("Content-Type"),
		Content:     resp.Body(),
	}
	if _, params, err := mime.ParseMediaType(resp.Header().Get("Content-Disposition")); err == nil && params["filename"] != "" {
		file.Filename = params["filename"]
	}
	if file.ContentType == "" {
		file.ContentType = "application/octet-stream"
	}
	return file, nil
}

// send executes the request and turns transport failures and non-2xx
// answers into ErrBackendUnreachable and *BackendError.
func (r *sessionRepository) send(req *resty.Request, method, path string) (*resty.Response, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("Backend request failed")
		return nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		backendErr := newBackendError(resp.StatusCode(), resp.Body())
		log.Warn().Int("status", backendErr.StatusCode).Str("detail", backendErr.Detail).Str("path", resp.Request.URL).Msg("Backend returned an error")
		return nil, backendErr
	}
	log.Debug().Str("method", method).Str("url", resp.Request.URL).Dur("elapsed", resp.Time()).Msg("Backend request completed")
	return resp, nil
}

func (r *sessionRepository) do(req *resty.Request, method, path string, out any) error {
	resp, err := r.send(req, method, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode backend response for %s: %w", path, err)
	}
	return nil
}

type resultEnvelope struct {
	SessionID string          `json:"session_id"`
	Status    string          `json:"status"`
	Result    json.RawMessage `json:"result"`
}

// decodeResult is lenient: a missing, null or non-object result yields nil.
func (e *resultEnvelope) decodeResult(sessionID string) *model.RawResult {
	raw := bytes.TrimSpace(e.Result)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var result model.RawResult
	if err := json.Unmarshal(raw, &result); err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("Ignoring unusable exam result from backend")
		return nil
	}
	return &result
}
