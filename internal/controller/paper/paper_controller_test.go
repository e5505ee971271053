package paper

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/paper2exam/config"
	"github.com/lshigami/paper2exam/internal/dto"
	"github.com/lshigami/paper2exam/internal/repository"
	"github.com/lshigami/paper2exam/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend struct {
	generateCalls atomic.Int32
	lastGenerate  repository.GenerateRequest
}

func (b *backend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/upload-pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		if u := r.FormValue("url"); u != "" {
			_, _ = io.WriteString(w, `{"session_id":"from-url","filename":"remote.pdf","word_count":10,"status":"success","message":"Successfully extracted 10 words"}`)
			return
		}
		_, header, err := r.FormFile("pdf_file")
		require.NoError(t, err)
		_ = json.NewEncoder(w).Encode(map[string]any{"session_id": "abc", "filename": header.Filename, "word_count": 1234, "status": "success", "message": "Successfully extracted 1234 words"})
	})
	mux.HandleFunc("/generate-exam/", func(w http.ResponseWriter, r *http.Request) {
		b.generateCalls.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&b.lastGenerate)
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/expired") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail":"Session does not exist or has expired"}`)
			return
		}
		_, _ = io.WriteString(w, `{"session_id":"abc","status":"success","result":{
			"reading_passages":[{"title":"Bees","content":"...","word_count":700}],
			"passage_analysis":[{"passage_number":1,"suggested_time":25}],
			"questions":[{"question_number":1,"question_type":"Yes/No/Not Given","question_text":"Bees sleep.","correct_answer":"YES","question_category":1}]
		}}`)
	})
	mux.HandleFunc("/session-info/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"session_id":"abc","filename":"paper.pdf","has_result":false,"status":"active","exam_type":"IELTS","difficulty":"7.0","passage_type":"Academic"}`)
	})
	return mux
}

func setupRouter(t *testing.T) (*gin.Engine, *backend) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &backend{}
	srv := httptest.NewServer(b.handler(t))
	t.Cleanup(srv.Close)

	cfg := &config.Config{Backend: config.Backend{BaseURL: srv.URL, Timeout: 5 * time.Second}}
	feedback, err := service.NewFeedbackLLMService(cfg)
	require.NoError(t, err)
	sessions := service.NewExamSessionService(repository.NewSessionRepository(cfg), service.NewExamBuilderService(), feedback, service.NewScoreConverterService())
	t.Cleanup(sessions.Shutdown)

	router := gin.New()
	NewPaperController(sessions).RegisterRoutes(router.Group("/api/v1"))
	return router, b
}

func multipartRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, _ = io.WriteString(part, content)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/papers", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadPaper(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "pdf_file", "paper.pdf", "%PDF-1.4"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "abc", resp.SessionID)
	assert.Equal(t, "paper.pdf", resp.Filename)
	assert.Equal(t, 1234, resp.WordCount)
	assert.Equal(t, "Successfully extracted 1234 words", resp.Message)
}

func TestUploadPaperRejectsNonPDF(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "pdf_file", "notes.txt", "hello"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Only PDF files are accepted", resp.Message)
}

func TestUploadPaperFromURL(t *testing.T) {
	router, _ := setupRouter(t)

	form := url.Values{"url": {"https://example.com/paper.pdf"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/papers", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "from-url", resp.SessionID)
}

func TestUploadPaperWithoutInput(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/papers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateExam(t *testing.T) {
	router, b := setupRouter(t)

	w := postJSON(router, "/api/v1/papers/abc/exams", map[string]string{"exam_type": "IELTS"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.GenerateExamResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "abc", resp.SessionID)
	assert.False(t, resp.Deduplicated)
	assert.Equal(t, "Bees", resp.Exam.Title)
	assert.Equal(t, 25, resp.Exam.SuggestedMinutes)
	assert.Equal(t, 700, resp.Exam.TotalWordCount)
	require.Len(t, resp.Exam.Questions, 1)
	assert.Equal(t, "yes_no_not_given", string(resp.Exam.Questions[0].Type))
	assert.Nil(t, resp.Exam.Questions[0].Options)

	assert.Equal(t, int32(1), b.generateCalls.Load())
	assert.Equal(t, repository.GenerateRequest{ExamType: "IELTS", Difficulty: "7.0", PassageType: "Academic", OutputFormat: "json"}, b.lastGenerate)
}

func TestGenerateExamValidation(t *testing.T) {
	router, b := setupRouter(t)

	w := postJSON(router, "/api/v1/papers/abc/exams", map[string]string{"exam_type": "SAT"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = postJSON(router, "/api/v1/papers/abc/exams", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int32(0), b.generateCalls.Load())
}

func TestGenerateExamBackendError(t *testing.T) {
	router, _ := setupRouter(t)

	w := postJSON(router, "/api/v1/papers/expired/exams", map[string]string{"exam_type": "TOEIC"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Session does not exist or has expired", resp.Message)
}

func TestGetSessionInfo(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SessionInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "paper.pdf", resp.Filename)
	assert.False(t, resp.HasResult)
	assert.Equal(t, "IELTS", resp.ExamType)
}
