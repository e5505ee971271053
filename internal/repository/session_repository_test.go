package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lshigami/paper2exam/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, handler http.Handler) SessionRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewSessionRepository(&config.Config{Backend: config.Backend{BaseURL: srv.URL, Timeout: 5 * time.Second}})
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestUploadPDF(t *testing.T) {
	repo := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload-pdf", r.URL.Path)
		file, header, err := r.FormFile("pdf_file")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "paper.pdf", header.Filename)
		assert.Equal(t, "%PDF-1.4", string(content))
		writeJSON(w, http.StatusOK, `{"session_id":"abc","filename":"paper.pdf","word_count":1234,"status":"success","message":"Successfully extracted 1234 words"}`)
	}))

	out, err := repo.UploadPDF(context.Background(), "paper.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "abc", out.SessionID)
	assert.Equal(t, 1234, out.WordCount)
	assert.Equal(t, "success", out.Status)
}

func TestUploadURL(t *testing.T) {
	repo := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "https://example.com/paper.pdf", r.FormValue("url"))
		writeJSON(w, http.StatusOK, `{"session_id":"u-1","filename":"paper.pdf"}`)
	}))

	out, err := repo.UploadURL(context.Background(), "https://example.com/paper.pdf")
	require.NoError(t, err)
	assert.Equal(t, "u-1", out.SessionID)
}

func TestUploadRejectedKeepsBackendDetail(t *testing.T) {
	repo := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"detail":"Only PDF files are accepted"}`)
	}))

	_, err := repo.UploadPDF(context.Background(), "notes.txt", strings.NewReader("x"))
	var backendErr *BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, http.StatusBadRequest, backendErr.StatusCode)
	assert.Equal(t, "Only PDF files are accepted", backendErr.Detail)
}

func TestGenerateExam(t *testing.T) {
	repo := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-exam/abc", r.URL.Path)
		var body GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, GenerateRequest{ExamType: "TOEIC", Difficulty: "700", PassageType: "Business", OutputFormat: "json"}, body)
		writeJSON(w, http.StatusOK, `{"session_id":"abc","status":"success","result":{"part_number":5,"questions":[{"question_text":"q"}]}}`)
	}))

	out, err := repo.GenerateExam(context.Background(), "abc", GenerateRequest{ExamType: "TOEIC", Difficulty: "700", PassageType: "Business"})
	require.NoError(t, err)
	require.NotNil(t, out.Result)
	assert.True(t, out.Result.HasPartNumber())
	assert.Len(t, out.Result.Questions, 1)
	assert.Equal(t, "success", out.Status)
}

func TestExamData(t *testing.T) {
	cases := map[string]struct {
		body      string
		wantNil   bool
		questions int
	}{
		"result object":  {`{"session_id":"abc","result":{"questions":[{},{}]},"status":"success"}`, false, 2},
		"null result":    {`{"session_id":"abc","result":null}`, true, 0},
		"missing result": {`{"session_id":"abc"}`, true, 0},
		"string result":  {`{"session_id":"abc","result":"oops"}`, true, 0},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/exam-data/abc", r.URL.Path)
				writeJSON(w, http.StatusOK, tc.body)
			}))
			result, err := repo.ExamData(context.Background(), "abc")
			require.NoError(t, err)
			if tc.wantNil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.Len(t, result.Questions, tc.questions)
		})
	}
}

func TestExamDataNotGenerated(t *testing.T) {
	repo := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"detail":"Exam result does not exist. Please generate exam first."}`)
	}))

	_, err := repo.ExamData(context.Background(), "abc")
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusNotFound, backendErr.StatusCode)
	assert.Equal(t, "Exam result does not exist. Please generate exam first.", backendErr.Detail)
}

func TestSessionInfo(t *testing.T) {
	repo := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/session-info/abc", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"session_id":"abc","filename":"paper.pdf","has_result":true,"status":"active","exam_type":"TOEIC","difficulty":"7.0","passage_type":"Academic"}`)
	}))

	info, err := repo.SessionInfo(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, info.HasResult)
	assert.Equal(t, "TOEIC", info.ExamType)
	assert.Equal(t, "Academic", info.PassageType)
}

func TestDownloadResult(t *testing.T) {
	repo := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/download-result/abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", `attachment; filename="abc.json"`)
		_, _ = io.WriteString(w, `{"questions":[]}`)
	}))

	file, err := repo.DownloadResult(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc.json", file.Filename)
	assert.Equal(t, "application/octet-stream", file.ContentType)
	assert.Equal(t, `{"questions":[]}`, string(file.Content))
}

func TestBackendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	repo := NewSessionRepository(&config.Config{Backend: config.Backend{BaseURL: url, Timeout: time.Second}})
	_, err := repo.SessionInfo(context.Background(), "abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBackendUnreachable))
}

func TestExtractDetail(t *testing.T) {
	assert.Equal(t, "boom", extractDetail(500, []byte(`{"detail":"boom"}`)))
	assert.Equal(t, `[{"loc":["body"],"msg":"field required"}]`, extractDetail(422, []byte(`{"detail":[{"loc":["body"],"msg":"field required"}]}`)))
	assert.Equal(t, "Bad Gateway", extractDetail(502, nil))
	assert.Equal(t, "Internal Server Error", extractDetail(500, []byte(`{"error":"x"}`)))
	assert.Equal(t, "upstream timeout", extractDetail(504, []byte("upstream timeout\n")))
}
