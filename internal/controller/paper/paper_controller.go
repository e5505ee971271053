package paper

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/paper2exam/internal/controller"
	"github.com/lshigami/paper2exam/internal/dto"
	"github.com/lshigami/paper2exam/internal/repository"
	"github.com/lshigami/paper2exam/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	defaultDifficulty  = "7.0"
	defaultPassageType = "Academic"
)

type PaperController struct {
	sessionService service.ExamSessionService
}

func NewPaperController(s service.ExamSessionService) *PaperController {
	return &PaperController{sessionService: s}
}

func (c *PaperController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/papers", c.UploadPaper)
	rg.POST("/papers/:session_id/exams", c.GenerateExam)
	rg.GET("/sessions/:session_id", c.GetSessionInfo)
}

// UploadPaper godoc
// @Summary Upload a paper
// @Description Upload a PDF (multipart field pdf_file) or point to one with the url form field. The backend extracts its text and opens a session.
// @Tags Papers
// @Accept multipart/form-data
// @Produce json
// @Param pdf_file formData file false "PDF file"
// @Param url formData string false "URL of a PDF"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or non-PDF file"
// @Failure 502 {object} dto.ErrorResponse "Backend unreachable"
// @Router /papers [post]
func (c *PaperController) UploadPaper(ctx *gin.Context) {
	header, err := ctx.FormFile("pdf_file")
	if err != nil {
		var form dto.UploadPaperRequest
		if bindErr := ctx.ShouldBind(&form); bindErr != nil || strings.TrimSpace(form.URL) == "" {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Please choose a PDF file or provide a URL"})
			return
		}
		res, err := c.sessionService.UploadURL(ctx.Request.Context(), strings.TrimSpace(form.URL))
		if err != nil {
			controller.RespondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewUploadResponse(res))
		return
	}

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Only PDF files are accepted"})
		return
	}
	file, err := header.Open()
	if err != nil {
		log.Error().Err(err).Str("filename", header.Filename).Msg("UploadPaper: cannot open uploaded file")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Cannot read uploaded file", Details: []string{err.Error()}})
		return
	}
	defer file.Close()

	res, err := c.sessionService.UploadPDF(ctx.Request.Context(), header.Filename, file)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewUploadResponse(res))
}

// GenerateExam godoc
// @Summary Generate an exam from an uploaded paper
// @Description Asks the backend to generate an IELTS or TOEIC reading exam and returns it normalized. Identical requests that arrive while one is in flight share its result and report deduplicated=true.
// @Tags Papers
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param request body dto.GenerateExamRequest true "Exam settings"
// @Success 200 {object} dto.GenerateExamResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Session does not exist or has no result"
// @Failure 502 {object} dto.ErrorResponse "Backend unreachable"
// @Router /papers/{session_id}/exams [post]
func (c *PaperController) GenerateExam(ctx *gin.Context) {
	sessionID, ok := controller.SessionID(ctx)
	if !ok {
		return
	}
	var req dto.GenerateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("GenerateExam: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = defaultDifficulty
	}
	if req.PassageType == "" {
		req.PassageType = defaultPassageType
	}

	out, err := c.sessionService.GenerateExam(ctx.Request.Context(), sessionID, repository.GenerateRequest{
		ExamType:    req.ExamType,
		Difficulty:  req.Difficulty,
		PassageType: req.PassageType,
	})
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.GenerateExamResponse{
		SessionID:    out.SessionID,
		Status:       out.Status,
		Deduplicated: out.Deduplicated,
		Exam:         dto.NewExamDTO(out.Exam),
	})
}

// GetSessionInfo godoc
// @Summary Get session information
// @Tags Papers
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionInfoResponse
// @Failure 502 {object} dto.ErrorResponse "Backend unreachable"
// @Router /sessions/{session_id} [get]
func (c *PaperController) GetSessionInfo(ctx *gin.Context) {
	sessionID, ok := controller.SessionID(ctx)
	if !ok {
		return
	}
	info, err := c.sessionService.SessionInfo(ctx.Request.Context(), sessionID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSessionInfoResponse(info))
}
