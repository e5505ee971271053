package exam

import (
	"context"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/paper2exam/internal/controller"
	"github.com/lshigami/paper2exam/internal/dto"
	"github.com/lshigami/paper2exam/internal/model"
	"github.com/lshigami/paper2exam/internal/service"
	"github.com/rs/zerolog/log"
)

type ExamController struct {
	sessionService service.ExamSessionService
}

func NewExamController(s service.ExamSessionService) *ExamController {
	return &ExamController{sessionService: s}
}

func (c *ExamController) RegisterRoutes(rg *gin.RouterGroup) {
	exams := rg.Group("/exams/:session_id")
	exams.GET("", c.GetExam)
	exams.POST("/submissions", c.SubmitAnswers)
	exams.GET("/timer", c.GetTimer)
	exams.POST("/timer/start", c.StartTimer)
	exams.POST("/timer/pause", c.PauseTimer)
	exams.POST("/timer/reset", c.ResetTimer)
	exams.GET("/download", c.DownloadResult)
}

// GetExam godoc
// @Summary Get the normalized exam of a session
// @Description Loads the generated result from the backend on first use and caches it for the session.
// @Tags Exams
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.ExamDTO
// @Failure 404 {object} dto.ErrorResponse "Session or exam result not found"
// @Failure 409 {object} dto.ErrorResponse "Exam not generated yet"
// @Failure 502 {object} dto.ErrorResponse "Backend unreachable"
// @Router /exams/{session_id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	sessionID, ok := controller.SessionID(ctx)
	if !ok {
		return
	}
	exam, err := c.sessionService.LoadExam(ctx.Request.Context(), sessionID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewExamDTO(exam))
}

// SubmitAnswers godoc
// @Summary Submit answers for scoring
// @Description Scores every question of the exam and pauses the timer. Unanswered questions count as incorrect. With with_feedback set, incorrect answers get a short AI explanation when Gemini is configured.
// @Tags Exams
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param submission body dto.SubmitAnswersRequest true "Answers keyed by question ID"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 409 {object} dto.ErrorResponse "Exam not generated yet"
// @Router /exams/{session_id}/submissions [post]
func (c *ExamController) SubmitAnswers(ctx *gin.Context) {
	sessionID, ok := controller.SessionID(ctx)
	if !ok {
		return
	}
	var req dto.SubmitAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswers: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	sub, err := c.sessionService.SubmitAnswers(ctx.Request.Context(), sessionID, model.UserAnswers(req.Answers), req.WithFeedback)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSubmissionResponse(sub))
}

// GetTimer godoc
// @Summary Get the session timer
// @Tags Timer
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.TimerResponse
// @Router /exams/{session_id}/timer [get]
func (c *ExamController) GetTimer(ctx *gin.Context) {
	c.timerAction(ctx, c.sessionService.TimerSnapshot)
}

// StartTimer godoc
// @Summary Start or resume the session timer
// @Description No-op when the timer is already running or has no time left.
// @Tags Timer
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.TimerResponse
// @Router /exams/{session_id}/timer/start [post]
func (c *ExamController) StartTimer(ctx *gin.Context) {
	c.timerAction(ctx, c.sessionService.StartTimer)
}

// PauseTimer godoc
// @Summary Pause the session timer
// @Tags Timer
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.TimerResponse
// @Router /exams/{session_id}/timer/pause [post]
func (c *ExamController) PauseTimer(ctx *gin.Context) {
	c.timerAction(ctx, c.sessionService.PauseTimer)
}

// ResetTimer godoc
// @Summary Reset the session timer
// @Description Stops the timer and sets it back to the exam's suggested duration.
// @Tags Timer
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.TimerResponse
// @Router /exams/{session_id}/timer/reset [post]
func (c *ExamController) ResetTimer(ctx *gin.Context) {
	c.timerAction(ctx, c.sessionService.ResetTimer)
}

func (c *ExamController) timerAction(ctx *gin.Context, action func(ctx context.Context, sessionID string) (service.TimerSnapshot, error)) {
	sessionID, ok := controller.SessionID(ctx)
	if !ok {
		return
	}
	snap, err := action(ctx.Request.Context(), sessionID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewTimerResponse(snap))
}

// DownloadResult godoc
// @Summary Download the generated result file
// @Tags Exams
// @Produce octet-stream
// @Param session_id path string true "Session ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "Result does not exist"
// @Router /exams/{session_id}/download [get]
func (c *ExamController) DownloadResult(ctx *gin.Context) {
	sessionID, ok := controller.SessionID(ctx)
	if !ok {
		return
	}
	file, err := c.sessionService.DownloadResult(ctx.Request.Context(), sessionID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Filename}))
	ctx.Data(http.StatusOK, file.ContentType, file.Content)
}
