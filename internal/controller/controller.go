package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/paper2exam/internal/dto"
	"github.com/lshigami/paper2exam/internal/repository"
	"github.com/lshigami/paper2exam/internal/service"
	"github.com/rs/zerolog/log"
)

const backendUnreachableMessage = "Cannot connect to the exam generation service. Please try again later."

// RespondError writes err as a dto.ErrorResponse. Backend errors keep the
// backend's status and detail message.
func RespondError(ctx *gin.Context, err error) {
	var backendErr *repository.BackendError
	switch {
	case errors.As(err, &backendErr):
		ctx.JSON(backendErr.StatusCode, dto.ErrorResponse{Message: backendErr.Detail})
	case errors.Is(err, repository.ErrBackendUnreachable):
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Backend unreachable")
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: backendUnreachableMessage, Details: []string{err.Error()}})
	case errors.Is(err, service.ErrExamNotGenerated):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: service.ErrExamNotGenerated.Error()})
	case errors.Is(err, service.ErrExamUnavailable):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Exam data is not available for this session", Details: []string{err.Error()}})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unhandled service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
	}
}

// SessionID reads the session_id path parameter, answering 400 when it is blank.
func SessionID(ctx *gin.Context) (string, bool) {
	id := strings.TrimSpace(ctx.Param("session_id"))
	if id == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Session ID is required"})
		return "", false
	}
	return id, true
}
