package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/pathfinder/internal/dto"
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
	"github.com/lshigami/pathfinder/internal/service"
	"github.com/rs/zerolog/log"
)

// StatusFor maps service errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidTransition), errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidPaper):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as a dto.ErrorResponse. Internal errors are logged
// and their details are not echoed back.
func RespondError(ctx *gin.Context, err error, message string) {
	status := StatusFor(err)
	resp := dto.ErrorResponse{Message: message}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg(message)
	} else {
		resp.Details = []string{err.Error()}
	}
	ctx.JSON(status, resp)
}

// BindJSON binds the body into req, answering 400 on failure.
func BindJSON(ctx *gin.Context, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return false
	}
	return true
}

type storageModer interface {
	Mode() repository.Mode
}

type HealthController struct {
	store storageModer
}

func NewHealthController(store storageModer) *HealthController {
	return &HealthController{store: store}
}

// Health godoc
// @Summary Service health
// @Description Reports liveness and the storage backend in use
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", StorageMode: string(c.store.Mode())})
}
