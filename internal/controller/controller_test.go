package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/pathfinder/internal/dto"
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
	"github.com/lshigami/pathfinder/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("paper x: %w", repository.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: graded", model.ErrInvalidTransition), http.StatusConflict},
		{repository.ErrConflict, http.StatusConflict},
		{fmt.Errorf("%w: bad csv", service.ErrInvalidPaper), http.StatusBadRequest},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

type fixedMode repository.Mode

func (m fixedMode) Mode() repository.Mode { return repository.Mode(m) }

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", NewHealthController(fixedMode(repository.ModeLocal)).Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.HealthResponse{Status: "ok", StorageMode: "local"}, resp)
}
