package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/pathfinder/internal/datastore"
	"github.com/lshigami/pathfinder/internal/dto"
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/service"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ds := datastore.New(nil, datastore.LocalOpener(afero.NewMemMapFs(), "/data"), service.NewSeeder().Seed)
	t.Cleanup(func() { _ = ds.Close() })

	ctrl := NewCandidateController(
		service.NewRegistrationService(ds),
		service.NewCandidateService(ds),
		service.NewPaperService(ds),
		service.NewSubmissionService(ds, service.NewGraderService(nil)),
		service.NewCodeRunnerService(nil),
	)
	r := gin.New()
	ctrl.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r http.Handler, email string) dto.RegistrationResultDTO {
	t.Helper()
	w := do(r, http.MethodPost, "/api/v1/register", dto.CandidateRegisterDTO{Email: email, FullName: "Alex Tester"})
	require.Equal(t, http.StatusOK, w.Code)
	var res dto.RegistrationResultDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestRegisterHandler(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodPost, "/api/v1/register", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	res := register(t, r, "stranger@example.com")
	assert.Equal(t, dto.RegistrationRejected, res.Status)
	assert.Equal(t, service.ReasonNoAssignment, res.Error)

	res = register(t, r, "Alex.Tester@example.com")
	assert.Equal(t, dto.RegistrationCreated, res.Status)
	require.NotNil(t, res.Candidate)

	w = do(r, http.MethodGet, "/api/v1/candidates/"+res.Candidate.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodGet, "/api/v1/candidates/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaperHandler_HidesKeys(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodGet, "/api/v1/papers/"+service.DefaultPaperID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "idealAnswerKey")

	w = do(r, http.MethodGet, "/api/v1/papers/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmissionFlow(t *testing.T) {
	r := newRouter(t)
	res := register(t, r, "alex.tester@example.com")
	base := "/api/v1/candidates/" + res.Candidate.ID + "/submission"

	w := do(r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sub model.ExamSubmission
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))
	assert.Equal(t, service.DefaultPaperID, sub.PaperID)
	assert.Equal(t, model.StatusInProgress, sub.Status)

	w = do(r, http.MethodPut, base+"/draft", dto.SaveDraftDTO{Answers: map[string]string{"apt-1": "4"}})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(r, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodPut, base+"/draft", dto.SaveDraftDTO{Answers: map[string]string{"apt-1": "late"}})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))
	assert.Equal(t, model.StatusSubmitted, sub.Status)
	assert.Equal(t, map[string]string{"apt-1": "4"}, sub.Answers)

	again := register(t, r, "alex.tester@example.com")
	assert.Equal(t, dto.RegistrationRejected, again.Status)
}

func TestRunCodeHandler(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodPost, "/api/v1/code/run", dto.RunCodeDTO{Code: "print(1)", Language: "python"})
	require.Equal(t, http.StatusOK, w.Code)
	var res model.CodeExecutionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, model.ExecutionError, res.Type)

	w = do(r, http.MethodPost, "/api/v1/code/run", map[string]string{"code": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
