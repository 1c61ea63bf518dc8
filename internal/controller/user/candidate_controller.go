package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/pathfinder/internal/controller"
	"github.com/lshigami/pathfinder/internal/dto"
	"github.com/lshigami/pathfinder/internal/service"
	"github.com/rs/zerolog/log"
)

type CandidateController struct {
	registrationService service.RegistrationService
	candidateService    service.CandidateService
	paperService        service.PaperService
	submissionService   service.SubmissionService
	codeRunnerService   service.CodeRunnerService
}

func NewCandidateController(
	rs service.RegistrationService,
	cs service.CandidateService,
	ps service.PaperService,
	ss service.SubmissionService,
	crs service.CodeRunnerService,
) *CandidateController {
	return &CandidateController{
		registrationService: rs,
		candidateService:    cs,
		paperService:        ps,
		submissionService:   ss,
		codeRunnerService:   crs,
	}
}

func (c *CandidateController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", c.Register)
	rg.GET("/candidates/:candidate_id", c.GetCandidate)
	rg.GET("/papers/:paper_id", c.GetPaper)

	sub := rg.Group("/candidates/:candidate_id/submission")
	sub.POST("", c.InitSubmission)
	sub.GET("", c.GetSubmission)
	sub.PUT("/draft", c.SaveDraft)
	sub.POST("/submit", c.Submit)

	rg.POST("/code/run", c.RunCode)
}

// Register godoc
// @Summary Register or resume a candidate
// @Description Registration is allowed only for assigned emails. Rejections come back as a normal result with status REJECTED.
// @Tags Candidate
// @Accept json
// @Produce json
// @Param candidate body dto.CandidateRegisterDTO true "Registration form"
// @Success 200 {object} dto.RegistrationResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /register [post]
func (c *CandidateController) Register(ctx *gin.Context) {
	var req dto.CandidateRegisterDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	res, err := c.registrationService.Register(req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to register candidate")
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// GetCandidate godoc
// @Summary Get a candidate profile
// @Tags Candidate
// @Produce json
// @Param candidate_id path string true "Candidate ID"
// @Success 200 {object} model.Candidate
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Router /candidates/{candidate_id} [get]
func (c *CandidateController) GetCandidate(ctx *gin.Context) {
	candidate, err := c.candidateService.GetCandidate(ctx.Param("candidate_id"))
	if err != nil {
		controller.RespondError(ctx, err, "Candidate not found")
		return
	}
	ctx.JSON(http.StatusOK, candidate)
}

// GetPaper godoc
// @Summary Get an exam paper
// @Description Returns the paper without grading guidelines
// @Tags Candidate
// @Produce json
// @Param paper_id path string true "Paper ID"
// @Success 200 {object} dto.CandidatePaperDTO
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Router /papers/{paper_id} [get]
func (c *CandidateController) GetPaper(ctx *gin.Context) {
	paper, err := c.paperService.GetCandidatePaper(ctx.Param("paper_id"))
	if err != nil {
		controller.RespondError(ctx, err, "Paper not found")
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// InitSubmission godoc
// @Summary Start (or resume) the candidate's exam
// @Description Idempotent. The paper defaults to the candidate's assigned paper.
// @Tags Candidate
// @Accept json
// @Produce json
// @Param candidate_id path string true "Candidate ID"
// @Param body body dto.InitSubmissionDTO false "Optional paper override"
// @Success 200 {object} model.ExamSubmission
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Router /candidates/{candidate_id}/submission [post]
func (c *CandidateController) InitSubmission(ctx *gin.Context) {
	candidateID := ctx.Param("candidate_id")
	var req dto.InitSubmissionDTO
	if ctx.Request.ContentLength > 0 && !controller.BindJSON(ctx, &req) {
		return
	}

	paperID := req.PaperID
	if paperID == "" {
		candidate, err := c.candidateService.GetCandidate(candidateID)
		if err != nil {
			controller.RespondError(ctx, err, "Candidate not found")
			return
		}
		paperID = candidate.AssignedPaperID
	}

	sub, err := c.submissionService.InitSubmission(candidateID, paperID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to start submission")
		return
	}
	ctx.JSON(http.StatusOK, sub)
}

// GetSubmission godoc
// @Summary Get the candidate's submission
// @Tags Candidate
// @Produce json
// @Param candidate_id path string true "Candidate ID"
// @Success 200 {object} model.ExamSubmission
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /candidates/{candidate_id}/submission [get]
func (c *CandidateController) GetSubmission(ctx *gin.Context) {
	sub, err := c.submissionService.GetSubmission(ctx.Param("candidate_id"))
	if err != nil {
		controller.RespondError(ctx, err, "Submission not found")
		return
	}
	ctx.JSON(http.StatusOK, sub)
}

// SaveDraft godoc
// @Summary Autosave answers and proctor logs
// @Description Replaces the stored answers and logs. Ignored when no submission exists.
// @Tags Candidate
// @Accept json
// @Produce json
// @Param candidate_id path string true "Candidate ID"
// @Param draft body dto.SaveDraftDTO true "Full answer map and proctor log"
// @Success 204 "No Content"
// @Failure 409 {object} dto.ErrorResponse "Submission already finalized"
// @Router /candidates/{candidate_id}/submission/draft [put]
func (c *CandidateController) SaveDraft(ctx *gin.Context) {
	var req dto.SaveDraftDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	if err := c.submissionService.SaveDraft(ctx.Param("candidate_id"), req.Answers, req.ProctorLogs); err != nil {
		controller.RespondError(ctx, err, "Failed to save draft")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Submit godoc
// @Summary Finalize the exam
// @Description Repeated calls are ignored.
// @Tags Candidate
// @Param candidate_id path string true "Candidate ID"
// @Success 204 "No Content"
// @Router /candidates/{candidate_id}/submission/submit [post]
func (c *CandidateController) Submit(ctx *gin.Context) {
	candidateID := ctx.Param("candidate_id")
	if err := c.submissionService.SubmitExam(candidateID); err != nil {
		controller.RespondError(ctx, err, "Failed to submit exam")
		return
	}
	log.Info().Str("candidateID", candidateID).Msg("Exam submitted")
	ctx.Status(http.StatusNoContent)
}

// RunCode godoc
// @Summary Simulate running a code answer
// @Tags Candidate
// @Accept json
// @Produce json
// @Param body body dto.RunCodeDTO true "Code and language"
// @Success 200 {object} model.CodeExecutionResult
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /code/run [post]
func (c *CandidateController) RunCode(ctx *gin.Context) {
	var req dto.RunCodeDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	ctx.JSON(http.StatusOK, c.codeRunnerService.Execute(ctx.Request.Context(), req.Code, req.Language))
}
