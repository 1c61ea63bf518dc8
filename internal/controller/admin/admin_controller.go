package admin

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/pathfinder/internal/controller"
	"github.com/lshigami/pathfinder/internal/dto"
	"github.com/lshigami/pathfinder/internal/service"
	"github.com/rs/zerolog/log"
)

const maxImportSize = 2 << 20

type AdminController struct {
	paperService        service.PaperService
	assignmentService   service.AssignmentService
	candidateService    service.CandidateService
	submissionService   service.SubmissionService
	provisioningService service.ProvisioningService
}

func NewAdminController(
	ps service.PaperService,
	as service.AssignmentService,
	cs service.CandidateService,
	ss service.SubmissionService,
	prs service.ProvisioningService,
) *AdminController {
	return &AdminController{
		paperService:        ps,
		assignmentService:   as,
		candidateService:    cs,
		submissionService:   ss,
		provisioningService: prs,
	}
}

func (c *AdminController) RegisterRoutes(rg *gin.RouterGroup) {
	papers := rg.Group("/papers")
	papers.GET("", c.ListPapers)
	papers.POST("", c.CreatePaper)
	papers.GET("/template", c.PaperTemplate)
	papers.POST("/import", c.ImportPaper)
	papers.GET("/:paper_id", c.GetPaper)
	papers.PUT("/:paper_id", c.UpdatePaper)
	papers.DELETE("/:paper_id", c.DeletePaper)
	papers.GET("/:paper_id/export", c.ExportPaper)

	assignments := rg.Group("/assignments")
	assignments.GET("", c.ListAssignments)
	assignments.POST("", c.AssignExam)
	assignments.DELETE("/:assignment_id", c.DeleteAssignment)

	candidates := rg.Group("/candidates")
	candidates.GET("", c.ListCandidates)
	candidates.DELETE("/:candidate_id", c.DeleteCandidate)

	submissions := rg.Group("/submissions")
	submissions.GET("", c.ListSubmissions)
	submissions.DELETE("/:candidate_id", c.ResetSubmission)
	submissions.POST("/:candidate_id/evaluate", c.EvaluateSubmission)

	rg.POST("/demo-candidates", c.ProvisionDemoCandidate)
}

// ListPapers godoc
// @Summary (Admin) List question papers
// @Tags Admin - Papers
// @Produce json
// @Success 200 {array} model.QuestionPaper
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/papers [get]
func (c *AdminController) ListPapers(ctx *gin.Context) {
	papers, err := c.paperService.GetAllPapers()
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve papers")
		return
	}
	ctx.JSON(http.StatusOK, papers)
}

// GetPaper godoc
// @Summary (Admin) Get a question paper with answer keys
// @Tags Admin - Papers
// @Produce json
// @Param paper_id path string true "Paper ID"
// @Success 200 {object} model.QuestionPaper
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Router /admin/papers/{paper_id} [get]
func (c *AdminController) GetPaper(ctx *gin.Context) {
	paper, err := c.paperService.GetPaper(ctx.Param("paper_id"))
	if err != nil {
		controller.RespondError(ctx, err, "Paper not found")
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// CreatePaper godoc
// @Summary (Admin) Create a question paper
// @Description Questions without marks get the default; question ids are generated when blank.
// @Tags Admin - Papers
// @Accept json
// @Produce json
// @Param paper body dto.PaperUpsertDTO true "Paper"
// @Success 201 {object} model.QuestionPaper
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 409 {object} dto.ErrorResponse "Paper id already exists"
// @Router /admin/papers [post]
func (c *AdminController) CreatePaper(ctx *gin.Context) {
	var req dto.PaperUpsertDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	paper, err := c.paperService.CreateQuestionPaper(req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create paper")
		return
	}
	ctx.JSON(http.StatusCreated, paper)
}

// UpdatePaper godoc
// @Summary (Admin) Replace a question paper
// @Tags Admin - Papers
// @Accept json
// @Produce json
// @Param paper_id path string true "Paper ID"
// @Param paper body dto.PaperUpsertDTO true "Paper"
// @Description Updating a paper that does not exist is ignored.
// @Success 200 {object} model.QuestionPaper
// @Success 204 "Paper does not exist; nothing written"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Router /admin/papers/{paper_id} [put]
func (c *AdminController) UpdatePaper(ctx *gin.Context) {
	var req dto.PaperUpsertDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	paper, err := c.paperService.UpdateQuestionPaper(ctx.Param("paper_id"), req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update paper")
		return
	}
	if paper == nil {
		ctx.Status(http.StatusNoContent)
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// DeletePaper godoc
// @Summary (Admin) Delete a question paper
// @Tags Admin - Papers
// @Param paper_id path string true "Paper ID"
// @Success 204 "No Content"
// @Router /admin/papers/{paper_id} [delete]
func (c *AdminController) DeletePaper(ctx *gin.Context) {
	if err := c.paperService.DeleteQuestionPaper(ctx.Param("paper_id")); err != nil {
		controller.RespondError(ctx, err, "Failed to delete paper")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ExportPaper godoc
// @Summary (Admin) Export a paper's questions as CSV
// @Tags Admin - Papers
// @Produce text/csv
// @Param paper_id path string true "Paper ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Router /admin/papers/{paper_id}/export [get]
func (c *AdminController) ExportPaper(ctx *gin.Context) {
	filename, data, err := c.paperService.ExportCSV(ctx.Param("paper_id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to export paper")
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// PaperTemplate godoc
// @Summary (Admin) Download a blank question CSV
// @Tags Admin - Papers
// @Produce text/csv
// @Success 200 {file} file
// @Router /admin/papers/template [get]
func (c *AdminController) PaperTemplate(ctx *gin.Context) {
	ctx.Header("Content-Disposition", `attachment; filename="question_paper_template.csv"`)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", service.TemplateCSV())
}

// ImportPaper godoc
// @Summary (Admin) Parse questions from a CSV upload
// @Description Returns the parsed questions for review; nothing is saved.
// @Tags Admin - Papers
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.ImportedQuestionsDTO
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid CSV"
// @Router /admin/papers/import [post]
func (c *AdminController) ImportPaper(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "CSV file is required", Details: []string{err.Error()}})
		return
	}
	if header.Size > maxImportSize {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "CSV file is too large"})
		return
	}
	file, err := header.Open()
	if err != nil {
		controller.RespondError(ctx, err, "Failed to read upload")
		return
	}
	defer file.Close()

	questions, err := c.paperService.ImportCSV(file)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to import CSV")
		return
	}
	log.Info().Str("file", header.Filename).Int("questions", len(questions)).Msg("Admin ImportPaper: CSV parsed")
	ctx.JSON(http.StatusOK, dto.ImportedQuestionsDTO{Questions: questions})
}

// ListAssignments godoc
// @Summary (Admin) List exam assignments
// @Tags Admin - Assignments
// @Produce json
// @Success 200 {array} model.ExamAssignment
// @Router /admin/assignments [get]
func (c *AdminController) ListAssignments(ctx *gin.Context) {
	assignments, err := c.assignmentService.GetAllAssignments()
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve assignments")
		return
	}
	ctx.JSON(http.StatusOK, assignments)
}

// AssignExam godoc
// @Summary (Admin) Assign a paper to an email
// @Description Creates the assignment or repoints an existing one.
// @Tags Admin - Assignments
// @Accept json
// @Produce json
// @Param assignment body dto.AssignExamDTO true "Email and paper"
// @Success 200 {object} model.ExamAssignment
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Router /admin/assignments [post]
func (c *AdminController) AssignExam(ctx *gin.Context) {
	var req dto.AssignExamDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	assignment, err := c.assignmentService.AssignExam(req.Email, req.PaperID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to assign exam")
		return
	}
	ctx.JSON(http.StatusOK, assignment)
}

// DeleteAssignment godoc
// @Summary (Admin) Remove an assignment
// @Tags Admin - Assignments
// @Param assignment_id path string true "Assignment ID"
// @Success 204 "No Content"
// @Router /admin/assignments/{assignment_id} [delete]
func (c *AdminController) DeleteAssignment(ctx *gin.Context) {
	if err := c.assignmentService.DeleteAssignment(ctx.Param("assignment_id")); err != nil {
		controller.RespondError(ctx, err, "Failed to delete assignment")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListCandidates godoc
// @Summary (Admin) List candidates
// @Tags Admin - Candidates
// @Produce json
// @Success 200 {array} model.Candidate
// @Router /admin/candidates [get]
func (c *AdminController) ListCandidates(ctx *gin.Context) {
	candidates, err := c.candidateService.GetAllCandidates()
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve candidates")
		return
	}
	ctx.JSON(http.StatusOK, candidates)
}

// DeleteCandidate godoc
// @Summary (Admin) Delete a candidate with their submission and assignment
// @Tags Admin - Candidates
// @Param candidate_id path string true "Candidate ID"
// @Success 204 "No Content"
// @Router /admin/candidates/{candidate_id} [delete]
func (c *AdminController) DeleteCandidate(ctx *gin.Context) {
	if err := c.candidateService.DeleteCandidate(ctx.Param("candidate_id")); err != nil {
		controller.RespondError(ctx, err, "Failed to delete candidate")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListSubmissions godoc
// @Summary (Admin) List submissions
// @Tags Admin - Submissions
// @Produce json
// @Success 200 {array} model.ExamSubmission
// @Router /admin/submissions [get]
func (c *AdminController) ListSubmissions(ctx *gin.Context) {
	subs, err := c.submissionService.ListSubmissions()
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve submissions")
		return
	}
	ctx.JSON(http.StatusOK, subs)
}

// ResetSubmission godoc
// @Summary (Admin) Delete a submission so the candidate can retake
// @Tags Admin - Submissions
// @Param candidate_id path string true "Candidate ID"
// @Success 204 "No Content"
// @Router /admin/submissions/{candidate_id} [delete]
func (c *AdminController) ResetSubmission(ctx *gin.Context) {
	if err := c.submissionService.DeleteSubmission(ctx.Param("candidate_id")); err != nil {
		controller.RespondError(ctx, err, "Failed to reset submission")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// EvaluateSubmission godoc
// @Summary (Admin) Grade a submission with AI
// @Description Grading failures still produce a zero-score result with a diagnostic summary.
// @Tags Admin - Submissions
// @Produce json
// @Param candidate_id path string true "Candidate ID"
// @Success 200 {object} model.EvaluationResult
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 409 {object} dto.ErrorResponse "Submission is still in progress"
// @Router /admin/submissions/{candidate_id}/evaluate [post]
func (c *AdminController) EvaluateSubmission(ctx *gin.Context) {
	result, err := c.submissionService.EvaluateSubmission(ctx.Request.Context(), ctx.Param("candidate_id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to evaluate submission")
		return
	}
	if result == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Submission not found"})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ProvisionDemoCandidate godoc
// @Summary (Admin) Create a demo candidate with pre-filled answers
// @Tags Admin - Candidates
// @Accept json
// @Produce json
// @Param body body dto.DemoCandidateDTO true "Profile: strong or average"
// @Success 201 {object} dto.CandidateResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid profile"
// @Router /admin/demo-candidates [post]
func (c *AdminController) ProvisionDemoCandidate(ctx *gin.Context) {
	var req dto.DemoCandidateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	candidate, err := c.provisioningService.ProvisionDemoCandidate(req.Profile)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create demo candidate")
		return
	}
	ctx.JSON(http.StatusCreated, candidate)
}
