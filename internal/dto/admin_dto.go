package dto

import "time"

// QuestionDTO is one question as admins author it.
type QuestionDTO struct {
	ID             string `json:"id"`
	Section        string `json:"section"`
	Title          string `json:"title" binding:"required"`
	Text           string `json:"text" binding:"required"`
	IdealAnswerKey string `json:"idealAnswerKey"`
	CodeType       string `json:"codeType"`
	Marks          int    `json:"marks" binding:"min=0"`
}

// PaperUpsertDTO is used to create or replace a question paper.
type PaperUpsertDTO struct {
	ID          string        `json:"id"`
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description"`
	Duration    int           `json:"duration" binding:"required,gt=0"`
	Questions   []QuestionDTO `json:"questions" binding:"dive"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// AssignExamDTO binds a candidate email to a paper.
type AssignExamDTO struct {
	Email   string `json:"email" binding:"required,email"`
	PaperID string `json:"paperId" binding:"required"`
}

// DemoCandidateDTO asks for a pre-filled demo candidate.
type DemoCandidateDTO struct {
	Profile string `json:"profile" binding:"required,oneof=strong average"`
}

// ImportedQuestionsDTO is returned after a CSV upload, for the editor to review.
type ImportedQuestionsDTO struct {
	Questions []QuestionDTO `json:"questions"`
}
