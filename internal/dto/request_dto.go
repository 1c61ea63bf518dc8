package dto

import "github.com/lshigami/pathfinder/internal/model"

// CandidateRegisterDTO is the registration form.
type CandidateRegisterDTO struct {
	ID             string `json:"id"`
	Email          string `json:"email" binding:"required,email"`
	FullName       string `json:"fullName" binding:"required"`
	CurrentCompany string `json:"currentCompany"`
	CurrentSalary  string `json:"currentSalary"`
	NoticePeriod   string `json:"noticePeriod"`
}

// InitSubmissionDTO starts an exam. PaperID defaults to the assigned paper.
type InitSubmissionDTO struct {
	PaperID string `json:"paperId"`
}

// SaveDraftDTO carries the full answer map and proctor log; both replace what
// is stored.
type SaveDraftDTO struct {
	Answers     map[string]string  `json:"answers"`
	ProctorLogs []model.ProctorLog `json:"proctorLogs"`
}

type RunCodeDTO struct {
	Code     string `json:"code"`
	Language string `json:"language" binding:"required"`
}
