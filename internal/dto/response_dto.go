package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type RegistrationStatus string

const (
	RegistrationCreated  RegistrationStatus = "CREATED"
	RegistrationResumed  RegistrationStatus = "RESUMED"
	RegistrationRejected RegistrationStatus = "REJECTED"
)

// CandidateResponseDTO mirrors model.Candidate for API responses.
type CandidateResponseDTO struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"fullName"`
	CurrentCompany  string    `json:"currentCompany"`
	CurrentSalary   string    `json:"currentSalary"`
	NoticePeriod    string    `json:"noticePeriod"`
	AssignedPaperID string    `json:"assignedPaperId"`
	RegisteredAt    time.Time `json:"registeredAt"`
}

// RegistrationResultDTO is returned for every registration attempt; a
// rejection is a normal result carrying the reason in Error.
type RegistrationResultDTO struct {
	Status    RegistrationStatus    `json:"status"`
	Candidate *CandidateResponseDTO `json:"candidate,omitempty"`
	Error     string                `json:"error,omitempty"`
}

// CandidateQuestionDTO is a question without its grading guideline.
type CandidateQuestionDTO struct {
	ID       string `json:"id"`
	Section  string `json:"section"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	CodeType string `json:"codeType"`
	Marks    int    `json:"marks"`
}

// CandidatePaperDTO is the exam as shown to a candidate.
type CandidatePaperDTO struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Duration    int                    `json:"duration"`
	Questions   []CandidateQuestionDTO `json:"questions"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	StorageMode string `json:"storageMode"`
}
