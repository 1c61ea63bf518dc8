package repository

import (
	"errors"

	"github.com/lshigami/pathfinder/internal/model"
)

var (
	// ErrNotFound is returned by every backend when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a create collides with a unique key.
	ErrConflict = errors.New("record already exists")
)

type CandidateRepository interface {
	Create(candidate *model.Candidate) error
	Update(candidate *model.Candidate) error
	FindByID(id string) (*model.Candidate, error)
	FindByEmail(email string) (*model.Candidate, error)
	FindAll() ([]model.Candidate, error)
	Delete(id string) error
}

type SubmissionRepository interface {
	Create(submission *model.ExamSubmission) error
	Update(submission *model.ExamSubmission) error
	FindByCandidateID(candidateID string) (*model.ExamSubmission, error)
	FindAll() ([]model.ExamSubmission, error)
	DeleteByCandidateID(candidateID string) error
}

type PaperRepository interface {
	Create(paper *model.QuestionPaper) error
	// Upsert creates the paper or replaces the stored one with the same id.
	Upsert(paper *model.QuestionPaper) error
	// Update replaces an existing paper and returns ErrNotFound otherwise.
	Update(paper *model.QuestionPaper) error
	FindByID(id string) (*model.QuestionPaper, error)
	FindAll() ([]model.QuestionPaper, error)
	Delete(id string) error
}

type AssignmentRepository interface {
	Create(assignment *model.ExamAssignment) error
	Update(assignment *model.ExamAssignment) error
	FindByEmail(email string) (*model.ExamAssignment, error)
	FindAll() ([]model.ExamAssignment, error)
	Delete(id string) error
	DeleteByEmail(email string) error
}

// Mode names the persistence target a Backend writes to.
type Mode string

const (
	ModePostgres Mode = "postgres"
	ModeLocal    Mode = "local"
)

// Backend bundles the four record stores of one persistence target.
type Backend struct {
	Mode        Mode
	Candidates  CandidateRepository
	Submissions SubmissionRepository
	Papers      PaperRepository
	Assignments AssignmentRepository

	closeFn func() error
}

func NewBackend(mode Mode, c CandidateRepository, s SubmissionRepository, p PaperRepository, a AssignmentRepository, closeFn func() error) *Backend {
	return &Backend{
		Mode:        mode,
		Candidates:  c,
		Submissions: s,
		Papers:      p,
		Assignments: a,
		closeFn:     closeFn,
	}
}

func (b *Backend) Close() error {
	if b == nil || b.closeFn == nil {
		return nil
	}
	return b.closeFn()
}

// Provider hands out the active backend. Services depend on this rather than
// on a concrete backend so the selection happens once, at startup.
type Provider interface {
	Backend() *Backend
}

// IsNotFound is a shorthand for errors.Is(err, ErrNotFound).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
