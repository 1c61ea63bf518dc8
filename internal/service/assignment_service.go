package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
	"github.com/rs/zerolog/log"
)

type AssignmentService interface {
	// AssignExam points the email at paperID, creating the assignment if needed.
	AssignExam(email, paperID string) (*model.ExamAssignment, error)
	GetAssignment(email string) (*model.ExamAssignment, error)
	GetAllAssignments() ([]model.ExamAssignment, error)
	DeleteAssignment(id string) error
}

type assignmentService struct {
	store repository.Provider
}

func NewAssignmentService(store repository.Provider) AssignmentService {
	return &assignmentService{store: store}
}

func (s *assignmentService) AssignExam(email, paperID string) (*model.ExamAssignment, error) {
	b := s.store.Backend()
	email = model.NormalizeEmail(email)

	if _, err := b.Papers.FindByID(paperID); err != nil {
		return nil, fmt.Errorf("paper %s: %w", paperID, err)
	}

	now := timeNow()
	existing, err := b.Assignments.FindByEmail(email)
	switch {
	case err == nil:
		existing.PaperID = paperID
		existing.AssignedAt = now
		existing.AssignedBy = model.AssignedByAdmin
		if err := b.Assignments.Update(existing); err != nil {
			return nil, fmt.Errorf("updating assignment: %w", err)
		}
		log.Info().Str("email", email).Str("paperID", paperID).Msg("Assignment updated")
		return existing, nil
	case !repository.IsNotFound(err):
		return nil, fmt.Errorf("looking up assignment: %w", err)
	}

	assignment := model.ExamAssignment{
		ID:         uuid.NewString(),
		Email:      email,
		PaperID:    paperID,
		AssignedBy: model.AssignedByAdmin,
		AssignedAt: now,
	}
	if err := b.Assignments.Create(&assignment); err != nil {
		return nil, fmt.Errorf("creating assignment: %w", err)
	}
	log.Info().Str("email", email).Str("paperID", paperID).Msg("Assignment created")
	return &assignment, nil
}

func (s *assignmentService) GetAssignment(email string) (*model.ExamAssignment, error) {
	return s.store.Backend().Assignments.FindByEmail(model.NormalizeEmail(email))
}

func (s *assignmentService) GetAllAssignments() ([]model.ExamAssignment, error) {
	return s.store.Backend().Assignments.FindAll()
}

func (s *assignmentService) DeleteAssignment(id string) error {
	if err := s.store.Backend().Assignments.Delete(id); err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	return nil
}
