package service

import (
	"fmt"

	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
	"github.com/rs/zerolog/log"
)

type CandidateService interface {
	GetCandidate(id string) (*model.Candidate, error)
	GetAllCandidates() ([]model.Candidate, error)
	// DeleteCandidate also removes the candidate's submission and assignment.
	DeleteCandidate(id string) error
}

type candidateService struct {
	store repository.Provider
}

func NewCandidateService(store repository.Provider) CandidateService {
	return &candidateService{store: store}
}

func (s *candidateService) GetCandidate(id string) (*model.Candidate, error) {
	return s.store.Backend().Candidates.FindByID(id)
}

func (s *candidateService) GetAllCandidates() ([]model.Candidate, error) {
	return s.store.Backend().Candidates.FindAll()
}

func (s *candidateService) DeleteCandidate(id string) error {
	b := s.store.Backend()
	candidate, err := b.Candidates.FindByID(id)
	if err != nil && !repository.IsNotFound(err) {
		return fmt.Errorf("looking up candidate: %w", err)
	}

	if err := b.Candidates.Delete(id); err != nil {
		return fmt.Errorf("deleting candidate: %w", err)
	}
	if err := b.Submissions.DeleteByCandidateID(id); err != nil {
		return fmt.Errorf("deleting candidate submission: %w", err)
	}
	if candidate != nil {
		if err := b.Assignments.DeleteByEmail(candidate.Email); err != nil {
			return fmt.Errorf("deleting candidate assignment: %w", err)
		}
	}
	log.Info().Str("candidateID", id).Msg("Candidate deleted")
	return nil
}
