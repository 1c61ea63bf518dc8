package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/pathfinder/internal/dto"
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	ReasonNoAssignment     = "No exam has been assigned to this email address."
	ReasonAlreadySubmitted = "Assessment already submitted."
)

type RegistrationService interface {
	// Register never returns an error for policy violations; those come back
	// as a REJECTED result. Errors mean the store failed.
	Register(req dto.CandidateRegisterDTO) (*dto.RegistrationResultDTO, error)
}

type registrationService struct {
	store repository.Provider
}

func NewRegistrationService(store repository.Provider) RegistrationService {
	return &registrationService{store: store}
}

func (s *registrationService) Register(req dto.CandidateRegisterDTO) (*dto.RegistrationResultDTO, error) {
	b := s.store.Backend()
	email := model.NormalizeEmail(req.Email)

	assignment, err := b.Assignments.FindByEmail(email)
	if repository.IsNotFound(err) {
		log.Info().Str("email", email).Msg("Register: rejected, no assignment")
		return rejected(ReasonNoAssignment), nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up assignment: %w", err)
	}

	existing, err := b.Candidates.FindByEmail(email)
	if repository.IsNotFound(err) {
		return s.create(b, req, email, assignment.PaperID)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up candidate: %w", err)
	}

	sub, err := b.Submissions.FindByCandidateID(existing.ID)
	if err != nil && !repository.IsNotFound(err) {
		return nil, fmt.Errorf("looking up submission: %w", err)
	}
	// TODO: replace the demo. prefix bypass with an explicit retake flag on the assignment.
	if sub != nil && sub.Status.Finalized() {
		if !model.IsDemoEmail(email) {
			log.Info().Str("candidateID", existing.ID).Str("status", string(sub.Status)).Msg("Register: rejected, already submitted")
			return rejected(ReasonAlreadySubmitted), nil
		}
		// demo retakes start from a fresh submission
		if err := b.Submissions.DeleteByCandidateID(existing.ID); err != nil {
			return nil, fmt.Errorf("resetting demo submission: %w", err)
		}
	}

	if req.FullName != "" {
		existing.FullName = req.FullName
	}
	existing.CurrentCompany = req.CurrentCompany
	existing.CurrentSalary = req.CurrentSalary
	existing.NoticePeriod = req.NoticePeriod
	existing.AssignedPaperID = assignment.PaperID
	if err := b.Candidates.Update(existing); err != nil {
		return nil, fmt.Errorf("updating candidate: %w", err)
	}
	log.Info().Str("candidateID", existing.ID).Msg("Register: resumed")
	return result(dto.RegistrationResumed, existing)
}

func (s *registrationService) create(b *repository.Backend, req dto.CandidateRegisterDTO, email, paperID string) (*dto.RegistrationResultDTO, error) {
	candidate := model.Candidate{
		ID:              req.ID,
		Email:           email,
		FullName:        req.FullName,
		CurrentCompany:  req.CurrentCompany,
		CurrentSalary:   req.CurrentSalary,
		NoticePeriod:    req.NoticePeriod,
		AssignedPaperID: paperID,
		RegisteredAt:    timeNow(),
	}
	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	if err := b.Candidates.Create(&candidate); err != nil {
		return nil, fmt.Errorf("creating candidate: %w", err)
	}
	log.Info().Str("candidateID", candidate.ID).Str("paperID", paperID).Msg("Register: created")
	return result(dto.RegistrationCreated, &candidate)
}

func rejected(reason string) *dto.RegistrationResultDTO {
	return &dto.RegistrationResultDTO{Status: dto.RegistrationRejected, Error: reason}
}

func result(status dto.RegistrationStatus, c *model.Candidate) (*dto.RegistrationResultDTO, error) {
	var resp dto.CandidateResponseDTO
	if err := copier.Copy(&resp, c); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &dto.RegistrationResultDTO{Status: status, Candidate: &resp}, nil
}
