package service

import (
	"context"
	"fmt"

	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
	"github.com/rs/zerolog/log"
)

// SubmissionService drives a submission through IN_PROGRESS, SUBMITTED and
// GRADED. Writes aimed at a candidate without a submission do nothing and
// return nil.
type SubmissionService interface {
	InitSubmission(candidateID, paperID string) (*model.ExamSubmission, error)
	GetSubmission(candidateID string) (*model.ExamSubmission, error)
	ListSubmissions() ([]model.ExamSubmission, error)
	SaveDraft(candidateID string, answers map[string]string, logs []model.ProctorLog) error
	SubmitExam(candidateID string) error
	SaveEvaluation(candidateID string, result model.EvaluationResult) error
	// EvaluateSubmission grades with the AI grader and stores the result. It
	// returns nil, nil when the candidate has no submission.
	EvaluateSubmission(ctx context.Context, candidateID string) (*model.EvaluationResult, error)
	DeleteSubmission(candidateID string) error
}

type submissionService struct {
	store  repository.Provider
	grader GraderService
}

func NewSubmissionService(store repository.Provider, grader GraderService) SubmissionService {
	return &submissionService{store: store, grader: grader}
}

func (s *submissionService) InitSubmission(candidateID, paperID string) (*model.ExamSubmission, error) {
	repo := s.store.Backend().Submissions
	existing, err := repo.FindByCandidateID(candidateID)
	if err == nil {
		return existing, nil
	}
	if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("looking up submission: %w", err)
	}

	sub := model.NewSubmission(candidateID, paperID, timeNow())
	if err := repo.Create(sub); err != nil {
		return nil, fmt.Errorf("creating submission: %w", err)
	}
	log.Info().Str("candidateID", candidateID).Str("paperID", paperID).Msg("Submission started")
	return sub, nil
}

func (s *submissionService) GetSubmission(candidateID string) (*model.ExamSubmission, error) {
	return s.store.Backend().Submissions.FindByCandidateID(candidateID)
}

func (s *submissionService) ListSubmissions() ([]model.ExamSubmission, error) {
	return s.store.Backend().Submissions.FindAll()
}

func (s *submissionService) SaveDraft(candidateID string, answers map[string]string, logs []model.ProctorLog) error {
	return s.mutate(candidateID, func(sub *model.ExamSubmission) (bool, error) {
		return true, sub.ReplaceDraft(answers, logs)
	})
}

func (s *submissionService) SubmitExam(candidateID string) error {
	return s.mutate(candidateID, func(sub *model.ExamSubmission) (bool, error) {
		return sub.Submit(timeNow()), nil
	})
}

func (s *submissionService) SaveEvaluation(candidateID string, result model.EvaluationResult) error {
	return s.mutate(candidateID, func(sub *model.ExamSubmission) (bool, error) {
		return true, sub.Grade(result)
	})
}

func (s *submissionService) EvaluateSubmission(ctx context.Context, candidateID string) (*model.EvaluationResult, error) {
	b := s.store.Backend()
	sub, err := b.Submissions.FindByCandidateID(candidateID)
	if repository.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up submission: %w", err)
	}
	if !sub.Status.CanTransitionTo(model.StatusGraded) {
		return nil, fmt.Errorf("%w: cannot grade while %s", model.ErrInvalidTransition, sub.Status)
	}

	paper, err := b.Papers.FindByID(sub.PaperID)
	if err != nil {
		return nil, fmt.Errorf("loading paper %s: %w", sub.PaperID, err)
	}

	result := s.grader.Evaluate(ctx, paper.Questions, sub.Answers)
	if err := s.SaveEvaluation(candidateID, result); err != nil {
		return nil, err
	}
	log.Info().Str("candidateID", candidateID).Float64("totalScore", result.TotalScore).Str("passFail", string(result.PassFail)).Msg("Submission graded")
	return &result, nil
}

func (s *submissionService) DeleteSubmission(candidateID string) error {
	if err := s.store.Backend().Submissions.DeleteByCandidateID(candidateID); err != nil {
		return fmt.Errorf("deleting submission: %w", err)
	}
	log.Info().Str("candidateID", candidateID).Msg("Submission reset")
	return nil
}

// mutate loads the submission, applies fn and saves when fn reports a change.
// A missing submission is silently ignored.
func (s *submissionService) mutate(candidateID string, fn func(*model.ExamSubmission) (bool, error)) error {
	repo := s.store.Backend().Submissions
	sub, err := repo.FindByCandidateID(candidateID)
	if repository.IsNotFound(err) {
		log.Debug().Str("candidateID", candidateID).Msg("No submission to update")
		return nil
	}
	if err != nil {
		return fmt.Errorf("looking up submission: %w", err)
	}

	changed, err := fn(sub)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := repo.Update(sub); err != nil {
		if repository.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("saving submission: %w", err)
	}
	return nil
}
