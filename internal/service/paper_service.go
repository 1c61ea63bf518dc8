package service

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/pathfinder/internal/dto"
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
	"github.com/rs/zerolog/log"
)

var ErrInvalidPaper = errors.New("invalid question paper")

type PaperService interface {
	CreateQuestionPaper(req dto.PaperUpsertDTO) (*model.QuestionPaper, error)
	UpdateQuestionPaper(id string, req dto.PaperUpsertDTO) (*model.QuestionPaper, error)
	DeleteQuestionPaper(id string) error
	GetPaper(id string) (*model.QuestionPaper, error)
	GetCandidatePaper(id string) (*dto.CandidatePaperDTO, error)
	GetAllPapers() ([]model.QuestionPaper, error)
	ExportCSV(id string) (filename string, data []byte, err error)
	ImportCSV(r io.Reader) ([]dto.QuestionDTO, error)
}

type paperService struct {
	store repository.Provider
}

func NewPaperService(store repository.Provider) PaperService {
	return &paperService{store: store}
}

func (s *paperService) CreateQuestionPaper(req dto.PaperUpsertDTO) (*model.QuestionPaper, error) {
	paper, err := buildPaper(req)
	if err != nil {
		return nil, err
	}
	if paper.ID == "" {
		paper.ID = uuid.NewString()
	}
	if paper.CreatedAt.IsZero() {
		paper.CreatedAt = timeNow()
	}

	if err := s.store.Backend().Papers.Create(paper); err != nil {
		log.Error().Err(err).Str("paperID", paper.ID).Msg("Failed to create paper")
		return nil, fmt.Errorf("creating paper: %w", err)
	}
	log.Info().Str("paperID", paper.ID).Int("questions", len(paper.Questions)).Msg("Paper created")
	return paper, nil
}

// UpdateQuestionPaper replaces the content of an existing paper. It returns
// nil, nil and writes nothing when the paper does not exist.
func (s *paperService) UpdateQuestionPaper(id string, req dto.PaperUpsertDTO) (*model.QuestionPaper, error) {
	repo := s.store.Backend().Papers
	existing, err := repo.FindByID(id)
	if repository.IsNotFound(err) {
		log.Debug().Str("paperID", id).Msg("No paper to update")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up paper: %w", err)
	}
	paper, err := buildPaper(req)
	if err != nil {
		return nil, err
	}
	paper.ID = id
	paper.CreatedAt = existing.CreatedAt

	if err := repo.Update(paper); err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("updating paper: %w", err)
	}
	log.Info().Str("paperID", id).Msg("Paper updated")
	return paper, nil
}

func (s *paperService) DeleteQuestionPaper(id string) error {
	if err := s.store.Backend().Papers.Delete(id); err != nil {
		return fmt.Errorf("deleting paper: %w", err)
	}
	return nil
}

func (s *paperService) GetPaper(id string) (*model.QuestionPaper, error) {
	return s.store.Backend().Papers.FindByID(id)
}

// GetCandidatePaper hides the grading guidelines.
func (s *paperService) GetCandidatePaper(id string) (*dto.CandidatePaperDTO, error) {
	paper, err := s.GetPaper(id)
	if err != nil {
		return nil, err
	}
	var resp dto.CandidatePaperDTO
	if err := copier.Copy(&resp, paper); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *paperService) GetAllPapers() ([]model.QuestionPaper, error) {
	return s.store.Backend().Papers.FindAll()
}

func (s *paperService) ExportCSV(id string) (string, []byte, error) {
	paper, err := s.GetPaper(id)
	if err != nil {
		return "", nil, err
	}
	data, err := encodeQuestionsCSV(paper.Questions)
	if err != nil {
		return "", nil, err
	}
	return exportFilename(paper.Title), data, nil
}

func (s *paperService) ImportCSV(r io.Reader) ([]dto.QuestionDTO, error) {
	questions, err := decodeQuestionsCSV(r)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuestionDTO, 0, len(questions))
	if err := copier.Copy(&out, &questions); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return out, nil
}

// buildPaper validates the request and fills in question ids and marks.
func buildPaper(req dto.PaperUpsertDTO) (*model.QuestionPaper, error) {
	var paper model.QuestionPaper
	if err := copier.Copy(&paper, &req); err != nil {
		return nil, fmt.Errorf("error mapping paper: %w", err)
	}
	if paper.Questions == nil {
		paper.Questions = []model.Question{}
	}

	seen := make(map[string]bool, len(paper.Questions))
	for i := range paper.Questions {
		q := &paper.Questions[i]
		if q.ID == "" {
			q.ID = "q-" + uuid.NewString()
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("%w: duplicate question id %q", ErrInvalidPaper, q.ID)
		}
		seen[q.ID] = true
		if q.CodeType == "" {
			q.CodeType = model.CodeTypeText
		}
	}
	paper.NormalizeMarks()
	return &paper, nil
}
