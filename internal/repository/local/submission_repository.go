package local

import (
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
)

type submissionRepository struct {
	s   *store
	col collection[model.ExamSubmission]
}

func (r *submissionRepository) Create(sub *model.ExamSubmission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return err
	}
	if indexOf(items, byCandidate(sub.CandidateID)) >= 0 {
		return repository.ErrConflict
	}
	return r.col.save(append(items, *sub))
}

func (r *submissionRepository) Update(sub *model.ExamSubmission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return err
	}
	idx := indexOf(items, byCandidate(sub.CandidateID))
	if idx < 0 {
		return repository.ErrNotFound
	}
	items[idx] = *sub
	return r.col.save(items)
}

func (r *submissionRepository) FindByCandidateID(candidateID string) (*model.ExamSubmission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return nil, err
	}
	idx := indexOf(items, byCandidate(candidateID))
	if idx < 0 {
		return nil, repository.ErrNotFound
	}
	return &items[idx], nil
}

func (r *submissionRepository) FindAll() ([]model.ExamSubmission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.col.load()
}

func (r *submissionRepository) DeleteByCandidateID(candidateID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return err
	}
	return r.col.save(remove(items, byCandidate(candidateID)))
}

func byCandidate(candidateID string) func(model.ExamSubmission) bool {
	return func(x model.ExamSubmission) bool { return x.CandidateID == candidateID }
}
