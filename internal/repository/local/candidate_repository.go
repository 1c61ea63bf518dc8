package local

import (
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
)

type candidateRepository struct {
	s   *store
	col collection[model.Candidate]
}

func (r *candidateRepository) Create(c *model.Candidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return err
	}
	if indexOf(items, func(x model.Candidate) bool { return x.ID == c.ID || x.Email == c.Email }) >= 0 {
		return repository.ErrConflict
	}
	return r.col.save(append(items, *c))
}

func (r *candidateRepository) Update(c *model.Candidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return err
	}
	idx := indexOf(items, func(x model.Candidate) bool { return x.ID == c.ID })
	if idx < 0 {
		return repository.ErrNotFound
	}
	items[idx] = *c
	return r.col.save(items)
}

func (r *candidateRepository) FindByID(id string) (*model.Candidate, error) {
	return r.find(func(x model.Candidate) bool { return x.ID == id })
}

func (r *candidateRepository) FindByEmail(email string) (*model.Candidate, error) {
	return r.find(func(x model.Candidate) bool { return x.Email == email })
}

func (r *candidateRepository) find(fn func(model.Candidate) bool) (*model.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return nil, err
	}
	idx := indexOf(items, fn)
	if idx < 0 {
		return nil, repository.ErrNotFound
	}
	return &items[idx], nil
}

func (r *candidateRepository) FindAll() ([]model.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.col.load()
}

func (r *candidateRepository) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return err
	}
	return r.col.save(remove(items, func(x model.Candidate) bool { return x.ID == id }))
}
