package local

import (
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
)

type assignmentRepository struct {
	s   *store
	col collection[model.ExamAssignment]
}

func (r *assignmentRepository) Create(a *model.ExamAssignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return err
	}
	if indexOf(items, func(x model.ExamAssignment) bool { return x.ID == a.ID || x.Email == a.Email }) >= 0 {
		return repository.ErrConflict
	}
	return r.col.save(append(items, *a))
}

func (r *assignmentRepository) Update(a *model.ExamAssignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return err
	}
	idx := indexOf(items, func(x model.ExamAssignment) bool { return x.ID == a.ID })
	if idx < 0 {
		return repository.ErrNotFound
	}
	items[idx] = *a
	return r.col.save(items)
}

func (r *assignmentRepository) FindByEmail(email string) (*model.ExamAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return nil, err
	}
	idx := indexOf(items, func(x model.ExamAssignment) bool { return x.Email == email })
	if idx < 0 {
		return nil, repository.ErrNotFound
	}
	return &items[idx], nil
}

func (r *assignmentRepository) FindAll() ([]model.ExamAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.col.load()
}

func (r *assignmentRepository) Delete(id string) error {
	return r.deleteWhere(func(x model.ExamAssignment) bool { return x.ID == id })
}

func (r *assignmentRepository) DeleteByEmail(email string) error {
	return r.deleteWhere(func(x model.ExamAssignment) bool { return x.Email == email })
}

func (r *assignmentRepository) deleteWhere(fn func(model.ExamAssignment) bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return err
	}
	return r.col.save(remove(items, fn))
}
