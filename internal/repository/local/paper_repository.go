package local

import (
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
)

type paperRepository struct {
	s   *store
	col collection[model.QuestionPaper]
}

func (r *paperRepository) Create(p *model.QuestionPaper) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return err
	}
	if indexOf(items, byPaperID(p.ID)) >= 0 {
		return repository.ErrConflict
	}
	return r.col.save(append(items, *p))
}

func (r *paperRepository) Upsert(p *model.QuestionPaper) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return err
	}
	if idx := indexOf(items, byPaperID(p.ID)); idx >= 0 {
		items[idx] = *p
	} else {
		items = append(items, *p)
	}
	return r.col.save(items)
}

func (r *paperRepository) Update(p *model.QuestionPaper) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return err
	}
	idx := indexOf(items, byPaperID(p.ID))
	if idx < 0 {
		return repository.ErrNotFound
	}
	items[idx] = *p
	return r.col.save(items)
}

func (r *paperRepository) FindByID(id string) (*model.QuestionPaper, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return nil, err
	}
	idx := indexOf(items, byPaperID(id))
	if idx < 0 {
		return nil, repository.ErrNotFound
	}
	return &items[idx], nil
}

func (r *paperRepository) FindAll() ([]model.QuestionPaper, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.col.load()
}

func (r *paperRepository) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return err
	}
	return r.col.save(remove(items, byPaperID(id)))
}

func byPaperID(id string) func(model.QuestionPaper) bool {
	return func(x model.QuestionPaper) bool { return x.ID == id }
}
