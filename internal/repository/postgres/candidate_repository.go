package postgres

import (
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
	"gorm.io/gorm"
)

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) repository.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(candidate *model.Candidate) error {
	return translate(r.db.Create(candidate).Error, "creating candidate")
}

func (r *candidateRepository) Update(candidate *model.Candidate) error {
	res := r.db.Model(candidate).Select("*").Updates(candidate)
	if res.Error != nil {
		return translate(res.Error, "updating candidate")
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *candidateRepository) FindByID(id string) (*model.Candidate, error) {
	var candidate model.Candidate
	if err := r.db.First(&candidate, "id = ?", id).Error; err != nil {
		return nil, translate(err, "finding candidate")
	}
	return &candidate, nil
}

func (r *candidateRepository) FindByEmail(email string) (*model.Candidate, error) {
	var candidate model.Candidate
	if err := r.db.Where("email = ?", email).First(&candidate).Error; err != nil {
		return nil, translate(err, "finding candidate by email")
	}
	return &candidate, nil
}

func (r *candidateRepository) FindAll() ([]model.Candidate, error) {
	var candidates []model.Candidate
	if err := r.db.Order("registered_at desc").Find(&candidates).Error; err != nil {
		return nil, translate(err, "listing candidates")
	}
	return candidates, nil
}

func (r *candidateRepository) Delete(id string) error {
	return translate(r.db.Delete(&model.Candidate{}, "id = ?", id).Error, "deleting candidate")
}
