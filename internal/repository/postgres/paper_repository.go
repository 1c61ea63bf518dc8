package postgres

import (
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type paperRepository struct {
	db *gorm.DB
}

func NewPaperRepository(db *gorm.DB) repository.PaperRepository {
	return &paperRepository{db: db}
}

func (r *paperRepository) Create(paper *model.QuestionPaper) error {
	return translate(r.db.Create(paper).Error, "creating paper")
}

func (r *paperRepository) Upsert(paper *model.QuestionPaper) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(paper).Error
	return translate(err, "upserting paper")
}

func (r *paperRepository) Update(paper *model.QuestionPaper) error {
	res := r.db.Model(paper).Select("*").Updates(paper)
	if res.Error != nil {
		return translate(res.Error, "updating paper")
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *paperRepository) FindByID(id string) (*model.QuestionPaper, error) {
	var paper model.QuestionPaper
	if err := r.db.First(&paper, "id = ?", id).Error; err != nil {
		return nil, translate(err, "finding paper")
	}
	return &paper, nil
}

func (r *paperRepository) FindAll() ([]model.QuestionPaper, error) {
	var papers []model.QuestionPaper
	if err := r.db.Order("created_at desc").Find(&papers).Error; err != nil {
		return nil, translate(err, "listing papers")
	}
	return papers, nil
}

func (r *paperRepository) Delete(id string) error {
	return translate(r.db.Delete(&model.QuestionPaper{}, "id = ?", id).Error, "deleting paper")
}
