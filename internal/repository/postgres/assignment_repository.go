package postgres

import (
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
	"gorm.io/gorm"
)

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) repository.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(assignment *model.ExamAssignment) error {
	return translate(r.db.Create(assignment).Error, "creating assignment")
}

func (r *assignmentRepository) Update(assignment *model.ExamAssignment) error {
	res := r.db.Model(assignment).Select("*").Updates(assignment)
	if res.Error != nil {
		return translate(res.Error, "updating assignment")
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *assignmentRepository) FindByEmail(email string) (*model.ExamAssignment, error) {
	var assignment model.ExamAssignment
	if err := r.db.Where("email = ?", email).First(&assignment).Error; err != nil {
		return nil, translate(err, "finding assignment by email")
	}
	return &assignment, nil
}

func (r *assignmentRepository) FindAll() ([]model.ExamAssignment, error) {
	var assignments []model.ExamAssignment
	if err := r.db.Order("assigned_at desc").Find(&assignments).Error; err != nil {
		return nil, translate(err, "listing assignments")
	}
	return assignments, nil
}

func (r *assignmentRepository) Delete(id string) error {
	return translate(r.db.Delete(&model.ExamAssignment{}, "id = ?", id).Error, "deleting assignment")
}

func (r *assignmentRepository) DeleteByEmail(email string) error {
	err := r.db.Delete(&model.ExamAssignment{}, "email = ?", email).Error
	return translate(err, "deleting assignment by email")
}
