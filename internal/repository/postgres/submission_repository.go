package postgres

import (
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
	"gorm.io/gorm"
)

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) repository.SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *model.ExamSubmission) error {
	return translate(r.db.Create(submission).Error, "creating submission")
}

// Update writes every column, so answers and proctor logs are replaced wholesale.
func (r *submissionRepository) Update(submission *model.ExamSubmission) error {
	res := r.db.Model(submission).Select("*").Updates(submission)
	if res.Error != nil {
		return translate(res.Error, "updating submission")
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *submissionRepository) FindByCandidateID(candidateID string) (*model.ExamSubmission, error) {
	var submission model.ExamSubmission
	if err := r.db.First(&submission, "candidate_id = ?", candidateID).Error; err != nil {
		return nil, translate(err, "finding submission")
	}
	return &submission, nil
}

func (r *submissionRepository) FindAll() ([]model.ExamSubmission, error) {
	var submissions []model.ExamSubmission
	if err := r.db.Order("start_time desc").Find(&submissions).Error; err != nil {
		return nil, translate(err, "listing submissions")
	}
	return submissions, nil
}

func (r *submissionRepository) DeleteByCandidateID(candidateID string) error {
	err := r.db.Delete(&model.ExamSubmission{}, "candidate_id = ?", candidateID).Error
	return translate(err, "deleting submission")
}
