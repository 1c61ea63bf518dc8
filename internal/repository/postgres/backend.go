// Package postgres implements the record stores on PostgreSQL through GORM.
package postgres

import (
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// NewBackend migrates the schema and wires the four GORM repositories.
func NewBackend(db *gorm.DB) (*repository.Backend, error) {
	closeFn := func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return errors.Wrap(err, "getting sql.DB")
		}
		return sqlDB.Close()
	}
	// the pool is released when the backend cannot be used
	if err := AutoMigrate(db); err != nil {
		_ = closeFn()
		return nil, err
	}
	return repository.NewBackend(
		repository.ModePostgres,
		NewCandidateRepository(db),
		NewSubmissionRepository(db),
		NewPaperRepository(db),
		NewAssignmentRepository(db),
		closeFn,
	), nil
}

func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Candidate{},
		&model.QuestionPaper{},
		&model.ExamAssignment{},
		&model.ExamSubmission{},
	)
	return errors.Wrap(err, "migrating database")
}

// translate maps GORM's not-found error onto the repository sentinel.
func translate(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrConflict
	}
	return errors.Wrap(err, msg)
}
