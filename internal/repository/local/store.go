// Package local implements the record stores as JSON arrays in files, one
// file per collection, rewritten whole on every change.
package local

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Collection keys, which are also the file names without extension.
const (
	CandidatesKey  = "pathfinder_candidates"
	SubmissionsKey = "pathfinder_submissions"
	PapersKey      = "pathfinder_papers"
	AssignmentsKey = "pathfinder_assignments"
)

// store serializes read-modify-write cycles across all four collections.
type store struct {
	mu  sync.Mutex
	fs  afero.Fs
	dir string
}

// NewBackend prepares dir on fs and wires the four file-backed repositories.
func NewBackend(fs afero.Fs, dir string) (*repository.Backend, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating local storage dir %s", dir)
	}
	s := &store{fs: fs, dir: dir}
	return repository.NewBackend(
		repository.ModeLocal,
		&candidateRepository{s: s, col: collection[model.Candidate]{s: s, key: CandidatesKey}},
		&submissionRepository{s: s, col: collection[model.ExamSubmission]{s: s, key: SubmissionsKey}},
		&paperRepository{s: s, col: collection[model.QuestionPaper]{s: s, key: PapersKey}},
		&assignmentRepository{s: s, col: collection[model.ExamAssignment]{s: s, key: AssignmentsKey}},
		nil,
	), nil
}

type collection[T any] struct {
	s   *store
	key string
}

func (c collection[T]) path() string {
	return filepath.Join(c.s.dir, c.key+".json")
}

// load reads the whole collection. A missing file is an empty collection, and
// so is a corrupt one: the damage is logged and the next save overwrites it.
func (c collection[T]) load() ([]T, error) {
	data, err := afero.ReadFile(c.s.fs, c.path())
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, errors.Wrapf(err, "reading %s", c.key)
	}
	if len(data) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn().Err(err).Str("key", c.key).Msg("Local collection is corrupt, treating as empty")
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// save writes to a temp file and renames it over the collection file.
func (c collection[T]) save(items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", c.key)
	}
	tmp := c.path() + ".tmp"
	if err := afero.WriteFile(c.s.fs, tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", c.key)
	}
	if err := c.s.fs.Rename(tmp, c.path()); err != nil {
		return errors.Wrapf(err, "replacing %s", c.key)
	}
	return nil
}

// indexOf returns the position of the first item matching fn, or -1.
func indexOf[T any](items []T, fn func(T) bool) int {
	for i, item := range items {
		if fn(item) {
			return i
		}
	}
	return -1
}

func remove[T any](items []T, fn func(T) bool) []T {
	kept := items[:0]
	for _, item := range items {
		if !fn(item) {
			kept = append(kept, item)
		}
	}
	return kept
}
