// Package datastore selects, once per process, where records are persisted:
// PostgreSQL when it is configured and accepts the seed data, local JSON files
// otherwise. The choice never changes after Initialize.
package datastore

import (
	"sync"

	"github.com/lshigami/pathfinder/config"
	"github.com/lshigami/pathfinder/database"
	"github.com/lshigami/pathfinder/internal/repository"
	"github.com/lshigami/pathfinder/internal/repository/local"
	"github.com/lshigami/pathfinder/internal/repository/postgres"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Opener builds a backend. A nil Opener counts as an unavailable backend.
type Opener func() (*repository.Backend, error)

// Seeder provisions default records on a freshly opened backend.
type Seeder func(*repository.Backend) error

type DataStore struct {
	once       sync.Once
	openRemote Opener
	openLocal  Opener
	seed       Seeder
	backend    *repository.Backend
}

func New(openRemote, openLocal Opener, seed Seeder) *DataStore {
	return &DataStore{
		openRemote: openRemote,
		openLocal:  openLocal,
		seed:       seed,
	}
}

// NewFromConfig wires the PostgreSQL opener and an on-disk local opener.
func NewFromConfig(cfg *config.Config, seed Seeder) *DataStore {
	return New(PostgresOpener(cfg), LocalOpener(afero.NewOsFs(), cfg.Storage.LocalDir), seed)
}

func PostgresOpener(cfg *config.Config) Opener {
	return func() (*repository.Backend, error) {
		db, err := database.NewDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.NewBackend(db)
	}
}

func LocalOpener(fs afero.Fs, dir string) Opener {
	return func() (*repository.Backend, error) {
		return local.NewBackend(fs, dir)
	}
}

// Initialize selects and seeds the backend. Only the first call has any
// effect. It never fails; problems are logged and the next backend is tried.
func (d *DataStore) Initialize() {
	d.once.Do(d.initialize)
}

func (d *DataStore) initialize() {
	if remote, err := d.open(d.openRemote); err != nil {
		log.Warn().Err(err).Msg("Remote database not available. Switching to local storage mode.")
	} else if err := d.runSeed(remote); err != nil {
		log.Error().Err(err).Msg("Error seeding remote database. Falling back to local storage.")
		if cerr := remote.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("Failed to close remote database after fallback")
		}
	} else {
		d.backend = remote
		log.Info().Str("mode", string(remote.Mode)).Msg("Datastore initialized")
		return
	}

	d.backend = d.openFallback()
	if err := d.runSeed(d.backend); err != nil {
		log.Error().Err(err).Msg("Local storage seeding failed. Continuing without default data.")
	}
	log.Info().Str("mode", string(d.backend.Mode)).Msg("Datastore initialized")
}

func (d *DataStore) open(opener Opener) (*repository.Backend, error) {
	if opener == nil {
		return nil, database.ErrNotConfigured
	}
	return opener()
}

func (d *DataStore) openFallback() *repository.Backend {
	b, err := d.open(d.openLocal)
	if err == nil {
		return b
	}
	log.Error().Err(err).Msg("Local storage not available. Keeping records in memory for this process.")
	// MkdirAll on a MemMapFs does not fail
	b, _ = local.NewBackend(afero.NewMemMapFs(), "/")
	return b
}

func (d *DataStore) runSeed(b *repository.Backend) error {
	if d.seed == nil {
		return nil
	}
	return d.seed(b)
}

// Backend returns the active backend, initializing on first use.
func (d *DataStore) Backend() *repository.Backend {
	d.Initialize()
	return d.backend
}

func (d *DataStore) Mode() repository.Mode {
	return d.Backend().Mode
}

// Close releases the active backend. It is safe to call before Initialize.
func (d *DataStore) Close() error {
	if d.backend == nil {
		return nil
	}
	return d.backend.Close()
}
