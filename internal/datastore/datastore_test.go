package datastore

import (
	"errors"
	"testing"

	"github.com/lshigami/pathfinder/internal/repository"
	"github.com/lshigami/pathfinder/internal/repository/local"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRemote is a local backend relabelled so tests can tell which one won.
func fakeRemote(t *testing.T, closed *bool) Opener {
	return func() (*repository.Backend, error) {
		b, err := local.NewBackend(afero.NewMemMapFs(), "/remote")
		require.NoError(t, err)
		return repository.NewBackend(repository.ModePostgres, b.Candidates, b.Submissions, b.Papers, b.Assignments, func() error {
			*closed = true
			return nil
		}), nil
	}
}

func TestDataStore_UsesRemoteWhenSeedSucceeds(t *testing.T) {
	var closed bool
	seeds := 0
	ds := New(fakeRemote(t, &closed), LocalOpener(afero.NewMemMapFs(), "/local"), func(*repository.Backend) error {
		seeds++
		return nil
	})

	ds.Initialize()
	ds.Initialize()

	assert.Equal(t, repository.ModePostgres, ds.Mode())
	assert.Equal(t, 1, seeds)
	require.NoError(t, ds.Close())
	assert.True(t, closed)
}

func TestDataStore_FallsBackWhenRemoteUnavailable(t *testing.T) {
	remote := func() (*repository.Backend, error) { return nil, errors.New("connection refused") }
	var seededModes []repository.Mode
	ds := New(remote, LocalOpener(afero.NewMemMapFs(), "/local"), func(b *repository.Backend) error {
		seededModes = append(seededModes, b.Mode)
		return nil
	})

	assert.Equal(t, repository.ModeLocal, ds.Mode())
	assert.Equal(t, []repository.Mode{repository.ModeLocal}, seededModes)
}

func TestDataStore_FallsBackWhenRemoteSeedFails(t *testing.T) {
	var closed bool
	var seededModes []repository.Mode
	ds := New(fakeRemote(t, &closed), LocalOpener(afero.NewMemMapFs(), "/local"), func(b *repository.Backend) error {
		seededModes = append(seededModes, b.Mode)
		if b.Mode == repository.ModePostgres {
			return errors.New("permission denied")
		}
		return nil
	})

	ds.Initialize()

	assert.Equal(t, repository.ModeLocal, ds.Mode())
	assert.Equal(t, []repository.Mode{repository.ModePostgres, repository.ModeLocal}, seededModes)
	assert.True(t, closed, "abandoned remote is closed")
}

func TestDataStore_StaysUsableWhenEverythingFails(t *testing.T) {
	badLocal := func() (*repository.Backend, error) { return nil, errors.New("read-only filesystem") }
	ds := New(nil, badLocal, func(*repository.Backend) error { return errors.New("seed failed") })

	b := ds.Backend()
	require.NotNil(t, b)
	assert.Equal(t, repository.ModeLocal, b.Mode)

	all, err := b.Papers.FindAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}
