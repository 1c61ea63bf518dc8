package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/pathfinder/internal/datastore"
	"github.com/lshigami/pathfinder/internal/repository"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
	prompt   string
	schema   *genai.Schema
}

func (f *fakeLLM) GenerateJSON(_ context.Context, _ string, schema *genai.Schema, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	f.schema = schema
	return f.response, f.err
}

func (f *fakeLLM) Available() bool { return !errors.Is(f.err, ErrLLMUnavailable) }

func (f *fakeLLM) Close() error { return nil }

// newTestStore returns a seeded store backed by an in-memory filesystem.
func newTestStore(t *testing.T) *datastore.DataStore {
	t.Helper()
	ds := datastore.New(nil, datastore.LocalOpener(afero.NewMemMapFs(), "/data"), NewSeeder().Seed)
	ds.Initialize()
	require.Equal(t, repository.ModeLocal, ds.Mode())
	t.Cleanup(func() { _ = ds.Close() })
	return ds
}

// freezeClock pins timeNow and returns a function advancing it.
func freezeClock(t *testing.T) func(time.Duration) {
	t.Helper()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })
	return func(d time.Duration) { now = now.Add(d) }
}
