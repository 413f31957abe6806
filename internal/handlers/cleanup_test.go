package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanup_DefaultPublishDir(t *testing.T) {
	cfg := publishFixture(t)
	cfg.PublishDir = ""
	h := NewCleanup(CleanupOptions{})

	res := h.HandleInput(context.Background(), &cfg)

	assert.Equal(t, domain.OutcomeSuccess, res.Outcome, res.Message)
	assert.NoDirExists(t, filepath.Join(filepath.Dir(cfg.ProjectPath), "bin", "Release", "app.publish"))
	assert.FileExists(t, cfg.ProjectPath)
}

func TestCleanup_RelativePaths(t *testing.T) {
	cfg := publishFixture(t)
	projectDir := filepath.Dir(cfg.ProjectPath)
	require.NoError(t, os.MkdirAll(filepath.Join(projectDir, "obj"), 0755))

	h := NewCleanup(CleanupOptions{Paths: []string{"obj", "missing"}})
	res := h.HandleInput(context.Background(), &cfg)

	assert.Equal(t, domain.OutcomeSuccess, res.Outcome)
	assert.Equal(t, "removed 1 path(s)", res.Message)
	assert.NoDirExists(t, filepath.Join(projectDir, "obj"))
	assert.DirExists(t, cfg.PublishDir)
}

func TestCleanup_NothingToClean(t *testing.T) {
	cfg := publishFixture(t)
	h := NewCleanup(CleanupOptions{Paths: []string{"does-not-exist"}})

	res := h.HandleInput(context.Background(), &cfg)
	assert.Equal(t, domain.OutcomeSkipped, res.Outcome)
}

func TestCleanup_RefusesProjectDirectory(t *testing.T) {
	cfg := publishFixture(t)

	tests := []string{".", "..", "/"}
	for _, p := range tests {
		t.Run(p, func(t *testing.T) {
			h := NewCleanup(CleanupOptions{Paths: []string{p}})
			res := h.HandleInput(context.Background(), &cfg)

			assert.True(t, res.IsError())
			assert.ErrorIs(t, res.Err, ErrUnsafePath)
			assert.FileExists(t, cfg.ProjectPath)
		})
	}
}

func TestCleanup_Cancelled(t *testing.T) {
	cfg := publishFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewCleanup(CleanupOptions{}).HandleInput(ctx, &cfg)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.DirExists(t, cfg.PublishDir)
}

func TestCleanup_Name(t *testing.T) {
	var h domain.InputHandler = NewCleanup(CleanupOptions{})
	assert.Equal(t, "cleanup", h.Name())
}
