package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/clicktwice-go/internal/build"
	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/utils"
)

// Cleanup removes stale publish output before the build runs.
type Cleanup struct {
	paths  []string
	logger *utils.Logger
}

// CleanupOptions contains options for creating a Cleanup handler
type CleanupOptions struct {
	// Paths are removed before the build. Relative paths resolve against the
	// project directory. Empty means the default publish directory.
	Paths  []string
	Logger *utils.Logger
}

// NewCleanup creates a new Cleanup handler
func NewCleanup(opts CleanupOptions) *Cleanup {
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}
	return &Cleanup{paths: opts.Paths, logger: opts.Logger}
}

// Name returns the handler name
func (h *Cleanup) Name() string {
	return "cleanup"
}

// HandleInput removes the configured paths
func (h *Cleanup) HandleInput(ctx context.Context, cfg *domain.RunConfig) domain.HandlerResult {
	projectDir, err := filepath.Abs(filepath.Dir(cfg.ProjectPath))
	if err != nil {
		return domain.Failed(err)
	}

	targets := h.targets(cfg, projectDir)
	removed := 0
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return domain.Failed(err)
		}
		if err := checkRemovable(target, projectDir); err != nil {
			return domain.Failed(err)
		}
		if _, err := os.Lstat(target); os.IsNotExist(err) {
			continue
		}
		if err := os.RemoveAll(target); err != nil {
			return domain.Failed(fmt.Errorf("remove %s: %w", target, err))
		}
		h.logger.Debug().Str("path", target).Msg("Removed stale output")
		removed++
	}

	if removed == 0 {
		return domain.Skipped("nothing to clean")
	}
	return domain.Succeeded(fmt.Sprintf("removed %d path(s)", removed))
}

func (h *Cleanup) targets(cfg *domain.RunConfig, projectDir string) []string {
	if len(h.paths) == 0 {
		dir, err := filepath.Abs(build.PublishDir(cfg))
		if err != nil {
			return nil
		}
		return []string{dir}
	}

	out := make([]string, 0, len(h.paths))
	for _, p := range h.paths {
		p = utils.ExpandPath(p)
		if !filepath.IsAbs(p) {
			p = filepath.Join(projectDir, p)
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}

// checkRemovable rejects the project directory, its ancestors and the
// filesystem root.
func checkRemovable(target, projectDir string) error {
	if target == filepath.Dir(target) {
		return fmt.Errorf("%w: %s is a filesystem root", ErrUnsafePath, target)
	}
	rel, err := filepath.Rel(target, projectDir)
	if err != nil {
		return nil
	}
	outside := rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
	if !outside {
		return fmt.Errorf("%w: %s contains the project", ErrUnsafePath, target)
	}
	return nil
}
