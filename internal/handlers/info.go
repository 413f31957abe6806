package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/utils"
	"gopkg.in/yaml.v3"
)

// DefaultInfoFileName is written into the publish directory
const DefaultInfoFileName = "release.yaml"

// InfoFile records when a run started during the input phase and writes a
// YAML release summary into the publish directory during the output phase.
type InfoFile struct {
	fileName string
	now      func() time.Time
	logger   *utils.Logger

	mu      sync.Mutex
	started map[string]time.Time
}

// InfoOptions contains options for creating an InfoFile handler
type InfoOptions struct {
	FileName string
	Logger   *utils.Logger
}

// ReleaseInfo is the document written by InfoFile
type ReleaseInfo struct {
	Application   domain.AppManifest `yaml:"application"`
	RunID         string             `yaml:"run_id"`
	Version       string             `yaml:"version,omitempty"`
	Configuration string             `yaml:"configuration,omitempty"`
	Platform      string             `yaml:"platform,omitempty"`
	BuildStarted  time.Time          `yaml:"build_started,omitempty"`
	PublishedAt   time.Time          `yaml:"published_at"`
}

// NewInfoFile creates a new InfoFile handler
func NewInfoFile(opts InfoOptions) *InfoFile {
	if opts.FileName == "" {
		opts.FileName = DefaultInfoFileName
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}
	return &InfoFile{
		fileName: opts.FileName,
		now:      time.Now,
		logger:   opts.Logger,
		started:  make(map[string]time.Time),
	}
}

// Name returns the handler name
func (h *InfoFile) Name() string {
	return "info"
}

// HandleInput validates the file name and stamps the run start
func (h *InfoFile) HandleInput(_ context.Context, cfg *domain.RunConfig) domain.HandlerResult {
	if !utils.IsValidFilename(h.fileName) {
		return domain.Failed(fmt.Errorf("invalid info file name %q", h.fileName))
	}

	h.mu.Lock()
	h.started[cfg.RunID] = h.now()
	h.mu.Unlock()
	return domain.Succeeded("")
}

// HandleOutput writes the release summary
func (h *InfoFile) HandleOutput(_ context.Context, m *domain.AppManifest, cfg *domain.RunConfig) domain.HandlerResult {
	dir, err := publishDir(cfg)
	if err != nil {
		return domain.Failed(err)
	}

	h.mu.Lock()
	started, ok := h.started[cfg.RunID]
	delete(h.started, cfg.RunID)
	h.mu.Unlock()

	info := ReleaseInfo{
		RunID:         cfg.RunID,
		Version:       releaseVersion(m, cfg),
		Configuration: cfg.Configuration,
		Platform:      cfg.Platform,
		PublishedAt:   h.now().UTC(),
	}
	if m != nil {
		info.Application = m.Clone()
	}
	if ok {
		info.BuildStarted = started.UTC()
	}

	data, err := yaml.Marshal(&info)
	if err != nil {
		return domain.Failed(err)
	}

	path := filepath.Join(dir, h.fileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return domain.Failed(err)
	}

	h.logger.Debug().Str("path", path).Msg("Release info written")
	return domain.Succeeded("wrote " + path)
}
