package handlers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/git"
	"github.com/quantmind-br/clicktwice-go/internal/utils"
)

// DefaultTagPrefix is prepended to the version to form the tag name
const DefaultTagPrefix = "v"

// GitTag tags the repository containing the project with the published
// version.
type GitTag struct {
	client       git.Client
	prefix       string
	message      string
	taggerName   string
	taggerEmail  string
	skipExisting bool
	logger       *utils.Logger
}

// GitTagOptions contains options for creating a GitTag handler
type GitTagOptions struct {
	Client git.Client
	Prefix string
	// Message creates an annotated tag; {name} and {version} are expanded
	Message     string
	TaggerName  string
	TaggerEmail string
	// SkipExisting turns an existing tag into a warning instead of an error
	SkipExisting bool
	Logger       *utils.Logger
}

// NewGitTag creates a new GitTag handler
func NewGitTag(opts GitTagOptions) *GitTag {
	if opts.Client == nil {
		opts.Client = git.NewClient()
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultTagPrefix
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}
	return &GitTag{
		client:       opts.Client,
		prefix:       opts.Prefix,
		message:      opts.Message,
		taggerName:   opts.TaggerName,
		taggerEmail:  opts.TaggerEmail,
		skipExisting: opts.SkipExisting,
		logger:       opts.Logger,
	}
}

// Name returns the handler name
func (h *GitTag) Name() string {
	return "gittag"
}

// HandleOutput creates the release tag
func (h *GitTag) HandleOutput(ctx context.Context, m *domain.AppManifest, cfg *domain.RunConfig) domain.HandlerResult {
	version := releaseVersion(m, cfg)
	if version == "" {
		return domain.Skipped("no version to tag")
	}
	if err := ctx.Err(); err != nil {
		return domain.Failed(err)
	}

	dir := filepath.Dir(cfg.ProjectPath)
	tag := h.prefix + version

	exists, err := h.client.TagExists(dir, tag)
	if err != nil {
		return domain.Failed(err)
	}
	if exists {
		if h.skipExisting {
			return domain.Warned(fmt.Sprintf("tag %s already exists", tag))
		}
		return domain.Failed(fmt.Errorf("%w: %s", git.ErrTagExists, tag))
	}

	hash, err := h.client.CreateTag(dir, tag, git.TagOptions{
		Message:     h.expand(m, cfg, version),
		TaggerName:  h.taggerName,
		TaggerEmail: h.taggerEmail,
	})
	if err != nil {
		if errors.Is(err, git.ErrTagExists) && h.skipExisting {
			return domain.Warned(err.Error())
		}
		return domain.Failed(err)
	}

	if len(hash) > 7 {
		hash = hash[:7]
	}
	h.logger.Info().Str("tag", tag).Str("commit", hash).Msg("Release tagged")
	return domain.Succeeded(fmt.Sprintf("tagged %s as %s", hash, tag))
}

func (h *GitTag) expand(m *domain.AppManifest, cfg *domain.RunConfig, version string) string {
	if h.message == "" {
		return ""
	}
	r := strings.NewReplacer("{name}", releaseName(m, cfg), "{version}", version)
	return r.Replace(h.message)
}
