package handlers

import (
	"context"
	"fmt"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/utils"
)

// CopyDeploy copies the publish directory to a deployment location such as
// a network share or web root.
type CopyDeploy struct {
	target string
	logger *utils.Logger
}

// CopyOptions contains options for creating a CopyDeploy handler
type CopyOptions struct {
	Target string
	Logger *utils.Logger
}

// NewCopyDeploy creates a new CopyDeploy handler
func NewCopyDeploy(opts CopyOptions) *CopyDeploy {
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}
	return &CopyDeploy{target: opts.Target, logger: opts.Logger}
}

// Name returns the handler name
func (h *CopyDeploy) Name() string {
	return "copy"
}

// HandleOutput copies the publish output to the target
func (h *CopyDeploy) HandleOutput(ctx context.Context, _ *domain.AppManifest, cfg *domain.RunConfig) domain.HandlerResult {
	if h.target == "" {
		return domain.Failed(ErrNoTarget)
	}
	src, err := publishDir(cfg)
	if err != nil {
		return domain.Failed(err)
	}
	if err := ctx.Err(); err != nil {
		return domain.Failed(err)
	}

	target := utils.ExpandPath(h.target)
	count, err := utils.CopyDir(src, target)
	if err != nil {
		return domain.Failed(fmt.Errorf("deploy to %s: %w", target, err))
	}

	h.logger.Info().Str("target", target).Int("files", count).Msg("Publish output deployed")
	return domain.Succeeded(fmt.Sprintf("deployed %d file(s) to %s", count, target))
}
