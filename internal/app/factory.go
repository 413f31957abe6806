package app

import (
	"fmt"

	"github.com/quantmind-br/clicktwice-go/internal/git"
	"github.com/quantmind-br/clicktwice-go/internal/handlers"
	"github.com/quantmind-br/clicktwice-go/internal/pipeline"
	"github.com/quantmind-br/clicktwice-go/internal/profile"
	"github.com/quantmind-br/clicktwice-go/internal/utils"
)

// HandlerDeps are the shared collaborators handed to bundled handlers
type HandlerDeps struct {
	Logger    *utils.Logger
	GitClient git.Client
}

// CreateHandler builds the bundled handler named by spec and registers it
// for the phases it supports.
func CreateHandler(spec profile.HandlerSpec, deps HandlerDeps) (pipeline.Registration, error) {
	logger := deps.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	logger = logger.WithComponent("handler")

	switch spec.Kind() {
	case profile.HandlerCleanup:
		return pipeline.Input(handlers.NewCleanup(handlers.CleanupOptions{
			Paths:  expandAll(spec.Strings("paths")),
			Logger: logger,
		})), nil

	case profile.HandlerZip:
		return pipeline.Output(handlers.NewZipPackage(handlers.ZipOptions{
			OutputDir: utils.ExpandPath(spec.String("output_dir")),
			FileName:  spec.String("file_name"),
			Level:     spec.Int("level"),
			Logger:    logger,
		})), nil

	case profile.HandlerCopy:
		target := utils.ExpandPath(spec.String("target"))
		if target == "" {
			return pipeline.Registration{}, fmt.Errorf("copy: %w", handlers.ErrNoTarget)
		}
		return pipeline.Output(handlers.NewCopyDeploy(handlers.CopyOptions{
			Target: target,
			Logger: logger,
		})), nil

	case profile.HandlerGitTag:
		return pipeline.Output(handlers.NewGitTag(handlers.GitTagOptions{
			Client:       deps.GitClient,
			Prefix:       spec.String("prefix"),
			Message:      spec.String("message"),
			TaggerName:   spec.String("tagger_name"),
			TaggerEmail:  spec.String("tagger_email"),
			SkipExisting: spec.Bool("skip_existing"),
			Logger:       logger,
		})), nil

	case profile.HandlerInfo:
		return pipeline.Dual(handlers.NewInfoFile(handlers.InfoOptions{
			FileName: spec.String("file_name"),
			Logger:   logger,
		})), nil

	default:
		return pipeline.Registration{}, fmt.Errorf("%w: %s", profile.ErrUnknownHandler, spec.Type)
	}
}

func expandAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, utils.ExpandPath(p))
	}
	return out
}
