package handlers

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/utils"
)

// ZipPackage archives the publish directory into a single zip file.
type ZipPackage struct {
	outputDir string
	fileName  string
	level     int
	logger    *utils.Logger
}

// ZipOptions contains options for creating a ZipPackage handler
type ZipOptions struct {
	// OutputDir defaults to the parent of the publish directory
	OutputDir string
	// FileName defaults to <name>-<version>.zip
	FileName string
	// Level is the deflate level; zero uses flate.DefaultCompression
	Level  int
	Logger *utils.Logger
}

// NewZipPackage creates a new ZipPackage handler
func NewZipPackage(opts ZipOptions) *ZipPackage {
	if opts.Level == 0 {
		opts.Level = flate.DefaultCompression
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}
	return &ZipPackage{
		outputDir: opts.OutputDir,
		fileName:  opts.FileName,
		level:     opts.Level,
		logger:    opts.Logger,
	}
}

// Name returns the handler name
func (h *ZipPackage) Name() string {
	return "zip"
}

// HandleOutput writes the archive
func (h *ZipPackage) HandleOutput(ctx context.Context, m *domain.AppManifest, cfg *domain.RunConfig) domain.HandlerResult {
	src, err := publishDir(cfg)
	if err != nil {
		return domain.Failed(err)
	}

	outputDir := h.outputDir
	if outputDir == "" {
		outputDir = filepath.Dir(src)
	}
	target := filepath.Join(utils.ExpandPath(outputDir), h.archiveName(m, cfg))

	count, err := h.write(ctx, src, target)
	if err != nil {
		os.Remove(target)
		return domain.Failed(fmt.Errorf("create %s: %w", target, err))
	}

	h.logger.Info().Str("archive", target).Int("files", count).Msg("Publish output archived")
	return domain.Succeeded(fmt.Sprintf("packaged %d file(s) into %s", count, target))
}

func (h *ZipPackage) archiveName(m *domain.AppManifest, cfg *domain.RunConfig) string {
	if h.fileName != "" {
		return utils.SanitizeFilename(h.fileName)
	}
	name := releaseName(m, cfg)
	if v := releaseVersion(m, cfg); v != "" {
		name += "-" + v
	}
	return utils.SanitizeFilename(name + ".zip")
}

func (h *ZipPackage) write(ctx context.Context, src, target string) (int, error) {
	if err := utils.EnsureDir(target); err != nil {
		return 0, err
	}

	f, err := os.Create(target)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, h.level)
	})

	absTarget, _ := filepath.Abs(target)
	count := 0
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if abs, _ := filepath.Abs(path); abs == absTarget {
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if err := addFile(zw, path, filepath.ToSlash(rel)); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		zw.Close()
		return 0, err
	}

	if err := zw.Close(); err != nil {
		return 0, err
	}
	return count, f.Close()
}

func addFile(zw *zip.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = strings.TrimPrefix(name, "./")
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	_, err = io.Copy(w, in)
	return err
}
