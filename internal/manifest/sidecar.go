package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/utils"
)

// SidecarExt is the default sidecar file extension.
const SidecarExt = ".cltw"

// SidecarPath returns <dir>/<base><ext> for the descriptor, falling back to
// the project file when no descriptor can be located.
func SidecarPath(descriptorLocation, projectPath, ext string) (string, error) {
	if ext == "" {
		ext = SidecarExt
	}

	anchor := ""
	if descriptorLocation != "" {
		path, err := LocateDescriptor(descriptorLocation)
		switch {
		case err == nil:
			anchor = path
		case !errors.Is(err, ErrDescriptorNotFound):
			return "", err
		}
	}
	if anchor == "" {
		anchor = projectPath
	}
	if anchor == "" {
		return "", ErrNoSidecarLocation
	}

	base := strings.TrimSuffix(filepath.Base(anchor), filepath.Ext(anchor))
	return filepath.Join(filepath.Dir(anchor), base+ext), nil
}

// Persist writes m to the sidecar beside the descriptor and returns its path.
// The target directory must already exist.
func (r *Resolver) Persist(m domain.AppManifest) (string, error) {
	return r.PersistWithExt(m, SidecarExt)
}

// PersistWithExt is Persist with a custom sidecar extension.
func (r *Resolver) PersistWithExt(m domain.AppManifest, ext string) (string, error) {
	path, err := SidecarPath(r.descriptorPath, r.projectPath, ext)
	if err != nil {
		return "", domain.NewPersistenceError("write", r.descriptorPath, err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", domain.NewPersistenceError("encode", path, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", domain.NewPersistenceError("write", path, err)
	}

	if r.logger != nil {
		r.logger.Debug().Str("path", path).Msg("Manifest sidecar written")
	}
	return path, nil
}

// Load reads a sidecar written by Persist.
func Load(path string) (domain.AppManifest, error) {
	var m domain.AppManifest

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, domain.NewPersistenceError("read", path, ErrSidecarNotFound)
		}
		return m, domain.NewPersistenceError("read", path, err)
	}

	m, err = decodeSidecar(data)
	if err != nil {
		return domain.AppManifest{}, domain.NewPersistenceError("decode", path, err)
	}
	return m, nil
}

// sidecarKeys maps normalized key names onto the keys AppManifest decodes.
// Normalization lowercases and drops underscores, so both snake_case and
// the PascalCase names of earlier .cltw files are accepted.
var sidecarKeys = map[string]string{
	"applicationname":  "application_name",
	"publishername":    "publisher_name",
	"suitename":        "suite_name",
	"shortname":        "short_name",
	"description":      "description",
	"copyright":        "copyright",
	"appversion":       "app_version",
	"frameworkversion": "framework_version",
}

// decodeSidecar decodes a sidecar document. A non-empty object with no
// manifest field is rejected rather than read as an empty manifest.
func decodeSidecar(data []byte) (domain.AppManifest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.AppManifest{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	fields := make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		normalized := strings.ToLower(strings.ReplaceAll(key, "_", ""))
		if canonical, ok := sidecarKeys[normalized]; ok {
			fields[canonical] = value
		}
	}
	if len(raw) > 0 && len(fields) == 0 {
		return domain.AppManifest{}, fmt.Errorf("%w: no manifest fields", ErrInvalidFormat)
	}

	normalized, err := json.Marshal(fields)
	if err != nil {
		return domain.AppManifest{}, err
	}
	var m domain.AppManifest
	if err := json.Unmarshal(normalized, &m); err != nil {
		return domain.AppManifest{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return m, nil
}

// FindSidecar returns the first sidecar file in dir in lexical order.
func FindSidecar(dir, ext string) (string, bool) {
	if ext == "" {
		ext = SidecarExt
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[0], true
}

// ForDeployment returns the manifest describing a deployment directory. An
// existing sidecar is preferred; otherwise the descriptor in dir is resolved.
// The framework version default is applied to the result.
func ForDeployment(ctx context.Context, dir string, logger *utils.Logger) (domain.AppManifest, error) {
	if path, ok := FindSidecar(dir, SidecarExt); ok {
		m, err := Load(path)
		if err != nil {
			return domain.AppManifest{}, err
		}
		return m.WithFrameworkDefault(), nil
	}

	r := NewResolver(ResolverOptions{DescriptorPath: dir, Logger: logger})
	m, err := r.Resolve(ctx, domain.SourceDescriptor)
	if err != nil {
		return domain.AppManifest{}, err
	}
	return m.WithFrameworkDefault(), nil
}
