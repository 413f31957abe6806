package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/clicktwice-go/internal/utils"
	"gopkg.in/yaml.v3"
)

// Loader loads and validates publish profiles
type Loader struct{}

// NewLoader creates a new profile loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses a profile file from the given path. Relative
// project, descriptor and publish paths resolve against the file's directory.
func (l *Loader) Load(path string) (*Profile, error) {
	path = utils.ExpandPath(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	p, err := l.LoadFromBytes(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	p.Project = resolve(base, p.Project)
	p.Descriptor = resolve(base, p.Descriptor)
	p.PublishDir = resolve(base, p.PublishDir)
	return p, nil
}

// LoadFromBytes parses a profile from raw bytes
func (l *Loader) LoadFromBytes(data []byte, ext string) (*Profile, error) {
	ext = strings.ToLower(ext)

	var p Profile
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

func resolve(base, path string) string {
	if path == "" {
		return ""
	}
	path = utils.ExpandPath(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
