package history

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// PrefixRun namespaces run entries
const PrefixRun = "run"

// ProjectKey generates a stable key for a project path.
// The key is a SHA256 hash of the cleaned absolute path.
func ProjectKey(projectPath string) string {
	hash := sha256.Sum256([]byte(normalizeProject(projectPath)))
	return hex.EncodeToString(hash[:])
}

// RunKey orders entries of one project by start time.
func RunKey(projectPath string, startedAt time.Time, runID string) string {
	return fmt.Sprintf("%s:%s:%020d:%s", PrefixRun, ProjectKey(projectPath), startedAt.UnixNano(), runID)
}

// projectPrefix selects every run of one project, or every run when
// projectPath is empty.
func projectPrefix(projectPath string) string {
	if projectPath == "" {
		return PrefixRun + ":"
	}
	return PrefixRun + ":" + ProjectKey(projectPath) + ":"
}

func normalizeProject(projectPath string) string {
	p := projectPath
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	p = filepath.Clean(p)
	if runtime.GOOS == "windows" {
		p = strings.ToLower(p)
	}
	return p
}
