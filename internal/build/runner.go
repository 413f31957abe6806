package build

import (
	"context"
	"os/exec"
)

// Runner runs an external command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner implements Runner using os/exec
type ExecRunner struct{}

// Run starts the command in dir and waits for it to exit
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
