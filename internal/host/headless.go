package host

import (
	"context"
	"os/exec"
	"strings"

	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
)

// SceneRunner creates a new working scene when no interactive host session
// exists.
type SceneRunner interface {
	CreateScene(ctx context.Context, scenePath string) error
}

// HeadlessRunner shells out to the host's batch interpreter with a scene
// creation script. A non-zero exit or launch failure surfaces as
// ProcessError carrying the captured stderr.
type HeadlessRunner struct {
	toolPath   string
	scriptPath string
	log        *logger.Logger
}

func NewHeadlessRunner(toolPath, scriptPath string, baseLog *logger.Logger) *HeadlessRunner {
	return &HeadlessRunner{
		toolPath:   toolPath,
		scriptPath: scriptPath,
		log:        baseLog.With("component", "headless"),
	}
}

func (r *HeadlessRunner) CreateScene(ctx context.Context, scenePath string) error {
	cmd := exec.CommandContext(ctx, r.toolPath, r.scriptPath, scenePath)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	r.log.Debug("launching headless scene creation", "tool", r.toolPath, "scene", scenePath)
	if err := cmd.Run(); err != nil {
		return &pipeerr.ProcessError{
			Cmd:    r.toolPath,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return nil
}
