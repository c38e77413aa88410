package launcher

import (
	"log/slog"
	"os/exec"

	"github.com/LeLocTai/unityhub-launcher/internal/models"
)

// OSLauncher implements Launcher with os/exec
type OSLauncher struct {
	logger *slog.Logger
}

// NewOSLauncher creates a new OSLauncher
func NewOSLauncher(logger *slog.Logger) *OSLauncher {
	if logger == nil {
		logger = slog.Default()
	}
	return &OSLauncher{logger: logger}
}

// StartDetached starts the process and returns without waiting for it.
// The child is reaped in the background once it exits.
func (l *OSLauncher) StartDetached(executable string, args []string) error {
	cmd := exec.Command(executable, args...)
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return models.NewWarning(models.ErrLaunchFailure, executable, err)
	}

	pid := cmd.Process.Pid
	go func() {
		err := cmd.Wait()
		l.logger.Debug("process exited", "pid", pid, "error", err)
	}()

	l.logger.Info("started process", "executable", executable, "args", args, "pid", pid)
	return nil
}
