//go:build !windows

package launch

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// DetachedSpawner starts the server in a new session so it survives the
// launcher's exit. Output goes to the configured log file since there is
// no separate console to attach.
type DetachedSpawner struct{}

// NewDetachedSpawner creates the platform spawner
func NewDetachedSpawner() *DetachedSpawner {
	return &DetachedSpawner{}
}

// Spawn sources the activation artifact and starts the server command in
// a detached process group
func (s *DetachedSpawner) Spawn(spec ServerSpec) (int, error) {
	script := fmt.Sprintf("source %q && exec %s", spec.ActivatePath, spec.Command)

	// #nosec G204 — the script is assembled from validated paths and the configured server command
	cmd := exec.Command("bash", "-c", script)
	cmd.Dir = spec.BackendDir
	cmd.Env = append(os.Environ(), spec.ExtraEnv...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if spec.LogPath != "" {
		logFile, err := os.OpenFile(spec.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) // #nosec G304 -- log path is under the state dir
		if err != nil {
			return 0, fmt.Errorf("failed to open server log file: %w", err)
		}
		defer func() {
			_ = logFile.Close() // the child holds its own descriptor after Start
		}()
		cmd.Stdout = logFile
		cmd.Stderr = logFile
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start server process: %w", err)
	}

	pid := cmd.Process.Pid

	// Deliberately not waiting: the server belongs to its own session now.
	// Release avoids keeping a handle on the child.
	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("server started (pid %d) but release failed: %w", pid, err)
	}

	return pid, nil
}
