//go:build windows

package launch

import (
	"fmt"
	"os"
	"os/exec"
)

// DetachedSpawner starts the server in a new console window via
// `cmd /c start`, matching how a double-clicked launcher is expected to
// behave on Windows.
type DetachedSpawner struct{}

// NewDetachedSpawner creates the platform spawner
func NewDetachedSpawner() *DetachedSpawner {
	return &DetachedSpawner{}
}

// Spawn opens a new console that activates the venv and runs the server
func (s *DetachedSpawner) Spawn(spec ServerSpec) (int, error) {
	inner := fmt.Sprintf(`cd /d "%s" && call "%s" && %s`, spec.BackendDir, spec.ActivatePath, spec.Command)

	// #nosec G204 — the command line is assembled from validated paths and the configured server command
	cmd := exec.Command("cmd", "/c", "start", "stringup API", "cmd", "/k", inner)
	cmd.Env = append(os.Environ(), spec.ExtraEnv...)

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start server console: %w", err)
	}

	// The reported PID is the intermediate cmd; the server itself lives in
	// the new console and cannot be tracked from here.
	pid := cmd.Process.Pid

	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("server console started (pid %d) but release failed: %w", pid, err)
	}

	return pid, nil
}
