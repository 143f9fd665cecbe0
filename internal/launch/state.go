package launch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stringup/internal/fsutil"
	"stringup/internal/logging"
)

const (
	// StateFileName is the name of the launch state file
	StateFileName = "launch_state.json"
)

// State records the most recent spawn so status commands can report the
// detached server
type State struct {
	ServerPID   int       `json:"server_pid"`
	DocsURL     string    `json:"docs_url"`
	ComposeFile string    `json:"compose_file"`
	BackendDir  string    `json:"backend_dir"`
	StartedAt   time.Time `json:"started_at"`
}

// StateManager persists the launch state in the state directory
type StateManager struct {
	stateDir string
	logger   *logging.Logger
}

// NewStateManager creates a launch state manager
func NewStateManager(stateDir string, logger *logging.Logger) *StateManager {
	return &StateManager{
		stateDir: stateDir,
		logger:   logger,
	}
}

func (m *StateManager) statePath() string {
	return filepath.Join(m.stateDir, StateFileName)
}

// Load reads the launch state from disk; os.ErrNotExist when never launched
func (m *StateManager) Load() (State, error) {
	data, err := os.ReadFile(m.statePath()) // #nosec G304 -- path is under the controlled state dir
	if err != nil {
		return State{}, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("failed to unmarshal launch state: %w", err)
	}

	return state, nil
}

// Save writes the launch state atomically
func (m *StateManager) Save(state State) error {
	if err := fsutil.EnsureStateDirectory(m.stateDir); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal launch state: %w", err)
	}

	if err := fsutil.AtomicWriteFile(m.statePath(), data, fsutil.DefaultFilePermissions, m.logger); err != nil {
		return err
	}

	m.logger.Debug("launch.state.saved", "Launch state saved", map[string]interface{}{
		"pid": state.ServerPID,
	})

	return nil
}

// ServerRunning reports whether the recorded server PID still refers to a
// live process. Best-effort: on unix FindProcess always succeeds, so a
// zero signal probe is used.
func (m *StateManager) ServerRunning() (State, bool) {
	state, err := m.Load()
	if err != nil || state.ServerPID <= 0 {
		return state, false
	}

	proc, err := os.FindProcess(state.ServerPID)
	if err != nil {
		return state, false
	}

	return state, signalAlive(proc)
}
