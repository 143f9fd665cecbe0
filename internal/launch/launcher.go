package launch

import (
	"path/filepath"
	"time"

	"stringup/internal/browser"
	"stringup/internal/config"
	"stringup/internal/fsutil"
	"stringup/internal/logging"
	"stringup/internal/services"
)

const serverLogFileName = "server.log"

// Launcher executes the fixed four-step launch sequence and stops at the
// first failure. It owns no retries and no supervision of the spawned
// server.
type Launcher struct {
	cfg         config.Config
	stack       *services.StackManager
	spawner     Spawner
	opener      browser.Opener
	stateDir    string
	projectRoot string
	extraEnv    []string
	logger      *logging.Logger

	// sleep is swappable for tests; defaults to time.Sleep
	sleep func(time.Duration)
}

// NewLauncher creates a launcher over the given stack manager
func NewLauncher(cfg config.Config, stack *services.StackManager, spawner Spawner, opener browser.Opener, stateDir, projectRoot string, logger *logging.Logger) *Launcher {
	return &Launcher{
		cfg:         cfg,
		stack:       stack,
		spawner:     spawner,
		opener:      opener,
		stateDir:    stateDir,
		projectRoot: projectRoot,
		logger:      logger,
		sleep:       time.Sleep,
	}
}

// SetExtraEnv sets additional KEY=VALUE entries passed to the spawned
// server (staff key injection)
func (l *Launcher) SetExtraEnv(env []string) {
	l.extraEnv = env
}

// BackendDir resolves the configured backend directory against the
// project root
func (l *Launcher) BackendDir() string {
	dir := l.cfg.Backend.Dir
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(l.projectRoot, dir)
}

// Run executes the launch sequence: runtime check, compose up, detached
// server spawn, docs open. The first failure terminates the run.
func (l *Launcher) Run() Result {
	l.logger.Info("launch.start", "Starting launch sequence", map[string]interface{}{
		"compose_file": l.stack.ComposeFile(),
		"backend_dir":  l.BackendDir(),
	})

	// Step 1: container runtime availability
	if !l.stack.Runtime().IsRunning() {
		l.logger.Error("launch.runtime.unavailable", "Container runtime unavailable", map[string]interface{}{
			"runtime": l.stack.Runtime().Binary(),
		})
		return failed(StepRuntimeCheck, FailureRuntimeUnavailable, l.stack.Runtime().Binary())
	}

	// Step 2: compose up, detached
	if err := l.stack.Up(); err != nil {
		return failed(StepComposeUp, FailureComposeUp, err.Error())
	}

	// Step 3: detached server spawn, gated on backend dir and venv artifact
	backendDir := l.BackendDir()
	if !fsutil.DirExists(backendDir) {
		l.logger.Error("launch.backend.missing", "Backend directory not found", map[string]interface{}{
			"path": backendDir,
		})
		return failed(StepStartServer, FailureBackendDirMissing, backendDir)
	}

	activatePath := ActivationArtifact(backendDir, l.cfg.Backend.VenvDir)
	if !fsutil.FileExists(activatePath) {
		l.logger.Error("launch.venv.missing", "Activation artifact not found", map[string]interface{}{
			"path": activatePath,
		})
		return failed(StepStartServer, FailureActivateMissing, activatePath)
	}

	spec := ServerSpec{
		BackendDir:   backendDir,
		ActivatePath: activatePath,
		Command:      ServerCommand(l.cfg.Backend),
		ExtraEnv:     l.extraEnv,
		LogPath:      filepath.Join(l.stateDir, serverLogFileName),
	}

	pid, err := l.spawner.Spawn(spec)
	if err != nil {
		l.logger.Error("launch.spawn.error", "Failed to spawn server", map[string]interface{}{
			"error": err.Error(),
		})
		return failed(StepStartServer, FailureSpawn, err.Error())
	}

	docsURL := DocsURL(l.cfg.Backend, l.cfg.Browser)

	l.logger.Info("launch.server.spawned", "API server spawned", map[string]interface{}{
		"pid":     pid,
		"command": spec.Command,
	})

	l.recordState(pid, docsURL, backendDir)

	// Step 4: fixed delay, then open the docs endpoint. The delay is a
	// best-effort heuristic, not a readiness check.
	if l.cfg.Browser.Open {
		l.sleep(time.Duration(l.cfg.Browser.DelaySeconds) * time.Second)

		if err := l.opener.Open(docsURL); err != nil {
			// Browser failures don't abort: the server is already up.
			l.logger.Warn("launch.browser.error", "Failed to open docs URL", map[string]interface{}{
				"url":   docsURL,
				"error": err.Error(),
			})
		} else {
			l.logger.Info("launch.browser.opened", "Docs URL opened", map[string]interface{}{
				"url": docsURL,
			})
		}
	}

	l.logger.Info("launch.complete", "Launch sequence complete", map[string]interface{}{
		"pid":      pid,
		"docs_url": docsURL,
	})

	return Result{
		Failure:   FailureNone,
		ServerPID: pid,
		DocsURL:   docsURL,
	}
}

func (l *Launcher) recordState(pid int, docsURL, backendDir string) {
	stateManager := NewStateManager(l.stateDir, l.logger)
	state := State{
		ServerPID:   pid,
		DocsURL:     docsURL,
		ComposeFile: l.stack.ComposeFile(),
		BackendDir:  backendDir,
		StartedAt:   timeNow(),
	}
	if err := stateManager.Save(state); err != nil {
		l.logger.Warn("launch.state.save_failed", "Failed to save launch state", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// timeNow is swappable for tests
var timeNow = func() time.Time { return time.Now().UTC() }
