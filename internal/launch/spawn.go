package launch

// ServerSpec describes the detached API server process to spawn
type ServerSpec struct {
	// BackendDir is the working directory for the server process
	BackendDir string
	// ActivatePath is the venv activation artifact to source first
	ActivatePath string
	// Command is the server start command (uvicorn invocation)
	Command string
	// ExtraEnv holds additional KEY=VALUE entries appended to the
	// launcher's environment
	ExtraEnv []string
	// LogPath receives the server's combined output on platforms where
	// the process runs without its own console
	LogPath string
}

// Spawner starts a detached server process. The spawned process is not
// supervised; ownership passes to the OS once Spawn returns.
type Spawner interface {
	Spawn(spec ServerSpec) (pid int, err error)
}
