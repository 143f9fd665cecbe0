package launch

import "fmt"

// Step identifies a stage of the launch sequence
type Step string

const (
	// StepRuntimeCheck verifies the container runtime is available
	StepRuntimeCheck Step = "runtime_check"
	// StepComposeUp brings the declared compose services up
	StepComposeUp Step = "compose_up"
	// StepStartServer spawns the detached API server
	StepStartServer Step = "start_server"
	// StepOpenDocs opens the documentation endpoint in the browser
	StepOpenDocs Step = "open_docs"
)

// Failure enumerates the launch failure conditions. Every failure is
// terminal; the sequence never retries.
type Failure string

const (
	// FailureNone indicates the sequence completed
	FailureNone Failure = ""
	// FailureRuntimeUnavailable indicates the container runtime is missing or not running
	FailureRuntimeUnavailable Failure = "runtime_unavailable"
	// FailureComposeUp indicates compose up returned a non-zero exit
	FailureComposeUp Failure = "compose_up_failed"
	// FailureBackendDirMissing indicates the backend directory does not exist
	FailureBackendDirMissing Failure = "backend_dir_missing"
	// FailureActivateMissing indicates the venv activation artifact does not exist
	FailureActivateMissing Failure = "activation_artifact_missing"
	// FailureSpawn indicates the detached server process could not be started
	FailureSpawn Failure = "server_spawn_failed"
)

// Message returns the human-readable diagnostic for a failure
func (f Failure) Message() string {
	switch f {
	case FailureNone:
		return ""
	case FailureRuntimeUnavailable:
		return "Container runtime unavailable. Install Docker (or Podman) and make sure the daemon is running."
	case FailureComposeUp:
		return "Service startup failed. Check the compose manifest and the runtime logs."
	case FailureBackendDirMissing:
		return "Backend directory not found."
	case FailureActivateMissing:
		return "Virtual environment activation script not found. Create the venv before launching."
	case FailureSpawn:
		return "Failed to start the API server process."
	default:
		return string(f)
	}
}

// Result is the outcome of a launch run. Failure is FailureNone on success.
type Result struct {
	Failure   Failure `json:"failure"`
	Step      Step    `json:"step,omitempty"`
	Detail    string  `json:"detail,omitempty"`
	ServerPID int     `json:"server_pid,omitempty"`
	DocsURL   string  `json:"docs_url,omitempty"`
}

// OK reports whether the launch sequence completed
func (r Result) OK() bool {
	return r.Failure == FailureNone
}

func failed(step Step, failure Failure, detail string) Result {
	return Result{
		Failure: failure,
		Step:    step,
		Detail:  detail,
	}
}

// Error renders the result as an error string; only meaningful when !OK()
func (r Result) Error() string {
	if r.OK() {
		return ""
	}
	if r.Detail == "" {
		return fmt.Sprintf("%s: %s", r.Step, r.Failure.Message())
	}
	return fmt.Sprintf("%s: %s (%s)", r.Step, r.Failure.Message(), r.Detail)
}
