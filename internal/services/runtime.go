package services

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const (
	// Container status constants
	containerStatusRunning = "running"
)

// Runtime represents a container runtime (Docker or Podman)
type Runtime interface {
	// Binary returns the CLI binary name backing this runtime
	Binary() string
	// IsRunning checks if the runtime is available
	IsRunning() bool
	// ComposeUp starts services defined in a compose file
	ComposeUp(composeFile string, services ...string) error
	// ComposeDown stops and removes services
	ComposeDown(composeFile string) error
	// GetContainerStatus returns the status of a container
	GetContainerStatus(name string) (string, error)
	// GetContainerLogs returns logs from a container
	GetContainerLogs(name string, tail int) (string, error)
	// IsContainerRunning checks if a container is running
	IsContainerRunning(name string) (bool, error)
}

// GenericRuntime implements Runtime for Docker or Podman
type GenericRuntime struct {
	binary string // "docker" or "podman"
}

// NewGenericRuntime creates a new generic runtime with the specified binary
func NewGenericRuntime(binary string) *GenericRuntime {
	return &GenericRuntime{binary: binary}
}

// Binary returns the runtime CLI binary name
func (r *GenericRuntime) Binary() string {
	return r.binary
}

// IsRunning checks if the runtime daemon is running
func (r *GenericRuntime) IsRunning() bool {
	cmd := exec.Command(r.binary, "info")
	return cmd.Run() == nil
}

// ComposeUp starts services using compose
func (r *GenericRuntime) ComposeUp(composeFile string, services ...string) error {
	args := []string{"compose", "-f", composeFile, "up", "-d"}
	args = append(args, services...)

	// #nosec G204 — compose arguments originate from the resolved manifest and declared service names.
	cmd := exec.Command(r.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s compose up failed: %w, stderr: %s", r.binary, err, stderr.String())
	}
	return nil
}

// ComposeDown stops and removes services
func (r *GenericRuntime) ComposeDown(composeFile string) error {
	// #nosec G204 — compose arguments originate from the resolved manifest.
	cmd := exec.Command(r.binary, "compose", "-f", composeFile, "down")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s compose down failed: %w, stderr: %s", r.binary, err, stderr.String())
	}
	return nil
}

// GetContainerStatus returns the status of a container
func (r *GenericRuntime) GetContainerStatus(name string) (string, error) {
	// #nosec G204 — container names originate from predefined service IDs.
	cmd := exec.Command(r.binary, "inspect", "-f", "{{.State.Status}}", name)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to get %s container status: %w, stderr: %s", r.binary, err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// GetContainerLogs returns logs from a container
func (r *GenericRuntime) GetContainerLogs(name string, tail int) (string, error) {
	args := []string{"logs"}
	if tail > 0 {
		args = append(args, "--tail", fmt.Sprintf("%d", tail))
	}
	args = append(args, name)

	// #nosec G204 — container identifiers are validated before invocation
	cmd := exec.Command(r.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to get %s logs: %w, stderr: %s", r.binary, err, stderr.String())
	}

	return stdout.String(), nil
}

// IsContainerRunning checks if a container is running
func (r *GenericRuntime) IsContainerRunning(name string) (bool, error) {
	status, err := r.GetContainerStatus(name)
	if err != nil {
		return false, nil
	}
	return status == containerStatusRunning, nil
}

// DockerRuntime implements Runtime for Docker
type DockerRuntime struct {
	*GenericRuntime
}

// NewDockerRuntime creates a new Docker runtime
func NewDockerRuntime() *DockerRuntime {
	return &DockerRuntime{
		GenericRuntime: NewGenericRuntime("docker"),
	}
}

// PodmanRuntime implements Runtime for Podman (best-effort support)
type PodmanRuntime struct {
	*GenericRuntime
}

// NewPodmanRuntime creates a new Podman runtime
func NewPodmanRuntime() *PodmanRuntime {
	return &PodmanRuntime{
		GenericRuntime: NewGenericRuntime("podman"),
	}
}

// DetectRuntime resolves the container runtime. STRINGUP_RUNTIME wins
// over the configured container_runtime value; "auto" (or nothing at
// all) probes docker first, then podman.
func DetectRuntime(configured string) (Runtime, error) {
	return detectRuntimeFrom(resolveDesiredRuntime(configured), NewDockerRuntime(), NewPodmanRuntime())
}

// resolveDesiredRuntime picks the requested runtime name: the
// STRINGUP_RUNTIME environment variable, then the config value
func resolveDesiredRuntime(configured string) string {
	if env := strings.ToLower(strings.TrimSpace(os.Getenv("STRINGUP_RUNTIME"))); env != "" {
		return env
	}
	return strings.ToLower(strings.TrimSpace(configured))
}

func detectRuntimeFrom(desired string, docker, podman Runtime) (Runtime, error) {
	switch desired {
	case "docker":
		if docker.IsRunning() {
			return docker, nil
		}
		return nil, fmt.Errorf("docker requested but not available")
	case "podman":
		if podman.IsRunning() {
			return podman, nil
		}
		return nil, fmt.Errorf("podman requested but not available")
	case "", "auto":
		if docker.IsRunning() {
			return docker, nil
		}
		if podman.IsRunning() {
			return podman, nil
		}
	default:
		return nil, fmt.Errorf("unknown container runtime '%s' (expected docker|podman|auto)", desired)
	}

	return nil, fmt.Errorf("no container runtime detected (Docker or Podman required)")
}
