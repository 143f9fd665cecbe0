package services

import (
	"fmt"
	"os"
	"path/filepath"

	"stringup/internal/logging"
)

const composeManifestFile = "docker-compose.yaml"

// ServiceStatus represents the status of a compose service
type ServiceStatus struct {
	Name    string       `json:"name"`
	State   string       `json:"state"`  // running, stopped, unknown
	Health  HealthStatus `json:"health"` // green, yellow, red
	Message string       `json:"message,omitempty"`
}

// StackManager drives the compose manifest for the declared services
type StackManager struct {
	runtime     Runtime
	logger      *logging.Logger
	composeFile string
	services    []string
}

// NewStackManager creates a stack manager for the given compose
// manifest, detecting the runtime from the configured preference
func NewStackManager(composeFile, containerRuntime string, logger *logging.Logger) (*StackManager, error) {
	runtime, err := DetectRuntime(containerRuntime)
	if err != nil {
		return nil, fmt.Errorf("failed to detect container runtime: %w", err)
	}

	return NewStackManagerWithRuntime(composeFile, runtime, logger), nil
}

// NewStackManagerWithRuntime creates a stack manager with an explicit runtime;
// used by callers that already ran runtime detection and by tests.
func NewStackManagerWithRuntime(composeFile string, runtime Runtime, logger *logging.Logger) *StackManager {
	return &StackManager{
		runtime:     runtime,
		logger:      logger,
		composeFile: composeFile,
		services:    []string{DBServiceName},
	}
}

// Runtime returns the container runtime backing this stack
func (m *StackManager) Runtime() Runtime {
	return m.runtime
}

// ComposeFile returns the resolved compose manifest path
func (m *StackManager) ComposeFile() string {
	return m.composeFile
}

// ListServices returns the declared compose service names
func (m *StackManager) ListServices() []string {
	out := make([]string, len(m.services))
	copy(out, m.services)
	return out
}

// Up brings the declared services up in detached mode
func (m *StackManager) Up() error {
	m.logger.Info("stack.up", "Bringing compose services up", map[string]interface{}{
		"compose_file": m.composeFile,
		"services":     m.services,
	})

	if err := m.runtime.ComposeUp(m.composeFile, m.services...); err != nil {
		m.logger.Error("stack.up.error", "Compose up failed", map[string]interface{}{
			"compose_file": m.composeFile,
			"error":        err.Error(),
		})
		return fmt.Errorf("failed to bring stack up: %w", err)
	}

	m.logger.Info("stack.started", "Compose services started", map[string]interface{}{
		"services": m.services,
	})
	return nil
}

// Down stops and removes the declared services
func (m *StackManager) Down() error {
	m.logger.Info("stack.down", "Taking compose services down", map[string]interface{}{
		"compose_file": m.composeFile,
	})

	if err := m.runtime.ComposeDown(m.composeFile); err != nil {
		m.logger.Error("stack.down.error", "Compose down failed", map[string]interface{}{
			"compose_file": m.composeFile,
			"error":        err.Error(),
		})
		return fmt.Errorf("failed to take stack down: %w", err)
	}

	m.logger.Info("stack.stopped", "Compose services stopped", nil)
	return nil
}

// Status returns the status of a single compose service
func (m *StackManager) Status(service string) (ServiceStatus, error) {
	containerName := ContainerName(service)
	state, err := m.runtime.GetContainerStatus(containerName)
	if err != nil {
		return ServiceStatus{
			Name:    service,
			State:   "unknown",
			Health:  HealthRed,
			Message: err.Error(),
		}, nil
	}

	health := HealthRed
	if state == containerStatusRunning {
		health = HealthGreen
	}

	return ServiceStatus{
		Name:   service,
		State:  state,
		Health: health,
	}, nil
}

// StatusAll returns status of all declared services
func (m *StackManager) StatusAll() ([]ServiceStatus, error) {
	statuses := make([]ServiceStatus, 0, len(m.services))

	for _, service := range m.services {
		status, err := m.Status(service)
		if err != nil {
			m.logger.Warn("stack.status.error", "Failed to get service status", map[string]interface{}{
				"service": service,
				"error":   err.Error(),
			})
			continue
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}

// Logs retrieves logs from a compose service container
func (m *StackManager) Logs(service string, tail int) (string, error) {
	containerName := ContainerName(service)
	logs, err := m.runtime.GetContainerLogs(containerName, tail)
	if err != nil {
		return "", fmt.Errorf("failed to get logs for %s: %w", service, err)
	}
	return logs, nil
}

// ResolveComposeFile locates the compose manifest: STRINGUP_COMPOSE_FILE,
// then the executable directory, then the working directory.
func ResolveComposeFile() string {
	if envFile := os.Getenv("STRINGUP_COMPOSE_FILE"); envFile != "" {
		if abs, err := filepath.Abs(envFile); err == nil {
			if fileExists(abs) {
				return abs
			}
		}
	}

	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		candidates := []string{
			filepath.Join(exeDir, composeManifestFile),
			filepath.Join(exeDir, "..", "share", "stringup", composeManifestFile),
		}

		for _, candidate := range candidates {
			if abs, err := filepath.Abs(candidate); err == nil && fileExists(abs) {
				return abs
			}
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, composeManifestFile)
		if fileExists(candidate) {
			return candidate
		}
	}

	// Fallback to relative path; downstream code will surface a detailed error
	return composeManifestFile
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
