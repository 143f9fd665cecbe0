package config

import (
	"fmt"
	"strings"
)

const (
	// RuntimeDocker identifies the Docker container runtime option.
	RuntimeDocker = "docker"
	// RuntimePodman identifies the Podman container runtime option.
	RuntimePodman = "podman"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateContainerRuntime()...)
	errors = append(errors, c.validateBackend()...)
	errors = append(errors, c.validateBrowser()...)
	errors = append(errors, c.validateHealth()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateContainerRuntime() []ValidationError {
	if c.ContainerRuntime == RuntimeDocker || c.ContainerRuntime == RuntimePodman {
		return nil
	}

	return []ValidationError{{
		Path:    "container_runtime",
		Message: fmt.Sprintf("must be '%s' or '%s', got '%s'", RuntimeDocker, RuntimePodman, c.ContainerRuntime),
	}}
}

func (c *Config) validateBackend() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Backend.Dir) == "" {
		errors = append(errors, ValidationError{
			Path:    "backend.dir",
			Message: "must not be empty",
		})
	}

	if strings.TrimSpace(c.Backend.VenvDir) == "" {
		errors = append(errors, ValidationError{
			Path:    "backend.venv_dir",
			Message: "must not be empty",
		})
	}

	if strings.TrimSpace(c.Backend.App) == "" {
		errors = append(errors, ValidationError{
			Path:    "backend.app",
			Message: "must not be empty",
		})
	}

	if c.Backend.Port < 1 || c.Backend.Port > 65535 {
		errors = append(errors, ValidationError{
			Path:    "backend.port",
			Message: fmt.Sprintf("must be between 1 and 65535, got %d", c.Backend.Port),
		})
	}

	return errors
}

func (c *Config) validateBrowser() []ValidationError {
	var errors []ValidationError

	if c.Browser.DelaySeconds < 0 {
		errors = append(errors, ValidationError{
			Path:    "browser.delay_seconds",
			Message: fmt.Sprintf("must be non-negative, got %d", c.Browser.DelaySeconds),
		})
	}

	if !strings.HasPrefix(c.Browser.DocsPath, "/") {
		errors = append(errors, ValidationError{
			Path:    "browser.docs_path",
			Message: fmt.Sprintf("must start with '/', got '%s'", c.Browser.DocsPath),
		})
	}

	return errors
}

func (c *Config) validateHealth() []ValidationError {
	var errors []ValidationError

	if !strings.HasPrefix(c.Health.URL, "http://") && !strings.HasPrefix(c.Health.URL, "https://") {
		errors = append(errors, ValidationError{
			Path:    "health.url",
			Message: fmt.Sprintf("must be an http(s) URL, got '%s'", c.Health.URL),
		})
	}

	if c.Health.Retries < 1 {
		errors = append(errors, ValidationError{
			Path:    "health.retries",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Health.Retries),
		})
	}

	if c.Health.RetryDelaySeconds < 0 {
		errors = append(errors, ValidationError{
			Path:    "health.retry_delay_seconds",
			Message: fmt.Sprintf("must be non-negative, got %d", c.Health.RetryDelaySeconds),
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, c.Logging.Level) {
		errors = append(errors, ValidationError{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got '%s'", validLevels, c.Logging.Level),
		})
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, c.Logging.Format) {
		errors = append(errors, ValidationError{
			Path:    "logging.format",
			Message: fmt.Sprintf("must be one of %v, got '%s'", validFormats, c.Logging.Format),
		})
	}

	return errors
}

// contains checks if a string is in a slice
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
