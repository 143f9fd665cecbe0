package diag

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"stringup/internal/logging"
	"stringup/internal/services"
)

// Collector gathers diagnostic artifacts
type Collector struct {
	config   *Config
	stack    *services.StackManager
	redactor *Redactor
	logger   *logging.Logger
}

// NewCollector creates a diagnostic collector. The stack manager may be
// nil when no container runtime is available; stack logs are skipped then.
func NewCollector(config *Config, stack *services.StackManager, logger *logging.Logger) *Collector {
	return &Collector{
		config:   config,
		stack:    stack,
		redactor: NewRedactor(),
		logger:   logger,
	}
}

// CollectLogs gathers launcher and server log files from the state directory
func (c *Collector) CollectLogs() (map[string][]byte, error) {
	if !c.config.IncludeLogs {
		return nil, nil
	}

	files := make(map[string][]byte)

	if _, err := os.Stat(c.config.StateDir); os.IsNotExist(err) {
		c.logger.Warn("diag.collect.logs.missing", "State directory not found", map[string]interface{}{
			"path": c.config.StateDir,
		})
		return files, nil
	}

	err := filepath.Walk(c.config.StateDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			c.logger.Warn("diag.collect.logs.walk_error", "Error accessing file", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			return nil // Continue walking
		}

		if info.IsDir() {
			// Never descend into the secrets directory.
			if info.Name() == "secrets" {
				return filepath.SkipDir
			}
			return nil
		}

		switch filepath.Ext(path) {
		case ".log", ".jsonl":
		default:
			return nil
		}

		content, err := os.ReadFile(path) // #nosec G304 -- path comes from walking the state directory
		if err != nil {
			c.logger.Warn("diag.collect.logs.read_error", "Failed to read log file", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			return nil // Continue with other files
		}

		relPath, err := filepath.Rel(c.config.StateDir, path)
		if err != nil {
			relPath = filepath.Base(path)
		}

		files["logs/"+relPath] = []byte(c.redactor.Redact(string(content)))
		return nil
	})

	if err != nil {
		return files, fmt.Errorf("failed to walk state directory: %w", err)
	}

	c.logger.Info("diag.collect.logs.complete", "Log collection complete", map[string]interface{}{
		"file_count": len(files),
	})

	return files, nil
}

// CollectConfig gathers and redacts the configuration file
func (c *Collector) CollectConfig() (map[string][]byte, error) {
	if !c.config.IncludeConfig {
		return nil, nil
	}

	files := make(map[string][]byte)

	if _, err := os.Stat(c.config.ConfigPath); os.IsNotExist(err) {
		c.logger.Warn("diag.collect.config.missing", "Config file not found", map[string]interface{}{
			"path": c.config.ConfigPath,
		})
		return files, nil
	}

	content, err := os.ReadFile(c.config.ConfigPath) // #nosec G304 -- path is from diag config
	if err != nil {
		c.logger.Error("diag.collect.config.read_error", "Failed to read config file", map[string]interface{}{
			"path":  c.config.ConfigPath,
			"error": err.Error(),
		})
		return files, fmt.Errorf("failed to read config: %w", err)
	}

	files["config/config.yaml"] = []byte(c.redactor.Redact(string(content)))

	c.logger.Info("diag.collect.config.complete", "Config collection complete", map[string]interface{}{
		"redacted": true,
	})

	return files, nil
}

// CollectState gathers launch state and health report files
func (c *Collector) CollectState() (map[string][]byte, error) {
	files := make(map[string][]byte)

	candidates := []string{"launch_state.json", "health_report.json", "ui_state.json"}
	for _, name := range candidates {
		path := filepath.Join(c.config.StateDir, name)
		content, err := os.ReadFile(path) // #nosec G304 -- fixed file names under the state directory
		if err != nil {
			continue
		}
		files["state/"+name] = []byte(c.redactor.Redact(string(content)))
	}

	c.logger.Info("diag.collect.state.complete", "State collection complete", map[string]interface{}{
		"file_count": len(files),
	})

	return files, nil
}

// CollectStackLogs gathers container logs for the compose services
func (c *Collector) CollectStackLogs() (map[string][]byte, error) {
	if !c.config.IncludeStack || c.stack == nil {
		return nil, nil
	}

	files := make(map[string][]byte)

	for _, service := range c.stack.ListServices() {
		logs, err := c.stack.Logs(service, c.config.LogTailLines)
		if err != nil {
			c.logger.Warn("diag.collect.stack.logs_error", "Failed to get container logs", map[string]interface{}{
				"service": service,
				"error":   err.Error(),
			})
			continue
		}
		files["stack/"+service+".log"] = []byte(c.redactor.Redact(logs))
	}

	c.logger.Info("diag.collect.stack.complete", "Stack log collection complete", map[string]interface{}{
		"file_count": len(files),
	})

	return files, nil
}

// CollectSystemInfo gathers system and version information
func (c *Collector) CollectSystemInfo() (map[string][]byte, error) {
	files := make(map[string][]byte)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	containerRuntime := "none"
	if c.stack != nil {
		containerRuntime = c.stack.Runtime().Binary()
	}

	sysInfo := map[string]interface{}{
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
		"host":              hostname,
		"os":                runtime.GOOS,
		"arch":              runtime.GOARCH,
		"stringup_version":  c.config.Version,
		"container_runtime": containerRuntime,
	}

	sysInfoJSON, err := json.MarshalIndent(sysInfo, "", "  ")
	if err != nil {
		return files, fmt.Errorf("failed to marshal system info: %w", err)
	}

	files["system_info.json"] = sysInfoJSON

	c.logger.Info("diag.collect.sysinfo.complete", "System info collection complete", nil)

	return files, nil
}

// CalculateSHA256 computes SHA256 hash of data
func CalculateSHA256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// CalculateFileSHA256 computes SHA256 hash of a file
func CalculateFileSHA256(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 -- caller provides the path
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close() // Read-only operation, error can be safely ignored
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
