package diag

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"stringup/internal/logging"
	"stringup/internal/services"
)

// Packager creates diagnostic ZIP packages
type Packager struct {
	config    *Config
	collector *Collector
	logger    *logging.Logger
}

// NewPackager creates a diagnostic packager. The stack manager may be
// nil when no container runtime is available.
func NewPackager(config *Config, stack *services.StackManager, logger *logging.Logger) *Packager {
	return &Packager{
		config:    config,
		collector: NewCollector(config, stack, logger),
		logger:    logger,
	}
}

// CreatePackage collects all artifacts and writes the diagnostic ZIP.
// Individual collection failures produce a partial package, not an error.
func (p *Packager) CreatePackage() (string, error) {
	p.logger.Info("diag.package.start", "Creating diagnostic package", map[string]interface{}{
		"output": p.config.OutputPath,
	})

	allFiles := make(map[string][]byte)

	collections := []struct {
		name    string
		collect func() (map[string][]byte, error)
	}{
		{"logs", p.collector.CollectLogs},
		{"config", p.collector.CollectConfig},
		{"state", p.collector.CollectState},
		{"stack", p.collector.CollectStackLogs},
		{"sysinfo", p.collector.CollectSystemInfo},
	}

	for _, c := range collections {
		files, err := c.collect()
		if err != nil {
			p.logger.Error("diag.package.collect_error", "Collection failed, continuing with partial package", map[string]interface{}{
				"collection": c.name,
				"error":      err.Error(),
			})
		}
		for path, content := range files {
			allFiles[path] = content
		}
	}

	manifest, err := p.createManifest(allFiles)
	if err != nil {
		return "", fmt.Errorf("failed to create manifest: %w", err)
	}

	manifestJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}
	allFiles["diag_manifest.json"] = manifestJSON

	if err := p.createZIP(allFiles); err != nil {
		return "", fmt.Errorf("failed to create ZIP: %w", err)
	}

	p.logger.Info("diag.package.complete", "Diagnostic package created", map[string]interface{}{
		"output":     p.config.OutputPath,
		"file_count": len(allFiles),
	})

	return p.config.OutputPath, nil
}

// createManifest generates the diagnostic manifest
func (p *Packager) createManifest(files map[string][]byte) (*Manifest, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	manifest := &Manifest{
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Host:            hostname,
		StringupVersion: p.config.Version,
		Files:           make([]ManifestFile, 0, len(files)),
	}

	for path, content := range files {
		manifest.Files = append(manifest.Files, ManifestFile{
			Path:      path,
			SizeBytes: int64(len(content)),
			SHA256:    CalculateSHA256(content),
		})
	}

	return manifest, nil
}

// createZIP creates the ZIP archive
func (p *Packager) createZIP(files map[string][]byte) error {
	zipFile, err := os.Create(p.config.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := zipFile.Close(); closeErr != nil {
			p.logger.Warn("diag.package.zipfile.close_error", "Failed to close ZIP file", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	zipWriter := zip.NewWriter(zipFile)
	defer func() {
		if closeErr := zipWriter.Close(); closeErr != nil {
			p.logger.Error("diag.package.zip.close_error", "Failed to close ZIP writer", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	for path, content := range files {
		writer, err := zipWriter.Create(path)
		if err != nil {
			p.logger.Warn("diag.package.zip.file_error", "Failed to add file to ZIP", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}

		if _, err := writer.Write(content); err != nil {
			p.logger.Warn("diag.package.zip.write_error", "Failed to write file to ZIP", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}
	}

	return nil
}
