package diag

import "time"

// Manifest describes the contents of a diagnostic package
type Manifest struct {
	Timestamp       string         `json:"timestamp"`
	Host            string         `json:"host"`
	StringupVersion string         `json:"stringup_version"`
	Files           []ManifestFile `json:"files"`
}

// ManifestFile represents a file in the diagnostic package
type ManifestFile struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	SHA256    string `json:"sha256"`
}

// Config configures diagnostic collection
type Config struct {
	StateDir      string
	ConfigPath    string
	OutputPath    string
	LogTailLines  int
	IncludeLogs   bool
	IncludeConfig bool
	IncludeStack  bool
	Version       string
}

// NewConfig creates a default diagnostic config
func NewConfig(stateDir, configPath, version string) *Config {
	return &Config{
		StateDir:      stateDir,
		ConfigPath:    configPath,
		OutputPath:    generateOutputPath(),
		LogTailLines:  200,
		IncludeLogs:   true,
		IncludeConfig: true,
		IncludeStack:  true,
		Version:       version,
	}
}

func generateOutputPath() string {
	timestamp := time.Now().UTC().Format("20060102-150405")
	return "stringup-diag-" + timestamp + ".zip"
}
