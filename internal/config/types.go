package config

// Config represents the complete stringup configuration
type Config struct {
	ContainerRuntime string        `yaml:"container_runtime"`
	Backend          BackendConfig `yaml:"backend"`
	Browser          BrowserConfig `yaml:"browser"`
	Health           HealthConfig  `yaml:"health"`
	Logging          LoggingConfig `yaml:"logging"`
}

// BackendConfig describes the API server process the launcher spawns
type BackendConfig struct {
	Dir     string `yaml:"dir"`      // backend directory, relative to project root or absolute
	VenvDir string `yaml:"venv_dir"` // virtual environment directory under the backend dir
	App     string `yaml:"app"`      // ASGI app reference passed to uvicorn
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Reload  bool   `yaml:"reload"`
}

// BrowserConfig controls the post-launch docs tab
type BrowserConfig struct {
	Open         bool   `yaml:"open"`
	DocsPath     string `yaml:"docs_path"`
	DelaySeconds int    `yaml:"delay_seconds"`
}

// HealthConfig controls API health probing
type HealthConfig struct {
	URL               string `yaml:"url"`
	Retries           int    `yaml:"retries"`
	RetryDelaySeconds int    `yaml:"retry_delay_seconds"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return e.Path + ": " + e.Message
}
