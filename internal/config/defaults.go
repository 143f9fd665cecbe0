package config

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		ContainerRuntime: "docker",
		Backend: BackendConfig{
			Dir:     "backend",
			VenvDir: "venv",
			App:     "app.main:app",
			Host:    "0.0.0.0",
			Port:    8000,
			Reload:  true,
		},
		Browser: BrowserConfig{
			Open:         true,
			DocsPath:     "/docs",
			DelaySeconds: 3,
		},
		Health: HealthConfig{
			URL:               "http://127.0.0.1:8000/health",
			Retries:           5,
			RetryDelaySeconds: 2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
