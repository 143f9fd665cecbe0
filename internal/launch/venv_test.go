package launch

import (
	"path/filepath"
	"testing"

	"stringup/internal/config"
)

func TestActivationArtifactFor(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		expected string
	}{
		{
			name:     "linux",
			goos:     "linux",
			expected: filepath.Join("/srv/backend", "venv", "bin", "activate"),
		},
		{
			name:     "darwin",
			goos:     "darwin",
			expected: filepath.Join("/srv/backend", "venv", "bin", "activate"),
		},
		{
			name:     "windows",
			goos:     "windows",
			expected: filepath.Join("/srv/backend", "venv", "Scripts", "activate.bat"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := activationArtifactFor(tt.goos, "/srv/backend", "venv")
			if got != tt.expected {
				t.Errorf("activationArtifactFor(%s) = %q, want %q", tt.goos, got, tt.expected)
			}
		})
	}
}

func TestServerCommand(t *testing.T) {
	backend := config.BackendConfig{
		App:    "app.main:app",
		Host:   "0.0.0.0",
		Port:   8000,
		Reload: true,
	}

	got := ServerCommand(backend)
	want := "uvicorn app.main:app --host 0.0.0.0 --port 8000 --reload"
	if got != want {
		t.Errorf("ServerCommand() = %q, want %q", got, want)
	}

	backend.Reload = false
	got = ServerCommand(backend)
	want = "uvicorn app.main:app --host 0.0.0.0 --port 8000"
	if got != want {
		t.Errorf("ServerCommand() without reload = %q, want %q", got, want)
	}
}

func TestDocsURL(t *testing.T) {
	backend := config.BackendConfig{Host: "0.0.0.0", Port: 8000}
	browser := config.BrowserConfig{DocsPath: "/docs"}

	// The browser always targets loopback, regardless of the bind host
	got := DocsURL(backend, browser)
	if got != "http://127.0.0.1:8000/docs" {
		t.Errorf("DocsURL() = %q, want http://127.0.0.1:8000/docs", got)
	}

	backend.Port = 9000
	browser.DocsPath = "/redoc"
	got = DocsURL(backend, browser)
	if got != "http://127.0.0.1:9000/redoc" {
		t.Errorf("DocsURL() = %q, want http://127.0.0.1:9000/redoc", got)
	}
}
