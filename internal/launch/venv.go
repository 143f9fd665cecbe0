package launch

import (
	"fmt"
	"path/filepath"
	"runtime"

	"stringup/internal/config"
)

// ActivationArtifact returns the venv activation script path for the
// current platform: <venv>/bin/activate on unix-likes,
// <venv>\Scripts\activate.bat on Windows.
func ActivationArtifact(backendDir, venvDir string) string {
	return activationArtifactFor(runtime.GOOS, backendDir, venvDir)
}

func activationArtifactFor(goos, backendDir, venvDir string) string {
	if goos == "windows" {
		return filepath.Join(backendDir, venvDir, "Scripts", "activate.bat")
	}
	return filepath.Join(backendDir, venvDir, "bin", "activate")
}

// ServerCommand builds the uvicorn invocation for the backend config
func ServerCommand(backend config.BackendConfig) string {
	cmd := fmt.Sprintf("uvicorn %s --host %s --port %d", backend.App, backend.Host, backend.Port)
	if backend.Reload {
		cmd += " --reload"
	}
	return cmd
}

// DocsURL returns the local documentation address the browser is pointed
// at. The server binds all interfaces, the browser always targets loopback.
func DocsURL(backend config.BackendConfig, browser config.BrowserConfig) string {
	return fmt.Sprintf("http://127.0.0.1:%d%s", backend.Port, browser.DocsPath)
}
