package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"stringup/internal/logging"
)

func TestGetStateDir(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultDir string
		wantEnv    bool
	}{
		{
			name:       "uses environment variable",
			envValue:   "/custom/state",
			defaultDir: "/default/state",
			wantEnv:    true,
		},
		{
			name:       "uses default when env not set",
			envValue:   "",
			defaultDir: "/default/state",
			wantEnv:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STRINGUP_STATE_DIR", tt.envValue)

			got := GetStateDir(tt.defaultDir)

			if tt.wantEnv && got == tt.defaultDir {
				t.Errorf("GetStateDir() should use env value, got default %v", got)
			}

			if !tt.wantEnv && got != tt.defaultDir {
				t.Errorf("GetStateDir() = %v, want %v", got, tt.defaultDir)
			}
		})
	}
}

func TestGetStateDir_ResolvesRelativeEnv(t *testing.T) {
	t.Setenv("STRINGUP_STATE_DIR", "relative/state")

	got := GetStateDir("/default/state")
	if !filepath.IsAbs(got) {
		t.Errorf("GetStateDir() = %v, want absolute path", got)
	}
}

func TestEnsureStateDirectory(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "creates new directory",
			setup: func(t *testing.T) string {
				t.Helper()
				return filepath.Join(t.TempDir(), "newdir")
			},
			wantErr: false,
		},
		{
			name: "succeeds if directory exists",
			setup: func(t *testing.T) string {
				t.Helper()
				dir := filepath.Join(t.TempDir(), "existingdir")
				if err := os.MkdirAll(dir, 0o755); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
				return dir
			},
			wantErr: false,
		},
		{
			name: "creates nested directories",
			setup: func(t *testing.T) string {
				t.Helper()
				return filepath.Join(t.TempDir(), "a", "b", "c")
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)

			err := EnsureStateDirectory(path)

			if (err != nil) != tt.wantErr {
				t.Errorf("EnsureStateDirectory() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				// Verify directory was created
				info, err := os.Stat(path)
				if err != nil {
					t.Errorf("directory not created: %v", err)
					return
				}
				if !info.IsDir() {
					t.Errorf("path is not a directory")
				}
			}
		})
	}
}

func TestDirExists(t *testing.T) {
	tmpDir := t.TempDir()

	if !DirExists(tmpDir) {
		t.Error("DirExists() should be true for an existing directory")
	}
	if DirExists(filepath.Join(tmpDir, "missing")) {
		t.Error("DirExists() should be false for a missing path")
	}

	filePath := filepath.Join(tmpDir, "file.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0o600); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if DirExists(filePath) {
		t.Error("DirExists() should be false for a regular file")
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	filePath := filepath.Join(tmpDir, "file.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0o600); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if !FileExists(filePath) {
		t.Error("FileExists() should be true for an existing file")
	}
	if FileExists(filepath.Join(tmpDir, "missing.txt")) {
		t.Error("FileExists() should be false for a missing path")
	}
	if FileExists(tmpDir) {
		t.Error("FileExists() should be false for a directory")
	}
}

func TestAtomicWriteFile(t *testing.T) {
	logger := logging.NewLogger(logging.LevelWarn)

	tests := []struct {
		name    string
		setup   func(t *testing.T) (string, []byte)
		wantErr bool
	}{
		{
			name: "writes new file atomically",
			setup: func(t *testing.T) (string, []byte) {
				t.Helper()
				path := filepath.Join(t.TempDir(), "test.txt")
				return path, []byte("test content")
			},
			wantErr: false,
		},
		{
			name: "overwrites existing file",
			setup: func(t *testing.T) (string, []byte) {
				t.Helper()
				path := filepath.Join(t.TempDir(), "existing.txt")
				_ = os.WriteFile(path, []byte("old content"), 0o600)
				return path, []byte("new content")
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, data := tt.setup(t)

			err := AtomicWriteFile(path, data, DefaultFilePermissions, logger)

			if (err != nil) != tt.wantErr {
				t.Errorf("AtomicWriteFile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				// Verify file contents
				got, err := os.ReadFile(path)
				if err != nil {
					t.Errorf("failed to read file: %v", err)
					return
				}
				if string(got) != string(data) {
					t.Errorf("file content = %q, want %q", got, data)
				}

				// Verify temp file was cleaned up
				tmpPath := path + ".tmp"
				if _, err := os.Stat(tmpPath); !os.IsNotExist(err) {
					t.Errorf("temp file still exists: %s", tmpPath)
				}
			}
		})
	}
}

func TestCloseWithError(t *testing.T) {
	logger := logging.NewLogger(logging.LevelWarn)

	tests := []struct {
		name     string
		closer   func() error
		hasError bool
	}{
		{
			name:     "successful close",
			closer:   func() error { return nil },
			hasError: false,
		},
		{
			name:     "close with error",
			closer:   func() error { return os.ErrClosed },
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Should not panic
			CloseWithError(tt.closer, logger, "test_resource")
			CloseWithError(tt.closer, nil, "test_resource")
		})
	}
}
