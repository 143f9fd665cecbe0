package configdir

import (
	"path/filepath"
	"testing"
)

func TestConfigDir_Default(t *testing.T) {
	t.Setenv("STRINGUP_CONFIG_DIR", "")

	if got := ConfigDir(); got != "/etc/stringup" {
		t.Errorf("ConfigDir() = %q, want /etc/stringup", got)
	}
}

func TestConfigDir_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("STRINGUP_CONFIG_DIR", tmpDir)

	if got := ConfigDir(); got != tmpDir {
		t.Errorf("ConfigDir() = %q, want %q", got, tmpDir)
	}
}

func TestConfigDir_ResolvesRelativeEnv(t *testing.T) {
	t.Setenv("STRINGUP_CONFIG_DIR", "relative/config")

	got := ConfigDir()
	if !filepath.IsAbs(got) {
		t.Errorf("ConfigDir() = %q, want an absolute path", got)
	}
}
