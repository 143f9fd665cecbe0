package secrets

import (
	"path/filepath"
	"time"

	"stringup/internal/fsutil"
)

// StaffKeyName is the well-known secret holding the shop staff key the
// backend reads from the STAFF_KEY environment variable.
const StaffKeyName = "staff_key"

// SecretIndex tracks stored secrets metadata
type SecretIndex struct {
	Entries []SecretEntry `json:"entries"`
}

// SecretEntry represents metadata for a stored secret
type SecretEntry struct {
	Name        string    `json:"name"`
	LastRotated time.Time `json:"last_rotated"`
}

// SecretStoreConfig holds configuration for the secret store
type SecretStoreConfig struct {
	SecretsDir     string
	PassphraseFile string
}

// DefaultSecretStoreConfig returns the store configuration rooted in the
// state directory
func DefaultSecretStoreConfig() SecretStoreConfig {
	stateDir := fsutil.GetStateDir(fsutil.DefaultStateDir)
	return SecretStoreConfig{
		SecretsDir:     filepath.Join(stateDir, "secrets"),
		PassphraseFile: filepath.Join(stateDir, ".passphrase"),
	}
}
