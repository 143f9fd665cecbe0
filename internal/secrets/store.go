package secrets

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stringup/internal/fsutil"
	"stringup/internal/logging"
)

const indexFileName = "secrets_index.json"

// SecretStore handles encrypted secret storage on disk. Values are
// sealed with NaCl secretbox under a key derived from a locally stored
// passphrase.
type SecretStore struct {
	config SecretStoreConfig
	key    *[KeySize]byte
	logger *logging.Logger
}

// NewSecretStore creates a secret store, generating the passphrase file
// on first use
func NewSecretStore(config SecretStoreConfig, logger *logging.Logger) (*SecretStore, error) {
	if err := os.MkdirAll(config.SecretsDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create secrets directory: %w", err)
	}

	passphrase, err := loadOrGeneratePassphrase(config.PassphraseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load passphrase: %w", err)
	}

	key := DeriveKey(passphrase)

	return &SecretStore{
		config: config,
		key:    &key,
		logger: logger,
	}, nil
}

// validateSecretName rejects names that would resolve outside the
// secrets directory
func validateSecretName(name string) error {
	if name == "" {
		return fmt.Errorf("secret name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid secret name: %s", name)
	}
	return nil
}

// StoreSecret encrypts and stores a secret under the given name
func (s *SecretStore) StoreSecret(name string, value []byte) error {
	if err := validateSecretName(name); err != nil {
		return err
	}

	encrypted, err := Encrypt(value, s.key)
	if err != nil {
		return fmt.Errorf("encryption failed: %w", err)
	}

	secretPath := filepath.Join(s.config.SecretsDir, name+".enc")
	if err := os.WriteFile(secretPath, encrypted, 0o600); err != nil {
		return fmt.Errorf("failed to write secret: %w", err)
	}

	if err := s.verifyPermissions(secretPath); err != nil {
		s.logger.Warn("secrets.permissions.invalid", "Secret file has incorrect permissions", map[string]interface{}{
			"path":  secretPath,
			"error": err.Error(),
		})
	}

	if err := s.updateIndex(name); err != nil {
		s.logger.Warn("secrets.index.update_failed", "Failed to update secrets index", map[string]interface{}{
			"name":  name,
			"error": err.Error(),
		})
	}

	s.logger.Info("secrets.stored", "Secret stored", map[string]interface{}{
		"name": name,
	})

	return nil
}

// RetrieveSecret reads and decrypts a stored secret
func (s *SecretStore) RetrieveSecret(name string) ([]byte, error) {
	if err := validateSecretName(name); err != nil {
		return nil, err
	}

	secretPath := filepath.Join(s.config.SecretsDir, name+".enc")

	encrypted, err := os.ReadFile(secretPath) // #nosec G304 -- path is constructed from controlled secrets dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("secret not found: %s", name)
		}
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	if err := s.verifyPermissions(secretPath); err != nil {
		s.logger.Warn("secrets.permissions.warning", "Secret file permissions should be 600", map[string]interface{}{
			"path": secretPath,
		})
	}

	decrypted, err := Decrypt(encrypted, s.key)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	s.logger.Debug("secrets.retrieved", "Secret retrieved", map[string]interface{}{
		"name": name,
	})

	return decrypted, nil
}

// DeleteSecret removes a stored secret
func (s *SecretStore) DeleteSecret(name string) error {
	if err := validateSecretName(name); err != nil {
		return err
	}

	secretPath := filepath.Join(s.config.SecretsDir, name+".enc")

	if err := os.Remove(secretPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("secret not found: %s", name)
		}
		return fmt.Errorf("failed to delete secret: %w", err)
	}

	if err := s.removeFromIndex(name); err != nil {
		s.logger.Warn("secrets.index.remove_failed", "Failed to remove from secrets index", map[string]interface{}{
			"name":  name,
			"error": err.Error(),
		})
	}

	s.logger.Info("secrets.deleted", "Secret deleted", map[string]interface{}{
		"name": name,
	})

	return nil
}

// ListSecrets returns the names of all stored secrets
func (s *SecretStore) ListSecrets() ([]string, error) {
	index, err := s.loadIndex()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(index.Entries))
	for i, entry := range index.Entries {
		names[i] = entry.Name
	}

	return names, nil
}

// StaffKeyEnv returns the STAFF_KEY environment entry for the spawned
// API server, or nil when no staff key has been stored.
func (s *SecretStore) StaffKeyEnv() ([]string, error) {
	value, err := s.RetrieveSecret(StaffKeyName)
	if err != nil {
		// Absence is fine, the backend falls back to its own default.
		return nil, nil
	}
	return []string{"STAFF_KEY=" + string(value)}, nil
}

// verifyPermissions checks that the file is exactly mode 600
func (s *SecretStore) verifyPermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	expectedMode := os.FileMode(0o600)
	if info.Mode().Perm() != expectedMode {
		return fmt.Errorf("file has permissions %o, expected %o", info.Mode().Perm(), expectedMode)
	}

	return nil
}

func (s *SecretStore) updateIndex(name string) error {
	index, err := s.loadIndex()
	if err != nil {
		index = &SecretIndex{Entries: []SecretEntry{}}
	}

	found := false
	for i, entry := range index.Entries {
		if entry.Name == name {
			index.Entries[i].LastRotated = time.Now().UTC()
			found = true
			break
		}
	}

	if !found {
		index.Entries = append(index.Entries, SecretEntry{
			Name:        name,
			LastRotated: time.Now().UTC(),
		})
	}

	return s.saveIndex(index)
}

func (s *SecretStore) removeFromIndex(name string) error {
	index, err := s.loadIndex()
	if err != nil {
		return err
	}

	filtered := make([]SecretEntry, 0, len(index.Entries))
	for _, entry := range index.Entries {
		if entry.Name != name {
			filtered = append(filtered, entry)
		}
	}

	index.Entries = filtered
	return s.saveIndex(index)
}

func (s *SecretStore) loadIndex() (*SecretIndex, error) {
	indexPath := filepath.Join(s.config.SecretsDir, indexFileName)

	data, err := os.ReadFile(indexPath) // #nosec G304 -- path is constructed from controlled secrets dir
	if err != nil {
		if os.IsNotExist(err) {
			return &SecretIndex{Entries: []SecretEntry{}}, nil
		}
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var index SecretIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse index: %w", err)
	}

	return &index, nil
}

func (s *SecretStore) saveIndex(index *SecretIndex) error {
	indexPath := filepath.Join(s.config.SecretsDir, indexFileName)

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	if err := fsutil.AtomicWriteFile(indexPath, data, 0o600, s.logger); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}

	return nil
}

// loadOrGeneratePassphrase loads the passphrase from file or generates
// and persists a fresh one
func loadOrGeneratePassphrase(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is from config
	if err == nil {
		return string(data), nil
	}

	if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read passphrase file: %w", err)
	}

	passphrase, err := generatePassphrase()
	if err != nil {
		return "", fmt.Errorf("failed to generate passphrase: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create passphrase directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(passphrase), 0o600); err != nil {
		return "", fmt.Errorf("failed to write passphrase: %w", err)
	}

	return passphrase, nil
}

// generatePassphrase returns 32 random bytes as hex
func generatePassphrase() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", bytes), nil
}
