package config

import (
	"fmt"
	"log/slog"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name in the OS keychain
	KeyringService = "enhance-commits"

	ItemGeminiAPIKey = "gemini-api-key"
	ItemOpenAIAPIKey = "openai-api-key"
	ItemGitHubToken  = "github-token"
)

// KeyringManager handles secure credential storage in OS keychain
type KeyringManager struct {
	service string
	logger  *slog.Logger
}

// NewKeyringManager creates a new keyring manager
func NewKeyringManager() *KeyringManager {
	return &KeyringManager{
		service: KeyringService,
		logger:  slog.Default().With("component", "keyring"),
	}
}

// Set stores a secret under item
func (km *KeyringManager) Set(item, secret string) error {
	if secret == "" {
		return fmt.Errorf("%s cannot be empty", item)
	}

	if err := keyring.Set(km.service, item, secret); err != nil {
		km.logger.Error("failed to save secret to keychain", "item", item, "error", err)
		return fmt.Errorf("failed to save to OS keychain: %w", err)
	}

	km.logger.Info("secret saved to keychain", "service", km.service, "item", item)
	return nil
}

// Get reads a secret. A missing item is not an error and yields "".
func (km *KeyringManager) Get(item string) (string, error) {
	secret, err := keyring.Get(km.service, item)
	if err == keyring.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read from OS keychain: %w", err)
	}

	km.logger.Debug("secret retrieved from keychain", "item", item)
	return secret, nil
}

// Delete removes a secret; deleting a missing item succeeds
func (km *KeyringManager) Delete(item string) error {
	err := keyring.Delete(km.service, item)
	if err == keyring.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete from OS keychain: %w", err)
	}
	return nil
}

// IsAvailable checks if OS keychain is available.
// Returns false on headless systems (CI/CD) where keychain isn't available
func (km *KeyringManager) IsAvailable() bool {
	_, err := keyring.Get(km.service, "test-availability")
	if err == nil || err == keyring.ErrNotFound {
		return true
	}
	km.logger.Debug("keychain not available", "error", err)
	return false
}

// ItemForProvider names the keychain item holding a provider's API key
func ItemForProvider(provider string) string {
	if provider == ProviderGemini {
		return ItemGeminiAPIKey
	}
	return ItemOpenAIAPIKey
}

// MaskSecret masks a secret for display: first 4 and last 4 characters
func MaskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) < 12 {
		return "***"
	}
	return fmt.Sprintf("%s...%s", secret[:4], secret[len(secret)-4:])
}
