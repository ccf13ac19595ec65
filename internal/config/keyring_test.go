package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestKeyringManager_SetGetDelete(t *testing.T) {
	keyring.MockInit()
	km := NewKeyringManager()
	require.True(t, km.IsAvailable())

	require.NoError(t, km.Set(ItemGeminiAPIKey, "gem-secret-123456"))

	got, err := km.Get(ItemGeminiAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "gem-secret-123456", got)

	require.NoError(t, km.Delete(ItemGeminiAPIKey))
	got, err = km.Get(ItemGeminiAPIKey)
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.NoError(t, km.Delete(ItemGeminiAPIKey), "deleting twice succeeds")
}

func TestKeyringManager_SetEmpty(t *testing.T) {
	keyring.MockInit()
	assert.Error(t, NewKeyringManager().Set(ItemGitHubToken, ""))
}

func TestKeyringFallback(t *testing.T) {
	keyring.MockInit()
	km := NewKeyringManager()
	require.NoError(t, km.Set(ItemOpenAIAPIKey, "sk-from-keychain"))
	require.NoError(t, km.Set(ItemGitHubToken, "ghp-from-keychain"))

	cfg := Default()
	cfg.GitHub.Token = "ghp-from-env"
	applyKeyringFallback(cfg, km)

	assert.Equal(t, "sk-from-keychain", cfg.LLM.OpenAIAPIKey)
	assert.Equal(t, "ghp-from-env", cfg.GitHub.Token, "explicit values win")
	assert.Empty(t, cfg.LLM.GeminiAPIKey)
}

func TestItemForProvider(t *testing.T) {
	assert.Equal(t, ItemGeminiAPIKey, ItemForProvider(ProviderGemini))
	assert.Equal(t, ItemOpenAIAPIKey, ItemForProvider(ProviderOpenAI))
	assert.Equal(t, ItemOpenAIAPIKey, ItemForProvider(ProviderCompatible))
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "(not set)", MaskSecret(""))
	assert.Equal(t, "***", MaskSecret("short"))
	assert.Equal(t, "sk-p...wxyz", MaskSecret("sk-proj-abcdefwxyz"))
}
