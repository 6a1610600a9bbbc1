package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.ServerPort)
	assert.Equal(t, StoreMongo, cfg.ProfileStore)
	assert.Equal(t, "gpt-3.5-turbo", cfg.CompletionModel)
	assert.Equal(t, 200, cfg.CompletionMaxTokens)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.CassandraEnabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("PROFILE_STORE", "Memory")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CASSANDRA_HOST", "cassandra.internal")
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, StoreMemory, cfg.ProfileStore)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.True(t, cfg.CassandraEnabled())
	assert.True(t, cfg.IsProduction())
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Run("jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("OPENAI_API_KEY", "sk-test")
		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingJWTSecret)
	})

	t.Run("openai key", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("OPENAI_API_KEY", "")
		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingOpenAIAPIKey)
	})

	t.Run("unknown store", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PROFILE_STORE", "firestore")
		_, err := Load()
		assert.ErrorIs(t, err, ErrUnknownProfileStore)
	})
}
