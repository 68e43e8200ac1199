package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiry(t *testing.T) {
	cases := map[string]time.Duration{
		"1d":    24 * time.Hour,
		"10d":   240 * time.Hour,
		"15m":   15 * time.Minute,
		"1h30m": 90 * time.Minute,
		"3600":  time.Hour,
	}
	for raw, want := range cases {
		got, err := ParseExpiry(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "xd", "-1h", "0", "soon"} {
		_, err := ParseExpiry(raw)
		assert.Error(t, err, raw)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "2h")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "7d")
	t.Setenv("LOGIN_REQUIRE_BOTH_IDENTIFIERS", "false")
	t.Setenv("MEDIA_PUBLIC_BASE_URL", "https://cdn.example.com/vidtube/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "access-secret", cfg.AccessTokenSecret)
	assert.Equal(t, 2*time.Hour, cfg.AccessTokenExpiryDuration)
	assert.Equal(t, "refresh-secret", cfg.RefreshTokenSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenExpiryDuration)
	assert.False(t, cfg.LoginRequireBothIdentifiers)
	assert.Equal(t, "https://cdn.example.com/vidtube", cfg.MediaPublicBaseURL)
}

func TestLoadConfigFallsBackOnInvalidExpiry(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRY", "whenever")
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.AccessTokenExpiryDuration)
	assert.Equal(t, defaultAccessTokenSecret, cfg.AccessTokenSecret)
}
