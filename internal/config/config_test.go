package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "config-test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/auth", cfg.Auth.ExemptPrefix)
	assert.Equal(t, "/admin", cfg.Auth.AdminPrefix)
	assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "0.0.0.0:8081", cfg.App.ProbeAddr())
	assert.Equal(t, "audit:admin-api", cfg.Audit.Stream)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoad_PolicyFileOverridesPrefixes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("exempt_prefix: /public\nadmin_prefix: /ops\n"), 0o600))

	t.Setenv("AUTH_JWT_SECRET", "config-test-secret")
	t.Setenv("AUTH_POLICY_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/public", cfg.Auth.ExemptPrefix)
	assert.Equal(t, "/ops", cfg.Auth.AdminPrefix)
}

func TestLoad_PolicyFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("exempt_prefix: [unterminated\n"), 0o600))

	t.Setenv("AUTH_JWT_SECRET", "config-test-secret")
	t.Setenv("AUTH_POLICY_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_RejectsRelativePrefixes(t *testing.T) {
	cfg := Config{Auth: AuthConfig{
		JWTSecret:             "s",
		AccessTokenTTLMinutes: 60,
		ExemptPrefix:          "auth",
		AdminPrefix:           "/admin",
	}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exempt prefix")
}
