package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from a fresh directory so a .env written there is
// the one godotenv picks up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

// unsetEnv clears key for the test and undoes whatever Load's godotenv call
// wrote into the process environment.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestLoadReadsDotEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	unsetEnv(t, "POSTGRES_CONN_STR")
	unsetEnv(t, "PORT")
	unsetEnv(t, "JWT_SECRET")

	env := "POSTGRES_CONN_STR=host=fromdotenv\nPORT=9090\nJWT_SECRET=dotenvsecret\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	cfg := Load()

	assert.Equal(t, "host=fromdotenv", cfg.PostgresConnStr)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "dotenvsecret", cfg.JWTSecret)
}

func TestLoadEnvVarWinsOverDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("PORT", "7070")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9090\n"), 0o600))

	cfg := Load()

	assert.Equal(t, "7070", cfg.Port)
}

func TestLoadDefaultsWithoutDotEnv(t *testing.T) {
	chdirTemp(t)
	unsetEnv(t, "PORT")
	unsetEnv(t, "ENV")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
}
