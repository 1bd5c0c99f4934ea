package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupEnv sets environment variables for the duration of the test.
// Empty values unset the variable; it is restored when the test completes.
func SetupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for name, value := range envVars {
		if value == "" {
			original, had := os.LookupEnv(name)
			require.NoError(t, os.Unsetenv(name))
			if had {
				t.Cleanup(func() { _ = os.Setenv(name, original) })
			}
			continue
		}
		t.Setenv(name, value)
	}
}

// CreateTempConfigFile writes content to a file called name in a fresh
// temporary directory and returns its path. The directory is removed when the
// test completes.
func CreateTempConfigFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err, "Failed to create temporary config file")
	return path
}
