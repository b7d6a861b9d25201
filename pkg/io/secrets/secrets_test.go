package secrets_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geostack-dev/geostack/pkg/io/secrets"
)

var alphanumeric = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

func TestGenerate(t *testing.T) {
	t.Parallel()

	secret, err := secrets.Generate(secrets.DefaultLength)

	require.NoError(t, err)
	assert.Len(t, secret, secrets.DefaultLength)
	assert.Regexp(t, alphanumeric, secret)

	other, err := secrets.Generate(secrets.DefaultLength)
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

func TestGenerateRejectsInvalidLength(t *testing.T) {
	t.Parallel()

	_, err := secrets.Generate(0)

	require.ErrorIs(t, err, secrets.ErrInvalidLength)
}

func TestEnsureFileCreatesOnce(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "secrets", "db_password.txt")

	created, err := secrets.EnsureFile(path, 16)
	require.NoError(t, err)
	assert.True(t, created)

	first, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, first, 16)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A second run keeps the existing secret.
	created, err = secrets.EnsureFile(path, 16)
	require.NoError(t, err)
	assert.False(t, created)

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
