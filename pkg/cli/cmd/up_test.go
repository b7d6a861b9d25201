package cmd_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geostack-dev/geostack/pkg/cli/cmd"
	"github.com/geostack-dev/geostack/pkg/io/configmanager"
	"github.com/geostack-dev/geostack/pkg/io/envfile"
)

const upTestConfig = `apiVersion: geostack.dev/v1alpha1
kind: Stack
spec:
  name: demo
  requiredEnv:
    - DB_PASSWORD
`

func runUpCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	upCmd := cmd.NewUpCmd()
	upCmd.SetOut(&out)
	upCmd.SetErr(&out)
	upCmd.SetArgs(args)

	err := upCmd.Execute()

	return out.String(), err
}

func TestUpFailsWithoutConfiguration(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := runUpCmd(t)

	require.ErrorIs(t, err, configmanager.ErrConfigInvalid)
}

func TestUpRejectsMissingRequiredEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_PASSWORD", "")

	require.NoError(t, os.WriteFile("geostack.yaml", []byte(upTestConfig), 0o644))
	require.NoError(t, os.WriteFile(".env.example", []byte("DB_PASSWORD=\n"), 0o644))

	_, err := runUpCmd(t)

	require.ErrorIs(t, err, envfile.ErrRequiredMissing)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestUpValidatesExistingEnvFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_PASSWORD", "")

	require.NoError(t, os.WriteFile("geostack.yaml", []byte(upTestConfig), 0o644))
	require.NoError(t, os.WriteFile(".env", []byte("DB_PASSWORD=\n"), 0o644))

	_, err := runUpCmd(t)

	require.ErrorIs(t, err, envfile.ErrRequiredMissing)
}
