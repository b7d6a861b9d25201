package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geostack-dev/geostack/pkg/cli/cmd"
	"github.com/geostack-dev/geostack/pkg/io/configmanager"
	"github.com/geostack-dev/geostack/pkg/io/envfile"
)

const initTestConfig = `apiVersion: geostack.dev/v1alpha1
kind: Stack
spec:
  name: demo
  requiredEnv:
    - DB_PASSWORD
  proxy:
    template: nginx.conf.template
    output: nginx.conf
    domain: demo.example.com
`

const initTestEnvTemplate = "APP_ENV=production\nDB_PASSWORD=\n"

const initTestProxyTemplate = "server_name ${DOMAIN};\n"

func writeInitFixtures(t *testing.T) {
	t.Helper()

	require.NoError(t, os.WriteFile("geostack.yaml", []byte(initTestConfig), 0o644))
	require.NoError(t, os.WriteFile(".env.example", []byte(initTestEnvTemplate), 0o644))
	require.NoError(t, os.WriteFile("nginx.conf.template", []byte(initTestProxyTemplate), 0o644))
}

func runInitCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	initCmd := cmd.NewInitCmd()
	initCmd.SetOut(&out)
	initCmd.SetErr(&out)
	initCmd.SetArgs(args)

	err := initCmd.Execute()

	return out.String(), err
}

func TestInitScaffoldsDeploymentInputs(t *testing.T) {
	chdir(t, t.TempDir())
	writeInitFixtures(t)

	output, err := runInitCmd(t)

	require.NoError(t, err)
	assert.Contains(t, output, "deployment inputs ready")

	// Secrets are generated with restrictive permissions.
	for _, name := range []string{"db_password.txt", "app_key.txt"} {
		path := filepath.Join(cmd.SecretsDirectory, name)

		info, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	// The env file is rendered with the generated database password.
	values, err := envfile.Load(".env")
	require.NoError(t, err)
	assert.Equal(t, "production", values["APP_ENV"])
	assert.NotEmpty(t, values["DB_PASSWORD"])

	// The proxy config has the domain substituted.
	proxyConfig, err := os.ReadFile("nginx.conf")
	require.NoError(t, err)
	assert.Equal(t, "server_name demo.example.com;\n", string(proxyConfig))
}

func TestInitKeepsExistingSecrets(t *testing.T) {
	chdir(t, t.TempDir())
	writeInitFixtures(t)

	_, err := runInitCmd(t)
	require.NoError(t, err)

	secretPath := filepath.Join(cmd.SecretsDirectory, "db_password.txt")
	before, err := os.ReadFile(secretPath)
	require.NoError(t, err)

	output, err := runInitCmd(t, "--force")
	require.NoError(t, err)
	assert.Contains(t, output, "already exists, keeping it")

	after, err := os.ReadFile(secretPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestInitRefusesToOverwriteEnvFileWithoutForce(t *testing.T) {
	chdir(t, t.TempDir())
	writeInitFixtures(t)

	_, err := runInitCmd(t)
	require.NoError(t, err)

	_, err = runInitCmd(t)
	require.ErrorIs(t, err, envfile.ErrAlreadyExists)
}

func TestInitFailsWithoutConfiguration(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := runInitCmd(t)

	require.ErrorIs(t, err, configmanager.ErrConfigInvalid)
}
