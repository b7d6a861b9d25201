package configmanager_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geostack-dev/geostack/pkg/apis/stack/v1alpha1"
	"github.com/geostack-dev/geostack/pkg/io/configmanager"
)

const validConfig = `apiVersion: geostack.dev/v1alpha1
kind: Stack
spec:
  name: demo
  composeFile: deploy/docker-compose.yml
  requiredEnv:
    - APP_KEY
    - DB_PASSWORD
  database:
    service: postgres
    port: 15432
    name: demo
    user: demo
    delay: 500ms
    attempts: 5
  cache:
    enabled: true
    addr: localhost:16379
  services:
    - name: api
      url: http://localhost:8080/api/health
      hard: true
    - name: tiles
      url: http://localhost:8600/health
      delay: 1s
  migrate:
    service: api
    command: ["php", "artisan", "migrate", "--force"]
  backup:
    directory: var/backups
    keep: 3
`

// chdir stands in for testing.T.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()

	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func writeConfig(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "geostack.yaml"), []byte(content), 0o600))
	chdir(t, dir)
}

func TestLoadConfigReadsFile(t *testing.T) {
	writeConfig(t, validConfig)

	manager := configmanager.NewConfigManager(&bytes.Buffer{})

	stack, err := manager.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "demo", stack.Spec.Name)
	assert.Equal(t, "deploy/docker-compose.yml", stack.Spec.ComposeFile)
	assert.Equal(t, []string{"APP_KEY", "DB_PASSWORD"}, stack.Spec.RequiredEnv)

	assert.Equal(t, "postgres", stack.Spec.Database.Service)
	assert.Equal(t, int32(15432), stack.Spec.Database.Port)
	assert.Equal(t, 5, stack.Spec.Database.Attempts)
	assert.Equal(t, 500*time.Millisecond, stack.Spec.Database.Delay.Duration)

	assert.True(t, stack.Spec.Cache.Enabled)
	assert.Equal(t, "localhost:16379", stack.Spec.Cache.Addr)

	require.Len(t, stack.Spec.Services, 2)
	assert.True(t, stack.Spec.Services[0].Hard)
	assert.False(t, stack.Spec.Services[1].Hard)
	assert.Equal(t, time.Second, stack.Spec.Services[1].Delay.Duration)

	assert.Equal(t, "api", stack.Spec.Migrate.Service)
	assert.Equal(t, []string{"php", "artisan", "migrate", "--force"}, stack.Spec.Migrate.Command)

	assert.Equal(t, "var/backups", stack.Spec.Backup.Directory)
	assert.Equal(t, 3, stack.Spec.Backup.Keep)

	assert.NotEmpty(t, manager.ConfigFileUsed())
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	writeConfig(t, "spec:\n  name: demo\n")

	manager := configmanager.NewConfigManager(&bytes.Buffer{})

	stack, err := manager.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, v1alpha1.DefaultComposeFile, stack.Spec.ComposeFile)
	assert.Equal(t, v1alpha1.DefaultEnvFile, stack.Spec.EnvFile)
	assert.Equal(t, v1alpha1.DefaultAttempts, stack.Spec.Database.Attempts)
	assert.Equal(t, v1alpha1.DefaultDelay, stack.Spec.Database.Delay.Duration)
	assert.Equal(t, v1alpha1.DefaultReportEvery, stack.Spec.ReportEvery)
	assert.False(t, stack.Spec.Cache.Enabled)
}

func TestLoadConfigEnvOverrideWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GEOSTACK_SPEC_NAME", "from-env")

	manager := configmanager.NewConfigManager(&bytes.Buffer{})

	stack, err := manager.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-env", stack.Spec.Name)
	assert.Equal(t, v1alpha1.DefaultComposeFile, stack.Spec.ComposeFile)
}

func TestLoadConfigEnvOverridesFileValue(t *testing.T) {
	writeConfig(t, "spec:\n  name: demo\n  database:\n    port: 5433\n")
	t.Setenv("GEOSTACK_SPEC_DATABASE_PORT", "15432")
	t.Setenv("GEOSTACK_SPEC_CACHE_ENABLED", "true")

	manager := configmanager.NewConfigManager(&bytes.Buffer{})

	stack, err := manager.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, int32(15432), stack.Spec.Database.Port)
	assert.True(t, stack.Spec.Cache.Enabled)
}

func TestLoadConfigMissingFileFailsValidation(t *testing.T) {
	chdir(t, t.TempDir())

	manager := configmanager.NewConfigManager(&bytes.Buffer{})

	_, err := manager.LoadConfig()

	require.ErrorIs(t, err, configmanager.ErrConfigInvalid)
	require.ErrorIs(t, err, v1alpha1.ErrNameRequired)
}

func TestLoadConfigRejectsIncompleteService(t *testing.T) {
	writeConfig(t, `spec:
  name: demo
  services:
    - name: api
`)

	manager := configmanager.NewConfigManager(&bytes.Buffer{})

	_, err := manager.LoadConfig()

	require.ErrorIs(t, err, v1alpha1.ErrServiceIncomplete)
}

func TestLoadConfigIsCached(t *testing.T) {
	writeConfig(t, "spec:\n  name: demo\n")

	manager := configmanager.NewConfigManager(&bytes.Buffer{})

	first, err := manager.LoadConfig()
	require.NoError(t, err)

	second, err := manager.LoadConfig()
	require.NoError(t, err)

	assert.Same(t, first, second)
}
