// Package configmanager loads geostack.yaml configurations with viper.
//
// Configuration is resolved from three layers, lowest precedence first:
// constructor defaults, the geostack.yaml file, and GEOSTACK_* environment
// variables.
package configmanager

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/geostack-dev/geostack/pkg/apis/stack/v1alpha1"
)

// EnvPrefix is the prefix of environment variables that override config values.
const EnvPrefix = "GEOSTACK"

const configName = "geostack"

// ErrConfigInvalid wraps validation failures of a loaded configuration.
var ErrConfigInvalid = errors.New("invalid configuration")

// ConfigManager loads and validates stack configurations.
type ConfigManager struct {
	// Viper is exposed for flag binding by commands.
	Viper *viper.Viper
	// Config holds the most recently loaded configuration.
	Config *v1alpha1.Stack
	// Writer receives load notifications.
	Writer io.Writer

	configLoaded bool
}

// NewConfigManager creates a configuration manager rooted at the current
// working directory.
func NewConfigManager(writer io.Writer) *ConfigManager {
	viperInstance := viper.New()
	viperInstance.SetConfigName(configName)
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")
	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()
	registerDefaults(viperInstance)

	return &ConfigManager{
		Viper:  viperInstance,
		Config: v1alpha1.NewStack(),
		Writer: writer,
	}
}

// LoadConfig reads geostack.yaml if present, applies environment overrides,
// and validates the result. A missing config file is not an error; defaults
// and environment overrides still apply.
func (m *ConfigManager) LoadConfig() (*v1alpha1.Stack, error) {
	if m.configLoaded {
		return m.Config, nil
	}

	err := m.Viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	config := v1alpha1.NewStack()

	err = m.Viper.Unmarshal(config, viper.DecodeHook(decodeHooks()), squashEmbedded, useJSONTags)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	m.Config = config
	m.configLoaded = true

	return m.Config, nil
}

// ConfigFileUsed returns the path of the loaded config file, or empty if
// configuration came from defaults and environment only.
func (m *ConfigManager) ConfigFileUsed() string {
	return m.Viper.ConfigFileUsed()
}

// registerDefaults seeds viper with the constructor defaults. Viper only
// consults the environment for keys it knows about, so every scalar key must
// be registered for GEOSTACK_* overrides to apply when the key is absent from
// the config file. List-valued keys (requiredEnv, services, migrate.command)
// come from the file only.
func registerDefaults(viperInstance *viper.Viper) {
	defaults := v1alpha1.NewSpec()

	viperInstance.SetDefault("spec.name", defaults.Name)
	viperInstance.SetDefault("spec.composefile", defaults.ComposeFile)
	viperInstance.SetDefault("spec.envfile", defaults.EnvFile)
	viperInstance.SetDefault("spec.envtemplate", defaults.EnvTemplate)
	viperInstance.SetDefault("spec.reportevery", defaults.ReportEvery)

	viperInstance.SetDefault("spec.database.service", defaults.Database.Service)
	viperInstance.SetDefault("spec.database.host", defaults.Database.Host)
	viperInstance.SetDefault("spec.database.port", defaults.Database.Port)
	viperInstance.SetDefault("spec.database.name", defaults.Database.Name)
	viperInstance.SetDefault("spec.database.user", defaults.Database.User)
	viperInstance.SetDefault("spec.database.passwordenv", defaults.Database.PasswordEnv)
	viperInstance.SetDefault("spec.database.attempts", defaults.Database.Attempts)
	viperInstance.SetDefault("spec.database.delay", defaults.Database.Delay.Duration.String())

	viperInstance.SetDefault("spec.cache.enabled", defaults.Cache.Enabled)
	viperInstance.SetDefault("spec.cache.service", defaults.Cache.Service)
	viperInstance.SetDefault("spec.cache.addr", defaults.Cache.Addr)
	viperInstance.SetDefault("spec.cache.attempts", defaults.Cache.Attempts)
	viperInstance.SetDefault("spec.cache.delay", defaults.Cache.Delay.Duration.String())

	viperInstance.SetDefault("spec.migrate.service", defaults.Migrate.Service)

	viperInstance.SetDefault("spec.backup.directory", defaults.Backup.Directory)
	viperInstance.SetDefault("spec.backup.keep", defaults.Backup.Keep)

	viperInstance.SetDefault("spec.proxy.template", defaults.Proxy.Template)
	viperInstance.SetDefault("spec.proxy.output", defaults.Proxy.Output)
	viperInstance.SetDefault("spec.proxy.domain", defaults.Proxy.Domain)
}

func squashEmbedded(config *mapstructure.DecoderConfig) {
	config.Squash = true
}

func useJSONTags(config *mapstructure.DecoderConfig) {
	config.TagName = "json"
}

func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToMetaDurationHookFunc(),
	)
}

// stringToMetaDurationHookFunc decodes "2s"-style strings into metav1.Duration.
func stringToMetaDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, target reflect.Type, data any) (any, error) {
		if target != reflect.TypeOf(metav1.Duration{}) || from.Kind() != reflect.String {
			return data, nil
		}

		raw, ok := data.(string)
		if !ok {
			return data, nil
		}

		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse duration %q: %w", raw, err)
		}

		return metav1.Duration{Duration: parsed}, nil
	}
}
