package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/geostack-dev/geostack/pkg/apis/stack/v1alpha1"
	"github.com/geostack-dev/geostack/pkg/client/compose"
	"github.com/geostack-dev/geostack/pkg/io/configmanager"
	"github.com/geostack-dev/geostack/pkg/io/envfile"
)

// Persistent flag names bound to configuration keys.
const (
	ComposeFileFlagName = "compose-file"
	EnvFileFlagName     = "env-file"
)

// loadStack loads and validates the stack configuration for a command.
func loadStack(cmd *cobra.Command) (*v1alpha1.Stack, error) {
	manager := configmanager.NewConfigManager(cmd.OutOrStdout())
	bindSpecFlags(manager.Viper, cmd)

	return manager.LoadConfig()
}

// bindSpecFlags binds the root command's config flags to their configuration
// keys, so a flag set on the command line wins over the config file and
// GEOSTACK_* environment overrides.
func bindSpecFlags(viperInstance *viper.Viper, cmd *cobra.Command) {
	bindings := map[string]string{
		"spec.composefile": ComposeFileFlagName,
		"spec.envfile":     EnvFileFlagName,
	}

	for key, name := range bindings {
		flag := cmd.Flags().Lookup(name)
		if flag != nil {
			_ = viperInstance.BindPFlag(key, flag)
		}
	}
}

// newComposeClient creates a compose client wired to the command's streams.
func newComposeClient(cmd *cobra.Command, spec v1alpha1.Spec) *compose.CLI {
	envFile := spec.EnvFile
	if _, err := os.Stat(envFile); err != nil {
		// compose rejects a missing --env-file; fall back to ambient env.
		envFile = ""
	}

	return compose.NewCLI(
		spec.Name,
		spec.ComposeFile,
		envFile,
		cmd.OutOrStdout(),
		cmd.ErrOrStderr(),
	)
}

// loadEnvValues reads the rendered env file. A missing file yields an empty
// map so probes can still resolve credentials from the process environment.
func loadEnvValues(spec v1alpha1.Spec) map[string]string {
	values, err := envfile.Load(spec.EnvFile)
	if err != nil {
		return map[string]string{}
	}

	return values
}
