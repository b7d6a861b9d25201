// Package cmd assembles the geostack command tree.
package cmd

import (
	"fmt"

	fcolor "github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/geostack-dev/geostack/pkg/apis/stack/v1alpha1"
	"github.com/geostack-dev/geostack/pkg/cli/ui"
)

// DebugFlagName is the persistent flag enabling debug logging.
const DebugFlagName = "debug"

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geostack",
		Short: "geostack deploys and operates a Docker Compose web stack",
		Long: "geostack is a CLI tool for deploying a multi-container web stack with " +
			"Docker Compose: it renders environment files, starts the stack, waits for " +
			"dependencies to become ready, and manages database backups.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	bindDebugFlag(cmd.PersistentFlags())
	cmd.PersistentFlags().String(
		ComposeFileFlagName,
		v1alpha1.DefaultComposeFile,
		"Path to the compose file",
	)
	cmd.PersistentFlags().String(
		EnvFileFlagName,
		v1alpha1.DefaultEnvFile,
		"Path to the rendered environment file",
	)

	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		debug, _ := cmd.Flags().GetBool(DebugFlagName)
		if debug {
			logrus.SetLevel(logrus.DebugLevel)
		}

		if !ui.IsTerminal(cmd.OutOrStdout()) {
			fcolor.NoColor = true
		}
	}

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewUpCmd())
	cmd.AddCommand(NewDownCmd())
	cmd.AddCommand(NewStartCmd())
	cmd.AddCommand(NewStopCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewLogsCmd())
	cmd.AddCommand(NewBackupCmd())

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// bindDebugFlag registers the persistent debug flag on a flag set.
func bindDebugFlag(flagSet *pflag.FlagSet) {
	flagSet.Bool(DebugFlagName, false, "Enable debug logging")
}

// handleRootRunE handles the root command.
func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
