package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geostack-dev/geostack/pkg/client/compose"
	"github.com/geostack-dev/geostack/pkg/utils/notify"
)

// lifecycleConfig defines a simple stack lifecycle command (start/stop/down).
type lifecycleConfig struct {
	use          string
	short        string
	long         string
	titleEmoji   string
	titleContent string
	activity     string
	success      string
	action       func(ctx context.Context, client compose.Client) error
}

// newLifecycleCmd creates a lifecycle command that runs a single compose
// action against the configured stack.
func newLifecycleCmd(config lifecycleConfig) *cobra.Command {
	return &cobra.Command{
		Use:          config.use,
		Short:        config.short,
		Long:         config.long,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLifecycleAction(cmd, config)
		},
	}
}

func runLifecycleAction(cmd *cobra.Command, config lifecycleConfig) error {
	stack, err := loadStack(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintln(out)
	notify.Titlef(out, config.titleEmoji, "%s", config.titleContent)
	notify.Activityf(out, "%s stack '%s'", config.activity, stack.Spec.Name)

	err = config.action(cmd.Context(), newComposeClient(cmd, stack.Spec))
	if err != nil {
		return fmt.Errorf("failed to %s stack: %w", config.activity, err)
	}

	notify.Successf(out, "%s", config.success)

	return nil
}

// NewStartCmd creates and returns the start command.
func NewStartCmd() *cobra.Command {
	return newLifecycleCmd(lifecycleConfig{
		use:          "start",
		short:        "Start a stopped stack",
		long:         "Start the previously stopped containers of the stack.",
		titleEmoji:   "▶️",
		titleContent: "Start stack...",
		activity:     "start",
		success:      "stack started",
		action: func(ctx context.Context, client compose.Client) error {
			return client.Start(ctx)
		},
	})
}

// NewStopCmd creates and returns the stop command.
func NewStopCmd() *cobra.Command {
	return newLifecycleCmd(lifecycleConfig{
		use:          "stop",
		short:        "Stop the running stack",
		long:         "Stop the stack's containers without removing them.",
		titleEmoji:   "⏸️",
		titleContent: "Stop stack...",
		activity:     "stop",
		success:      "stack stopped",
		action: func(ctx context.Context, client compose.Client) error {
			return client.Stop(ctx)
		},
	})
}

// NewDownCmd creates and returns the down command.
func NewDownCmd() *cobra.Command {
	var volumesFlag bool

	cmd := &cobra.Command{
		Use:          "down",
		Short:        "Tear down the stack",
		Long:         "Stop and remove the stack's containers. Volumes are kept unless --volumes is set.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDown(cmd, volumesFlag)
		},
	}

	cmd.Flags().BoolVar(&volumesFlag, "volumes", false, "Also remove named volumes (destroys data)")

	return cmd
}

func runDown(cmd *cobra.Command, removeVolumes bool) error {
	stack, err := loadStack(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintln(out)
	notify.Titlef(out, "🛑", "Tear down stack...")
	notify.Activityf(out, "removing stack '%s'", stack.Spec.Name)

	err = newComposeClient(cmd, stack.Spec).Down(cmd.Context(), removeVolumes)
	if err != nil {
		return fmt.Errorf("failed to tear down stack: %w", err)
	}

	notify.Successf(out, "stack removed")

	return nil
}
