package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogsCmd creates and returns the logs command.
func NewLogsCmd() *cobra.Command {
	var tailFlag int

	cmd := &cobra.Command{
		Use:          "logs [service]",
		Short:        "Show logs for the stack or a single service",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			service := ""
			if len(args) > 0 {
				service = args[0]
			}

			return runLogs(cmd, service, tailFlag)
		},
	}

	cmd.Flags().IntVar(&tailFlag, "tail", 0, "Number of log lines to show per service (0 shows all)")

	return cmd
}

func runLogs(cmd *cobra.Command, service string, tail int) error {
	stack, err := loadStack(cmd)
	if err != nil {
		return err
	}

	err = newComposeClient(cmd, stack.Spec).Logs(cmd.Context(), service, tail)
	if err != nil {
		return fmt.Errorf("failed to fetch logs: %w", err)
	}

	return nil
}
