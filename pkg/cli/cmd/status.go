package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/geostack-dev/geostack/pkg/apis/stack/v1alpha1"
	"github.com/geostack-dev/geostack/pkg/client/docker"
	"github.com/geostack-dev/geostack/pkg/readiness"
	"github.com/geostack-dev/geostack/pkg/utils/notify"
)

// NewStatusCmd creates and returns the status command.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show stack container states and service health",
		Long: `Show the state of the stack's containers and probe the configured
service health endpoints once each.`,
		SilenceUsage: true,
		RunE:         runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	stack, err := loadStack(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintln(out)
	notify.Titlef(out, "📋", "Stack status...")

	err = printContainerStates(cmd, stack.Spec.Name)
	if err != nil {
		return err
	}

	printServiceHealth(cmd, stack.Spec.Services)

	return nil
}

func printContainerStates(cmd *cobra.Command, project string) error {
	apiClient, err := docker.GetDockerClient()
	if err != nil {
		return err
	}

	defer func() { _ = apiClient.Close() }()

	states, err := docker.NewStackInspector(apiClient).ListServices(cmd.Context(), project)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if len(states) == 0 {
		notify.Warningf(out, "no containers found for stack '%s'; run 'geostack up' first", project)

		return nil
	}

	for _, state := range states {
		line := fmt.Sprintf("%s: %s", state.Service, state.Status)
		if len(state.Ports) > 0 {
			line += " [" + strings.Join(state.Ports, ", ") + "]"
		}

		if state.State == "running" {
			notify.Successf(out, "%s", line)
		} else {
			notify.Errorf(out, "%s", line)
		}
	}

	return nil
}

// printServiceHealth probes each configured health endpoint once. Probing
// fans out since status reporting is read-only and order does not matter.
func printServiceHealth(cmd *cobra.Command, services []v1alpha1.Service) {
	if len(services) == 0 {
		return
	}

	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintln(out)
	notify.Activityf(out, "probing service health endpoints")

	type outcome struct {
		ready bool
		err   error
	}

	outcomes := make([]outcome, len(services))

	group, ctx := errgroup.WithContext(cmd.Context())

	for i, svc := range services {
		i := i
		probe := readiness.NewHTTPProbe(svc.URL, nil)

		group.Go(func() error {
			ready, probeErr := probe(ctx)
			outcomes[i] = outcome{ready: ready, err: probeErr}

			return nil
		})
	}

	// Probes record their outcome instead of failing the group.
	_ = group.Wait()

	for i, svc := range services {
		switch {
		case outcomes[i].ready:
			notify.Successf(out, "%s: healthy (%s)", svc.Name, svc.URL)
		case outcomes[i].err != nil:
			notify.Warningf(out, "%s: unreachable (%v)", svc.Name, outcomes[i].err)
		default:
			notify.Warningf(out, "%s: responding but not healthy (%s)", svc.Name, svc.URL)
		}
	}
}
