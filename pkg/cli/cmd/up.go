package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geostack-dev/geostack/pkg/io/envfile"
	"github.com/geostack-dev/geostack/pkg/svc/deployer"
	"github.com/geostack-dev/geostack/pkg/utils/notify"
	"github.com/geostack-dev/geostack/pkg/utils/timer"
)

// NewUpCmd creates and returns the up command.
func NewUpCmd() *cobra.Command {
	var (
		buildFlag       bool
		skipMigrateFlag bool
	)

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Deploy the stack",
		Long: `Deploy the full stack with Docker Compose.

The deployment runs sequentially: render the environment file if missing,
start the stack, wait for the database (and cache) to become ready, run
database migrations, then wait for the HTTP services. A hard dependency that
never becomes ready aborts the deployment; unready soft dependencies are
reported as warnings.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUp(cmd, buildFlag, skipMigrateFlag)
		},
	}

	cmd.Flags().BoolVar(&buildFlag, "build", false, "Rebuild images before starting the stack")
	cmd.Flags().BoolVar(&skipMigrateFlag, "skip-migrate", false, "Skip the database migration step")

	return cmd
}

func runUp(cmd *cobra.Command, build, skipMigrate bool) error {
	stack, err := loadStack(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	tmr := timer.New()
	tmr.Start()

	_, _ = fmt.Fprintln(out)
	notify.Titlef(out, "🚀", "Deploy '%s'...", stack.Spec.Name)

	err = ensureEnvFile(cmd, stack.Spec.EnvTemplate, stack.Spec.EnvFile, stack.Spec.RequiredEnv)
	if err != nil {
		return err
	}

	env := loadEnvValues(stack.Spec)

	dep := deployer.New(stack.Spec, newComposeClient(cmd, stack.Spec), env, out, tmr)

	report, err := dep.Deploy(cmd.Context(), deployer.Options{
		Build:       build,
		SkipMigrate: skipMigrate,
	})
	if err != nil {
		return fmt.Errorf("deployment failed: %w", err)
	}

	_, _ = fmt.Fprintln(out)

	if report.CompletedWithIssues() {
		notify.Warningf(
			out,
			"deployment completed with issues: %d service(s) not ready",
			len(report.Warnings),
		)

		return nil
	}

	notify.SuccessWithTimerf(out, tmr, "deployment complete")

	return nil
}

// ensureEnvFile renders the env file from the template when it does not exist
// yet, and validates required variables either way.
func ensureEnvFile(cmd *cobra.Command, templatePath, envPath string, required []string) error {
	_, err := os.Stat(envPath)
	if err == nil {
		values, loadErr := envfile.Load(envPath)
		if loadErr != nil {
			return loadErr
		}

		return envfile.Validate(values, required)
	}

	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", envPath, err)
	}

	values, err := envfile.Render(templatePath, nil)
	if err != nil {
		return err
	}

	err = envfile.Validate(values, required)
	if err != nil {
		return err
	}

	err = envfile.Write(values, envPath, false)
	if err != nil {
		return err
	}

	notify.Generatef(cmd.OutOrStdout(), "rendered '%s' from '%s'", envPath, templatePath)

	return nil
}
