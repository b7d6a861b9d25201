// Package deployer runs the sequential deployment pipeline for a stack.
package deployer

import (
	"context"
	"fmt"
	"io"

	"github.com/geostack-dev/geostack/pkg/apis/stack/v1alpha1"
	"github.com/geostack-dev/geostack/pkg/client/compose"
	"github.com/geostack-dev/geostack/pkg/readiness"
	"github.com/geostack-dev/geostack/pkg/utils/notify"
	"github.com/geostack-dev/geostack/pkg/utils/timer"
)

// Options control a single deployment run.
type Options struct {
	// Build rebuilds images before starting the stack.
	Build bool
	// SkipMigrate skips the post-start migration step.
	SkipMigrate bool
}

// Deployer executes the deployment sequence: start the stack, wait for hard
// dependencies, run migrations, then wait for soft dependencies. Each step
// runs to completion before the next begins.
type Deployer struct {
	spec    v1alpha1.Spec
	compose compose.Client
	// env holds the rendered environment values used to derive probe
	// credentials, passed explicitly instead of relying on ambient globals.
	env    map[string]string
	writer io.Writer
	timer  timer.Timer

	// Dependency builders are fields so tests can substitute probes that do
	// not dial real services.
	buildHardDeps    func() []readiness.Dependency
	buildServiceDeps func() []readiness.Dependency
}

// New creates a Deployer for the given stack spec.
func New(
	spec v1alpha1.Spec,
	composeClient compose.Client,
	env map[string]string,
	writer io.Writer,
	tmr timer.Timer,
) *Deployer {
	deployer := &Deployer{
		spec:    spec,
		compose: composeClient,
		env:     env,
		writer:  writer,
		timer:   tmr,
	}

	deployer.buildHardDeps = deployer.hardDependencies
	deployer.buildServiceDeps = deployer.serviceDependencies

	return deployer
}

// Deploy runs the full pipeline and returns the readiness report. A non-nil
// error means a hard dependency or a pipeline step failed and the deployment
// must abort; warnings in the report mean the deployment completed with
// issues.
func (d *Deployer) Deploy(ctx context.Context, opts Options) (readiness.Report, error) {
	var report readiness.Report

	err := d.startStack(ctx, opts)
	if err != nil {
		return report, err
	}

	hardReport, err := d.waitForHardDependencies(ctx)
	if err != nil {
		return hardReport, err
	}

	report.Ready = hardReport.Ready

	if !opts.SkipMigrate {
		err = d.runMigrations(ctx)
		if err != nil {
			return report, err
		}
	}

	serviceReport, err := d.waitForServices(ctx)
	report.Ready = append(report.Ready, serviceReport.Ready...)
	report.Warnings = append(report.Warnings, serviceReport.Warnings...)

	if err != nil {
		return report, err
	}

	return report, nil
}

func (d *Deployer) startStack(ctx context.Context, opts Options) error {
	d.timer.NewStage()
	notify.Titlef(d.writer, "🚢", "Start stack...")
	notify.Activityf(d.writer, "bringing up compose project '%s'", d.spec.Name)

	err := d.compose.Up(ctx, compose.UpOptions{Build: opts.Build})
	if err != nil {
		return fmt.Errorf("start stack: %w", err)
	}

	notify.SuccessWithTimerf(d.writer, d.timer, "stack started")

	return nil
}

func (d *Deployer) waitForHardDependencies(ctx context.Context) (readiness.Report, error) {
	deps := d.buildHardDeps()
	if len(deps) == 0 {
		return readiness.Report{}, nil
	}

	d.timer.NewStage()
	notify.Titlef(d.writer, "⏳", "Wait for core dependencies...")

	report, err := d.waitFor(ctx, deps)
	if err != nil {
		return report, err
	}

	notify.SuccessWithTimerf(d.writer, d.timer, "core dependencies ready")

	return report, nil
}

func (d *Deployer) runMigrations(ctx context.Context) error {
	if d.spec.Migrate.Service == "" {
		return nil
	}

	d.timer.NewStage()
	notify.Titlef(d.writer, "🗃️", "Run database migrations...")
	notify.Activityf(d.writer, "executing migrations in service '%s'", d.spec.Migrate.Service)

	err := d.compose.Exec(ctx, d.spec.Migrate.Service, d.spec.Migrate.Command)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	notify.SuccessWithTimerf(d.writer, d.timer, "migrations applied")

	return nil
}

func (d *Deployer) waitForServices(ctx context.Context) (readiness.Report, error) {
	deps := d.buildServiceDeps()
	if len(deps) == 0 {
		return readiness.Report{}, nil
	}

	d.timer.NewStage()
	notify.Titlef(d.writer, "🩺", "Wait for services...")

	report, err := d.waitFor(ctx, deps)
	if err != nil {
		return report, err
	}

	for _, warning := range report.Warnings {
		notify.Warningf(d.writer, "%s did not become ready: %v", warning.Dependency, warning.Err)
	}

	if !report.CompletedWithIssues() {
		notify.SuccessWithTimerf(d.writer, d.timer, "all services ready")
	}

	return report, nil
}

func (d *Deployer) waitFor(
	ctx context.Context,
	deps []readiness.Dependency,
) (readiness.Report, error) {
	return readiness.WaitForAll(ctx, deps, readiness.Options{
		ReportEvery: d.spec.ReportEvery,
		OnStart: func(dep readiness.Dependency) {
			notify.Activityf(d.writer, "waiting for %s", dep.Name)
		},
		OnProgress: func(dep readiness.Dependency, attempt int) {
			notify.Activityf(
				d.writer,
				"still waiting for %s (attempt %d/%d)",
				dep.Name,
				attempt,
				dep.Attempts,
			)
		},
	})
}
