// Package compose wraps the docker compose CLI for a single project.
package compose

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrCommandFailed is returned when a docker compose invocation exits non-zero.
var ErrCommandFailed = errors.New("docker compose command failed")

// UpOptions control the behavior of Up.
type UpOptions struct {
	// Build rebuilds images before starting containers.
	Build bool
	// ForceRecreate recreates containers even if their config is unchanged.
	ForceRecreate bool
}

// Client is the compose operation surface the deployment pipeline depends on.
type Client interface {
	// Up starts the stack detached.
	Up(ctx context.Context, opts UpOptions) error
	// Down stops and removes the stack's containers.
	Down(ctx context.Context, removeVolumes bool) error
	// Start starts existing stopped containers.
	Start(ctx context.Context) error
	// Stop stops running containers without removing them.
	Stop(ctx context.Context) error
	// Exec runs a command inside a running service container.
	Exec(ctx context.Context, service string, command []string) error
	// ExecOutput runs a command inside a service container and returns stdout.
	ExecOutput(ctx context.Context, service string, command []string) ([]byte, error)
	// Logs streams a service's logs to the client's writers.
	Logs(ctx context.Context, service string, tail int) error
	// LogHint returns the command line a user can run to inspect a service's logs.
	LogHint(service string) string
}

// CLI runs docker compose as a subprocess.
type CLI struct {
	// ProjectName is passed as the compose project name.
	ProjectName string
	// ComposeFile is the compose file path.
	ComposeFile string
	// EnvFile is passed as --env-file when set.
	EnvFile string
	// Stdout and Stderr receive subprocess output. Nil writers discard.
	Stdout io.Writer
	Stderr io.Writer

	logger logrus.FieldLogger
}

var _ Client = (*CLI)(nil)

// NewCLI creates a compose client for the given project.
func NewCLI(projectName, composeFile, envFile string, stdout, stderr io.Writer) *CLI {
	return &CLI{
		ProjectName: projectName,
		ComposeFile: composeFile,
		EnvFile:     envFile,
		Stdout:      stdout,
		Stderr:      stderr,
		logger:      logrus.StandardLogger().WithField("component", "compose"),
	}
}

// Up starts the stack detached.
func (c *CLI) Up(ctx context.Context, opts UpOptions) error {
	args := []string{"up", "--detach"}
	if opts.Build {
		args = append(args, "--build")
	}

	if opts.ForceRecreate {
		args = append(args, "--force-recreate")
	}

	return c.run(ctx, c.Stdout, args...)
}

// Down stops and removes the stack's containers.
func (c *CLI) Down(ctx context.Context, removeVolumes bool) error {
	args := []string{"down", "--remove-orphans"}
	if removeVolumes {
		args = append(args, "--volumes")
	}

	return c.run(ctx, c.Stdout, args...)
}

// Start starts existing stopped containers.
func (c *CLI) Start(ctx context.Context) error {
	return c.run(ctx, c.Stdout, "start")
}

// Stop stops running containers without removing them.
func (c *CLI) Stop(ctx context.Context) error {
	return c.run(ctx, c.Stdout, "stop")
}

// Exec runs a command inside a running service container.
func (c *CLI) Exec(ctx context.Context, service string, command []string) error {
	args := append([]string{"exec", "-T", service}, command...)

	return c.run(ctx, c.Stdout, args...)
}

// ExecOutput runs a command inside a service container and returns its stdout.
func (c *CLI) ExecOutput(ctx context.Context, service string, command []string) ([]byte, error) {
	var out bytes.Buffer

	args := append([]string{"exec", "-T", service}, command...)

	err := c.run(ctx, &out, args...)
	if err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// Logs streams a service's logs. A tail of 0 streams the full log.
func (c *CLI) Logs(ctx context.Context, service string, tail int) error {
	args := []string{"logs", "--no-color"}
	if tail > 0 {
		args = append(args, "--tail", strconv.Itoa(tail))
	}

	if service != "" {
		args = append(args, service)
	}

	return c.run(ctx, c.Stdout, args...)
}

// LogHint returns the command a user can run to inspect a service's logs.
func (c *CLI) LogHint(service string) string {
	return fmt.Sprintf("docker compose -p %s logs %s", c.ProjectName, service)
}

func (c *CLI) run(ctx context.Context, stdout io.Writer, args ...string) error {
	full := c.baseArgs()
	full = append(full, args...)

	c.logger.WithField("args", strings.Join(full, " ")).Debug("running docker compose")

	// #nosec G204 -- arguments are assembled from validated configuration.
	cmd := exec.CommandContext(ctx, "docker", full...)
	cmd.Stdout = stdout
	cmd.Stderr = c.Stderr

	err := cmd.Run()
	if err != nil {
		return fmt.Errorf("%w: docker %s: %w", ErrCommandFailed, strings.Join(full, " "), err)
	}

	return nil
}

func (c *CLI) baseArgs() []string {
	args := []string{"compose", "--project-name", c.ProjectName}
	if c.ComposeFile != "" {
		args = append(args, "--file", c.ComposeFile)
	}

	if c.EnvFile != "" {
		args = append(args, "--env-file", c.EnvFile)
	}

	return args
}
