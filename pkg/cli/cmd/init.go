package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geostack-dev/geostack/pkg/apis/stack/v1alpha1"
	"github.com/geostack-dev/geostack/pkg/io/envfile"
	proxygenerator "github.com/geostack-dev/geostack/pkg/io/generator/proxy"
	"github.com/geostack-dev/geostack/pkg/io/secrets"
	"github.com/geostack-dev/geostack/pkg/utils/notify"
)

// SecretsDirectory is where generated Docker secret files are placed.
const SecretsDirectory = "secrets"

// Secret file names created during init.
const (
	dbPasswordSecretFile = "db_password.txt"
	appKeySecretFile     = "app_key.txt"
)

// NewInitCmd creates and returns the init command.
func NewInitCmd() *cobra.Command {
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold deployment inputs",
		Long: `Scaffold the files a deployment needs: render the environment file from
its template, create Docker secret files with generated credentials, and
render the reverse-proxy configuration.

Existing files are kept unless --force is set; secret files are never
overwritten.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, forceFlag)
		},
	}

	cmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite existing generated files (never secrets)")

	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	stack, err := loadStack(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintln(out)
	notify.Titlef(out, "🗂️", "Initialize deployment inputs...")

	dbPassword, err := ensureSecrets(cmd)
	if err != nil {
		return err
	}

	err = renderEnv(cmd, stack.Spec, dbPassword, force)
	if err != nil {
		return err
	}

	err = renderProxyConfig(cmd, stack.Spec.Proxy, force)
	if err != nil {
		return err
	}

	notify.Successf(out, "deployment inputs ready")

	return nil
}

// ensureSecrets creates the secret files and returns the database password
// for env rendering.
func ensureSecrets(cmd *cobra.Command) (string, error) {
	out := cmd.OutOrStdout()

	for _, name := range []string{dbPasswordSecretFile, appKeySecretFile} {
		path := filepath.Join(SecretsDirectory, name)

		created, err := secrets.EnsureFile(path, secrets.DefaultLength)
		if err != nil {
			return "", err
		}

		if created {
			notify.Generatef(out, "created secret '%s'", path)
		} else {
			notify.Infof(out, "secret '%s' already exists, keeping it", path)
		}
	}

	return readSecret(filepath.Join(SecretsDirectory, dbPasswordSecretFile))
}

// readSecret reads a raw secret file.
func readSecret(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read secret %s: %w", path, err)
	}

	return strings.TrimSpace(string(raw)), nil
}

func renderEnv(cmd *cobra.Command, spec v1alpha1.Spec, dbPassword string, force bool) error {
	overrides := map[string]string{}
	if spec.Database.PasswordEnv != "" && dbPassword != "" {
		overrides[spec.Database.PasswordEnv] = dbPassword
	}

	values, err := envfile.Render(spec.EnvTemplate, overrides)
	if err != nil {
		return err
	}

	err = envfile.Validate(values, spec.RequiredEnv)
	if err != nil {
		return err
	}

	err = envfile.Write(values, spec.EnvFile, force)
	if err != nil {
		return err
	}

	notify.Generatef(cmd.OutOrStdout(), "rendered '%s' from '%s'", spec.EnvFile, spec.EnvTemplate)

	return nil
}

func renderProxyConfig(cmd *cobra.Command, proxy v1alpha1.Proxy, force bool) error {
	if proxy.Template == "" {
		return nil
	}

	vars := map[string]string{}
	if proxy.Domain != "" {
		vars["DOMAIN"] = proxy.Domain
	}

	model := proxygenerator.Config{Template: proxy.Template, Vars: vars}

	_, err := proxygenerator.NewGenerator().Generate(model, proxygenerator.Options{
		Output: proxy.Output,
		Force:  force,
	})
	if err != nil {
		return err
	}

	notify.Generatef(cmd.OutOrStdout(), "rendered proxy config '%s'", proxy.Output)

	return nil
}
