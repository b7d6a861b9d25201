// Package proxy generates reverse-proxy configuration from templates.
package proxy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/geostack-dev/geostack/pkg/io/generator"
	"github.com/geostack-dev/geostack/pkg/utils/envvar"
)

// ErrOutputExists is returned when the output file exists and Force is unset.
var ErrOutputExists = errors.New("proxy config already exists")

const (
	filePermissions = 0o644
	dirPermissions  = 0o755
)

// Options control where the rendered config is written.
type Options struct {
	// Output is the destination path. Empty returns the content without writing.
	Output string
	// Force overwrites an existing output file.
	Force bool
}

// Config describes a template render: the template path and the variables
// substituted into it.
type Config struct {
	// Template is the path of the proxy config template.
	Template string
	// Vars provides values for ${VAR} placeholders in the template.
	Vars map[string]string
}

// Generator renders a proxy config template by ${VAR} substitution.
type Generator struct{}

var _ generator.Generator[Config, Options] = (*Generator)(nil)

// NewGenerator creates and returns a new Generator instance.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the template and optionally writes the result. Placeholders
// without a value in the model's Vars fall back to the process environment.
func (g *Generator) Generate(model Config, opts Options) (string, error) {
	raw, err := os.ReadFile(model.Template)
	if err != nil {
		return "", fmt.Errorf("read proxy template %s: %w", model.Template, err)
	}

	content := envvar.ExpandWith(string(raw), func(name string) (string, bool) {
		if v, ok := model.Vars[name]; ok {
			return v, true
		}

		return os.LookupEnv(name)
	})

	if opts.Output == "" {
		return content, nil
	}

	err = writeFile(content, opts.Output, opts.Force)
	if err != nil {
		return "", fmt.Errorf("write proxy config: %w", err)
	}

	return content, nil
}

func writeFile(content, path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrOutputExists, path)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
	}

	err := os.MkdirAll(filepath.Dir(path), dirPermissions)
	if err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	err = os.WriteFile(path, []byte(content), filePermissions)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
