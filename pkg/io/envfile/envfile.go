// Package envfile renders deployment environment files from example templates.
package envfile

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/geostack-dev/geostack/pkg/utils/envvar"
)

// Sentinel errors.
var (
	// ErrAlreadyExists is returned when writing would overwrite an existing
	// env file without force.
	ErrAlreadyExists = errors.New("environment file already exists")
	// ErrRequiredMissing is returned when required variables are empty after
	// rendering.
	ErrRequiredMissing = errors.New("required environment variables missing")
)

const filePermissions = 0o600

// Render reads the template env file and expands ${VAR} placeholders in its
// values. Placeholders resolve against overrides first, then keys defined in
// the template itself, then the process environment.
//
// godotenv expands ${VAR} at parse time with file-local scope only, so
// references to overrides and the process environment must be resolved in the
// raw template text before parsing. Template-local references are left for
// the parser, which resolves them in file order.
func Render(templatePath string, overrides map[string]string) (map[string]string, error) {
	raw, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("read env template %s: %w", templatePath, err)
	}

	templateKeys, err := godotenv.Unmarshal(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse env template %s: %w", templatePath, err)
	}

	expanded := envvar.ExpandWith(string(raw), func(name string) (string, bool) {
		if v, ok := overrides[name]; ok {
			return v, true
		}

		if _, ok := templateKeys[name]; ok {
			// Keep the placeholder for the parser.
			return "${" + name + "}", true
		}

		return os.LookupEnv(name)
	})

	values, err := godotenv.Unmarshal(expanded)
	if err != nil {
		return nil, fmt.Errorf("parse env template %s: %w", templatePath, err)
	}

	for key, value := range overrides {
		values[key] = value
	}

	return values, nil
}

// Validate checks that every required key is present and non-empty. All
// violations are reported together.
func Validate(values map[string]string, required []string) error {
	var missing []string

	for _, key := range required {
		if values[key] == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	sort.Strings(missing)

	return fmt.Errorf("%w: %s", ErrRequiredMissing, strings.Join(missing, ", "))
}

// Write persists values to path with owner-only permissions. An existing file
// is left untouched unless force is set.
func Write(values map[string]string, path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, path)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
	}

	content, err := godotenv.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal env values: %w", err)
	}

	err = os.WriteFile(path, []byte(content+"\n"), filePermissions)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// Load reads an existing env file into a map.
func Load(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}

	return values, nil
}
