// Package envvar provides utilities for working with environment variables.
package envvar

import (
	"os"
	"regexp"
)

// pattern matches ${VAR_NAME} placeholders.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Lookup resolves a variable name to a value. The second return reports
// whether the variable is defined.
type Lookup func(name string) (string, bool)

// Expand replaces ${VAR_NAME} placeholders with their environment variable
// values. Unset variables expand to the empty string.
func Expand(value string) string {
	return ExpandWith(value, os.LookupEnv)
}

// ExpandWith replaces ${VAR_NAME} placeholders using the provided lookup.
// Undefined variables expand to the empty string.
func ExpandWith(value string, lookup Lookup) string {
	if value == "" {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		name := match[2 : len(match)-1]

		resolved, ok := lookup(name)
		if !ok {
			return ""
		}

		return resolved
	})
}

// References returns the variable names referenced by ${VAR_NAME} placeholders
// in value, in order of first appearance.
func References(value string) []string {
	matches := pattern.FindAllStringSubmatch(value, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))

	for _, match := range matches {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}
