// Package v1alpha1 defines the geostack.yaml configuration API.
package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Kind is the config file kind for stack configurations.
const Kind = "Stack"

// APIVersion is the config file apiVersion for stack configurations.
const APIVersion = "geostack.dev/v1alpha1"

// Stack is the root configuration object loaded from geostack.yaml.
type Stack struct {
	metav1.TypeMeta `json:",inline"`

	Spec Spec `json:"spec,omitempty"`
}

// Spec describes the deployable stack.
type Spec struct {
	// Name is the Docker Compose project name.
	Name string `json:"name,omitempty"`
	// ComposeFile is the path to the compose file.
	ComposeFile string `json:"composeFile,omitempty"`
	// EnvFile is the rendered environment file consumed by compose.
	EnvFile string `json:"envFile,omitempty"`
	// EnvTemplate is the example environment file the env file is rendered from.
	EnvTemplate string `json:"envTemplate,omitempty"`
	// RequiredEnv lists variables that must be non-empty after rendering.
	RequiredEnv []string `json:"requiredEnv,omitempty"`
	// ReportEvery controls how often readiness progress is reported, in attempts.
	ReportEvery int `json:"reportEvery,omitempty"`

	Database Database  `json:"database,omitempty"`
	Cache    Cache     `json:"cache,omitempty"`
	Services []Service `json:"services,omitempty"`
	Migrate  Migrate   `json:"migrate,omitempty"`
	Backup   Backup    `json:"backup,omitempty"`
	Proxy    Proxy     `json:"proxy,omitempty"`
}

// Database describes the primary relational database. It is always a hard
// dependency.
type Database struct {
	// Service is the compose service name of the database.
	Service string `json:"service,omitempty"`
	// Host is the address the database is reachable at from the host.
	Host string `json:"host,omitempty"`
	// Port is the published database port.
	Port int32 `json:"port,omitempty"`
	// Name is the database name.
	Name string `json:"name,omitempty"`
	// User is the database user.
	User string `json:"user,omitempty"`
	// PasswordEnv names the environment variable holding the database password.
	PasswordEnv string `json:"passwordEnv,omitempty"`

	Attempts int             `json:"attempts,omitempty"`
	Delay    metav1.Duration `json:"delay,omitempty"`
}

// Cache describes an optional cache server. When enabled it is a hard
// dependency.
type Cache struct {
	Enabled bool `json:"enabled,omitempty"`
	// Service is the compose service name of the cache.
	Service string `json:"service,omitempty"`
	// Addr is the host-reachable address of the cache.
	Addr string `json:"addr,omitempty"`

	Attempts int             `json:"attempts,omitempty"`
	Delay    metav1.Duration `json:"delay,omitempty"`
}

// Service describes an HTTP service probed after the stack is up.
type Service struct {
	// Name is the compose service name.
	Name string `json:"name"`
	// URL is the health endpoint probed for a 2xx response.
	URL string `json:"url"`
	// Hard marks the service as a hard dependency; the default is soft.
	Hard bool `json:"hard,omitempty"`

	Attempts int             `json:"attempts,omitempty"`
	Delay    metav1.Duration `json:"delay,omitempty"`
}

// Migrate describes the post-start migration step.
type Migrate struct {
	// Service is the compose service the command runs in. Empty disables
	// migrations.
	Service string `json:"service,omitempty"`
	// Command is the migration command line.
	Command []string `json:"command,omitempty"`
}

// Backup describes database backup behavior.
type Backup struct {
	// Directory is where dump files are written.
	Directory string `json:"directory,omitempty"`
	// Keep is how many dump files the prune step retains.
	Keep int `json:"keep,omitempty"`
}

// Proxy describes reverse-proxy config generation.
type Proxy struct {
	// Template is the path of the proxy config template.
	Template string `json:"template,omitempty"`
	// Output is where the rendered config is written.
	Output string `json:"output,omitempty"`
	// Domain is substituted for ${DOMAIN} in the template.
	Domain string `json:"domain,omitempty"`
}
