package v1alpha1

import (
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Default values applied by the constructors and the configuration manager.
const (
	// DefaultAttempts is the per-dependency attempt budget.
	DefaultAttempts = 30
	// DefaultDelay is the fixed wait between readiness attempts.
	DefaultDelay = 2 * time.Second
	// DefaultReportEvery is the progress reporting interval, in attempts.
	DefaultReportEvery = 10
	// DefaultComposeFile is the compose file path.
	DefaultComposeFile = "docker-compose.yml"
	// DefaultEnvFile is the rendered environment file path.
	DefaultEnvFile = ".env"
	// DefaultEnvTemplate is the environment template path.
	DefaultEnvTemplate = ".env.example"
	// DefaultDatabasePort is the published database port.
	DefaultDatabasePort int32 = 5432
	// DefaultBackupDirectory is where database dumps are written.
	DefaultBackupDirectory = "backups"
	// DefaultBackupKeep is how many dumps the prune step retains.
	DefaultBackupKeep = 7
)

// NewStack creates a Stack with the type metadata set and defaulted spec.
func NewStack() *Stack {
	return &Stack{
		TypeMeta: metav1.TypeMeta{
			Kind:       Kind,
			APIVersion: APIVersion,
		},
		Spec: NewSpec(),
	}
}

// NewSpec creates a Spec with default values.
func NewSpec() Spec {
	return Spec{
		Name:        "",
		ComposeFile: DefaultComposeFile,
		EnvFile:     DefaultEnvFile,
		EnvTemplate: DefaultEnvTemplate,
		ReportEvery: DefaultReportEvery,
		Database:    NewDatabase(),
		Cache:       NewCache(),
		Backup:      NewBackup(),
	}
}

// NewDatabase creates a Database with default values.
func NewDatabase() Database {
	return Database{
		Service:     "db",
		Host:        "localhost",
		Port:        DefaultDatabasePort,
		Name:        "geostack",
		User:        "geostack",
		PasswordEnv: "DB_PASSWORD",
		Attempts:    DefaultAttempts,
		Delay:       metav1.Duration{Duration: DefaultDelay},
	}
}

// NewCache creates a Cache with default values. The cache is disabled until
// enabled in config.
func NewCache() Cache {
	return Cache{
		Enabled:  false,
		Service:  "redis",
		Addr:     "localhost:6379",
		Attempts: DefaultAttempts,
		Delay:    metav1.Duration{Duration: DefaultDelay},
	}
}

// NewBackup creates a Backup with default values.
func NewBackup() Backup {
	return Backup{
		Directory: DefaultBackupDirectory,
		Keep:      DefaultBackupKeep,
	}
}
