package v1alpha1

import (
	"errors"
	"fmt"
)

// Validation sentinels.
var (
	// ErrNameRequired is returned when the stack name is empty.
	ErrNameRequired = errors.New("spec.name is required")
	// ErrComposeFileRequired is returned when the compose file path is empty.
	ErrComposeFileRequired = errors.New("spec.composeFile is required")
	// ErrServiceIncomplete is returned when a service entry lacks a name or URL.
	ErrServiceIncomplete = errors.New("service entries require name and url")
	// ErrMigrateCommandMissing is returned when a migrate service is set
	// without a command.
	ErrMigrateCommandMissing = errors.New("spec.migrate.command is required when spec.migrate.service is set")
)

// Validate checks the spec for configuration mistakes that would otherwise
// surface mid-deployment.
func (s *Stack) Validate() error {
	if s.Spec.Name == "" {
		return ErrNameRequired
	}

	if s.Spec.ComposeFile == "" {
		return ErrComposeFileRequired
	}

	for _, svc := range s.Spec.Services {
		if svc.Name == "" || svc.URL == "" {
			return fmt.Errorf("%w: %+v", ErrServiceIncomplete, svc)
		}
	}

	if s.Spec.Migrate.Service != "" && len(s.Spec.Migrate.Command) == 0 {
		return ErrMigrateCommandMissing
	}

	return nil
}
