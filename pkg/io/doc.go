// Package io provides utilities for input and output operations related to
// configuration management.
//
// Subpackages:
//   - configmanager: Configuration loading and management
//   - envfile: Environment file rendering from example templates
//   - generator: Template-based file generation
//   - secrets: Docker secret file creation
package io
