// Package utils provides utility packages for common operations.
//
// This package contains subpackages with utility functions used across
// the geostack codebase:
//
//   - envvar: ${VAR} placeholder expansion
//   - notify: Formatted message display with symbols, colors, and timing
//   - timer: Execution time tracking for single and multi-stage operations
//
// These utilities are designed to be simple, focused, and reusable across
// different parts of the application.
package utils
