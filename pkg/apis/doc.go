// Package apis provides API type definitions for geostack resources.
//
// This package contains versioned API types following Kubernetes API conventions:
//
//   - stack: Stack configuration types for the geostack.yaml declarative configuration
//
// The API types are designed to be serializable to YAML and support
// declarative configuration workflows.
package apis
