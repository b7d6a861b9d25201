// Package client provides container tool clients.
//
// This package contains the wrappers geostack uses to drive Docker:
//
//   - compose: Docker Compose lifecycle operations via the compose CLI plugin
//   - docker: Docker Engine API operations for container inspection
//
// Docker is the only external dependency geostack requires; everything else
// runs through these clients.
package client
