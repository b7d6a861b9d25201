// Package svc provides service layer components for geostack.
//
// This package contains the business logic layer that coordinates between
// the CLI commands and the underlying clients/infrastructure.
//
// Subpackages:
//   - backup: Database dump creation, listing, and retention pruning
//   - deployer: The sequential deployment pipeline
package svc
