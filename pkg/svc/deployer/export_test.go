package deployer

import "github.com/geostack-dev/geostack/pkg/readiness"

// SetDependencyBuilders replaces the probe construction for tests.
func (d *Deployer) SetDependencyBuilders(
	hard func() []readiness.Dependency,
	services func() []readiness.Dependency,
) {
	if hard != nil {
		d.buildHardDeps = hard
	}

	if services != nil {
		d.buildServiceDeps = services
	}
}

// DatabaseDSN exposes DSN assembly for tests.
func (d *Deployer) DatabaseDSN() string {
	return d.databaseDSN()
}

// HardDependencies exposes the default hard dependency construction for tests.
func (d *Deployer) HardDependencies() []readiness.Dependency {
	return d.hardDependencies()
}

// ServiceDependencies exposes the default service dependency construction for tests.
func (d *Deployer) ServiceDependencies() []readiness.Dependency {
	return d.serviceDependencies()
}
