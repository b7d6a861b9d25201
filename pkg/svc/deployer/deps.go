package deployer

import (
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/geostack-dev/geostack/pkg/readiness"
)

// hardDependencies builds the dependency list checked before migrations: the
// database, then the cache when enabled.
func (d *Deployer) hardDependencies() []readiness.Dependency {
	deps := []readiness.Dependency{d.databaseDependency()}

	if d.spec.Cache.Enabled {
		cache := d.spec.Cache
		deps = append(deps, readiness.Dependency{
			Name:     "cache (" + cache.Service + ")",
			Hard:     true,
			Probe:    readiness.NewRedisProbe(cache.Addr),
			Attempts: cache.Attempts,
			Delay:    cache.Delay.Duration,
			LogHint:  d.compose.LogHint(cache.Service),
		})
	}

	return deps
}

func (d *Deployer) databaseDependency() readiness.Dependency {
	dbSpec := d.spec.Database

	return readiness.Dependency{
		Name:     "database (" + dbSpec.Service + ")",
		Hard:     true,
		Probe:    readiness.NewPostgresProbe(d.databaseDSN()),
		Attempts: dbSpec.Attempts,
		Delay:    dbSpec.Delay.Duration,
		LogHint:  d.compose.LogHint(dbSpec.Service),
	}
}

// serviceDependencies builds HTTP probes for the configured services, in
// config order.
func (d *Deployer) serviceDependencies() []readiness.Dependency {
	deps := make([]readiness.Dependency, 0, len(d.spec.Services))

	for _, svc := range d.spec.Services {
		deps = append(deps, readiness.Dependency{
			Name:     svc.Name,
			Hard:     svc.Hard,
			Probe:    readiness.NewHTTPProbe(svc.URL, nil),
			Attempts: svc.Attempts,
			Delay:    svc.Delay.Duration,
			LogHint:  d.compose.LogHint(svc.Name),
		})
	}

	return deps
}

// databaseDSN assembles a lib/pq connection string from the database spec and
// the rendered environment.
func (d *Deployer) databaseDSN() string {
	dbSpec := d.spec.Database

	password := d.env[dbSpec.PasswordEnv]
	if password == "" {
		password = os.Getenv(dbSpec.PasswordEnv)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dbSpec.User, password),
		Host:     net.JoinHostPort(dbSpec.Host, strconv.Itoa(int(dbSpec.Port))),
		Path:     dbSpec.Name,
		RawQuery: "sslmode=disable&connect_timeout=3",
	}

	return dsn.String()
}
