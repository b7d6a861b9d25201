// Package backup creates and prunes database dump files.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/geostack-dev/geostack/pkg/apis/stack/v1alpha1"
	"github.com/geostack-dev/geostack/pkg/client/compose"
)

const (
	filePermissions = 0o600
	dirPermissions  = 0o750

	timestampLayout = "20060102-150405"
	dumpSuffix      = ".sql"
)

// Manager creates database dumps through compose exec and applies the
// retention policy.
type Manager struct {
	database v1alpha1.Database
	policy   v1alpha1.Backup
	compose  compose.Client

	// now is swappable for deterministic filenames in tests.
	now func() time.Time
}

// NewManager creates a backup manager for the given stack configuration.
func NewManager(
	database v1alpha1.Database,
	policy v1alpha1.Backup,
	composeClient compose.Client,
) *Manager {
	return &Manager{
		database: database,
		policy:   policy,
		compose:  composeClient,
		now:      time.Now,
	}
}

// Create dumps the database into the backup directory and returns the path of
// the written file.
func (m *Manager) Create(ctx context.Context) (string, error) {
	err := os.MkdirAll(m.policy.Directory, dirPermissions)
	if err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	dump, err := m.compose.ExecOutput(ctx, m.database.Service, []string{
		"pg_dump",
		"--username", m.database.User,
		"--dbname", m.database.Name,
	})
	if err != nil {
		return "", fmt.Errorf("dump database %s: %w", m.database.Name, err)
	}

	name := fmt.Sprintf("%s-%s%s", m.database.Name, m.now().Format(timestampLayout), dumpSuffix)
	path := filepath.Join(m.policy.Directory, name)

	err = os.WriteFile(path, dump, filePermissions)
	if err != nil {
		return "", fmt.Errorf("write backup %s: %w", path, err)
	}

	return path, nil
}

// List returns existing dump files sorted newest first.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.policy.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	var dumps []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), dumpSuffix) {
			continue
		}

		dumps = append(dumps, filepath.Join(m.policy.Directory, entry.Name()))
	}

	// Timestamped names sort lexically; newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(dumps)))

	return dumps, nil
}

// Prune removes dump files beyond the configured keep count, oldest first,
// and returns the removed paths. A non-positive keep count disables pruning.
func (m *Manager) Prune() ([]string, error) {
	if m.policy.Keep < 1 {
		return nil, nil
	}

	dumps, err := m.List()
	if err != nil {
		return nil, err
	}

	if len(dumps) <= m.policy.Keep {
		return nil, nil
	}

	var removed []string

	for _, path := range dumps[m.policy.Keep:] {
		err := os.Remove(path)
		if err != nil {
			return removed, fmt.Errorf("remove old backup %s: %w", path, err)
		}

		removed = append(removed, path)
	}

	return removed, nil
}
