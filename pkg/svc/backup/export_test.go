package backup

import "time"

// SetNow replaces the clock used for backup filenames in tests.
func (m *Manager) SetNow(now func() time.Time) {
	m.now = now
}
