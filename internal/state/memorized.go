package state

import "time"

// SetMemorized marks page as known by heart, or clears the mark. Marking an
// already memorized page keeps its original date.
func (m *Manager) SetMemorized(page int, memorized bool) error {
	if !memorized {
		_, err := m.db.Exec(`DELETE FROM memorized_pages WHERE page = ?`, page)
		return err
	}
	_, err := m.db.Exec(`
		INSERT INTO memorized_pages (page, memorized_at) VALUES (?, ?)
		ON CONFLICT(page) DO NOTHING
	`, page, time.Now().Unix())
	return err
}

func (m *Manager) IsMemorized(page int) (bool, error) {
	var n int
	err := m.db.QueryRow(`SELECT COUNT(*) FROM memorized_pages WHERE page = ?`, page).Scan(&n)
	return n > 0, err
}

// MemorizedPages returns how many pages are marked memorized.
func (m *Manager) MemorizedPages() (int, error) {
	var n int
	err := m.db.QueryRow(`SELECT COUNT(*) FROM memorized_pages`).Scan(&n)
	return n, err
}
