package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// LastNameKey is the settings key of the remembered display name.
const LastNameKey = "lastName"

// NameStore reads and writes one remembered display name.
type NameStore struct {
	store *Store
	key   string
}

// Names returns the name slot for scope. An empty scope is the local user;
// SSH sessions use their account name so users do not share a slot.
func (s *Store) Names(scope string) *NameStore {
	key := LastNameKey
	if scope != "" {
		key = LastNameKey + ":" + scope
	}
	return &NameStore{store: s, key: key}
}

// LastName returns the remembered name, or "" if none was saved.
func (n *NameStore) LastName() (string, error) {
	var name string
	err := n.store.db.QueryRow("SELECT value FROM settings WHERE key = ?", n.key).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot read %s: %w", n.key, err)
	}
	return name, nil
}

// SetLastName remembers name.
func (n *NameStore) SetLastName(name string) error {
	_, err := n.store.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		n.key, name, n.store.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", n.key, err)
	}
	return nil
}

// ForgetLastName removes the remembered name.
func (n *NameStore) ForgetLastName() error {
	if _, err := n.store.db.Exec("DELETE FROM settings WHERE key = ?", n.key); err != nil {
		return fmt.Errorf("storage: cannot delete %s: %w", n.key, err)
	}
	return nil
}
