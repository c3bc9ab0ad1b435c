package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vrsandeep/mango-easyyomi/internal/models"
)

// Preference is a single stored key/value pair.
type Preference struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetPreference returns the value stored under namespace/key. The boolean is
// false when nothing has been stored yet.
func (s *Store) GetPreference(namespace, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM source_preferences WHERE namespace = ? AND key = ?",
		namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s/%s: %w", namespace, key, err)
	}
	return value, true, nil
}

// SetPreference inserts or replaces the value stored under namespace/key.
func (s *Store) SetPreference(namespace, key, value string) error {
	query := `
		INSERT INTO source_preferences (namespace, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at;
	`
	if _, err := s.db.Exec(query, namespace, key, value, time.Now()); err != nil {
		return fmt.Errorf("set preference %s/%s: %w", namespace, key, err)
	}
	return nil
}

// DeletePreference removes namespace/key. Deleting a missing key is not an error.
func (s *Store) DeletePreference(namespace, key string) error {
	_, err := s.db.Exec("DELETE FROM source_preferences WHERE namespace = ? AND key = ?", namespace, key)
	if err != nil {
		return fmt.Errorf("delete preference %s/%s: %w", namespace, key, err)
	}
	return nil
}

// ListPreferences returns every pair stored in a namespace, ordered by key.
func (s *Store) ListPreferences(namespace string) ([]Preference, error) {
	rows, err := s.db.Query(
		"SELECT key, value, updated_at FROM source_preferences WHERE namespace = ? ORDER BY key",
		namespace,
	)
	if err != nil {
		return nil, fmt.Errorf("list preferences %s: %w", namespace, err)
	}
	defer rows.Close()

	var prefs []Preference
	for rows.Next() {
		var p Preference
		if err := rows.Scan(&p.Key, &p.Value, &p.UpdatedAt); err != nil {
			return nil, err
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}

// Preferences returns a view of one namespace that satisfies models.Preferences.
func (s *Store) Preferences(namespace string) models.Preferences {
	return &namespacedPreferences{store: s, namespace: namespace}
}

type namespacedPreferences struct {
	store     *Store
	namespace string
}

func (p *namespacedPreferences) Get(key, def string) (string, error) {
	value, ok, err := p.store.GetPreference(p.namespace, key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return value, nil
}

func (p *namespacedPreferences) Put(key, value string) error {
	return p.store.SetPreference(p.namespace, key, value)
}
