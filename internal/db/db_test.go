package db_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrsandeep/mango-easyyomi/internal/db"
	"github.com/vrsandeep/mango-easyyomi/internal/testutil"
)

func TestMigrationsCreatePreferenceTable(t *testing.T) {
	database := testutil.SetupTestDB(t)

	var name string
	err := database.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='source_preferences'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "source_preferences", name)
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "easyyomi.db")

	database, err := db.InitDB(path)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, db.RunMigrations(database))
	// A second run finds nothing to apply and must not fail.
	require.NoError(t, db.RunMigrations(database))

	_, err = database.Exec("INSERT INTO source_preferences (namespace, key, value) VALUES ('source_1', 'Address', 'http://localhost')")
	require.NoError(t, err)

	_, err = database.Exec("INSERT INTO source_preferences (namespace, key, value) VALUES ('source_1', 'Address', 'http://other')")
	assert.Error(t, err, "namespace/key must be unique")
}
