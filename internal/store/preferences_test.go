package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrsandeep/mango-easyyomi/internal/store"
	"github.com/vrsandeep/mango-easyyomi/internal/testutil"
)

func TestPreferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	t.Run("Missing key", func(t *testing.T) {
		value, ok, err := s.GetPreference("source_1", "Address")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("Set and overwrite", func(t *testing.T) {
		require.NoError(t, s.SetPreference("source_1", "Address", "http://10.0.0.5:8080"))
		require.NoError(t, s.SetPreference("source_1", "Address", "http://10.0.0.6:8080"))

		value, ok, err := s.GetPreference("source_1", "Address")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "http://10.0.0.6:8080", value)
	})

	t.Run("Namespaces are isolated", func(t *testing.T) {
		require.NoError(t, s.SetPreference("source_2", "Address", "http://other:9000"))

		value, _, err := s.GetPreference("source_1", "Address")
		require.NoError(t, err)
		assert.Equal(t, "http://10.0.0.6:8080", value)

		value, _, err = s.GetPreference("source_2", "Address")
		require.NoError(t, err)
		assert.Equal(t, "http://other:9000", value)
	})

	t.Run("List and delete", func(t *testing.T) {
		require.NoError(t, s.SetPreference("source_1", "Username", "reader"))

		prefs, err := s.ListPreferences("source_1")
		require.NoError(t, err)
		require.Len(t, prefs, 2)
		assert.Equal(t, "Address", prefs[0].Key)
		assert.Equal(t, "Username", prefs[1].Key)

		require.NoError(t, s.DeletePreference("source_1", "Username"))
		require.NoError(t, s.DeletePreference("source_1", "Username"))

		prefs, err = s.ListPreferences("source_1")
		require.NoError(t, err)
		assert.Len(t, prefs, 1)
	})
}

func TestNamespacedPreferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	prefs := store.New(db).Preferences("source_42")

	value, err := prefs.Get("Username", "username")
	require.NoError(t, err)
	assert.Equal(t, "username", value, "default is returned until something is stored")

	require.NoError(t, prefs.Put("Username", ""))
	value, err = prefs.Get("Username", "username")
	require.NoError(t, err)
	assert.Equal(t, "", value, "an explicitly stored empty string wins over the default")
}
