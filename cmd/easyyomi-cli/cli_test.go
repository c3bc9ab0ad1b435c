package main

import (
	"bytes"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrsandeep/mango-easyyomi/internal/config"
	"github.com/vrsandeep/mango-easyyomi/internal/core"
	"github.com/vrsandeep/mango-easyyomi/internal/db"
	"github.com/vrsandeep/mango-easyyomi/internal/sources/easyyomi"
	"github.com/vrsandeep/mango-easyyomi/internal/testutil"
)

// testOpener returns an app factory backed by one sqlite file, so settings
// written by one command are seen by the next.
func testOpener(t *testing.T) func() (*core.App, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.db")
	return func() (*core.App, error) {
		cfg := &config.Config{}
		cfg.Database.Path = path
		cfg.App.Version = "1.0.0"
		cfg.Source.VersionID = 1
		cfg.Source.Suffixes = []string{"", "2"}
		cfg.HTTP.Timeout = 5

		database, err := db.InitDB(path)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(database); err != nil {
			database.Close()
			return nil, err
		}
		return core.NewWithDB(cfg, database), nil
	}
}

func run(t *testing.T, open func() (*core.App, error), args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(open)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI(t *testing.T) {
	open := testOpener(t)
	comics := testutil.NewComicServer(t, "reader", "secret")

	for key, value := range map[string]string{
		easyyomi.PrefAddress:  comics.URL,
		easyyomi.PrefUsername: "reader",
		easyyomi.PrefPassword: "secret",
	} {
		_, err := run(t, open, "settings", "set", key, value)
		require.NoError(t, err)
	}

	t.Run("sources", func(t *testing.T) {
		out, err := run(t, open, "sources")
		require.NoError(t, err)
		assert.Contains(t, out, strconv.FormatInt(easyyomi.DeriveID("", 1), 10))
		assert.Contains(t, out, comics.URL)
		assert.Contains(t, out, "Easyyomi (2)")
		assert.Contains(t, out, "not configured")
	})

	t.Run("id", func(t *testing.T) {
		out, err := run(t, open, "id", "3")
		require.NoError(t, err)
		assert.Equal(t, "3719949730731674660\n", out)
	})

	t.Run("popular", func(t *testing.T) {
		out, err := run(t, open, "popular")
		require.NoError(t, err)
		assert.Contains(t, out, "One Piece")
		assert.Contains(t, out, "Blame!")
	})

	t.Run("search", func(t *testing.T) {
		out, err := run(t, open, "search", "Blame!")
		require.NoError(t, err)
		assert.Contains(t, out, "Blame!")
		assert.NotContains(t, out, "One Piece")
	})

	t.Run("chapters and pages", func(t *testing.T) {
		out, err := run(t, open, "chapters", "One Piece")
		require.NoError(t, err)
		assert.Contains(t, out, "Ch 1")
		assert.Contains(t, out, "Ch 2")

		out, err = run(t, open, "pages", "One Piece", "Ch 1")
		require.NoError(t, err)
		assert.Contains(t, out, comics.URL+"/api/One Piece/Ch 1/002%20b.jpg")
	})

	t.Run("settings hides the password", func(t *testing.T) {
		out, err := run(t, open, "settings")
		require.NoError(t, err)
		assert.Contains(t, out, comics.URL)
		assert.NotContains(t, out, "secret")
	})

	t.Run("settings set rejects a malformed address", func(t *testing.T) {
		_, err := run(t, open, "settings", "set", easyyomi.PrefAddress, "not a url")
		assert.Error(t, err)

		_, err = run(t, open, "settings", "set", "Nope", "x")
		assert.Error(t, err)
	})

	t.Run("unconfigured instance", func(t *testing.T) {
		_, err := run(t, open, "--suffix", "2", "popular")
		assert.ErrorIs(t, err, easyyomi.ErrNotConfigured)
	})
}
