package easyyomi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrsandeep/mango-easyyomi/internal/models"
	"github.com/vrsandeep/mango-easyyomi/internal/testutil"
)

func newTestSource(t *testing.T, suffix string, values map[string]string) *Easyyomi {
	t.Helper()
	prefs := testutil.NewMemoryPreferences(values)
	src, err := New(suffix, Options{
		Client:      &http.Client{},
		Preferences: func(int64) models.Preferences { return prefs },
		AppVersion:  "1.2.3",
		VersionID:   1,
	})
	require.NoError(t, err)
	return src
}

func TestEasyyomiProvider(t *testing.T) {
	server := testutil.NewComicServer(t, "reader", "secret")
	src := newTestSource(t, "", map[string]string{
		PrefAddress:  server.URL + "/",
		PrefUsername: "reader",
		PrefPassword: "secret",
	})
	ctx := context.Background()

	t.Run("FetchPopular", func(t *testing.T) {
		page, err := src.FetchPopular(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, &models.MangasPage{
			Mangas:      []models.Manga{{Title: "One Piece"}, {Title: "Blame!"}},
			HasNextPage: false,
		}, page)
	})

	t.Run("FetchLatest", func(t *testing.T) {
		page, err := src.FetchLatest(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, page.Mangas, 2)
	})

	t.Run("Search", func(t *testing.T) {
		page, err := src.Search(ctx, 1, "Blame!", src.Filters())
		require.NoError(t, err)
		require.Len(t, page.Mangas, 1)
		assert.Equal(t, "Blame!", page.Mangas[0].Title)
	})

	t.Run("Search with blank query lists everything", func(t *testing.T) {
		page, err := src.Search(ctx, 1, " ", nil)
		require.NoError(t, err)
		assert.Len(t, page.Mangas, 2)
	})

	t.Run("FetchChapters", func(t *testing.T) {
		chapters, err := src.FetchChapters(ctx, models.Manga{Title: "One Piece"})
		require.NoError(t, err)
		assert.Equal(t, []models.Chapter{
			{Name: "Ch 1", URL: "One Piece"},
			{Name: "Ch 2", URL: "One Piece"},
		}, chapters)
	})

	t.Run("FetchPages", func(t *testing.T) {
		pages, err := src.FetchPages(ctx, models.Chapter{Name: "Ch 1", URL: "One Piece"})
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, 0, pages[0].Index)
		assert.Equal(t, server.URL+"/api/One Piece/Ch 1/001.jpg", pages[0].ImageURL)
		assert.Equal(t, 1, pages[1].Index)
		assert.Equal(t, server.URL+"/api/One Piece/Ch 1/002%20b.jpg", pages[1].ImageURL)
	})

	t.Run("Page images load through the source client", func(t *testing.T) {
		pages, err := src.FetchPages(ctx, models.Chapter{Name: "Ch 1", URL: "One Piece"})
		require.NoError(t, err)

		req, err := http.NewRequest(http.MethodGet, pages[1].ImageURL, nil)
		require.NoError(t, err)
		resp, err := src.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		hits := server.Hits()
		last := hits[len(hits)-1]
		assert.Equal(t, "/api/One%20Piece/Ch%201/002%20b.jpg", last.Path)
		assert.Equal(t, "Mihonyomi-Easyyomi/1.2.3", last.UserAgent)
	})

	t.Run("Unknown series surfaces the HTTP status", func(t *testing.T) {
		_, err := src.FetchChapters(ctx, models.Manga{Title: "Missing"})
		var httpErr *HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
		assert.Equal(t, "chapters", httpErr.Op)
	})

	t.Run("ImageURL is not used", func(t *testing.T) {
		_, err := src.ImageURL(ctx, models.Page{})
		assert.ErrorIs(t, err, ErrNotUsed)
		assert.ErrorIs(t, err, errors.ErrUnsupported)
	})

	t.Run("Requests carry the User-Agent and authenticate after the challenge", func(t *testing.T) {
		hits := server.Hits()
		require.NotEmpty(t, hits)
		assert.Equal(t, "/api/series", hits[0].Path)
		assert.Empty(t, hits[0].Authorization)
		assert.Equal(t, http.StatusUnauthorized, hits[0].Status)
		assert.NotEmpty(t, hits[1].Authorization)
		for _, h := range hits {
			assert.Equal(t, "Mihonyomi-Easyyomi/1.2.3", h.UserAgent)
		}
	})
}

func TestEasyyomiWrongCredentials(t *testing.T) {
	server := testutil.NewComicServer(t, "reader", "secret")
	src := newTestSource(t, "", map[string]string{PrefAddress: server.URL})

	_, err := src.FetchPopular(context.Background(), 1)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Len(t, server.Hits(), 2, "exactly one retry")
}

func TestFetchDetails(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		w.Write([]byte(`{"name":"One Piece","lastModified":null}`))
	}))
	defer srv.Close()
	src := newTestSource(t, "", map[string]string{PrefAddress: srv.URL})

	manga, err := src.FetchDetails(context.Background(), models.Manga{Title: "One Piece"})
	require.NoError(t, err)
	assert.Equal(t, "One Piece", manga.Title)
	assert.Equal(t, "/api/chapters/One%20Piece", path)
}

func TestNewRequest(t *testing.T) {
	src := newTestSource(t, "", map[string]string{PrefAddress: "http://10.0.0.5:8080/"})

	t.Run("Segments are escaped only on the wire", func(t *testing.T) {
		req, err := src.NewRequest(context.Background(), "pages", "Naruto #1", "Ch 1?")
		require.NoError(t, err)
		assert.Equal(t, "/api/pages/Naruto #1/Ch 1?", req.URL.Path)
		assert.Equal(t, "http://10.0.0.5:8080/api/pages/Naruto%20%231/Ch%201%3F", req.URL.String())
		assert.Equal(t, "Mihonyomi-Easyyomi/1.2.3", req.Header.Get("User-Agent"))
	})

	t.Run("Unconfigured address", func(t *testing.T) {
		empty := newTestSource(t, "", nil)
		_, err := empty.NewRequest(context.Background(), "series")
		assert.ErrorIs(t, err, ErrNotConfigured)

		_, err = empty.FetchPopular(context.Background(), 1)
		assert.ErrorIs(t, err, ErrNotConfigured)

		bad := newTestSource(t, "", map[string]string{PrefAddress: "nas.local"})
		_, err = bad.NewRequest(context.Background(), "series")
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestInfo(t *testing.T) {
	t.Run("Default instance", func(t *testing.T) {
		info := newTestSource(t, "", nil).Info()
		assert.Equal(t, DeriveID("", 1), info.ID)
		assert.Equal(t, "Easyyomi", info.Name)
		assert.Equal(t, "all", info.Lang)
		assert.True(t, info.SupportsLatest)
	})

	t.Run("Suffix names the instance", func(t *testing.T) {
		assert.Equal(t, "Easyyomi (2)", newTestSource(t, "2", nil).Info().Name)
	})

	t.Run("Display name overrides suffix but not ID", func(t *testing.T) {
		src := newTestSource(t, "2", map[string]string{PrefDisplayName: "Attic"})
		assert.Equal(t, "Easyyomi (Attic)", src.Info().Name)
		assert.Equal(t, DeriveID("2", 1), src.Info().ID)
	})
}

func TestFilters(t *testing.T) {
	filters := newTestSource(t, "", nil).Filters()
	assert.Equal(t, models.FilterList{{Kind: models.FilterHeader, Name: "Nothing"}}, filters)
}

func TestNewRequiresPreferences(t *testing.T) {
	_, err := New("", Options{})
	assert.Error(t, err)
}
