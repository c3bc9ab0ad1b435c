package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Hit records one request received by a ComicServer.
type Hit struct {
	Path          string
	Authorization string
	UserAgent     string
	Status        int
}

// ComicServer is an in-process stand-in for an Easyyomi server. When Username
// is set every request must carry matching Basic credentials.
type ComicServer struct {
	*httptest.Server

	Username string
	Password string

	// Series maps a series name to its chapters, and each chapter to its pages.
	Series map[string]map[string][]string
	// Order lists series and chapter names in the order the server returns them.
	Order map[string][]string

	mu   sync.Mutex
	hits []Hit
}

// NewComicServer starts a server with a small fixed library. Pass an empty
// username to disable authentication.
func NewComicServer(t *testing.T, username, password string) *ComicServer {
	t.Helper()

	cs := &ComicServer{
		Username: username,
		Password: password,
		Series: map[string]map[string][]string{
			"One Piece": {
				"Ch 1": {"001.jpg", "002 b.jpg"},
				"Ch 2": {"001.jpg"},
			},
			"Blame!": {
				"Vol 1": {"cover.png"},
			},
		},
		Order: map[string][]string{
			"":          {"One Piece", "Blame!"},
			"One Piece": {"Ch 1", "Ch 2"},
			"Blame!":    {"Vol 1"},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/series", cs.handleSeries)
	mux.HandleFunc("GET /api/search/{query}", cs.handleSearch)
	mux.HandleFunc("GET /api/chapters/{series}", cs.handleChapters)
	mux.HandleFunc("GET /api/pages/{series}/{chapter}", cs.handlePages)
	mux.HandleFunc("GET /api/{series}/{chapter}/{file}", cs.handleImage)

	cs.Server = httptest.NewServer(cs.authenticate(mux))
	t.Cleanup(cs.Close)
	return cs
}

// Hits returns a copy of every request received so far.
func (cs *ComicServer) Hits() []Hit {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return append([]Hit(nil), cs.hits...)
}

func (cs *ComicServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit := Hit{
			Path:          r.URL.EscapedPath(),
			Authorization: r.Header.Get("Authorization"),
			UserAgent:     r.Header.Get("User-Agent"),
			Status:        http.StatusOK,
		}
		if cs.Username != "" {
			user, pass, ok := r.BasicAuth()
			if !ok || user != cs.Username || pass != cs.Password {
				hit.Status = http.StatusUnauthorized
				cs.record(hit)
				w.Header().Set("WWW-Authenticate", `Basic realm="easyyomi"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		cs.record(hit)
		next.ServeHTTP(w, r)
	})
}

func (cs *ComicServer) record(h Hit) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.hits = append(cs.hits, h)
}

type seriesJSON struct {
	Name         string  `json:"name"`
	LastModified *string `json:"lastModified"`
}

type chapterJSON struct {
	SeriesName   string  `json:"seriesName"`
	Name         string  `json:"name"`
	LastModified *string `json:"lastModified"`
}

func (cs *ComicServer) handleSeries(w http.ResponseWriter, r *http.Request) {
	out := []seriesJSON{}
	for _, name := range cs.Order[""] {
		out = append(out, seriesJSON{Name: name})
	}
	writeJSON(w, out)
}

func (cs *ComicServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.PathValue("query")
	out := []seriesJSON{}
	for _, name := range cs.Order[""] {
		if name == query {
			out = append(out, seriesJSON{Name: name})
		}
	}
	writeJSON(w, out)
}

func (cs *ComicServer) handleChapters(w http.ResponseWriter, r *http.Request) {
	series := r.PathValue("series")
	if _, ok := cs.Series[series]; !ok {
		http.NotFound(w, r)
		return
	}
	out := []chapterJSON{}
	for _, name := range cs.Order[series] {
		out = append(out, chapterJSON{SeriesName: series, Name: name})
	}
	writeJSON(w, out)
}

func (cs *ComicServer) handlePages(w http.ResponseWriter, r *http.Request) {
	series, chapter := r.PathValue("series"), r.PathValue("chapter")
	pages, ok := cs.Series[series][chapter]
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, map[string]any{
		"seriesName":  series,
		"chapterName": chapter,
		"pages":       pages,
	})
}

func (cs *ComicServer) handleImage(w http.ResponseWriter, r *http.Request) {
	series, chapter, file := r.PathValue("series"), r.PathValue("chapter"), r.PathValue("file")
	for _, p := range cs.Series[series][chapter] {
		if p == file {
			w.Header().Set("Content-Type", "image/jpeg")
			fmt.Fprintf(w, "image:%s/%s/%s", series, chapter, file)
			return
		}
	}
	http.NotFound(w, r)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
