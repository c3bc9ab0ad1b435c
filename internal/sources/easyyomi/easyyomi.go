// Package easyyomi implements a source for self-hosted Easyyomi comic servers.
// The server exposes series, chapters and pages over a small JSON API and may
// sit behind HTTP Basic authentication.
package easyyomi

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/vrsandeep/mango-easyyomi/internal/models"
)

const (
	sourceName       = "Easyyomi"
	sourceLang       = "all"
	userAgentProduct = "Mihonyomi-Easyyomi"
	logTagBase       = "extension.all.easyyomi"
)

// Options carries what the host provides to every source instance.
type Options struct {
	// Client is the host's generic HTTP client. The source derives its own
	// authenticating client from it.
	Client *http.Client
	// Preferences returns the storage namespace of the source with the given ID.
	Preferences func(sourceID int64) models.Preferences
	// AppVersion is the host version sent in the User-Agent.
	AppVersion string
	// VersionID is the source version folded into the identity key.
	VersionID int
}

// Easyyomi implements models.Source.
type Easyyomi struct {
	id     int64
	cfg    Config
	prefs  models.Preferences
	client *http.Client
	ua     string
	logger *log.Logger
}

// New creates the source instance identified by suffix and loads its settings.
func New(suffix string, opts Options) (*Easyyomi, error) {
	if opts.Preferences == nil {
		return nil, fmt.Errorf("easyyomi: no preference store provided")
	}
	id := DeriveID(suffix, opts.VersionID)
	prefs := opts.Preferences(id)

	cfg, err := LoadConfig(suffix, prefs)
	if err != nil {
		return nil, err
	}

	tag := logTagBase
	if strings.TrimSpace(suffix) != "" {
		tag += "." + suffix
	}

	ua := userAgentProduct + "/" + opts.AppVersion
	return &Easyyomi{
		id:     id,
		cfg:    cfg,
		prefs:  prefs,
		client: newClient(opts.Client, ua, cfg.Username, cfg.Password),
		ua:     ua,
		logger: log.New(log.Writer(), "["+tag+"] ", log.Flags()),
	}, nil
}

// Info returns static information about this source.
func (s *Easyyomi) Info() models.SourceInfo {
	name := sourceName
	label := s.cfg.DisplayName
	if strings.TrimSpace(label) == "" {
		label = s.cfg.Suffix
	}
	if strings.TrimSpace(label) != "" {
		name += " (" + label + ")"
	}
	return models.SourceInfo{
		ID:             s.id,
		Name:           name,
		Lang:           sourceLang,
		SupportsLatest: true,
	}
}

// Config returns the settings the source was constructed with.
func (s *Easyyomi) Config() Config {
	return s.cfg
}

// BaseURL returns the configured server address without a trailing slash.
func (s *Easyyomi) BaseURL() string {
	return s.cfg.BaseURL
}

// Client returns the authenticating client, for fetching page images. It
// sends the source's User-Agent on every request.
func (s *Easyyomi) Client() *http.Client {
	return s.client
}

// UserAgent returns the User-Agent sent with every request.
func (s *Easyyomi) UserAgent() string {
	return s.ua
}

// FetchPopular lists every series on the server.
func (s *Easyyomi) FetchPopular(ctx context.Context, page int) (*models.MangasPage, error) {
	body, err := s.get(ctx, "popular", "series")
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseSeriesPage(body)
}

// FetchLatest lists every series on the server; it has no recency ordering.
func (s *Easyyomi) FetchLatest(ctx context.Context, page int) (*models.MangasPage, error) {
	body, err := s.get(ctx, "latest", "series")
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseSeriesPage(body)
}

// Search asks the server for series matching query. Filters are ignored and
// a blank query lists every series.
func (s *Easyyomi) Search(ctx context.Context, page int, query string, filters models.FilterList) (*models.MangasPage, error) {
	segments := []string{"search", query}
	if strings.TrimSpace(query) == "" {
		segments = []string{"series"}
	}
	body, err := s.get(ctx, "search", segments...)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseSeriesPage(body)
}

// FetchDetails fetches the series named by manga.Title.
func (s *Easyyomi) FetchDetails(ctx context.Context, manga models.Manga) (*models.Manga, error) {
	body, err := s.get(ctx, "details", "chapters", manga.Title)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseDetails(body)
}

// FetchChapters lists the chapters of the series named by manga.Title.
func (s *Easyyomi) FetchChapters(ctx context.Context, manga models.Manga) ([]models.Chapter, error) {
	body, err := s.get(ctx, "chapters", "chapters", manga.Title)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseChapters(body)
}

// FetchPages lists the pages of a chapter produced by FetchChapters.
func (s *Easyyomi) FetchPages(ctx context.Context, chapter models.Chapter) ([]models.Page, error) {
	body, err := s.get(ctx, "pages", "pages", chapter.URL, chapter.Name)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParsePages(body, s.cfg.BaseURL)
}

// ImageURL is never needed: every page already carries its image URL.
func (s *Easyyomi) ImageURL(ctx context.Context, page models.Page) (string, error) {
	return "", ErrNotUsed
}

// Filters returns the filter list shown on the search screen.
func (s *Easyyomi) Filters() models.FilterList {
	return models.FilterList{models.HeaderFilter("Nothing")}
}

// NewRequest builds a GET for {base}/api/{segments...}. Segments are placed in
// the path verbatim; percent-encoding happens only on the wire.
func (s *Easyyomi) NewRequest(ctx context.Context, segments ...string) (*http.Request, error) {
	if strings.TrimSpace(s.cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}
	u, err := url.Parse(s.cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid address %q: %w", s.cfg.BaseURL, ErrNotConfigured)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/" + strings.Join(segments, "/")
	u.RawPath = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.ua)
	return req, nil
}

// get performs a GET and returns the body of a 2xx response.
func (s *Easyyomi) get(ctx context.Context, op string, segments ...string) (io.ReadCloser, error) {
	req, err := s.NewRequest(ctx, segments...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		s.logger.Printf("%s %s failed: %s", req.Method, req.URL.Redacted(), resp.Status)
		return nil, &HTTPError{
			Op:         op,
			URL:        req.URL.Redacted(),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}
	return resp.Body, nil
}
