package models

import "context"

// SourceInfo contains static information about a source.
type SourceInfo struct {
	ID             int64  `json:"id,string"`
	Name           string `json:"name"`
	Lang           string `json:"lang"`
	SupportsLatest bool   `json:"supports_latest"`
}

// Preferences is the durable key/value storage a source reads its settings
// from. Implementations are scoped to a single source instance.
type Preferences interface {
	Get(key, def string) (string, error)
	Put(key, value string) error
}

// Source defines the contract every content source must implement. Each
// method maps to one host operation and performs at most one logical request.
type Source interface {
	Info() SourceInfo
	FetchPopular(ctx context.Context, page int) (*MangasPage, error)
	FetchLatest(ctx context.Context, page int) (*MangasPage, error)
	Search(ctx context.Context, page int, query string, filters FilterList) (*MangasPage, error)
	FetchDetails(ctx context.Context, manga Manga) (*Manga, error)
	FetchChapters(ctx context.Context, manga Manga) ([]Chapter, error)
	FetchPages(ctx context.Context, chapter Chapter) ([]Page, error)
	// ImageURL resolves a page whose ImageURL is not known yet.
	ImageURL(ctx context.Context, page Page) (string, error)
	Filters() FilterList
}
