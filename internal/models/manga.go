package models

// StatusUnknown is the Manga.Status of a title whose publication state the
// source cannot tell.
const StatusUnknown = 0

// Manga is a single title as the host sees it.
type Manga struct {
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Artist       string   `json:"artist,omitempty"`
	Author       string   `json:"author,omitempty"`
	Description  string   `json:"description,omitempty"`
	Genre        []string `json:"genre,omitempty"`
	Status       int      `json:"status"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	Initialized  bool     `json:"initialized"`
}

// MangasPage is one page of a listing.
type MangasPage struct {
	Mangas      []Manga `json:"mangas"`
	HasNextPage bool    `json:"has_next_page"`
}

// Chapter is a readable unit of a Manga. URL is an opaque identifier chosen
// by the source and handed back to it when pages are requested.
type Chapter struct {
	URL           string  `json:"url"`
	Name          string  `json:"name"`
	DateUpload    int64   `json:"date_upload"`
	ChapterNumber float64 `json:"chapter_number"`
	Scanlator     string  `json:"scanlator,omitempty"`
}

// Page is one image of a Chapter. Index is zero-based and dense.
type Page struct {
	Index    int    `json:"index"`
	URL      string `json:"url,omitempty"`
	ImageURL string `json:"image_url"`
}
