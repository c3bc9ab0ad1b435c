package easyyomi

import (
	"encoding/json"
	"io"
	"net/url"
	"strings"

	"github.com/vrsandeep/mango-easyyomi/internal/models"
)

func decode(op string, r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return &DecodeError{Op: op, Cause: err}
	}
	return nil
}

// ParseSeriesPage maps a JSON array of series into a listing. The server has
// no pagination, so HasNextPage is always false.
func ParseSeriesPage(r io.Reader) (*models.MangasPage, error) {
	var series []SeriesDto
	if err := decode("series", r, &series); err != nil {
		return nil, err
	}

	mangas := make([]models.Manga, 0, len(series))
	for _, s := range series {
		mangas = append(mangas, models.Manga{Title: s.Name})
	}
	return &models.MangasPage{Mangas: mangas, HasNextPage: false}, nil
}

// ParseDetails maps a single series object. The endpoint carries no metadata
// beyond the name, so the status is unknown and every other field stays empty.
func ParseDetails(r io.Reader) (*models.Manga, error) {
	var series SeriesDto
	if err := decode("details", r, &series); err != nil {
		return nil, err
	}
	return &models.Manga{Title: series.Name, Status: models.StatusUnknown}, nil
}

// ParseChapters maps a JSON array of chapters, keeping server order. The
// series name goes into Chapter.URL so the page request can find it again.
func ParseChapters(r io.Reader) ([]models.Chapter, error) {
	var chapters []ChapterDto
	if err := decode("chapters", r, &chapters); err != nil {
		return nil, err
	}

	out := make([]models.Chapter, 0, len(chapters))
	for _, c := range chapters {
		out = append(out, models.Chapter{
			Name: c.Name,
			URL:  c.SeriesName,
		})
	}
	return out, nil
}

// ParsePages maps a pages object into pages whose index follows the array
// order and whose image URL points at baseURL.
func ParsePages(r io.Reader, baseURL string) ([]models.Page, error) {
	var dto PagesDto
	if err := decode("pages", r, &dto); err != nil {
		return nil, err
	}

	pages := make([]models.Page, 0, len(dto.Pages))
	for i, file := range dto.Pages {
		pages = append(pages, models.Page{
			Index:    i,
			ImageURL: imageURL(baseURL, dto.SeriesName, dto.ChapterName, file),
		})
	}
	return pages, nil
}

func imageURL(baseURL, series, chapter, file string) string {
	return baseURL + "/api/" + series + "/" + chapter + "/" + escapeFilename(file)
}

// escapeFilename percent-encodes every byte of the UTF-8 filename outside
// A-Z a-z 0-9 '-' '_' '.' '~'. Spaces become %20, never '+'.
func escapeFilename(name string) string {
	return strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
}
