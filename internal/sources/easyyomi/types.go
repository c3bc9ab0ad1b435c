package easyyomi

import (
	"encoding/json"
	"errors"
)

// --- Series ---
type SeriesDto struct {
	Name         string  `json:"name"`
	LastModified *string `json:"lastModified"`
}

func (d *SeriesDto) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name         *string `json:"name"`
		LastModified *string `json:"lastModified"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Name == nil {
		return errors.New("series: missing field \"name\"")
	}
	d.Name = *raw.Name
	d.LastModified = raw.LastModified
	return nil
}

// --- Chapters ---
type ChapterDto struct {
	SeriesName   string  `json:"seriesName"`
	Name         string  `json:"name"`
	LastModified *string `json:"lastModified"`
}

func (d *ChapterDto) UnmarshalJSON(b []byte) error {
	var raw struct {
		SeriesName   *string `json:"seriesName"`
		Name         *string `json:"name"`
		LastModified *string `json:"lastModified"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.SeriesName == nil:
		return errors.New("chapter: missing field \"seriesName\"")
	case raw.Name == nil:
		return errors.New("chapter: missing field \"name\"")
	}
	d.SeriesName = *raw.SeriesName
	d.Name = *raw.Name
	d.LastModified = raw.LastModified
	return nil
}

// --- Pages ---
type PagesDto struct {
	SeriesName  string   `json:"seriesName"`
	ChapterName string   `json:"chapterName"`
	Pages       []string `json:"pages"` // Filenames in reading order
}

func (d *PagesDto) UnmarshalJSON(b []byte) error {
	var raw struct {
		SeriesName  *string   `json:"seriesName"`
		ChapterName *string   `json:"chapterName"`
		Pages       *[]string `json:"pages"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.SeriesName == nil:
		return errors.New("pages: missing field \"seriesName\"")
	case raw.ChapterName == nil:
		return errors.New("pages: missing field \"chapterName\"")
	case raw.Pages == nil:
		return errors.New("pages: missing field \"pages\"")
	}
	d.SeriesName = *raw.SeriesName
	d.ChapterName = *raw.ChapterName
	d.Pages = *raw.Pages
	return nil
}
