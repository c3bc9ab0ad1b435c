// Handlers exposing the host operations of a registered source.

package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/vrsandeep/mango-easyyomi/internal/models"
	"github.com/vrsandeep/mango-easyyomi/internal/sources"
	"github.com/vrsandeep/mango-easyyomi/internal/sources/easyyomi"
)

func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, sources.GetAll())
}

func (s *Server) handleGetSource(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, getSourceFromContext(r).Info())
}

func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	src := getSourceFromContext(r)
	page, err := src.FetchPopular(r.Context(), pageParam(r))
	if err != nil {
		respondWithSourceError(w, "popular", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, page)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	src := getSourceFromContext(r)
	if !src.Info().SupportsLatest {
		RespondWithError(w, http.StatusNotImplemented, "Source does not support latest updates")
		return
	}
	page, err := src.FetchLatest(r.Context(), pageParam(r))
	if err != nil {
		respondWithSourceError(w, "latest", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, page)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	src := getSourceFromContext(r)
	query := r.URL.Query().Get("q")
	page, err := src.Search(r.Context(), pageParam(r), query, src.Filters())
	if err != nil {
		respondWithSourceError(w, "search", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, page)
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, getSourceFromContext(r).Filters())
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		RespondWithError(w, http.StatusBadRequest, "Missing 'title' parameter")
		return
	}
	manga, err := getSourceFromContext(r).FetchDetails(r.Context(), models.Manga{Title: title})
	if err != nil {
		respondWithSourceError(w, "details", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, manga)
}

func (s *Server) handleChapters(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		RespondWithError(w, http.StatusBadRequest, "Missing 'title' parameter")
		return
	}
	chapters, err := getSourceFromContext(r).FetchChapters(r.Context(), models.Manga{Title: title})
	if err != nil {
		respondWithSourceError(w, "chapters", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, chapters)
}

func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	series, chapter := query.Get("series"), query.Get("chapter")
	if series == "" || chapter == "" {
		RespondWithError(w, http.StatusBadRequest, "Missing 'series' or 'chapter' parameter")
		return
	}
	pages, err := getSourceFromContext(r).FetchPages(r.Context(), models.Chapter{URL: series, Name: chapter})
	if err != nil {
		respondWithSourceError(w, "pages", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, pages)
}

// pageParam reads the 1-based ?page= parameter, defaulting to 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// respondWithSourceError maps a source failure onto an HTTP status.
func respondWithSourceError(w http.ResponseWriter, op string, err error) {
	var (
		httpErr   *easyyomi.HTTPError
		decodeErr *easyyomi.DecodeError
	)
	switch {
	case errors.Is(err, easyyomi.ErrNotConfigured):
		RespondWithError(w, http.StatusServiceUnavailable, "Source is not configured")
	case errors.Is(err, errors.ErrUnsupported):
		RespondWithError(w, http.StatusNotImplemented, "Operation not supported by source")
	case errors.As(err, &httpErr):
		log.Printf("Source %s failed: %v", op, err)
		if httpErr.StatusCode == http.StatusNotFound {
			RespondWithError(w, http.StatusNotFound, "Not found on server")
			return
		}
		RespondWithError(w, http.StatusBadGateway, "Server returned "+httpErr.Status)
	case errors.As(err, &decodeErr):
		log.Printf("Source %s failed: %v", op, err)
		RespondWithError(w, http.StatusBadGateway, "Unexpected response from server")
	case errors.Is(err, context.DeadlineExceeded):
		RespondWithError(w, http.StatusGatewayTimeout, "Server did not respond in time")
	default:
		log.Printf("Source %s failed: %v", op, err)
		RespondWithError(w, http.StatusBadGateway, "Failed to reach server")
	}
}
