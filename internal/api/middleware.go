package api

// This file contains the middleware resolving the source a request targets.

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vrsandeep/mango-easyyomi/internal/models"
	"github.com/vrsandeep/mango-easyyomi/internal/sources"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey string

const sourceContextKey = contextKey("source")

// SourceMiddleware looks up the {sourceID} URL parameter in the registry and
// injects the source into the request context for downstream handlers.
func SourceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "sourceID"), 10, 64)
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid source ID")
			return
		}

		src, ok := sources.Get(id)
		if !ok {
			RespondWithError(w, http.StatusNotFound, "Source not found")
			return
		}

		ctx := context.WithValue(r.Context(), sourceContextKey, src)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getSourceFromContext returns the source injected by SourceMiddleware, or nil.
func getSourceFromContext(r *http.Request) models.Source {
	src, ok := r.Context().Value(sourceContextKey).(models.Source)
	if !ok {
		return nil
	}
	return src
}
