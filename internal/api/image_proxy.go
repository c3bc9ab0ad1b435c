package api

import (
	"io"
	"log"
	"net/http"
	"strings"
)

// imageLoader is implemented by sources whose page images need the source's
// own client (credentials, User-Agent) to be fetched.
type imageLoader interface {
	BaseURL() string
	Client() *http.Client
}

// handleImage streams a page image through the source's client.
//
// Query parameters:
//   - url: (required) an image URL returned by the pages endpoint
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	loader, ok := getSourceFromContext(r).(imageLoader)
	if !ok {
		RespondWithError(w, http.StatusNotImplemented, "Source does not serve images")
		return
	}

	imageURL := r.URL.Query().Get("url")
	if imageURL == "" {
		RespondWithError(w, http.StatusBadRequest, "Missing 'url' parameter")
		return
	}

	// Security: only proxy URLs that point at the source's own server.
	base := loader.BaseURL()
	if base == "" || !strings.HasPrefix(imageURL, base+"/api/") {
		RespondWithError(w, http.StatusBadRequest, "URL does not belong to this source")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, imageURL, nil)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid URL")
		return
	}

	resp, err := loader.Client().Do(req)
	if err != nil {
		log.Printf("Error fetching image: %v", err)
		RespondWithError(w, http.StatusBadGateway, "Failed to fetch image")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Image server returned status %d for URL: %s", resp.StatusCode, imageURL)
		RespondWithError(w, http.StatusBadGateway, "Image server returned error")
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=86400")

	if _, err := io.Copy(w, resp.Body); err != nil {
		// Response already started, can't send error
		log.Printf("Error copying image data: %v", err)
	}
}
