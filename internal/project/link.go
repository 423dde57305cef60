package project

import (
	"fmt"
	"strings"
)

const (
	imdbTitleURLTemplate = "https://www.imdb.com/title/%s/"
	imdbTitlePathSegment = "imdb.com/title/"
)

// LinkForID returns the public IMDb link for the title ID provided.
func LinkForID(imdbID string) string {
	return fmt.Sprintf(imdbTitleURLTemplate, imdbID)
}

// IDFromLink extracts the IMDb title ID from a link previously produced by
// LinkForID (or entered by hand). The second return is false when the link
// does not contain a title path.
func IDFromLink(link string) (string, bool) {
	_, after, found := strings.Cut(link, imdbTitlePathSegment)
	if !found {
		return "", false
	}

	id := strings.TrimRight(after, "/")
	if id == "" {
		return "", false
	}

	return id, true
}
