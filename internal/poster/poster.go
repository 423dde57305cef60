// Package poster acquires the poster image of a production, storing it in
// the site's image directory. Acquisition is idempotent: an image already
// present on disk is reused without any network access.
package poster

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/labstack/gommon/bytes"
	"github.com/soundfolio/creditsync/internal/http/imdb"
	"github.com/soundfolio/creditsync/pkg/atomicfile"
	"github.com/soundfolio/creditsync/pkg/logger"
)

const imageExtension = ".jpg"

var log = logger.Get("Poster")

type (
	fetcher interface {
		GetPosterURL(ctx context.Context, imdbID string) (string, error)
		GetImage(ctx context.Context, imageURL string) ([]byte, error)
	}

	Config struct {
		// ImagesDir is the directory on disk the posters are stored in
		ImagesDir string

		// PublicPrefix is the path the site serves ImagesDir from,
		// e.g. "/images/projects"
		PublicPrefix string
	}

	Outcome int

	// Poster describes an acquired poster image.
	Poster struct {
		Filename   string
		PublicPath string
		Outcome    Outcome
		Size       int
	}

	Store struct {
		config  Config
		fetcher fetcher
	}
)

const (
	CACHED Outcome = iota
	DOWNLOADED
)

// New creates a poster Store. The configs ImagesDir is validated to be an
// existing directory; if it's missing it will be created, and if the path
// points to an existing FILE an error is returned.
func New(config Config, fetcher fetcher) (*Store, error) {
	if info, err := os.Stat(config.ImagesDir); err == nil {
		if !info.IsDir() {
			return nil, fmt.Errorf("images path '%s' is not a directory", config.ImagesDir)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(config.ImagesDir, 0o755); err != nil {
			return nil, fmt.Errorf("images path '%s' could not be created: %w", config.ImagesDir, err)
		}
	} else {
		return nil, fmt.Errorf("images path '%s' could not be accessed: %w", config.ImagesDir, err)
	}

	return &Store{config: config, fetcher: fetcher}, nil
}

// Acquire returns the poster for the title provided. If an image with the
// sanitized title already exists in the image directory it is reused;
// otherwise the poster is located on the IMDb detail page, upgraded to a
// higher resolution and downloaded.
//
// Any failure is returned to the caller and leaves the image directory
// untouched.
func (store *Store) Acquire(ctx context.Context, imdbID string, title string) (*Poster, error) {
	filename := SanitizeFilename(title) + imageExtension
	diskPath := filepath.Join(store.config.ImagesDir, filename)
	poster := &Poster{Filename: filename, PublicPath: path.Join(store.config.PublicPrefix, filename)}

	if info, err := os.Stat(diskPath); err == nil && !info.IsDir() {
		log.Infof("Poster already exists: %s\n", filename)
		poster.Outcome = CACHED
		poster.Size = int(info.Size())
		return poster, nil
	}

	posterURL, err := store.fetcher.GetPosterURL(ctx, imdbID)
	if err != nil {
		return nil, err
	}

	data, err := store.fetcher.GetImage(ctx, imdb.UpgradeResolution(posterURL))
	if err != nil {
		return nil, err
	}

	if err := atomicfile.WriteFile(diskPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to save poster %s: %w", filename, err)
	}

	log.Emit(logger.SUCCESS, "Downloaded: %s (%s)\n", filename, bytes.Format(int64(len(data))))
	poster.Outcome = DOWNLOADED
	poster.Size = len(data)
	return poster, nil
}

func (o Outcome) String() string {
	switch o {
	case CACHED:
		return "cached"
	case DOWNLOADED:
		return "downloaded"
	default:
		return fmt.Sprintf("unknown[%d]", int(o))
	}
}
