package imdb

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/soundfolio/creditsync/pkg/logger"
	"golang.org/x/time/rate"
)

const (
	imdbBaseURL          = "https://www.imdb.com"
	imdbTitleTemplate    = "%s/title/%s/"
	defaultUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	defaultTimeout       = 10 * time.Second
	highResolutionSuffix = "_V1_FMjpg_UX1000_.jpg"
)

var (
	log = logger.Get("IMDb")

	posterMatcher     = regexp.MustCompile(`"image":"(https://m\.media-amazon\.com/images/[^"]+)"`)
	resolutionMatcher = regexp.MustCompile(`_V1_.*\.jpg`)
)

type (
	Config struct {
		BaseURL   string
		UserAgent string
		Timeout   time.Duration

		// FetchDelay is the minimum delay between two successive
		// poster lookups. Zero disables the delay.
		FetchDelay time.Duration
	}

	// Client fetches title detail pages and poster images from IMDb. It is
	// not an API client: the poster is found by pattern matching the
	// structured data embedded in the detail page.
	Client struct {
		config  Config
		http    *http.Client
		limiter *rate.Limiter
	}
)

func New(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = imdbBaseURL
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}

	limit := rate.Inf
	if config.FetchDelay > 0 {
		limit = rate.Every(config.FetchDelay)
	}

	return &Client{
		config:  config,
		http:    &http.Client{Timeout: config.Timeout},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// GetPosterURL fetches the detail page for the IMDb title ID provided and
// extracts the URL of its poster image. Successive calls are spaced by the
// configured FetchDelay.
//
// An error will be returned if:
//   - The page could not be fetched (UnknownRequestError)
//   - The page was returned with a non-OK status (FailedRequestError)
//   - The page does not reference a poster image (NoPosterError)
func (client *Client) GetPosterURL(ctx context.Context, imdbID string) (string, error) {
	if err := client.limiter.Wait(ctx); err != nil {
		return "", &UnknownRequestError{fmt.Sprintf("rate limiter wait aborted: %s", err.Error())}
	}

	path := fmt.Sprintf(imdbTitleTemplate, strings.TrimRight(client.config.BaseURL, "/"), imdbID)
	body, err := client.httpGet(ctx, path)
	if err != nil {
		return "", err
	}

	match := posterMatcher.FindSubmatch(body)
	if match == nil {
		return "", &NoPosterError{imdbID: imdbID}
	}

	log.Verbosef("Found poster for %s: %s\n", imdbID, match[1])
	return string(match[1]), nil
}

// GetImage downloads the image at the URL provided, returning the raw bytes.
func (client *Client) GetImage(ctx context.Context, imageURL string) ([]byte, error) {
	return client.httpGet(ctx, imageURL)
}

// UpgradeResolution rewrites the resolution suffix of an IMDb media URL to
// request a 1000px wide JPEG variant. URLs without a suffix are returned as-is.
func UpgradeResolution(posterURL string) string {
	return resolutionMatcher.ReplaceAllString(posterURL, highResolutionSuffix)
}

func (client *Client) httpGet(ctx context.Context, urlPath string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlPath, nil)
	if err != nil {
		return nil, &UnknownRequestError{fmt.Sprintf("failed to build GET(%s): %s", urlPath, err.Error())}
	}

	req.Header.Set("User-Agent", client.config.UserAgent)
	req.Header.Set("Accept-Encoding", "gzip, br")

	resp, err := client.http.Do(req)
	if err != nil {
		return nil, &UnknownRequestError{fmt.Sprintf("failed to perform GET(%s): %s", urlPath, err.Error())}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FailedRequestError{httpCode: resp.StatusCode, url: urlPath}
	}

	body, err := decodeBody(resp)
	if err != nil {
		return nil, &UnknownRequestError{fmt.Sprintf("failed to read response body of GET(%s): %s", urlPath, err.Error())}
	}

	return body, nil
}

// decodeBody reads the response body, decompressing it according to its
// Content-Encoding. Setting Accept-Encoding ourselves disables the
// transparent gzip handling of net/http, so both encodings are handled here.
func decodeBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()

		reader = gz
	}

	return io.ReadAll(reader)
}
