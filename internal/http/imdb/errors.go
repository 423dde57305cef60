package imdb

import "fmt"

type (
	FailedRequestError struct {
		httpCode int
		url      string
	}
	NoPosterError       struct{ imdbID string }
	UnknownRequestError struct{ reason string }
)

func (err *FailedRequestError) Error() string {
	return fmt.Sprintf("request failure (HTTP %d) for %s", err.httpCode, err.url)
}

func (err *FailedRequestError) StatusCode() int { return err.httpCode }

func (err *NoPosterError) Error() string {
	return fmt.Sprintf("no poster found on the detail page of %s", err.imdbID)
}

func (err *UnknownRequestError) Error() string {
	return fmt.Sprintf("unknown error occurred while communicating with IMDb: %s", err.reason)
}
