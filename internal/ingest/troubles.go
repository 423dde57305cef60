package ingest

import (
	"errors"
	"fmt"

	"github.com/soundfolio/creditsync/internal/http/imdb"
)

type (
	TroubleType int

	// Trouble is a recoverable, per-record failure encountered while
	// enriching a credit. A trouble never aborts the run: the record
	// is still emitted, using the placeholder image.
	Trouble struct {
		error
		tType  TroubleType
		status int
	}
)

const (
	POSTER_MISSING TroubleType = iota
	REQUEST_FAILURE
	NETWORK_FAILURE
	GENERIC_FAILURE
)

func newTrouble(err error) *Trouble {
	var (
		noPoster *imdb.NoPosterError
		failed   *imdb.FailedRequestError
		unknown  *imdb.UnknownRequestError
	)

	switch {
	case errors.As(err, &noPoster):
		return &Trouble{error: err, tType: POSTER_MISSING}
	case errors.As(err, &failed):
		return &Trouble{error: err, tType: REQUEST_FAILURE, status: failed.StatusCode()}
	case errors.As(err, &unknown):
		return &Trouble{error: err, tType: NETWORK_FAILURE}
	}

	return &Trouble{error: err, tType: GENERIC_FAILURE}
}

func (t *Trouble) Type() TroubleType { return t.tType }

// StatusCode returns the HTTP status which caused this trouble, or
// zero if the trouble is not a REQUEST_FAILURE.
func (t *Trouble) StatusCode() int { return t.status }

func (t *Trouble) Unwrap() error { return t.error }

func (t TroubleType) String() string {
	switch t {
	case POSTER_MISSING:
		return fmt.Sprintf("POSTER_MISSING[%d]", t)
	case REQUEST_FAILURE:
		return fmt.Sprintf("REQUEST_FAILURE[%d]", t)
	case NETWORK_FAILURE:
		return fmt.Sprintf("NETWORK_FAILURE[%d]", t)
	case GENERIC_FAILURE:
		return fmt.Sprintf("GENERIC_FAILURE[%d]", t)
	default:
		return fmt.Sprintf("UNKNOWN[%d]", t)
	}
}
