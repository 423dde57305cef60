package ingest

import (
	"github.com/soundfolio/creditsync/internal/project"
)

type (
	PosterOutcome string

	// PosterAttempt describes the outcome of acquiring the poster
	// for a single credit.
	PosterAttempt struct {
		ImdbID  string
		Title   string
		Outcome PosterOutcome
		Path    string
		Trouble *Trouble
	}

	// Recorder observes the progress of a run. The run ledger and the
	// metrics collector are both recorders.
	Recorder interface {
		CreditExcluded(credit project.Credit)
		CreditEnriched(record project.Record)
		PosterAttempted(attempt PosterAttempt)
	}

	multiRecorder []Recorder
	noopRecorder  struct{}
)

const (
	POSTER_CACHED     PosterOutcome = "cached"
	POSTER_DOWNLOADED PosterOutcome = "downloaded"
	POSTER_FAILED     PosterOutcome = "failed"
)

// Recorders combines the recorders provided in to a single Recorder
// which forwards every event to each of them, in order. Nil recorders
// are ignored.
func Recorders(recorders ...Recorder) Recorder {
	combined := make(multiRecorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			combined = append(combined, r)
		}
	}

	return combined
}

func (m multiRecorder) CreditExcluded(credit project.Credit) {
	for _, r := range m {
		r.CreditExcluded(credit)
	}
}

func (m multiRecorder) CreditEnriched(record project.Record) {
	for _, r := range m {
		r.CreditEnriched(record)
	}
}

func (m multiRecorder) PosterAttempted(attempt PosterAttempt) {
	for _, r := range m {
		r.PosterAttempted(attempt)
	}
}

func (noopRecorder) CreditExcluded(project.Credit) {}
func (noopRecorder) CreditEnriched(project.Record) {}
func (noopRecorder) PosterAttempted(PosterAttempt) {}
