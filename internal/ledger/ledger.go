// Package ledger keeps an audit trail of pipeline runs in a sqlite
// database: when each run happened, what it did and the outcome of every
// poster it tried to acquire. The ledger is never consulted to skip or
// resume work.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/soundfolio/creditsync/internal/database"
	"github.com/soundfolio/creditsync/internal/ingest"
	"github.com/soundfolio/creditsync/internal/project"
	"github.com/soundfolio/creditsync/pkg/logger"
)

var log = logger.Get("Ledger")

type (
	Ledger struct {
		db    database.Manager
		store *Store
	}

	// RunRecorder records the progress of a single run. It satisfies
	// ingest.Recorder so that it can observe a fetch run directly.
	//
	// Failures to write to the ledger are logged and otherwise ignored.
	RunRecorder struct {
		ledger *Ledger
		run    *Run
	}
)

func New(db database.Manager) *Ledger {
	return &Ledger{db: db, store: NewStore()}
}

// StartRun inserts a new RUNNING run of the kind provided.
func (ledger *Ledger) StartRun(kind Kind) (*RunRecorder, error) {
	run := &Run{
		ID:        uuid.New(),
		Kind:      kind,
		StartedAt: time.Now().UTC(),
		Status:    RUNNING,
	}

	if err := ledger.store.CreateRun(ledger.db.GetSqlxDb(), run); err != nil {
		return nil, err
	}

	log.Debugf("Started %s run %s\n", kind, run.ID)
	return &RunRecorder{ledger: ledger, run: run}, nil
}

// History returns the most recent runs, newest first. A limit <= 0
// returns every run.
func (ledger *Ledger) History(limit int) ([]*Run, error) {
	return ledger.store.ListRuns(ledger.db.GetSqlxDb(), limit)
}

func (ledger *Ledger) Run(id uuid.UUID) (*Run, error) {
	return ledger.store.GetRun(ledger.db.GetSqlxDb(), id)
}

func (ledger *Ledger) Attempts(runID uuid.UUID) ([]*Attempt, error) {
	return ledger.store.ListAttempts(ledger.db.GetSqlxDb(), runID)
}

func (recorder *RunRecorder) ID() uuid.UUID { return recorder.run.ID }

func (recorder *RunRecorder) CreditExcluded(project.Credit) {
	recorder.run.Total++
	recorder.run.Excluded++
}

func (recorder *RunRecorder) CreditEnriched(project.Record) {
	recorder.run.Total++
	recorder.run.Enriched++
}

func (recorder *RunRecorder) PosterAttempted(attempt ingest.PosterAttempt) {
	row := &Attempt{
		RunID:       recorder.run.ID,
		ImdbID:      attempt.ImdbID,
		Title:       attempt.Title,
		Outcome:     string(attempt.Outcome),
		Path:        attempt.Path,
		AttemptedAt: time.Now().UTC(),
	}
	if attempt.Trouble != nil {
		reason := attempt.Trouble.Error()
		row.Error = &reason
	}

	if err := recorder.ledger.store.CreateAttempt(recorder.ledger.db.GetSqlxDb(), row); err != nil {
		log.Warnf("Failed to record poster attempt for %s: %s\n", attempt.ImdbID, err)
	}
}

// MergeCompleted records the outcome of a catalog merge.
func (recorder *RunRecorder) MergeCompleted(total int, added int, duplicates int) {
	recorder.run.Total = total
	recorder.run.Added = added
	recorder.run.Duplicates = duplicates
}

// Finish marks the run as complete. A non-nil runErr marks the run as
// FAILED and stores the error message.
func (recorder *RunRecorder) Finish(runErr error) error {
	now := time.Now().UTC()
	recorder.run.FinishedAt = &now
	recorder.run.Status = SUCCEEDED
	if runErr != nil {
		reason := runErr.Error()
		recorder.run.Status = FAILED
		recorder.run.Error = &reason
	}

	if err := recorder.ledger.store.UpdateRun(recorder.ledger.db.GetSqlxDb(), recorder.run); err != nil {
		return err
	}

	log.Debugf("Finished %s run %s (%s)\n", recorder.run.Kind, recorder.run.ID, recorder.run.Status)
	return nil
}

// Duration returns how long the run took, or zero if the
// run is not finished.
func (run *Run) Duration() time.Duration {
	if run.FinishedAt == nil {
		return 0
	}

	return run.FinishedAt.Sub(run.StartedAt)
}
