package ledger

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/soundfolio/creditsync/internal/database"
)

type (
	Kind   string
	Status string

	// Run is a single invocation of one of the pipelines.
	Run struct {
		ID         uuid.UUID  `db:"id"`
		Kind       Kind       `db:"kind"`
		StartedAt  time.Time  `db:"started_at"`
		FinishedAt *time.Time `db:"finished_at"`
		Status     Status     `db:"status"`
		Total      int        `db:"total"`
		Excluded   int        `db:"excluded"`
		Enriched   int        `db:"enriched"`
		Added      int        `db:"added"`
		Duplicates int        `db:"duplicates"`
		Error      *string    `db:"error"`
	}

	// Attempt records the outcome of acquiring a single poster
	// during a fetch run.
	Attempt struct {
		ID          int       `db:"id"`
		RunID       uuid.UUID `db:"run_id"`
		ImdbID      string    `db:"imdb_id"`
		Title       string    `db:"title"`
		Outcome     string    `db:"outcome"`
		Path        string    `db:"path"`
		Error       *string   `db:"error"`
		AttemptedAt time.Time `db:"attempted_at"`
	}

	Store struct{}
)

const (
	FETCH  Kind = "fetch"
	MERGE  Kind = "merge"
	EXPORT Kind = "export-sheet"

	RUNNING   Status = "running"
	SUCCEEDED Status = "succeeded"
	FAILED    Status = "failed"
)

func NewStore() *Store { return &Store{} }

func (store *Store) CreateRun(db database.Queryable, run *Run) error {
	query, args, err := squirrel.Insert("runs").
		Columns("id", "kind", "started_at", "status").
		Values(run.ID, run.Kind, run.StartedAt, run.Status).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to construct insert run query: %w", err)
	}

	if _, err := db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	return nil
}

// UpdateRun persists the mutable columns of the run provided.
func (store *Store) UpdateRun(db database.Queryable, run *Run) error {
	query, args, err := squirrel.Update("runs").
		SetMap(map[string]any{
			"finished_at": run.FinishedAt,
			"status":      run.Status,
			"total":       run.Total,
			"excluded":    run.Excluded,
			"enriched":    run.Enriched,
			"added":       run.Added,
			"duplicates":  run.Duplicates,
			"error":       run.Error,
		}).
		Where(squirrel.Eq{"id": run.ID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to construct update run query: %w", err)
	}

	if _, err := db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to update run %s: %w", run.ID, err)
	}

	return nil
}

func (store *Store) CreateAttempt(db database.Queryable, attempt *Attempt) error {
	query, args, err := squirrel.Insert("poster_attempts").
		Columns("run_id", "imdb_id", "title", "outcome", "path", "error", "attempted_at").
		Values(attempt.RunID, attempt.ImdbID, attempt.Title, attempt.Outcome, attempt.Path, attempt.Error, attempt.AttemptedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to construct insert poster attempt query: %w", err)
	}

	if _, err := db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert poster attempt for %s: %w", attempt.ImdbID, err)
	}

	return nil
}

// ListRuns returns the most recent runs, newest first.
func (store *Store) ListRuns(db database.Queryable, limit int) ([]*Run, error) {
	builder := squirrel.Select("*").From("runs").OrderBy("started_at DESC", "rowid DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to construct list runs query: %w", err)
	}

	var results []*Run
	if err := db.Select(&results, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return results, nil
}

func (store *Store) GetRun(db database.Queryable, id uuid.UUID) (*Run, error) {
	query, args, err := squirrel.Select("*").From("runs").Where(squirrel.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to construct select run query: %w", err)
	}

	var run Run
	if err := db.Get(&run, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find run %s: %w", id, err)
	}

	return &run, nil
}

// ListAttempts returns the poster attempts of the run provided, in the
// order they were made.
func (store *Store) ListAttempts(db database.Queryable, runID uuid.UUID) ([]*Attempt, error) {
	query, args, err := squirrel.Select("*").
		From("poster_attempts").
		Where(squirrel.Eq{"run_id": runID.String()}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to construct list poster attempts query: %w", err)
	}

	var results []*Attempt
	if err := db.Select(&results, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list poster attempts of run %s: %w", runID, err)
	}

	return results, nil
}
