package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/soundfolio/creditsync/internal/catalog"
	"github.com/soundfolio/creditsync/internal/database"
	"github.com/soundfolio/creditsync/internal/http/imdb"
	"github.com/soundfolio/creditsync/internal/ingest"
	"github.com/soundfolio/creditsync/internal/ledger"
	"github.com/soundfolio/creditsync/internal/metrics"
	"github.com/soundfolio/creditsync/internal/poster"
	"github.com/soundfolio/creditsync/internal/project"
	"github.com/soundfolio/creditsync/internal/role"
	"github.com/soundfolio/creditsync/pkg/atomicfile"
	"github.com/soundfolio/creditsync/pkg/logger"
)

var (
	log = logger.Get("Core")

	ErrLedgerDisabled = errors.New("the run ledger is disabled (set ledger.path)")
)

// SheetStdout can be configured as the sheet path to write the
// exported sheet to standard output.
const SheetStdout = "-"

// CreditSync is the top-level object for the tool, and is responsible
// for wiring together the pipelines and their supporting services
// (ledger, metrics) from the configuration.
type CreditSync struct {
	config  Config
	db      database.Manager
	ledger  *ledger.Ledger
	metrics *metrics.Collector
}

func New(config Config) *CreditSync {
	log.Emit(logger.DEBUG, "Bootstrapping using config: %#v\n", config)
	app := &CreditSync{config: config}
	if config.Metrics.TextfilePath != "" {
		app.metrics = metrics.New()
	}

	return app
}

// Open connects to the run ledger, if one is configured.
func (app *CreditSync) Open() error {
	if app.config.Ledger.Path == "" {
		log.Verbosef("Run ledger disabled\n")
		return nil
	}

	log.Emit(logger.NEW, "Opening run ledger at %s...\n", app.config.Ledger.Path)
	db := database.New()
	if err := db.Connect(app.config.Ledger); err != nil {
		return err
	}

	app.db = db
	app.ledger = ledger.New(db)
	return nil
}

func (app *CreditSync) Close() error {
	if app.db == nil {
		return nil
	}

	return app.db.Close()
}

// Fetch runs the credit ingestion pipeline: credits are read, enriched
// and written to the enriched-output file for a later merge.
func (app *CreditSync) Fetch(ctx context.Context) error {
	return app.track(ledger.FETCH, func(run *ledger.RunRecorder) error {
		cfg := app.config.Ingest

		normalizer, err := app.roleNormalizer()
		if err != nil {
			return err
		}

		credits, err := project.LoadCredits(cfg.CreditsPath)
		if err != nil {
			return err
		}

		exclusions, err := app.exclusions()
		if err != nil {
			return err
		}

		client := imdb.New(imdb.Config{
			BaseURL:    app.config.Imdb.BaseURL,
			UserAgent:  app.config.Imdb.UserAgent,
			Timeout:    app.config.Imdb.Timeout,
			FetchDelay: cfg.FetchDelay,
		})
		posters, err := poster.New(poster.Config{ImagesDir: cfg.ImagesDir, PublicPrefix: cfg.PublicImagePrefix}, client)
		if err != nil {
			return err
		}

		service := ingest.New(cfg, posters, normalizer, exclusions, app.recorders(run))
		records, _, err := service.RunWithSummary(ctx, credits)
		if err != nil {
			return err
		}

		if err := project.WriteRecords(cfg.OutputPath, records); err != nil {
			return err
		}

		log.Emit(logger.SUCCESS, "Saved %d new projects to %s\n", len(records), cfg.OutputPath)
		return nil
	})
}

// Merge runs the catalog merge pipeline, folding the enriched-output
// file in to the catalog.
func (app *CreditSync) Merge(ctx context.Context) error {
	return app.track(ledger.MERGE, func(run *ledger.RunRecorder) error {
		existing, err := catalog.Load(app.config.Catalog.Path)
		if err != nil {
			return err
		}

		incoming, err := project.LoadRecords(app.config.Ingest.OutputPath)
		if err != nil {
			return err
		}

		log.Infof("Existing projects: %d\n", len(existing))
		log.Infof("New projects to add: %d\n", len(incoming))
		result := catalog.MergeWithThreshold(existing, incoming, app.config.Catalog.SimilarityThreshold)
		for _, hint := range result.Hints {
			log.Warnf("Possible duplicate (%d): %q resembles existing %q (similarity %.2f)\n", hint.Year, hint.Added, hint.Existing, hint.Similarity)
		}

		if err := catalog.Save(app.config.Catalog.Path, result.Entries); err != nil {
			return err
		}

		log.Infof("Total projects after merge: %d (%d added, %d duplicates dropped)\n", len(result.Entries), len(result.Added), len(result.Duplicates))
		logSummary(result.Summary)

		if run != nil {
			run.MergeCompleted(len(result.Entries), len(result.Added), len(result.Duplicates))
		}
		if app.metrics != nil {
			app.metrics.ObserveCatalog(result.Summary)
		}

		return nil
	})
}

// Run executes the fetch pipeline followed by the merge pipeline.
func (app *CreditSync) Run(ctx context.Context) error {
	if err := app.Fetch(ctx); err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}
	if err := app.Merge(ctx); err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	return nil
}

// ExportSheet writes the catalog as CSV to the configured sheet path,
// or to stdout if the path is SheetStdout.
func (app *CreditSync) ExportSheet(stdout io.Writer) error {
	return app.track(ledger.EXPORT, func(_ *ledger.RunRecorder) error {
		entries, err := catalog.Load(app.config.Catalog.Path)
		if err != nil {
			return err
		}

		path := app.config.Catalog.SheetPath
		if path == SheetStdout || path == "" {
			return catalog.ExportSheet(stdout, entries)
		}

		var buf bytes.Buffer
		if err := catalog.ExportSheet(&buf, entries); err != nil {
			return err
		}
		if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to save sheet: %w", err)
		}

		log.Emit(logger.SUCCESS, "Exported %d projects to %s\n", len(entries), path)
		return nil
	})
}

// History prints the most recent runs recorded in the ledger.
func (app *CreditSync) History(w io.Writer, limit int) error {
	if app.ledger == nil {
		return ErrLedgerDisabled
	}

	runs, err := app.ledger.History(limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tKIND\tSTARTED\tDURATION\tSTATUS\tTOTAL\tEXCLUDED\tENRICHED\tADDED\tDUPLICATES")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			run.ID, run.Kind, run.StartedAt.Local().Format(time.DateTime), run.Duration().Round(time.Millisecond),
			run.Status, run.Total, run.Excluded, run.Enriched, run.Added, run.Duplicates)
	}

	return tw.Flush()
}

// track wraps a pipeline run, recording it in the ledger and the
// metrics textfile when they are enabled. The run recorder passed to f
// is nil when the ledger is disabled or the run could not be recorded.
func (app *CreditSync) track(kind ledger.Kind, f func(*ledger.RunRecorder) error) error {
	var run *ledger.RunRecorder
	if app.ledger != nil {
		r, err := app.ledger.StartRun(kind)
		if err != nil {
			log.Warnf("Failed to record %s run in ledger, continuing without it: %s\n", kind, err)
		} else {
			run = r
		}
	}

	runErr := f(run)

	if run != nil {
		if err := run.Finish(runErr); err != nil {
			log.Warnf("Failed to record %s run in ledger: %s\n", kind, err)
		}
	}
	if app.metrics != nil {
		if runErr == nil {
			app.metrics.RunCompleted(string(kind), time.Now())
		}
		if err := app.metrics.WriteTextfile(app.config.Metrics.TextfilePath); err != nil {
			log.Warnf("Failed to write metrics: %s\n", err)
		}
	}

	return runErr
}

func (app *CreditSync) recorders(run *ledger.RunRecorder) ingest.Recorder {
	recorders := make([]ingest.Recorder, 0, 2)
	if run != nil {
		recorders = append(recorders, run)
	}
	if app.metrics != nil {
		recorders = append(recorders, app.metrics)
	}

	return ingest.Recorders(recorders...)
}

func (app *CreditSync) roleNormalizer() (*role.Normalizer, error) {
	if app.config.Ingest.RolesPath == "" {
		return role.New(role.DefaultRuleSet()), nil
	}

	set, err := role.LoadRuleSet(app.config.Ingest.RolesPath)
	if err != nil {
		return nil, err
	}

	log.Infof("Using role rules from %s\n", app.config.Ingest.RolesPath)
	return role.New(set), nil
}

// exclusions builds the set of IMDb IDs to skip: the built-in list, the
// configured IDs and, when enabled, every ID already in the catalog.
func (app *CreditSync) exclusions() (ingest.ExclusionSet, error) {
	cfg := app.config.Ingest
	if !cfg.ExcludeCataloged {
		return ingest.NewExclusionSet(cfg.ExcludeIDs), nil
	}

	entries, err := catalog.Load(app.config.Catalog.Path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warnf("Catalog %s does not exist, no cataloged projects to exclude\n", app.config.Catalog.Path)
		return ingest.NewExclusionSet(cfg.ExcludeIDs), nil
	} else if err != nil {
		return ingest.ExclusionSet{}, err
	}

	return ingest.NewExclusionSet(cfg.ExcludeIDs, catalog.ImdbIDs(entries)), nil
}

func logSummary(summary catalog.Summary) {
	categories := make([]string, 0, len(summary.ByCategory))
	for category := range summary.ByCategory {
		categories = append(categories, category.String())
	}
	sort.Strings(categories)

	var sb strings.Builder
	for _, category := range categories {
		fmt.Fprintf(&sb, "\n  %s: %d", category, summary.ByCategory[project.Category(category)])
	}

	log.Infof("Projects by category:%s\n", sb.String())
	if summary.Total > 0 {
		log.Infof("Year range: %d - %d\n", summary.MinYear, summary.MaxYear)
	}
}
