package ingest

import (
	"context"
	"fmt"

	"github.com/soundfolio/creditsync/internal/poster"
	"github.com/soundfolio/creditsync/internal/project"
	"github.com/soundfolio/creditsync/pkg/logger"
)

var log = logger.Get("IngestServ")

type (
	posterStore interface {
		Acquire(ctx context.Context, imdbID string, title string) (*poster.Poster, error)
	}

	normalizer interface {
		Normalize(role string) project.Localized
	}

	// Service is responsible for turning raw credits in to enriched
	// project records. Each credit which is not excluded:
	// - Has its poster acquired (falling back to the placeholder image)
	// - Has its role normalized in to a bilingual pair
	// - Is categorized, and has its year collapsed to an integer
	//
	// Credits are processed strictly in order, one at a time.
	Service struct {
		config     Config
		posters    posterStore
		roles      normalizer
		exclusions ExclusionSet
		recorder   Recorder
	}

	// Summary describes the outcome of a completed Run.
	Summary struct {
		Total      int
		Excluded   int
		Enriched   int
		Downloaded int
		Cached     int
		Troubled   int
	}
)

// New creates an ingest Service. A nil recorder is permitted.
func New(config Config, posters posterStore, roles normalizer, exclusions ExclusionSet, recorder Recorder) *Service {
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &Service{
		config:     config,
		posters:    posters,
		roles:      roles,
		exclusions: exclusions,
		recorder:   recorder,
	}
}

// Run enriches the credits provided, returning exactly one record for every
// credit that is not excluded, in input order.
//
// A poster which cannot be acquired is not fatal; the record uses the
// placeholder image instead. A year which cannot be parsed aborts the run,
// as does cancellation of the context.
func (service *Service) Run(ctx context.Context, credits []project.Credit) ([]project.Record, error) {
	records, _, err := service.RunWithSummary(ctx, credits)
	return records, err
}

// RunWithSummary is identical to Run, but also returns a summary of the
// work performed.
func (service *Service) RunWithSummary(ctx context.Context, credits []project.Credit) ([]project.Record, *Summary, error) {
	summary := &Summary{Total: len(credits)}
	records := make([]project.Record, 0, len(credits))

	log.Emit(logger.NEW, "Processing %d credits (%d excluded IDs)\n", len(credits), service.exclusions.Len())
	for i, credit := range credits {
		if err := ctx.Err(); err != nil {
			return nil, summary, err
		}

		log.Infof("[%d/%d] %s (%s)\n", i+1, len(credits), credit.Title, credit.Year)
		if service.exclusions.Contains(credit.ImdbID) {
			log.Verbosef("Already in portfolio, skipping %s\n", credit.ImdbID)
			summary.Excluded++
			service.recorder.CreditExcluded(credit)
			continue
		}

		record, attempt, err := service.enrich(ctx, credit)
		if err != nil {
			return nil, summary, fmt.Errorf("credit #%d %s: %w", i+1, credit, err)
		}

		switch attempt.Outcome {
		case POSTER_CACHED:
			summary.Cached++
		case POSTER_DOWNLOADED:
			summary.Downloaded++
		default:
			summary.Troubled++
		}

		summary.Enriched++
		service.recorder.PosterAttempted(attempt)
		service.recorder.CreditEnriched(record)
		records = append(records, record)
	}

	log.Emit(logger.SUCCESS, "Processed %d new projects (%d excluded, %d posters downloaded, %d cached, %d placeholders)\n",
		summary.Enriched, summary.Excluded, summary.Downloaded, summary.Cached, summary.Troubled)
	return records, summary, nil
}

func (service *Service) enrich(ctx context.Context, credit project.Credit) (project.Record, PosterAttempt, error) {
	year, err := project.ParseYear(credit.Year)
	if err != nil {
		return project.Record{}, PosterAttempt{}, err
	}

	attempt := service.acquirePoster(ctx, credit)
	record := project.Record{
		Title:       credit.Title,
		Year:        year,
		Category:    project.Categorize(credit.Type, credit.Title),
		Image:       attempt.Path,
		Imdb:        project.LinkForID(credit.ImdbID),
		ImdbID:      credit.ImdbID,
		Role:        service.roles.Normalize(credit.Role),
		Description: project.Localized{},
		Awards:      []string{},
		Type:        credit.Type,
	}

	return record, attempt, nil
}

// acquirePoster asks the poster store for the credits poster. Failure is
// recorded as a Trouble on the attempt, and the placeholder image
// is substituted.
func (service *Service) acquirePoster(ctx context.Context, credit project.Credit) PosterAttempt {
	attempt := PosterAttempt{ImdbID: credit.ImdbID, Title: credit.Title}

	result, err := service.posters.Acquire(ctx, credit.ImdbID, credit.Title)
	if err != nil {
		trouble := newTrouble(err)
		log.Warnf("No poster for %s (%s): %s\n", credit.Title, trouble.Type(), err)

		attempt.Outcome = POSTER_FAILED
		attempt.Path = service.config.PlaceholderImage
		attempt.Trouble = trouble
		return attempt
	}

	attempt.Path = result.PublicPath
	if result.Outcome == poster.DOWNLOADED {
		attempt.Outcome = POSTER_DOWNLOADED
	} else {
		attempt.Outcome = POSTER_CACHED
	}

	return attempt
}
