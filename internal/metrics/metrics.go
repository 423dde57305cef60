// Package metrics exposes the outcome of a run as Prometheus metrics,
// written to a textfile for collection by node-exporter.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/soundfolio/creditsync/internal/catalog"
	"github.com/soundfolio/creditsync/internal/ingest"
	"github.com/soundfolio/creditsync/internal/project"
)

const namespace = "creditsync"

// Collector satisfies ingest.Recorder, counting the credits and poster
// attempts of a fetch run. Catalog totals are recorded separately once a
// merge completes.
type Collector struct {
	registry *prometheus.Registry

	credits  *prometheus.CounterVec
	posters  *prometheus.CounterVec
	projects *prometheus.GaugeVec
	lastRun  *prometheus.GaugeVec
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		credits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credits_total",
			Help:      "Credits processed by the fetch pipeline, by outcome.",
		}, []string{"outcome"}),
		posters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poster_attempts_total",
			Help:      "Poster acquisitions attempted, by outcome.",
		}, []string{"outcome"}),
		projects: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_projects",
			Help:      "Projects in the catalog after the last merge, by category.",
		}, []string{"category"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last successful run of each kind completed.",
		}, []string{"kind"}),
	}

	c.registry.MustRegister(c.credits, c.posters, c.projects, c.lastRun)
	return c
}

func (c *Collector) CreditExcluded(project.Credit) {
	c.credits.WithLabelValues("excluded").Inc()
}

func (c *Collector) CreditEnriched(project.Record) {
	c.credits.WithLabelValues("enriched").Inc()
}

func (c *Collector) PosterAttempted(attempt ingest.PosterAttempt) {
	c.posters.WithLabelValues(string(attempt.Outcome)).Inc()
}

// ObserveCatalog records the per-category totals of a merged catalog.
// Categories with no projects are reported as zero.
func (c *Collector) ObserveCatalog(summary catalog.Summary) {
	c.projects.Reset()
	for _, category := range project.Film.Values() {
		c.projects.WithLabelValues(category.String()).Set(float64(summary.ByCategory[category]))
	}
}

func (c *Collector) RunCompleted(kind string, at time.Time) {
	c.lastRun.WithLabelValues(kind).Set(float64(at.Unix()))
}

func (c *Collector) Gatherer() prometheus.Gatherer { return c.registry }

// WriteTextfile writes every metric to the path provided in the Prometheus
// text format. The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}

	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}

	return nil
}
