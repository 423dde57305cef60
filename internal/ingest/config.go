package ingest

import "time"

// Config contains configuration options that allow
// customization of how credits are enriched.
type Config struct {
	// The credit source file (JSON or YAML) the fetch pipeline reads
	CreditsPath string `yaml:"credits_file" env:"INGEST_CREDITS_FILE" env-default:"credits.json" validate:"required"`

	// The transient file the enriched records are written to, and
	// which the merge pipeline later consumes
	OutputPath string `yaml:"output_file" env:"INGEST_OUTPUT_FILE" env-default:"new_projects.json" validate:"required"`

	// The directory on disk poster images are stored in
	ImagesDir string `yaml:"images_dir" env:"INGEST_IMAGES_DIR" env-default:"public/images/projects" validate:"required"`

	// The path the site serves ImagesDir from
	PublicImagePrefix string `yaml:"public_image_prefix" env:"INGEST_PUBLIC_IMAGE_PREFIX" env-default:"/images/projects"`

	// Used as the image of any record whose poster could not be
	// acquired
	PlaceholderImage string `yaml:"placeholder_image" env:"INGEST_PLACEHOLDER_IMAGE" env-default:"/images/projects/placeholder.jpg"`

	// The minimum delay between two successive poster lookups
	FetchDelay time.Duration `yaml:"fetch_delay" env:"INGEST_FETCH_DELAY" env-default:"500ms" validate:"gte=0"`

	// Additional IMDb IDs to skip, on top of the built-in list of
	// productions already in the portfolio
	ExcludeIDs []string `yaml:"exclude_ids" env:"INGEST_EXCLUDE_IDS" env-separator:"," validate:"dive,startswith=tt"`

	// When enabled, every production referenced by the current
	// catalog is skipped as well
	ExcludeCataloged bool `yaml:"exclude_cataloged" env:"INGEST_EXCLUDE_CATALOGED"`

	// An optional YAML file replacing the built-in role tables
	RolesPath string `yaml:"roles_file" env:"INGEST_ROLES_FILE"`
}
