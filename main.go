// Command creditsync builds the project catalog of a sound editor's
// portfolio from their IMDb credits.
//
//	fetch         Read credits, acquire posters and write the enriched records
//	merge         Merge the enriched records in to the catalog
//	run           fetch, then merge
//	export-sheet  Write the catalog as CSV for the site's sheet loader
//	history       List recent runs recorded in the run ledger
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/soundfolio/creditsync/internal"
	"github.com/soundfolio/creditsync/pkg/logger"
)

var log = logger.Get("Main")

type command struct {
	flags    *flag.FlagSet
	config   *string
	logLevel *string
}

func newCommand(name string, stderr io.Writer) *command {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	return &command{
		flags:    fs,
		config:   fs.String("config", internal.DefaultConfigPath, "Path to the YAML configuration file"),
		logLevel: fs.String("log-level", "", "Overrides the configured log level (verbose, debug, info, warn, error)"),
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: creditsync <fetch|merge|run|export-sheet|history> [flags]\n")
	fmt.Fprintf(w, "  fetch         Read credits, acquire posters, write enriched records\n")
	fmt.Fprintf(w, "  merge         Merge enriched records in to the catalog\n")
	fmt.Fprintf(w, "  run           fetch, then merge\n")
	fmt.Fprintf(w, "  export-sheet  Write the catalog as CSV (use -o - for stdout)\n")
	fmt.Fprintf(w, "  history       List recent runs from the run ledger\n")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}

// run executes the subcommand named by args[0], returning
// the exit code of the process.
func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) int {
	// stdout is reserved for command output, e.g. the exported sheet
	logger.SetOutput(stderr)

	if len(args) < 1 {
		usage(stderr)
		return 1
	}

	cmd := newCommand(args[0], stderr)
	credits := cmd.flags.String("credits", "", "Overrides the configured credits file (fetch, run)")
	catalogPath := cmd.flags.String("catalog", "", "Overrides the configured catalog file")
	output := cmd.flags.String("o", "", "Overrides the configured sheet path (export-sheet); '-' writes to stdout")
	limit := cmd.flags.Int("limit", 20, "Number of runs to list (history); 0 lists every run")

	switch args[0] {
	case "fetch", "merge", "run", "export-sheet", "history":
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return 1
	}

	if err := cmd.flags.Parse(args[1:]); err != nil {
		return 1
	}

	config, err := internal.LoadConfig(*cmd.config, isFlagSet(cmd.flags, "config"))
	if err != nil {
		log.Emit(logger.FATAL, "Failed to load configuration: %s\n", err)
		return 1
	}

	level := config.LogLevel
	if *cmd.logLevel != "" {
		level = *cmd.logLevel
	}
	logger.SetMinLoggingLevel(logger.ParseStatus(level).Level())

	if *credits != "" {
		config.Ingest.CreditsPath = *credits
	}
	if *catalogPath != "" {
		config.Catalog.Path = *catalogPath
	}
	if *output != "" {
		config.Catalog.SheetPath = *output
	}

	app := internal.New(*config)
	if err := app.Open(); err != nil {
		log.Emit(logger.FATAL, "Failed to open run ledger: %s\n", err)
		return 1
	}
	defer app.Close()

	switch args[0] {
	case "fetch":
		err = app.Fetch(ctx)
	case "merge":
		err = app.Merge(ctx)
	case "run":
		err = app.Run(ctx)
	case "export-sheet":
		err = app.ExportSheet(stdout)
	case "history":
		err = app.History(stdout, *limit)
	}

	if err != nil {
		log.Emit(logger.FATAL, "%s failed: %s\n", args[0], err)
		return 1
	}

	return 0
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})

	return set
}
