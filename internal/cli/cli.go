package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hann12-34/discovr-pipeline/internal/calendar"
	"github.com/hann12-34/discovr-pipeline/internal/config"
	"github.com/hann12-34/discovr-pipeline/internal/event"
	"github.com/hann12-34/discovr-pipeline/internal/fetch"
	"github.com/hann12-34/discovr-pipeline/internal/intake"
	"github.com/hann12-34/discovr-pipeline/internal/logger"
	"github.com/hann12-34/discovr-pipeline/internal/metrics"
	"github.com/hann12-34/discovr-pipeline/internal/pipeline"
	"github.com/hann12-34/discovr-pipeline/internal/storage"
)

var (
	flagConfig        string
	flagFormat        string
	flagBaseURL       string
	flagAllowDateless bool
	flagDataDir       string
	flagICSPath       string
	flagMetricsAddr   string
	flagVerbose       bool
	flagVenue         string
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discovr-pipeline",
		Short: "Normalize, filter, and deduplicate scraped event listings",
		Long: `The admission pipeline for scraped event listings.
Candidate events from any scraper are run through date resolution, the
admission filter, and per-batch deduplication; accepted events come out
normalized with stable content-derived IDs.`,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", os.Getenv("DISCOVR_CONFIG"), "Path to YAML pipeline config (or env: DISCOVR_CONFIG)")
	pf.StringVar(&flagFormat, "format", "text", "Output format: text or json")
	pf.StringVar(&flagBaseURL, "base-url", "", "Base URL for resolving relative candidate URLs")
	pf.BoolVar(&flagAllowDateless, "allow-dateless", false, "Admit events with no resolvable date")
	pf.StringVar(&flagDataDir, "data-dir", os.Getenv("DISCOVR_DATA_DIR"), "Upsert accepted events into this store directory")
	pf.StringVar(&flagICSPath, "ics", "", "Write accepted events as an iCalendar file")
	pf.StringVar(&flagMetricsAddr, "metrics-addr", os.Getenv("DISCOVR_METRICS_ADDR"), "Expose Prometheus metrics on this address")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging and per-event output")

	cmd.AddCommand(newProcessCmd(), newFetchCmd())
	return cmd
}

func newProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process [file]",
		Short: "Run a JSON batch of candidate events through the pipeline",
		Long: `Reads a JSON array of candidate event records (from a file, or stdin
when no file is given), adapts the producers' loose shapes, and runs the
batch through the pipeline.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runProcess,
	}
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a listing page and run its events through the pipeline",
		Args:  cobra.ExactArgs(1),
		RunE:  runFetch,
	}
	cmd.Flags().StringVar(&flagVenue, "venue", "", "Venue name attached to extracted events")
	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	input := os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening batch file: %w", err)
		}
		defer f.Close()
		input = f
	}

	batch, err := intake.DecodeBatch(input)
	if err != nil {
		return err
	}
	return runBatch(cmd, batch)
}

func runFetch(cmd *cobra.Command, args []string) error {
	pageURL := args[0]

	body, err := fetch.New().Fetch(cmd.Context(), pageURL)
	if err != nil {
		return err
	}

	venue := flagVenue
	if venue == "" {
		venue = pageURL
	}
	batch, err := intake.ExtractHTML(strings.NewReader(string(body)), pageURL, venue)
	if err != nil {
		return err
	}

	// Listing pages resolve their own relative links.
	if flagBaseURL == "" {
		flagBaseURL = pageURL
	}
	return runBatch(cmd, batch)
}

// runBatch wires config, pipeline, and output for both commands.
func runBatch(cmd *cobra.Command, batch []*event.CandidateEvent) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := pipeline.New(cfg)
	if flagVerbose {
		p.Log = logger.New(logger.LevelDebug, os.Stderr)
	}
	if flagMetricsAddr != "" {
		m := metrics.New()
		p.Metrics = m
		go func() {
			if err := m.Serve(flagMetricsAddr); err != nil {
				logger.Error("metrics listener stopped", logger.Fields{"addr": flagMetricsAddr}, err)
			}
		}()
	}

	result, err := p.Run(batch)
	if err != nil {
		return err
	}

	output := &Output{Result: result}

	if flagDataDir != "" {
		store, err := storage.New(flagDataDir)
		if err != nil {
			return err
		}
		added, updated, err := store.Upsert(result.Accepted)
		if err != nil {
			return err
		}
		output.Stored = &StoreSummary{Added: added, Updated: updated}
	}

	if flagICSPath != "" {
		ics := calendar.GenerateICS(result.Accepted)
		if err := os.WriteFile(flagICSPath, []byte(ics), 0644); err != nil {
			return fmt.Errorf("writing calendar: %w", err)
		}
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	return WriteOutput(cmd.OutOrStdout(), output, format, flagVerbose)
}

// loadConfig builds the effective config: defaults, optional YAML file,
// then flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if flagAllowDateless {
		cfg.Dates.Require = false
	}
	return cfg, nil
}
