package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tchluc/emploitogo-crawler/internal/api"
	"github.com/tchluc/emploitogo-crawler/internal/fetch"
	"github.com/tchluc/emploitogo-crawler/internal/scraper"
	"github.com/tchluc/emploitogo-crawler/internal/store"
)

// newScrapeCmd creates and configures the 'scrape' subcommand, which runs
// a full crawl of the listing pages and persists the resulting dataset.
func newScrapeCmd() *cobra.Command {
	var (
		pages       int
		allPages    bool
		output      string
		incremental bool
		testMode    bool
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Crawl job listings and update the dataset",
		Long: `Walks the paginated job listing, fetches every posting in
parallel, extracts and normalizes the fields, and merges the new records
into the JSON dataset. Interrupting with Ctrl-C performs a controlled
stop: in-flight pages finish and everything collected so far is saved.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			if pages > 0 {
				cfg.Scraper.MaxPages = pages
			}
			if allPages {
				cfg.Scraper.AllPages = true
			}
			if output != "" {
				cfg.Storage.OutputFile = output
			}
			if incremental {
				cfg.Scraper.Incremental = true
			}
			if testMode {
				cfg.Scraper.MaxPages = 1
				cfg.Scraper.AllPages = false
				cfg.Scraper.Workers = 2
			}
			return runScrape(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&pages, "pages", "p", 0, "number of listing pages to crawl")
	cmd.Flags().BoolVar(&allPages, "all-pages", false, "crawl every listing page until pagination ends")
	cmd.Flags().StringVarP(&output, "output", "o", "", "path of the JSON dataset")
	cmd.Flags().BoolVar(&incremental, "incremental", false, "report newly added jobs separately")
	cmd.Flags().BoolVar(&testMode, "test", false, "quick run: a single page with two workers")

	return cmd
}

func runScrape(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		api.New(cfg.Metrics.Port, logger).Start(ctx)
	}

	st, err := store.Open(store.Config{
		Path:           cfg.Storage.OutputFile,
		Source:         cfg.Storage.Source,
		ScraperVersion: cfg.Storage.ScraperVersion,
	}, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	fetcher := fetch.New(fetch.Config{
		UserAgent:    cfg.Scraper.UserAgent,
		Timeout:      cfg.Timeout(),
		MaxRetries:   cfg.HTTP.MaxRetries,
		RetryBackoff: cfg.RetryBackoff(),
		RequestDelay: cfg.RequestDelay(),
	}, logger)

	s := scraper.New(fetcher, st, scraper.Config{
		BaseURL:     cfg.Scraper.BaseURL,
		ListingURL:  cfg.Scraper.ListingURL,
		MaxPages:    cfg.Scraper.MaxPages,
		AllPages:    cfg.Scraper.AllPages,
		Workers:     cfg.Scraper.Workers,
		Incremental: cfg.Scraper.Incremental,
	}, logger)

	stats, err := s.Run(ctx)
	if err != nil {
		return fmt.Errorf("persist dataset: %w", err)
	}

	logger.Info("Run summary",
		zap.String("run_id", stats.RunID),
		zap.Int("pages_scraped", stats.PagesScraped),
		zap.Int("jobs_saved", stats.TotalJobs),
		zap.Int("new_jobs", stats.NewJobs),
		zap.Int("errors", stats.Errors),
		zap.Duration("elapsed", stats.EndTime.Sub(stats.StartTime).Round(time.Millisecond)),
		zap.Int("dataset_size", stats.Store.TotalJobs))
	return nil
}
