// Package scraper drives the crawl: sequential pagination over listing
// pages with a bounded concurrent fetch/extract pool per page.
package scraper

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tchluc/emploitogo-crawler/internal/extract"
	"github.com/tchluc/emploitogo-crawler/internal/fetch"
	"github.com/tchluc/emploitogo-crawler/internal/jobs"
	"github.com/tchluc/emploitogo-crawler/internal/metrics"
	"github.com/tchluc/emploitogo-crawler/internal/normalize"
)

// Fetcher retrieves one parsed page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (fetch.Page, error)
}

// RecordStore is the insertion surface the scraper needs. Its Save handles
// deduplication and locking, so workers call it without coordination.
type RecordStore interface {
	Save(rec jobs.Record) bool
	Stats() jobs.StoreStats
	Finalize() error
}

// Config controls pagination and fan-out.
type Config struct {
	BaseURL     string
	ListingURL  string
	MaxPages    int
	AllPages    bool
	Workers     int
	Incremental bool
}

// Scraper walks listing pages and persists extracted job records.
type Scraper struct {
	fetcher Fetcher
	store   RecordStore
	cfg     Config
	logger  *zap.Logger
	now     func() time.Time
}

// New constructs a Scraper.
func New(fetcher Fetcher, store RecordStore, cfg Config, logger *zap.Logger) *Scraper {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Scraper{
		fetcher: fetcher,
		store:   store,
		cfg:     cfg,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Run executes the crawl until the page budget is spent, no next page
// exists, or the context is canceled. Records already collected are always
// flushed through Finalize, whose failure is the only fatal outcome.
func (s *Scraper) Run(ctx context.Context) (jobs.RunStats, error) {
	stats := jobs.RunStats{
		RunID:     uuid.NewString(),
		StartTime: s.now(),
	}
	s.logger.Info("Starting crawl",
		zap.String("run_id", stats.RunID),
		zap.String("listing_url", s.cfg.ListingURL),
		zap.Int("max_pages", s.cfg.MaxPages),
		zap.Bool("all_pages", s.cfg.AllPages),
		zap.Bool("incremental", s.cfg.Incremental))

	current := s.cfg.ListingURL
	for current != "" && (s.cfg.AllPages || stats.PagesScraped < s.cfg.MaxPages) {
		if ctx.Err() != nil {
			s.logger.Info("Crawl interrupted; flushing partial results")
			break
		}

		s.logger.Info("Scraping listing page",
			zap.Int("page", stats.PagesScraped+1), zap.String("url", current))
		page, err := s.fetcher.Fetch(ctx, current)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				s.logger.Error("Listing page fetch failed",
					zap.String("url", current), zap.Error(err))
				stats.Errors++
			}
			break
		}
		metrics.TotalListingPages.Inc()
		stats.PagesScraped++

		links := extract.JobLinks(page.Doc, s.cfg.BaseURL)
		s.logger.Info("Found job links", zap.Int("count", len(links)))

		saved, errored := s.processDetails(ctx, links)
		stats.TotalJobs += saved
		stats.Errors += errored
		if s.cfg.Incremental {
			stats.NewJobs += saved
		}
		s.logger.Info("Listing page done",
			zap.Int("page", stats.PagesScraped),
			zap.Int("jobs_saved", saved),
			zap.Int("errors", errored))

		next := extract.NextPageURL(page.Doc, s.cfg.BaseURL)
		if next == "" || next == current {
			s.logger.Info("No further pagination; stopping")
			break
		}
		current = next
	}

	stats.EndTime = s.now()
	if err := s.store.Finalize(); err != nil {
		return stats, err
	}
	stats.Store = s.store.Stats()
	s.logger.Info("Crawl finished",
		zap.String("run_id", stats.RunID),
		zap.Int("pages_scraped", stats.PagesScraped),
		zap.Int("total_jobs", stats.TotalJobs),
		zap.Int("errors", stats.Errors))
	return stats, nil
}

// processDetails fetches, extracts, normalizes, and saves every detail
// page concurrently under the worker cap. Results land in completion
// order; a failed URL is counted and the rest of the batch continues.
func (s *Scraper) processDetails(ctx context.Context, links []string) (saved, errored int) {
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(s.cfg.Workers)

	for _, link := range links {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			ok, err := s.processOne(ctx, link)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil && !errors.Is(err, context.Canceled):
				errored++
			case ok:
				saved++
			}
			return nil
		})
	}
	_ = g.Wait()
	return saved, errored
}

func (s *Scraper) processOne(ctx context.Context, link string) (bool, error) {
	page, err := s.fetcher.Fetch(ctx, link)
	if err != nil {
		s.logger.Error("Detail page abandoned", zap.String("url", link), zap.Error(err))
		return false, err
	}

	rec := extract.Job(page.Doc, link, s.now())
	rec = normalize.Apply(rec)

	if s.store.Save(rec) {
		s.logger.Info("Job saved",
			zap.String("url", link),
			zap.String("title", jobs.StrVal(rec.Title)))
		return true, nil
	}
	return false, nil
}
