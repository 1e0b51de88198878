// Package fetch retrieves and parses pages with a retry and rate-limiting
// policy wrapped around a Colly collector.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tchluc/emploitogo-crawler/internal/metrics"
)

// Page is a fetched, parsed document.
type Page struct {
	URL        string
	FinalURL   string
	StatusCode int
	Body       []byte
	Doc        *goquery.Document
}

// Config controls the retry ceiling, timings, and client identity.
type Config struct {
	UserAgent    string
	Timeout      time.Duration // per attempt
	MaxRetries   int           // attempts per URL
	RetryBackoff time.Duration // fixed pause between failed attempts
	RequestDelay time.Duration // mandatory pause after every fetch
}

// Fetcher issues rate-limited, retried GETs through a shared base
// collector. The inter-request delay is enforced through a token-bucket
// limiter independently of retry backoff, so even an immediately failed
// fetch still pays the delay before the next one starts.
type Fetcher struct {
	baseCollector *colly.Collector
	limiter       *rate.Limiter
	cfg           Config
	logger        *zap.Logger
}

// New constructs a configured Fetcher.
func New(cfg Config, logger *zap.Logger) *Fetcher {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	base := colly.NewCollector(colly.UserAgent(cfg.UserAgent))
	base.AllowURLRevisit = true
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   8,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(cfg.Timeout)

	limit := rate.Inf
	if cfg.RequestDelay > 0 {
		limit = rate.Every(cfg.RequestDelay)
	}
	limiter := rate.NewLimiter(limit, 1)
	// The bucket starts drained: every fetch, the first included, pays the
	// full inter-request delay.
	limiter.Allow()

	return &Fetcher{
		baseCollector: base,
		limiter:       limiter,
		cfg:           cfg,
		logger:        logger,
	}
}

// Fetch retrieves rawURL, retrying transient failures up to the configured
// ceiling with a fixed backoff between attempts. Exhausting retries
// returns the last error; the caller decides what a single lost URL means.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	var lastErr error
	for attempt := 1; attempt <= f.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return Page{}, err
		}

		page, err := f.fetchOnce(rawURL)
		f.pay(ctx)
		if err == nil {
			return page, nil
		}
		lastErr = err
		f.logger.Warn("Fetch attempt failed",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt == f.cfg.MaxRetries {
			break
		}
		metrics.TotalRetries.Inc()
		if !sleepCtx(ctx, f.cfg.RetryBackoff) {
			return Page{}, ctx.Err()
		}
	}
	metrics.TotalRequestErrors.Inc()
	return Page{}, fmt.Errorf("fetch %s after %d attempts: %w", rawURL, f.cfg.MaxRetries, lastErr)
}

func (f *Fetcher) fetchOnce(rawURL string) (Page, error) {
	metrics.TotalRequests.Inc()

	collector := f.baseCollector.Clone()
	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() { resultCh <- res })
	}

	collector.OnResponse(func(r *colly.Response) {
		send(fetchResult{page: Page{
			URL:        rawURL,
			FinalURL:   r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Body:       append([]byte{}, r.Body...),
		}})
	})
	collector.OnError(func(r *colly.Response, err error) {
		if err == nil {
			err = errors.New("unknown colly error")
		}
		if r != nil && r.StatusCode != 0 {
			err = fmt.Errorf("status %d: %w", r.StatusCode, err)
		}
		send(fetchResult{err: err})
	})

	if err := collector.Visit(rawURL); err != nil {
		return Page{}, err
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		if res.err != nil {
			return Page{}, res.err
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.page.Body))
		if err != nil {
			return Page{}, fmt.Errorf("parse %s: %w", rawURL, err)
		}
		res.page.Doc = doc
		return res.page, nil
	default:
		return Page{}, errors.New("fetch produced no result")
	}
}

// pay consumes one rate-limit token, blocking for the inter-request delay.
// Cancellation during the wait is surfaced by the next ctx check.
func (f *Fetcher) pay(ctx context.Context) {
	_ = f.limiter.Wait(ctx)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

type fetchResult struct {
	page Page
	err  error
}
