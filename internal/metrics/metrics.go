// Package metrics exposes Prometheus collectors for the scraper.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalRequests tracks the number of HTTP requests dispatched.
	TotalRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_requests_total",
		Help: "The total number of HTTP requests sent.",
	})
	// TotalRequestErrors tracks requests that failed after all retries.
	TotalRequestErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_request_errors_total",
		Help: "The total number of fetches abandoned after exhausting retries.",
	})
	// TotalRetries tracks individual retry attempts.
	TotalRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_retries_total",
		Help: "The total number of retry attempts.",
	})
	// TotalListingPages tracks listing pages walked by the pagination loop.
	TotalListingPages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_listing_pages_total",
		Help: "The total number of listing pages fetched.",
	})
	// TotalJobsSaved tracks records inserted into the store.
	TotalJobsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_jobs_saved_total",
		Help: "The total number of job records inserted into the store.",
	})
	// TotalDuplicates tracks saves skipped because the URL was known.
	TotalDuplicates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_duplicates_total",
		Help: "The total number of saves skipped by URL deduplication.",
	})
)
