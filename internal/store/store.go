// Package store maintains the authoritative on-disk job collection with
// at-most-once insertion per URL.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tchluc/emploitogo-crawler/internal/jobs"
	"github.com/tchluc/emploitogo-crawler/internal/metrics"
)

// Config identifies the backing file and the envelope metadata written at
// finalize time.
type Config struct {
	Path           string
	Source         string
	ScraperVersion string
}

// Store is an append-only, URL-deduplicated record collection. Save is
// safe to call from concurrent extraction workers: membership check,
// append, and membership marking happen under one lock.
type Store struct {
	mu     sync.Mutex
	cfg    Config
	jobs   []jobs.Record
	known  map[string]struct{}
	logger *zap.Logger
	now    func() time.Time
}

// Open loads any existing persisted collection at cfg.Path. A missing,
// unreadable, or malformed file starts an empty collection rather than
// failing.
func Open(cfg Config, logger *zap.Logger) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	s := &Store{
		cfg:    cfg,
		known:  make(map[string]struct{}),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}

	records, err := LoadRecords(cfg.Path)
	if err != nil {
		logger.Warn("Could not load existing store; starting empty",
			zap.String("path", cfg.Path), zap.Error(err))
		return s, nil
	}
	s.jobs = records
	for _, rec := range records {
		if rec.URL != "" {
			s.known[rec.URL] = struct{}{}
		}
	}
	logger.Info("Loaded existing store",
		zap.String("path", cfg.Path), zap.Int("jobs", len(records)))
	return s, nil
}

// LoadRecords reads a persisted collection, accepting both the metadata
// envelope and the legacy bare-array layout.
func LoadRecords(path string) ([]jobs.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var envelope jobs.StoreFile
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Jobs != nil {
		return envelope.Jobs, nil
	}
	var plain []jobs.Record
	if err := json.Unmarshal(data, &plain); err == nil {
		return plain, nil
	}
	return nil, fmt.Errorf("store file %s is not valid JSON", path)
}

// Save inserts a record unless its URL is empty or already known. It
// reports whether the record was inserted; it never fails hard.
func (s *Store) Save(rec jobs.Record) bool {
	if rec.URL == "" {
		s.logger.Warn("Dropping record without URL",
			zap.String("title", jobs.StrVal(rec.Title)))
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.known[rec.URL]; exists {
		metrics.TotalDuplicates.Inc()
		s.logger.Debug("Record already stored", zap.String("url", rec.URL))
		return false
	}

	rec.ID = len(s.jobs) + 1
	rec.AddedAt = s.now()
	s.jobs = append(s.jobs, rec)
	s.known[rec.URL] = struct{}{}
	metrics.TotalJobsSaved.Inc()
	s.logger.Debug("Record stored",
		zap.String("url", rec.URL), zap.Int("id", rec.ID))
	return true
}

// Finalize writes the full collection to the backing file inside the
// metadata envelope. An existing file is first renamed to a timestamped
// backup, never deleted, so an interrupted write cannot lose data. Write
// failures are fatal to the run and propagate.
func (s *Store) Finalize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload := jobs.StoreFile{
		Metadata: jobs.StoreMetadata{
			TotalJobs:      len(s.jobs),
			LastUpdated:    s.now(),
			Source:         s.cfg.Source,
			ScraperVersion: s.cfg.ScraperVersion,
		},
		Jobs: s.jobs,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	if _, err := os.Stat(s.cfg.Path); err == nil {
		backup := backupPath(s.cfg.Path, s.now())
		if err := os.Rename(s.cfg.Path, backup); err != nil {
			return fmt.Errorf("rotate backup: %w", err)
		}
		s.logger.Info("Backup created", zap.String("path", backup))
	}

	if err := os.WriteFile(s.cfg.Path, data, 0o600); err != nil {
		return fmt.Errorf("write store %s: %w", s.cfg.Path, err)
	}
	s.logger.Info("Store persisted",
		zap.Int("jobs", len(s.jobs)), zap.String("path", s.cfg.Path))
	return nil
}

// Stats summarizes the in-memory collection.
func (s *Store) Stats() jobs.StoreStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	companies := make(map[string]struct{})
	locations := make(map[string]struct{})
	var latest *time.Time
	for _, rec := range s.jobs {
		if rec.Company != nil {
			companies[*rec.Company] = struct{}{}
		}
		if rec.Location != nil {
			locations[*rec.Location] = struct{}{}
		}
		if !rec.ScrapedAt.IsZero() && (latest == nil || rec.ScrapedAt.After(*latest)) {
			t := rec.ScrapedAt
			latest = &t
		}
	}
	return jobs.StoreStats{
		TotalJobs:       len(s.jobs),
		UniqueCompanies: len(companies),
		UniqueLocations: len(locations),
		LatestJob:       latest,
	}
}

// Snapshot copies the current collection for read-only post-processing.
func (s *Store) Snapshot() []jobs.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]jobs.Record, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// Len reports the current record count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// backupPath derives a timestamped backup name that does not collide with
// an existing backup, so two finalizes within one second cannot clobber
// each other.
func backupPath(path string, now time.Time) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	base := fmt.Sprintf("%s.backup_%s", stem, now.Format("20060102_150405"))
	candidate := base + ext
	for n := 1; ; n++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d%s", base, n, ext)
	}
}
