package svn

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/svnstat/svnstat/internal/errors"
	"github.com/svnstat/svnstat/internal/history"
	"github.com/svnstat/svnstat/internal/models"
	"github.com/svnstat/svnstat/internal/stats"
	"github.com/svnstat/svnstat/internal/store"
)

// Fetcher fetches raw svn log XML. A nil window means no date filter.
type Fetcher interface {
	Log(ctx context.Context, repoURL string, window *models.DateRange) ([]byte, error)
}

// Service orchestrates incremental sync runs and statistics generation:
// plan window -> fetch -> parse -> merge -> recompute span -> persist.
type Service struct {
	fetcher Fetcher
	store   store.Store
	logger  *logrus.Logger
	now     func() time.Time

	mu         sync.Mutex
	inProgress map[string]bool
}

// ServiceOption allows configuring the service
type ServiceOption func(*Service)

// WithClock injects the clock used to anchor fetch windows and rolling
// statistics. Defaults to time.Now.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new sync service
func NewService(fetcher Fetcher, st store.Store, logger *logrus.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		fetcher:    fetcher,
		store:      st,
		logger:     logger,
		now:        time.Now,
		inProgress: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) acquire(repoURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inProgress[repoURL] {
		return errors.NewSyncInProgressError(repoURL)
	}
	s.inProgress[repoURL] = true
	return nil
}

func (s *Service) release(repoURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inProgress, repoURL)
}

// Sync runs one incremental synchronization for a repository and returns the
// run summary. Concurrent runs for the same repository are rejected.
func (s *Service) Sync(ctx context.Context, repoURL string) (*models.SyncResult, error) {
	logger := s.logger.WithFields(logrus.Fields{
		"repository": repoURL,
		"action":     "sync",
	})

	if err := s.acquire(repoURL); err != nil {
		logger.Warn("Sync already in progress")
		return nil, err
	}
	defer s.release(repoURL)

	started := s.now()

	prior, err := s.store.LoadRange(ctx, repoURL)
	if err != nil {
		logger.WithError(err).Error("Failed to load persisted range")
		return nil, fmt.Errorf("load persisted range: %w", err)
	}

	window, fetch := history.PlanWindow(prior, started)
	if !fetch {
		logger.Info("Persisted set already covers now, skipping fetch")
		existing, err := s.store.LoadCommits(ctx, repoURL)
		if err != nil {
			return nil, fmt.Errorf("load commits: %w", err)
		}
		return &models.SyncResult{
			RepositoryURL: repoURL,
			TotalCommits:  len(existing),
			NewCommits:    0,
			Span:          prior,
			Fetched:       false,
			Duration:      s.now().Sub(started),
			FinishedAt:    s.now(),
		}, nil
	}

	if window == nil {
		logger.Info("No prior data, fetching full history")
	} else {
		logger.WithFields(logrus.Fields{
			"window_start": window.Start,
			"window_end":   window.End,
		}).Info("Fetching incremental window")
	}

	raw, err := s.fetcher.Log(ctx, repoURL, window)
	if err != nil {
		logger.WithError(err).Error("Failed to fetch svn log")
		return nil, fmt.Errorf("fetch svn log: %w", err)
	}

	incoming, err := ParseLog(raw)
	if err != nil {
		logger.WithError(err).Error("Failed to parse svn log")
		return nil, fmt.Errorf("parse svn log: %w", err)
	}
	logger.WithField("fetched", len(incoming)).Info("Parsed fetched commits")

	existing, err := s.store.LoadCommits(ctx, repoURL)
	if err != nil {
		logger.WithError(err).Error("Failed to load persisted commits")
		return nil, fmt.Errorf("load commits: %w", err)
	}

	merged, newCount := history.Merge(existing, incoming)

	result := &models.SyncResult{
		RepositoryURL: repoURL,
		TotalCommits:  len(merged),
		NewCommits:    newCount,
		Fetched:       true,
	}

	if len(merged) > 0 {
		span, err := history.Span(merged)
		if err != nil {
			// Unreachable with a non-empty set; kept as a hard failure.
			return nil, fmt.Errorf("recompute span: %w", err)
		}
		if err := s.store.SaveCommits(ctx, repoURL, merged, span); err != nil {
			logger.WithError(err).Error("Failed to persist merged set")
			return nil, fmt.Errorf("save commits: %w", err)
		}
		result.Span = &span
	}

	result.Duration = s.now().Sub(started)
	result.FinishedAt = s.now()

	logger.WithFields(logrus.Fields{
		"total": result.TotalCommits,
		"new":   result.NewCommits,
	}).Info("Sync completed")

	return result, nil
}

// Stats aggregates the persisted set for a repository. A nil override uses
// the persisted range as the reporting range; a non-nil override is
// normalized by the engine.
func (s *Service) Stats(ctx context.Context, repoURL string, override *models.DateRange, mode stats.Mode) (*stats.Summary, error) {
	commits, err := s.store.LoadCommits(ctx, repoURL)
	if err != nil {
		return nil, fmt.Errorf("load commits: %w", err)
	}

	rng := override
	if rng == nil {
		rng, err = s.store.LoadRange(ctx, repoURL)
		if err != nil {
			return nil, fmt.Errorf("load persisted range: %w", err)
		}
		if rng == nil {
			return nil, errors.NewNotFoundError(
				fmt.Sprintf("no commits recorded for repository %s", repoURL), nil)
		}
	}

	summary, err := stats.Aggregate(commits, *rng, s.now(), mode)
	if err != nil {
		return nil, fmt.Errorf("aggregate commits: %w", err)
	}
	return summary, nil
}

// Authors returns per-author totals from the store.
func (s *Service) Authors(ctx context.Context, repoURL string, limit int) ([]*models.AuthorStats, error) {
	return s.store.TopAuthors(ctx, repoURL, limit)
}

// Commits returns a page of persisted commits plus the total count.
func (s *Service) Commits(ctx context.Context, repoURL string, limit, offset int) ([]*models.Commit, int64, error) {
	return s.store.ListCommits(ctx, repoURL, limit, offset)
}

// Reset wipes all persisted data for a repository. The next sync refetches
// full history.
func (s *Service) Reset(ctx context.Context, repoURL string) error {
	s.logger.WithField("repository", repoURL).Info("Deleting persisted record set")
	return s.store.DeleteCommits(ctx, repoURL)
}
