// Package stats aggregates pending/in-progress/completed counts across the
// three annotation domains (segment, examination, sensitive meta) by calling
// their stats endpoints in parallel and summing client-side.
package stats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lx-annotate/annotate-api/internal/models"
)

// StaleAfter is the staleness window: a fetch older than this (inclusive)
// needs a refresh.
const StaleAfter = 5 * time.Minute

// BackendClient is the slice of the backend client the stats service
// depends on.
type BackendClient interface {
	ExaminationStats(ctx context.Context) (models.DomainStats, error)
	SegmentStats(ctx context.Context) (models.DomainStats, error)
	SensitiveMetaStats(ctx context.Context) (models.DomainStats, error)
}

// Service aggregates annotation completion statistics.
type Service interface {
	FetchAnnotationStats(ctx context.Context) (*models.AnnotationStats, error)
	Stats() models.AnnotationStats
	LastUpdated() *time.Time
	NeedsRefresh() bool
	RefreshIfNeeded(ctx context.Context) error
	Loading() bool
	Error() string
}

// ServiceImpl implements the Service interface.
type ServiceImpl struct {
	client BackendClient

	mu          sync.Mutex
	stats       models.AnnotationStats
	lastUpdated *time.Time
	loading     bool
	lastError   string

	now func() time.Time
}

// NewService creates a new stats service.
func NewService(client BackendClient) *ServiceImpl {
	return &ServiceImpl{
		client: client,
		now:    time.Now,
	}
}

// FetchAnnotationStats fetches all three domains in parallel and replaces
// the aggregate. A call arriving while another fetch is in flight returns
// the current aggregate without issuing requests.
func (s *ServiceImpl) FetchAnnotationStats(ctx context.Context) (*models.AnnotationStats, error) {
	s.mu.Lock()
	if s.loading {
		current := s.stats
		s.mu.Unlock()
		return &current, nil
	}
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	var aggregate models.AnnotationStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.client.SegmentStats(gctx)
		if err != nil {
			return fmt.Errorf("segment stats: %w", err)
		}
		aggregate.Segment = stats
		return nil
	})
	g.Go(func() error {
		stats, err := s.client.ExaminationStats(gctx)
		if err != nil {
			return fmt.Errorf("examination stats: %w", err)
		}
		aggregate.Examination = stats
		return nil
	})
	g.Go(func() error {
		stats, err := s.client.SensitiveMetaStats(gctx)
		if err != nil {
			return fmt.Errorf("sensitive meta stats: %w", err)
		}
		aggregate.SensitiveMeta = stats
		return nil
	})

	if err := g.Wait(); err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	fetchedAt := s.now()
	s.mu.Lock()
	s.stats = aggregate
	s.lastUpdated = &fetchedAt
	s.lastError = ""
	s.mu.Unlock()
	return &aggregate, nil
}

// Stats returns the last fetched aggregate.
func (s *ServiceImpl) Stats() models.AnnotationStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stats
}

// LastUpdated returns the time of the last successful fetch, or nil.
func (s *ServiceImpl) LastUpdated() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastUpdated == nil {
		return nil
	}
	updated := *s.lastUpdated
	return &updated
}

// NeedsRefresh reports whether the aggregate was never fetched or is at
// least StaleAfter old. The boundary is inclusive: exactly five minutes is
// stale.
func (s *ServiceImpl) NeedsRefresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastUpdated == nil {
		return true
	}
	return s.now().Sub(*s.lastUpdated) >= StaleAfter
}

// RefreshIfNeeded fetches only when the aggregate is stale.
func (s *ServiceImpl) RefreshIfNeeded(ctx context.Context) error {
	if !s.NeedsRefresh() {
		return nil
	}
	_, err := s.FetchAnnotationStats(ctx)
	return err
}

// Loading reports whether a fetch is in flight.
func (s *ServiceImpl) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}

// Error returns the last recorded failure, empty after a success.
func (s *ServiceImpl) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastError
}
