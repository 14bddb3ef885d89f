package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/edu-report/report-card-api/internal/models"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
)

type overviewReader interface {
	OverviewRows(ctx context.Context, filter models.ClassOverviewFilter) ([]models.ClassOverviewRow, error)
	OverviewSummary(ctx context.Context, filter models.ClassOverviewFilter) ([]models.ClassOverviewSummary, error)
}

type overviewCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type cacheMetricsRecorder interface {
	RecordCacheOperation(hit bool, duration time.Duration)
	ObserveCacheWrite(duration time.Duration)
}

// AnalyticsService serves the class test overview: a read-only reporting
// surface over raw test results. Overview payloads may be cached; the core
// report card summaries never pass through here.
type AnalyticsService struct {
	results  overviewReader
	cache    overviewCache
	metrics  cacheMetricsRecorder
	cacheTTL time.Duration
	enabled  bool
	logger   *zap.Logger
}

// NewAnalyticsService constructs AnalyticsService. A nil cache disables
// caching regardless of the enabled flag.
func NewAnalyticsService(results overviewReader, cache overviewCache, metrics cacheMetricsRecorder, cacheTTL time.Duration, enabled bool, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		enabled = false
	}
	return &AnalyticsService{
		results:  results,
		cache:    cache,
		metrics:  metrics,
		cacheTTL: cacheTTL,
		enabled:  enabled,
		logger:   logger,
	}
}

// ClassOverview returns the detailed rows plus grouped averages for the
// filter. The academic year is mandatory.
func (s *AnalyticsService) ClassOverview(ctx context.Context, filter models.ClassOverviewFilter) (*models.ClassOverview, error) {
	if filter.AcademicYearID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "academic_year_id is required")
	}
	if filter.TestType != "" && !filter.TestType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown test type %q", filter.TestType))
	}

	key := s.cacheKey(filter)
	if s.enabled {
		var cached models.ClassOverview
		start := time.Now()
		err := s.cache.Get(ctx, key, &cached)
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(err == nil, time.Since(start))
		}
		if err == nil {
			return &cached, nil
		}
		if !appErrors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("class overview cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	rows, err := s.results.OverviewRows(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load overview rows")
	}
	summary, err := s.results.OverviewSummary(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to summarize overview")
	}

	overview := &models.ClassOverview{Details: rows, Summary: summary}
	if s.enabled {
		start := time.Now()
		if err := s.cache.Set(ctx, key, overview, s.cacheTTL); err != nil {
			s.logger.Warn("class overview cache write failed", zap.String("key", key), zap.Error(err))
		} else if s.metrics != nil {
			s.metrics.ObserveCacheWrite(time.Since(start))
		}
	}
	return overview, nil
}

func (s *AnalyticsService) cacheKey(filter models.ClassOverviewFilter) string {
	return fmt.Sprintf("analytics:class-overview:%s:%s:%s:%s:%s:%s",
		filter.AcademicYearID, filter.ProgramID, filter.CourseID, filter.TermID, filter.TestType, filter.StudentID)
}
