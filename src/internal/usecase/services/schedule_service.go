package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/api-sage/statutory-interest-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/statutory-interest-service/src/internal/domain"
	"github.com/api-sage/statutory-interest-service/src/internal/logger"
	"github.com/api-sage/statutory-interest-service/src/internal/usecase/service_interfaces"
)

// Verify that ScheduleService implements the service_interfaces.ScheduleService interface
var _ service_interfaces.ScheduleService = (*ScheduleService)(nil)

// ScheduleService owns the current schedule snapshot and the time-based
// staleness policy around it. Concurrent refreshes are collapsed into a
// single in-flight fetch; every waiter gets that fetch's outcome.
type ScheduleService struct {
	source       repo_interfaces.RateSource         // nil when no remote source is configured
	snapshots    repo_interfaces.ScheduleRepository // nil when snapshot persistence is disabled
	refreshEvery time.Duration

	mu        sync.RWMutex
	schedule  domain.Schedule
	lastFetch time.Time
	fetched   bool

	group singleflight.Group
}

func NewScheduleService(source repo_interfaces.RateSource, snapshots repo_interfaces.ScheduleRepository, refreshEvery time.Duration) *ScheduleService {
	return &ScheduleService{
		source:       source,
		snapshots:    snapshots,
		refreshEvery: refreshEvery,
	}
}

func (s *ScheduleService) Configured() bool {
	return s.source != nil
}

// Steps returns the current schedule, refreshing it first when the last
// successful fetch is older than the refresh interval. A failed fetch
// leaves the cached schedule and its timestamp untouched and surfaces the
// error; the next stale call retries.
func (s *ScheduleService) Steps(ctx context.Context) (domain.Schedule, error) {
	if schedule, ok := s.cached(); ok {
		return schedule, nil
	}

	result, err, _ := s.group.Do("refresh", func() (any, error) {
		// another caller may have finished a refresh while we queued
		if schedule, ok := s.cached(); ok {
			return schedule, nil
		}
		// the fetch outcome is shared by every collapsed caller, so it must
		// not die with whichever request happened to initiate it; the
		// source's own timeout still bounds it
		schedule, err := s.refresh(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		return schedule, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.Schedule), nil
}

// SetSteps installs the given steps directly, bypassing the remote source.
// Used for tests and for preloading a persisted snapshot at startup; the
// fetch time is stamped so the next staleness check is short-circuited.
func (s *ScheduleService) SetSteps(steps []domain.RateStep) {
	schedule := domain.NewSchedule(steps)

	s.mu.Lock()
	s.schedule = schedule
	s.lastFetch = time.Now()
	s.fetched = true
	s.mu.Unlock()

	logger.Info("schedule set manually", logger.Fields{"steps": len(schedule)})
}

func (s *ScheduleService) cached() (domain.Schedule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.fetched || time.Since(s.lastFetch) > s.refreshEvery {
		return nil, false
	}
	return s.schedule, true
}

func (s *ScheduleService) refresh(ctx context.Context) (domain.Schedule, error) {
	if s.source == nil {
		// no source configured: the empty schedule is the documented safe
		// default, and stamping the fetch keeps us from re-checking on
		// every call
		s.install(domain.Schedule{})
		logger.Info("schedule refresh skipped: no rates source configured", nil)
		return domain.Schedule{}, nil
	}

	steps, err := s.source.Fetch(ctx)
	if err != nil {
		logger.Error("schedule refresh failed", err, nil)
		return nil, err
	}

	schedule := domain.NewSchedule(steps)
	s.install(schedule)
	logger.Info("schedule refresh success", logger.Fields{"steps": len(schedule)})

	if s.snapshots != nil {
		if err := s.snapshots.Replace(ctx, schedule); err != nil {
			// persistence is best-effort; the in-memory snapshot is authoritative
			logger.Error("schedule snapshot persist failed", err, nil)
		}
	}

	return schedule, nil
}

func (s *ScheduleService) install(schedule domain.Schedule) {
	s.mu.Lock()
	s.schedule = schedule
	s.lastFetch = time.Now()
	s.fetched = true
	s.mu.Unlock()
}
