package linking

import (
	"context"
	"fmt"
	"sync"

	"osm-linker/core/lock"
	"osm-linker/core/reconcile"

	"go.uber.org/zap"
)

// Service runs reconciliation under the run lock and keeps its reports.
type Service struct {
	engine  *reconcile.Engine
	locker  lock.Locker
	archive *Archive
	logger  *zap.Logger

	mu   sync.RWMutex
	last *reconcile.RunReport
}

// NewService creates the service. archive may be nil to keep reports in memory only.
func NewService(engine *reconcile.Engine, locker lock.Locker, archive *Archive, logger *zap.Logger) *Service {
	if locker == nil {
		locker = &lock.LocalLocker{}
	}
	return &Service{
		engine:  engine,
		locker:  locker,
		archive: archive,
		logger:  logger,
	}
}

// Types returns the registered feature types.
func (s *Service) Types() []reconcile.FeatureType {
	return s.engine.Types()
}

// Run performs one reconciliation run. It fails with lock.ErrLocked while
// another run holds the lock. A report that was produced is kept and
// archived even when the run returned an error.
func (s *Service) Run(ctx context.Context, kind reconcile.Kind, opts reconcile.Options) (*reconcile.RunReport, error) {
	release, err := s.locker.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(context.Background()); err != nil {
			s.logger.Warn("Failed to release run lock", zap.Error(err))
		}
	}()

	report, runErr := s.engine.Run(ctx, kind, opts)
	if report == nil {
		return nil, runErr
	}

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()

	if s.archive != nil {
		if err := s.archive.Save(ctx, report); err != nil {
			s.logger.Error("Failed to archive run report", zap.String("run_id", report.ID), zap.Error(err))
		} else {
			s.logger.Info("Archived run report", zap.String("run_id", report.ID))
		}
	}

	return report, runErr
}

// LastReport returns the most recent report of this process.
func (s *Service) LastReport() (*reconcile.RunReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.last != nil
}

// Report returns the report with the given id.
func (s *Service) Report(ctx context.Context, id string) (*reconcile.RunReport, error) {
	if last, ok := s.LastReport(); ok && last.ID == id {
		return last, nil
	}
	if s.archive == nil {
		return nil, ErrReportNotFound
	}
	return s.archive.Load(ctx, id)
}

// Reports lists the archived run ids.
func (s *Service) Reports(ctx context.Context) ([]string, error) {
	if s.archive == nil {
		return []string{}, nil
	}
	ids, err := s.archive.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived reports: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
