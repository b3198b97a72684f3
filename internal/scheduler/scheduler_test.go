package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/emirhan/coursedeck/internal/app/models/dto"
	"github.com/emirhan/coursedeck/internal/app/services"
	"github.com/emirhan/coursedeck/internal/pkg/apperrors"
)

// fakeSyncService counts full-sync runs and fails with a configured error.
type fakeSyncService struct {
	calls int
	err   error
}

func (f *fakeSyncService) SyncAll(ctx context.Context) error {
	f.calls++
	return f.err
}

func (f *fakeSyncService) SyncSeasons(ctx context.Context) (services.SyncCounts, error) {
	return services.SyncCounts{}, nil
}

func (f *fakeSyncService) SyncDepartments(ctx context.Context) (services.SyncCounts, error) {
	return services.SyncCounts{}, nil
}

func (f *fakeSyncService) SyncCourses(ctx context.Context) (services.SyncCounts, error) {
	return services.SyncCounts{}, nil
}

func (f *fakeSyncService) SyncCoursesForSeasonAndDepartment(ctx context.Context, seasonID, departmentID int64) (services.SyncCounts, error) {
	return services.SyncCounts{}, nil
}

func (f *fakeSyncService) Status(ctx context.Context) (*dto.SyncStatusResponse, error) {
	return nil, nil
}

func (f *fakeSyncService) DeleteSeason(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeSyncService) DeleteDepartment(ctx context.Context, id int64) error {
	return nil
}

func TestStartRejectsInvalidExpression(t *testing.T) {
	s := New(&fakeSyncService{}, "not a cron line", zerolog.Nop())
	if err := s.Start(); err == nil {
		t.Fatal("Start accepted an invalid cron expression")
	}
}

func TestStartAndStop(t *testing.T) {
	s := New(&fakeSyncService{}, "0 6 * * *", zerolog.Nop())
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}

func TestRunSyncExecutesFullSync(t *testing.T) {
	sync := &fakeSyncService{}
	s := New(sync, "0 6 * * *", zerolog.Nop())

	s.runSync()
	if sync.calls != 1 {
		t.Fatalf("SyncAll calls = %d, want 1", sync.calls)
	}
}

func TestRunSyncToleratesFailures(t *testing.T) {
	// Neither a busy sync slot nor a hard failure may panic or propagate; the
	// next scheduled run should still happen.
	for _, err := range []error{apperrors.ErrSyncInProgress, errors.New("boom")} {
		sync := &fakeSyncService{err: err}
		s := New(sync, "0 6 * * *", zerolog.Nop())

		s.runSync()
		s.runSync()
		if sync.calls != 2 {
			t.Fatalf("SyncAll calls = %d, want 2", sync.calls)
		}
	}
}
