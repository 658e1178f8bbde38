package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/garyjia/memories-nativex/internal/application/port"
	"github.com/garyjia/memories-nativex/internal/domain/entity"
)

// DefaultScanToastMessage is shown to the user when a scan starts
const DefaultScanToastMessage = "Scanning..."

// FreeSpaceService finds local media that is already backed up on the server
type FreeSpaceService interface {
	Scan(ctx context.Context) (*entity.ScanReport, error)
	GetReport(ctx context.Context, id string) (*entity.ScanReport, error)
	ListReports(ctx context.Context, limit int) ([]*entity.ScanReport, error)
}

// FreeSpaceConfig holds scan settings
type FreeSpaceConfig struct {
	ToastMessage string
}

type freeSpaceServiceImpl struct {
	config     FreeSpaceConfig
	bridges    port.BridgeProvider
	nativeAPI  port.NativeAPI
	serverAPI  port.ServerAPI
	reportRepo port.ScanReportRepository
	logger     Logger
}

// NewFreeSpaceService creates a new FreeSpaceService.
// reportRepo may be nil, in which case reports are not persisted.
func NewFreeSpaceService(
	config FreeSpaceConfig,
	bridges port.BridgeProvider,
	nativeAPI port.NativeAPI,
	serverAPI port.ServerAPI,
	reportRepo port.ScanReportRepository,
	logger Logger,
) FreeSpaceService {
	if config.ToastMessage == "" {
		config.ToastMessage = DefaultScanToastMessage
	}
	return &freeSpaceServiceImpl{
		config:     config,
		bridges:    bridges,
		nativeAPI:  nativeAPI,
		serverAPI:  serverAPI,
		reportRepo: reportRepo,
		logger:     logger,
	}
}

// Scan reconciles items pending remote confirmation against the server,
// tells the host which ones are safe to delete, and then hands over to the
// host's own scan. Failures are logged and recorded in the report; the only
// error returned is context cancellation.
func (s *freeSpaceServiceImpl) Scan(ctx context.Context) (*entity.ScanReport, error) {
	report := &entity.ScanReport{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}

	bridge := s.bridges.Bridge()
	scanner, ok := bridge.(port.FreeSpaceScanner)
	if !ok {
		s.logger.Info("Native bridge cannot scan for free space, skipping")
		report.Status = entity.ScanStatusSkipped
		report.Finish(time.Now())
		return report, nil
	}

	if toaster, ok := bridge.(port.Toaster); ok {
		toaster.Toast(s.config.ToastMessage, false)
	}

	s.logger.Info("Starting free space scan", "scan_id", report.ID)
	s.reconcile(ctx, bridge, report)
	if err := ctx.Err(); err != nil && report.Status != entity.ScanStatusFailed {
		// cancelled while the last day was in flight
		report.Status = entity.ScanStatusFailed
		report.Error = err.Error()
	}

	scanner.FreeSpaceScan()
	report.Finish(time.Now())

	s.logger.Info("Free space scan finished",
		"scan_id", report.ID,
		"status", report.Status,
		"pending", report.PendingCount,
		"days", report.DaysTotal,
		"matched_a", report.MatchedA,
		"matched_b", report.MatchedB,
	)

	s.saveReport(context.WithoutCancel(ctx), report)

	return report, ctx.Err()
}

// reconcile fetches the pending items and processes them one day at a time
func (s *freeSpaceServiceImpl) reconcile(ctx context.Context, bridge port.NativeBridge, report *entity.ScanReport) {
	pending, err := s.nativeAPI.PendingRemoteCheck(ctx)
	if err != nil {
		s.logger.Error("Failed to list items pending remote check", "error", err, "scan_id", report.ID)
		report.Status = entity.ScanStatusFailed
		report.Error = err.Error()
		return
	}

	report.PendingCount = len(pending)
	dayIDs, groups := GroupByDay(pending)
	report.DaysTotal = len(dayIDs)

	marker, canMark := bridge.(port.RemoteMarker)
	if !canMark {
		s.logger.Info("Native bridge cannot mark remote items, matches will only be reported", "scan_id", report.ID)
	}

	for _, dayID := range dayIDs {
		if err := ctx.Err(); err != nil {
			report.Status = entity.ScanStatusFailed
			report.Error = err.Error()
			return
		}

		day := s.reconcileDay(ctx, dayID, groups[dayID])
		if canMark && day.HasMatches() {
			if err := markRemote(marker, day); err != nil {
				s.logger.Error("Failed to mark remote items", "error", err, "day_id", dayID)
			}
		}
		report.AddDay(day)
	}
}

// reconcileDay fetches the server listing of one day and matches it.
// A non-2xx answer skips the day; any other failure is logged and the day is marked failed.
func (s *freeSpaceServiceImpl) reconcileDay(ctx context.Context, dayID int64, pending []entity.PendingRemoteCheck) entity.DayMatch {
	photos, err := s.serverAPI.GetDay(ctx, dayID)
	if err != nil {
		var statusErr *port.StatusError
		if errors.As(err, &statusErr) {
			s.logger.Info("Server rejected day listing, skipping", "day_id", dayID, "status", statusErr.StatusCode)
			return unreconciledDay(dayID, entity.DayOutcomeSkipped, len(pending))
		}
		s.logger.Error("Failed to fetch server day", "error", err, "day_id", dayID)
		return unreconciledDay(dayID, entity.DayOutcomeFailed, len(pending))
	}

	return MatchDay(dayID, pending, photos)
}

func unreconciledDay(dayID int64, outcome string, unmatched int) entity.DayMatch {
	return entity.DayMatch{
		DayID:     dayID,
		Outcome:   outcome,
		MatchesA:  []string{},
		MatchesB:  []string{},
		Unmatched: unmatched,
	}
}

// markRemote tells the host which items of a day exist on the server
func markRemote(marker port.RemoteMarker, day entity.DayMatch) error {
	auids, err := json.Marshal(day.MatchesA)
	if err != nil {
		return fmt.Errorf("marshal auids: %w", err)
	}
	buids, err := json.Marshal(day.MatchesB)
	if err != nil {
		return fmt.Errorf("marshal buids: %w", err)
	}

	marker.SetHasRemote(string(auids), string(buids), true)
	return nil
}

// saveReport persists the report when a repository is configured
func (s *freeSpaceServiceImpl) saveReport(ctx context.Context, report *entity.ScanReport) {
	if s.reportRepo == nil {
		return
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		s.logger.Error("Failed to save scan report", "error", err, "scan_id", report.ID)
	}
}

// GetReport retrieves a stored scan report
func (s *freeSpaceServiceImpl) GetReport(ctx context.Context, id string) (*entity.ScanReport, error) {
	if s.reportRepo == nil {
		return nil, ErrReportNotFound
	}

	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get scan report", "error", err, "scan_id", id)
		return nil, fmt.Errorf("get scan report: %w", err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	return report, nil
}

// ListReports returns the most recent scan reports, newest first
func (s *freeSpaceServiceImpl) ListReports(ctx context.Context, limit int) ([]*entity.ScanReport, error) {
	if s.reportRepo == nil {
		return []*entity.ScanReport{}, nil
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	reports, err := s.reportRepo.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list scan reports", "error", err)
		return nil, fmt.Errorf("list scan reports: %w", err)
	}

	return reports, nil
}
