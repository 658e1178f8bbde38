package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/memories-nativex/internal/application/port"
	"github.com/garyjia/memories-nativex/internal/domain/entity"
	"github.com/garyjia/memories-nativex/pkg/database"
)

var _ port.TransactionManager = (*database.DB)(nil)

// ScanReportRepository implements port.ScanReportRepository
type ScanReportRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewScanReportRepository creates a new scan report repository
func NewScanReportRepository(db *database.DB, logger *zap.Logger) port.ScanReportRepository {
	return &ScanReportRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a report and its per-day results in one transaction
func (r *ScanReportRepository) Create(ctx context.Context, report *entity.ScanReport) error {
	return r.db.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := r.db.Executor(txCtx)

		_, err := exec.ExecContext(txCtx, `
			INSERT INTO scan_reports (
				id, status, started_at, finished_at, pending_count, days_total,
				days_skipped, days_failed, matched_a, matched_b, error
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			report.ID,
			report.Status,
			report.StartedAt.UTC(),
			report.FinishedAt.UTC(),
			report.PendingCount,
			report.DaysTotal,
			report.DaysSkipped,
			report.DaysFailed,
			report.MatchedA,
			report.MatchedB,
			report.Error,
		)
		if err != nil {
			r.logger.Error("Failed to create scan report", zap.String("scan_id", report.ID), zap.Error(err))
			return fmt.Errorf("failed to create scan report: %w", err)
		}

		for _, day := range report.Days {
			matchesA, err := marshalIDs(day.MatchesA)
			if err != nil {
				return err
			}
			matchesB, err := marshalIDs(day.MatchesB)
			if err != nil {
				return err
			}

			_, err = exec.ExecContext(txCtx, `
				INSERT INTO scan_report_days (report_id, day_id, outcome, matches_a, matches_b, unmatched)
				VALUES (?, ?, ?, ?, ?, ?)
			`, report.ID, day.DayID, day.Outcome, matchesA, matchesB, day.Unmatched)
			if err != nil {
				r.logger.Error("Failed to create scan report day",
					zap.String("scan_id", report.ID),
					zap.Int64("day_id", day.DayID),
					zap.Error(err))
				return fmt.Errorf("failed to create scan report day: %w", err)
			}
		}

		return nil
	})
}

// GetByID retrieves a report with its days. Returns nil, nil when not found.
func (r *ScanReportRepository) GetByID(ctx context.Context, id string) (*entity.ScanReport, error) {
	row := r.db.Executor(ctx).QueryRowContext(ctx, `
		SELECT id, status, started_at, finished_at, pending_count, days_total,
			days_skipped, days_failed, matched_a, matched_b, error
		FROM scan_reports
		WHERE id = ?
	`, id)

	report, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get scan report", zap.String("scan_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get scan report: %w", err)
	}

	days, err := r.getDays(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Days = days

	return report, nil
}

// ListRecent returns report summaries, newest first. Days are not loaded.
func (r *ScanReportRepository) ListRecent(ctx context.Context, limit int) ([]*entity.ScanReport, error) {
	rows, err := r.db.Executor(ctx).QueryContext(ctx, `
		SELECT id, status, started_at, finished_at, pending_count, days_total,
			days_skipped, days_failed, matched_a, matched_b, error
		FROM scan_reports
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		r.logger.Error("Failed to list scan reports", zap.Error(err))
		return nil, fmt.Errorf("failed to list scan reports: %w", err)
	}
	defer rows.Close()

	reports := []*entity.ScanReport{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

func (r *ScanReportRepository) getDays(ctx context.Context, reportID string) ([]entity.DayMatch, error) {
	rows, err := r.db.Executor(ctx).QueryContext(ctx, `
		SELECT day_id, outcome, matches_a, matches_b, unmatched
		FROM scan_report_days
		WHERE report_id = ?
		ORDER BY day_id ASC
	`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan report days: %w", err)
	}
	defer rows.Close()

	var days []entity.DayMatch
	for rows.Next() {
		var day entity.DayMatch
		var matchesA, matchesB string
		if err := rows.Scan(&day.DayID, &day.Outcome, &matchesA, &matchesB, &day.Unmatched); err != nil {
			return nil, fmt.Errorf("failed to scan report day: %w", err)
		}
		if err := json.Unmarshal([]byte(matchesA), &day.MatchesA); err != nil {
			return nil, fmt.Errorf("failed to decode matches_a: %w", err)
		}
		if err := json.Unmarshal([]byte(matchesB), &day.MatchesB); err != nil {
			return nil, fmt.Errorf("failed to decode matches_b: %w", err)
		}
		days = append(days, day)
	}

	return days, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row rowScanner) (*entity.ScanReport, error) {
	var report entity.ScanReport
	err := row.Scan(
		&report.ID,
		&report.Status,
		&report.StartedAt,
		&report.FinishedAt,
		&report.PendingCount,
		&report.DaysTotal,
		&report.DaysSkipped,
		&report.DaysFailed,
		&report.MatchedA,
		&report.MatchedB,
		&report.Error,
	)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func marshalIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("failed to marshal ids: %w", err)
	}
	return string(data), nil
}

// Verify interface compliance
var _ port.ScanReportRepository = (*ScanReportRepository)(nil)
