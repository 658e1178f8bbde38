package port

import (
	"context"

	"github.com/garyjia/memories-nativex/internal/domain/entity"
)

// ScanReportRepository defines persistence of free-space scan reports
type ScanReportRepository interface {
	Create(ctx context.Context, report *entity.ScanReport) error
	GetByID(ctx context.Context, id string) (*entity.ScanReport, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.ScanReport, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
