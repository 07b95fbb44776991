package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/pkg/pagination"
)

// OrderRepository stores bills and their lines.
type OrderRepository interface {
	// Create inserts the order and its items atomically.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// ListBetween returns orders with start <= ordered_at < end, oldest first.
	ListBetween(ctx context.Context, start, end time.Time, statuses ...enum.OrderStatus) ([]entity.Order, error)
	// CountBetween counts orders with start <= ordered_at < end regardless of status.
	CountBetween(ctx context.Context, start, end time.Time) (int64, error)
}

// OrderFilterParams narrows List. OrderedFrom is inclusive and OrderedTo
// exclusive; both are UTC instants.
type OrderFilterParams struct {
	Pagination  *pagination.PaginationParams
	Search      string
	Status      *enum.OrderStatus
	OrderType   *enum.OrderType
	OrderedFrom *time.Time
	OrderedTo   *time.Time
	SortOrder   string
}
