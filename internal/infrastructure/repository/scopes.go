package repository

import (
	"time"

	"github.com/sangkips/restopos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// OrderedBetween keeps orders with start <= ordered_at < end. Callers turn a
// local day into bounds with tzdate; the exclusive end keeps sub-millisecond
// instants of the last millisecond inside the day.
func OrderedBetween(start, end time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("ordered_at >= ? AND ordered_at < ?", start.UTC(), end.UTC())
	}
}

// StatusIn filters by order status. No statuses means no filter.
func StatusIn(statuses ...enum.OrderStatus) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch len(statuses) {
		case 0:
			return db
		case 1:
			return db.Where("order_status = ?", statuses[0])
		}
		return db.Where("order_status IN ?", statuses)
	}
}

// InvoiceLike matches a case-insensitive fragment of the invoice number. It
// avoids ILIKE so the same query runs on SQLite.
func InvoiceLike(fragment string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if fragment == "" {
			return db
		}
		return db.Where("LOWER(invoice_no) LIKE LOWER(?)", "%"+fragment+"%")
	}
}
