package repository

import (
	"context"
	"time"

	"github.com/sangkips/restopos-api/internal/domain/entity"
)

type IdempotencyRepository interface {
	// GetByKey returns nil, nil when the key has not been seen for the client.
	GetByKey(ctx context.Context, key, clientID string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
