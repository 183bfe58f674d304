package calculation

import (
	"context"
	"time"
)

// Repo 定义计算结果的存取
type Repo interface {
	// Save stores rec under its ID and, when rec.Key is set, indexes it by key.
	Save(ctx context.Context, rec *Record, ttl time.Duration) error
	// Get returns nil, nil when id is unknown or expired.
	Get(ctx context.Context, id string) (*Record, error)
	// FindByKey returns nil, nil when nothing is indexed under key.
	FindByKey(ctx context.Context, key string) (*Record, error)
}
