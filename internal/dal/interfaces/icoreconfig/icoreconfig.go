package icoreconfig

import (
	"context"

	"github.com/workhub/workplace-backend/internal/service/models/coreconfig"
)

// PostgresRepository is an interface for the configuration postgres repository.
type PostgresRepository interface {
	Get(ctx context.Context, key string) (*coreconfig.Setting, error)
	Upsert(ctx context.Context, s coreconfig.Setting) (*coreconfig.Setting, error)
	List(ctx context.Context) ([]coreconfig.Setting, error)
}
