package configsvc

import (
	"context"
	"encoding/json"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/dal/interfaces/icoreconfig"
	"github.com/workhub/workplace-backend/internal/dal/postgres"
	coreconfigrepo "github.com/workhub/workplace-backend/internal/dal/repositories/coreconfig/postgres"
	"github.com/workhub/workplace-backend/internal/service/models/coreconfig"
	"github.com/workhub/workplace-backend/internal/service/models/identity"
)

// ConfigService manages global application settings.
type ConfigService struct {
	repo icoreconfig.PostgresRepository
}

func NewConfigService(pgClient *postgres.Client) *ConfigService {
	return &ConfigService{
		repo: coreconfigrepo.NewPostgresCoreConfigRepository(pgClient.Pool()),
	}
}

func (s *ConfigService) List(ctx context.Context) ([]coreconfig.Setting, error) {
	return s.repo.List(ctx)
}

func (s *ConfigService) Get(ctx context.Context, key string) (*coreconfig.Setting, error) {
	return s.repo.Get(ctx, key)
}

func (s *ConfigService) Set(ctx context.Context, actor identity.Actor, key string, value json.RawMessage) (*coreconfig.Setting, error) {
	if key == "" {
		return nil, apperrors.NewValidation("key", "must not be empty")
	}
	if !json.Valid(value) {
		return nil, apperrors.NewValidation("value", "must be valid JSON")
	}

	return s.repo.Upsert(ctx, coreconfig.Setting{
		Key:       key,
		Value:     value,
		UpdatedBy: actor.ID,
	})
}
