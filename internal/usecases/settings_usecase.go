package usecases

import (
	"context"

	"go.uber.org/zap"
	"paylance.backend/internal/infrastructure/payman"
	"paylance.backend/pkg/logger"
	"paylance.backend/pkg/redis"
)

const apiKeyStorageKey = "settings:payman_api_key"

// Indirection over the redis package for tests.
var (
	redisGet = redis.Get
	redisSet = redis.Set
)

// SettingsUsecase manages the persisted provider credential. The key is
// validated and swapped into the provider source, then stored so it survives
// restarts until replaced.
type SettingsUsecase struct {
	source *payman.Source
}

// NewSettingsUsecase creates a new settings usecase
func NewSettingsUsecase(source *payman.Source) *SettingsUsecase {
	return &SettingsUsecase{source: source}
}

// ConfigureAPIKey validates the key, replaces the active provider and
// persists the credential. Replacement is last-write-wins.
func (u *SettingsUsecase) ConfigureAPIKey(ctx context.Context, apiKey string) error {
	if err := u.source.Configure(apiKey); err != nil {
		return err
	}
	if err := redisSet(ctx, apiKeyStorageKey, apiKey, 0); err != nil {
		// The provider is configured for this process; losing the stored
		// copy only affects the next restart.
		logger.Warn(ctx, "failed to persist api key", zap.Error(err))
	}
	return nil
}

// APIKeyStatus returns the masked form of the configured credential
func (u *SettingsUsecase) APIKeyStatus(ctx context.Context) (masked string, configured bool) {
	return u.source.MaskedKey()
}

// RestoreAPIKey configures the source from a previously stored credential,
// if one exists. Called once at boot.
func (u *SettingsUsecase) RestoreAPIKey(ctx context.Context) error {
	key, err := redisGet(ctx, apiKeyStorageKey)
	if err != nil {
		if redis.IsNil(err) {
			return nil
		}
		return err
	}
	if key == "" {
		return nil
	}
	return u.source.Configure(key)
}
