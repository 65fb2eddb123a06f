package booking

import (
	"context"
	"fmt"

	providerRepo "ninjaservices/database/repository/provider"
	"ninjaservices/models"

	"go.uber.org/zap"
)

// matchLimit bounds how many candidate providers a session offers.
const matchLimit = 12

// MatchingService finds candidate providers for a service plan.
type MatchingService interface {
	MatchProviders(ctx context.Context, plan models.ServicePlan) ([]models.Provider, error)
}

// DefaultMatchingService implements MatchingService.
type DefaultMatchingService struct {
	ProviderRepo providerRepo.ProviderRepository
	Logger       *zap.Logger
}

// MatchProviders returns up to matchLimit qualifying providers, best
// rated first. When nothing matches it returns an empty list rather than
// an error.
func (s *DefaultMatchingService) MatchProviders(ctx context.Context, plan models.ServicePlan) ([]models.Provider, error) {
	providers, err := s.ProviderRepo.ListForService(ctx, plan.ServiceIDs, plan.CategoryID, matchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to match providers: %w", err)
	}
	if len(providers) == 0 {
		s.Logger.Info("no providers matched",
			zap.String("categoryId", plan.CategoryID),
			zap.Strings("serviceIds", plan.ServiceIDs))
		return []models.Provider{}, nil
	}
	return providers, nil
}
