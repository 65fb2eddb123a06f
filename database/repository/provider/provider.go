package providerRepo

import (
	"context"

	"ninjaservices/models"
)

// ProviderRepository abstracts provider discovery and lookup.
type ProviderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// ListForService returns active providers covering all of serviceIDs
	// within categoryID, capped at limit.
	ListForService(ctx context.Context, serviceIDs []string, categoryID string, limit int) ([]models.Provider, error)
}
