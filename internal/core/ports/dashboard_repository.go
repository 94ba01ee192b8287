package ports

import (
	"context"

	"github.com/monsite/console-api/internal/core/domain"
)

// DashboardRepository persists the catalog of embedded dashboard references.
type DashboardRepository interface {
	Create(ctx context.Context, dashboard *domain.Dashboard) (*domain.Dashboard, error)
	FindByID(ctx context.Context, id string) (*domain.Dashboard, error)
	List(ctx context.Context, onlyActive bool) ([]domain.Dashboard, error)
	Update(ctx context.Context, dashboard *domain.Dashboard) error
	Delete(ctx context.Context, id string) error
}
