package ports

import (
	"context"

	"github.com/monsite/console-api/internal/core/domain"
)

// DashboardInput carries the writable fields of a dashboard record.
type DashboardInput struct {
	Name        string
	Description string
	Category    string
	Active      bool
	URL         string
	EmbedURL    string
}

// DashboardService manages the dashboard catalog. Reads require
// dashboard:view on the actor, mutations require dashboard:manage.
type DashboardService interface {
	Create(ctx context.Context, actor domain.Identity, input DashboardInput) (*domain.Dashboard, error)
	Get(ctx context.Context, actor domain.Identity, id string) (*domain.Dashboard, error)
	List(ctx context.Context, actor domain.Identity) ([]domain.Dashboard, error)
	Update(ctx context.Context, actor domain.Identity, id string, input DashboardInput) (*domain.Dashboard, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
}
