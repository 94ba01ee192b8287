package service

import (
	"context"

	"github.com/monsite/console-api/internal/core/domain"
	"github.com/monsite/console-api/internal/core/ports"
)

// MetricsService aggregates the numbers shown on the admin landing page.
// User counts come from the canonical store; the revenue and connection
// figures are the static placeholders the console has always displayed.
type MetricsService struct {
	repo ports.UserRepository
}

func NewMetricsService(repo ports.UserRepository) *MetricsService {
	return &MetricsService{repo: repo}
}

func (s *MetricsService) ConsoleMetrics(ctx context.Context) (*ports.ConsoleMetrics, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.CountByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	admins, err := s.repo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &ports.ConsoleMetrics{
		TotalUsers:        total,
		ActiveUsers:       users,
		AdminUsers:        admins,
		TotalRevenue:      125000.0,
		ConversionRate:    3.2,
		SystemStatus:      "operational",
		ActiveConnections: 45,
	}, nil
}
