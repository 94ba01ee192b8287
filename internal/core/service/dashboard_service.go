package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/monsite/console-api/internal/core/domain"
	"github.com/monsite/console-api/internal/core/ports"
)

// DashboardService manages the catalog of embedded BI dashboards. URLs are
// opaque references; the service stores and passes them through untouched
// apart from deriving an embed URL when only a base URL was provided.
type DashboardService struct {
	repo     ports.DashboardRepository
	recorder ports.AuditRecorder
	log      zerolog.Logger
}

func NewDashboardService(repo ports.DashboardRepository, recorder ports.AuditRecorder, log zerolog.Logger) *DashboardService {
	return &DashboardService{repo: repo, recorder: recorder, log: log}
}

func (s *DashboardService) Create(ctx context.Context, actor domain.Identity, input ports.DashboardInput) (*domain.Dashboard, error) {
	if !actor.HasPermission(domain.PermDashboardManage) {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	dashboard := &domain.Dashboard{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Active:      input.Active,
		URL:         input.URL,
		EmbedURL:    input.EmbedURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, dashboard)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditDashboardCreated, actor.Email, created.ID, created.Name)
	s.log.Info().Str("dashboard_id", created.ID).Str("name", created.Name).Msg("dashboard created")
	created.EmbedURL = created.ResolveEmbedURL()
	return created, nil
}

func (s *DashboardService) Get(ctx context.Context, actor domain.Identity, id string) (*domain.Dashboard, error) {
	if !actor.HasPermission(domain.PermDashboardView) {
		return nil, domain.ErrForbidden
	}

	dashboard, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dashboard.EmbedURL = dashboard.ResolveEmbedURL()
	return dashboard, nil
}

// List returns active dashboards for plain users; admins see the full catalog
// including inactive entries.
func (s *DashboardService) List(ctx context.Context, actor domain.Identity) ([]domain.Dashboard, error) {
	if !actor.HasPermission(domain.PermDashboardView) {
		return nil, domain.ErrForbidden
	}

	onlyActive := !actor.HasPermission(domain.PermDashboardManage)
	dashboards, err := s.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	for i := range dashboards {
		dashboards[i].EmbedURL = dashboards[i].ResolveEmbedURL()
	}
	return dashboards, nil
}

func (s *DashboardService) Update(ctx context.Context, actor domain.Identity, id string, input ports.DashboardInput) (*domain.Dashboard, error) {
	if !actor.HasPermission(domain.PermDashboardManage) {
		return nil, domain.ErrForbidden
	}

	dashboard, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dashboard.Name = input.Name
	dashboard.Description = input.Description
	dashboard.Category = input.Category
	dashboard.Active = input.Active
	dashboard.URL = input.URL
	dashboard.EmbedURL = input.EmbedURL
	dashboard.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, dashboard); err != nil {
		return nil, err
	}

	s.record(domain.AuditDashboardUpdated, actor.Email, dashboard.ID, dashboard.Name)
	dashboard.EmbedURL = dashboard.ResolveEmbedURL()
	return dashboard, nil
}

func (s *DashboardService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if !actor.HasPermission(domain.PermDashboardManage) {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(domain.AuditDashboardDeleted, actor.Email, id, "")
	return nil
}

func (s *DashboardService) record(action, actor, target, detail string) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(domain.AuditEvent{
		Actor:  actor,
		Action: action,
		Target: target,
		Detail: detail,
	})
}
