package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/monsite/console-api/internal/core/domain"
	"github.com/monsite/console-api/internal/core/ports"
)

type memDashboardRepo struct {
	mu         sync.Mutex
	nextID     int
	dashboards map[string]*domain.Dashboard
}

func newMemDashboardRepo() *memDashboardRepo {
	return &memDashboardRepo{dashboards: map[string]*domain.Dashboard{}}
}

func (r *memDashboardRepo) Create(ctx context.Context, d *domain.Dashboard) (*domain.Dashboard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	copied := *d
	copied.ID = strconv.Itoa(r.nextID)
	r.dashboards[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (r *memDashboardRepo) FindByID(ctx context.Context, id string) (*domain.Dashboard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.dashboards[id]
	if !ok {
		return nil, domain.ErrDashboardNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *memDashboardRepo) List(ctx context.Context, onlyActive bool) ([]domain.Dashboard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Dashboard, 0, len(r.dashboards))
	for _, d := range r.dashboards {
		if onlyActive && !d.Active {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (r *memDashboardRepo) Update(ctx context.Context, d *domain.Dashboard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dashboards[d.ID]; !ok {
		return domain.ErrDashboardNotFound
	}
	copied := *d
	r.dashboards[d.ID] = &copied
	return nil
}

func (r *memDashboardRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dashboards[id]; !ok {
		return domain.ErrDashboardNotFound
	}
	delete(r.dashboards, id)
	return nil
}

func newDashboardFixture(t *testing.T) (*memDashboardRepo, *DashboardService) {
	t.Helper()
	repo := newMemDashboardRepo()
	return repo, NewDashboardService(repo, &memRecorder{}, zerolog.Nop())
}

func TestDashboardService_Create_DerivesEmbedURL(t *testing.T) {
	_, svc := newDashboardFixture(t)

	created, err := svc.Create(context.Background(), adminActor(), ports.DashboardInput{
		Name:   "Ventes",
		Active: true,
		URL:    "https://bi.example.org/dashboard/12",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	want := "https://bi.example.org/dashboard/12?embedded=true&theme=transparent"
	if created.EmbedURL != want {
		t.Fatalf("embed url = %q, want %q", created.EmbedURL, want)
	}
}

func TestDashboardService_Create_KeepsExplicitEmbedURL(t *testing.T) {
	_, svc := newDashboardFixture(t)

	created, err := svc.Create(context.Background(), adminActor(), ports.DashboardInput{
		Name:     "RH",
		Active:   true,
		URL:      "https://bi.example.org/dashboard/7?tab=2",
		EmbedURL: "https://bi.example.org/embed/7",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.EmbedURL != "https://bi.example.org/embed/7" {
		t.Fatalf("explicit embed url overwritten: %q", created.EmbedURL)
	}
}

func TestDashboardService_EmbedURL_AppendsWithAmpersand(t *testing.T) {
	_, svc := newDashboardFixture(t)

	created, err := svc.Create(context.Background(), adminActor(), ports.DashboardInput{
		Name:   "Finance",
		Active: true,
		URL:    "https://bi.example.org/dashboard/3?tab=1",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	want := "https://bi.example.org/dashboard/3?tab=1&embedded=true&theme=transparent"
	if created.EmbedURL != want {
		t.Fatalf("embed url = %q, want %q", created.EmbedURL, want)
	}
}

func TestDashboardService_Mutations_RequireManage(t *testing.T) {
	repo, svc := newDashboardFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, userActor(), ports.DashboardInput{Name: "X"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on create, got %v", err)
	}

	created, err := svc.Create(ctx, adminActor(), ports.DashboardInput{Name: "Ventes", Active: true})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Update(ctx, userActor(), created.ID, ports.DashboardInput{Name: "Y"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on update, got %v", err)
	}
	if err := svc.Delete(ctx, userActor(), created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}

	if _, err := repo.FindByID(ctx, created.ID); err != nil {
		t.Fatalf("dashboard must survive denied mutations: %v", err)
	}
}

func TestDashboardService_List_UsersOnlySeeActive(t *testing.T) {
	_, svc := newDashboardFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, adminActor(), ports.DashboardInput{Name: "Courant", Active: true}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ctx, adminActor(), ports.DashboardInput{Name: "Archivé", Active: false}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	all, err := svc.List(ctx, adminActor())
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin should see 2 dashboards, got %d", len(all))
	}

	visible, err := svc.List(ctx, userActor())
	if err != nil {
		t.Fatalf("user list failed: %v", err)
	}
	if len(visible) != 1 || visible[0].Name != "Courant" {
		t.Fatalf("user should only see the active dashboard, got %+v", visible)
	}
}

func TestDashboardService_Get_NotFound(t *testing.T) {
	_, svc := newDashboardFixture(t)

	_, err := svc.Get(context.Background(), adminActor(), "missing")
	if !errors.Is(err, domain.ErrDashboardNotFound) {
		t.Fatalf("expected ErrDashboardNotFound, got %v", err)
	}
}

func TestDashboardService_Update_ReplacesFields(t *testing.T) {
	_, svc := newDashboardFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminActor(), ports.DashboardInput{Name: "Ventes", Active: true, Category: "finance"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(ctx, adminActor(), created.ID, ports.DashboardInput{
		Name:     "Ventes 2025",
		Active:   false,
		Category: "sales",
		URL:      "https://bi.example.org/dashboard/99",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Ventes 2025" || updated.Active || updated.Category != "sales" {
		t.Fatalf("unexpected updated dashboard: %+v", updated)
	}
	if updated.EmbedURL == "" {
		t.Fatalf("embed url should be derived from new base url")
	}
}
