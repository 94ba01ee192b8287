package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/monsite/console-api/internal/core/domain"
)

type memAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *memAuditRepo) Insert(ctx context.Context, event *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *memAuditRepo) ListByActor(ctx context.Context, actor string, limit int) ([]domain.AuditEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AuditEvent
	for _, e := range r.events {
		if e.Actor == actor {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestAuditDispatcher_PersistsEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &memAuditRepo{}
	d := NewAuditDispatcher(2, repo, zerolog.Nop())
	d.Start(ctx)

	d.Record(domain.AuditEvent{Actor: "admin@monsite.com", Action: domain.AuditLoginSuccess})
	d.Record(domain.AuditEvent{Actor: "jean@monsite.com", Action: domain.AuditLoginFailure})

	waitFor(t, func() bool { return repo.count() == 2 })
}

func TestAuditDispatcher_StampsIDAndTimestamp(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &memAuditRepo{}
	d := NewAuditDispatcher(1, repo, zerolog.Nop())
	d.Start(ctx)

	d.Record(domain.AuditEvent{Actor: "admin@monsite.com", Action: domain.AuditUserDeleted})
	waitFor(t, func() bool { return repo.count() == 1 })

	events, _ := repo.ListByActor(ctx, "admin@monsite.com", 10)
	if events[0].ID == "" {
		t.Fatalf("event id not stamped")
	}
	if events[0].Timestamp.IsZero() {
		t.Fatalf("event timestamp not stamped")
	}
}

func TestAuditDispatcher_PerActorOrdering(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &memAuditRepo{}
	d := NewAuditDispatcher(4, repo, zerolog.Nop())
	d.Start(ctx)

	const n = 50
	for i := 0; i < n; i++ {
		action := domain.AuditLoginFailure
		if i == n-1 {
			action = domain.AuditLockoutTriggered
		}
		d.Record(domain.AuditEvent{Actor: "admin@monsite.com", Action: action})
	}

	waitFor(t, func() bool { return repo.count() == n })

	events, _ := repo.ListByActor(ctx, "admin@monsite.com", n)
	if len(events) != n {
		t.Fatalf("expected %d events, got %d", n, len(events))
	}
	// Same actor always lands on the same worker, so the lockout event must
	// arrive after every failure that preceded it.
	if events[n-1].Action != domain.AuditLockoutTriggered {
		t.Fatalf("per-actor ordering violated: last action = %s", events[n-1].Action)
	}
}

func TestAuditDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewAuditDispatcher(4, &memAuditRepo{}, zerolog.Nop())
	first := d.shardIndex("admin@monsite.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("admin@monsite.com") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}
