package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/schoolshots/photo-intake/internal/core/domain"
)

type recordingRepo struct {
	mu     sync.Mutex
	events []domain.PhotoEvent
	fail   bool
}

func (r *recordingRepo) Insert(_ context.Context, e *domain.PhotoEvent) error {
	if r.fail {
		return errors.New("mongo down")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *e)
	return nil
}

func (r *recordingRepo) ListByPhoto(context.Context, int64) ([]domain.PhotoEvent, error) {
	return nil, nil
}

func (r *recordingRepo) snapshot() []domain.PhotoEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.PhotoEvent(nil), r.events...)
}

func TestDispatcher_PersistsInOrderPerPhoto(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(3, repo, zerolog.Nop())
	d.Start(context.Background())

	types := []domain.PhotoEventType{domain.EventSubmitted, domain.EventMirrored, domain.EventApproved}
	for _, typ := range types {
		d.Publish(domain.PhotoEvent{PhotoID: 5, Type: typ})
		d.Publish(domain.PhotoEvent{PhotoID: 6, Type: typ})
	}
	d.Close()

	var got5 []domain.PhotoEventType
	for _, e := range repo.snapshot() {
		if e.PhotoID == 5 {
			got5 = append(got5, e.Type)
		}
	}
	if len(got5) != len(types) {
		t.Fatalf("expected %d events for photo 5, got %d", len(types), len(got5))
	}
	for i := range types {
		if got5[i] != types[i] {
			t.Fatalf("event %d: got %s, want %s", i, got5[i], types[i])
		}
	}
	if n := len(repo.snapshot()); n != 6 {
		t.Fatalf("expected 6 events persisted, got %d", n)
	}
}

func TestDispatcher_PublishAfterCloseIsDropped(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())
	d.Close()
	d.Close()

	d.Publish(domain.PhotoEvent{PhotoID: 1, Type: domain.EventSubmitted})
	if n := len(repo.snapshot()); n != 0 {
		t.Fatalf("expected nothing persisted, got %d", n)
	}
}

func TestDispatcher_InsertFailureDoesNotStopWorker(t *testing.T) {
	repo := &recordingRepo{fail: true}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())

	d.Publish(domain.PhotoEvent{PhotoID: 1, Type: domain.EventSubmitted})
	d.Publish(domain.PhotoEvent{PhotoID: 1, Type: domain.EventApproved})
	d.Close()
}

func TestDispatcher_ShardIndex(t *testing.T) {
	d := NewDispatcher(0, &recordingRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	for _, id := range []int64{0, 1, 7, 1 << 40, -3} {
		idx := d.shardIndex(id)
		if idx < 0 || idx >= len(d.workers) {
			t.Fatalf("shardIndex(%d) = %d out of range", id, idx)
		}
		if idx != d.shardIndex(id) {
			t.Fatalf("shardIndex(%d) not deterministic", id)
		}
	}
}
