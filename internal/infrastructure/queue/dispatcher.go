package queue

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolshots/photo-intake/internal/api/metrics"
	"github.com/schoolshots/photo-intake/internal/core/domain"
	"github.com/schoolshots/photo-intake/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// Dispatcher persists photo audit events off the request path. Events are
// sharded by photo id onto a fixed set of workers, which keeps the events of
// one photo in publish order.
type Dispatcher struct {
	workers []chan domain.PhotoEvent
	repo    ports.EventRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ ports.EventPublisher = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.EventRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.PhotoEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.PhotoEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or after Close has drained their channel.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands event to the worker owning its photo. It never blocks: when
// the worker's buffer is full, or the dispatcher is closed, the event is
// dropped and counted.
func (d *Dispatcher) Publish(event domain.PhotoEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		metrics.EventsErrorsTotal.WithLabelValues("dropped").Inc()
		return
	}

	idx := d.shardIndex(event.PhotoID)
	select {
	case d.workers[idx] <- event:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.EventsErrorsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Int64("photo_id", event.PhotoID).
			Str("type", string(event.Type)).
			Int("worker_id", idx).
			Msg("audit queue full, event dropped")
	}
}

// Close stops accepting events and waits for the workers to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps a photo id deterministically to a worker index.
func (d *Dispatcher) shardIndex(photoID int64) int {
	n := int64(len(d.workers))
	return int(((photoID % n) + n) % n)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.PhotoEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.EventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.persist(ctx, id, event)
		}
	}
}

func (d *Dispatcher) persist(ctx context.Context, worker int, event domain.PhotoEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), insertTimeout)
	defer cancel()

	if err := d.repo.Insert(ctx, &event); err != nil {
		metrics.EventsErrorsTotal.WithLabelValues("insert_failed").Inc()
		d.log.Error().Err(err).
			Int64("photo_id", event.PhotoID).
			Str("type", string(event.Type)).
			Int("worker_id", worker).
			Msg("audit event persistence failed")
	}
}
