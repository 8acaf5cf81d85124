package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/parkit/parking-system/internal/core/ports"
	"github.com/parkit/parking-system/internal/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes gate events to a fixed set of workers using consistent
// hashing on the vehicle registration, guaranteeing per-vehicle ordering:
// an entry and the matching exit are always applied by the same worker, in
// arrival order.
type Dispatcher struct {
	workers []chan ports.GateEventInput
	service ports.GateEventService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.GateEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.GateEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.GateEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its vehicle.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.GateEventInput) {
	i := d.shardIndex(event.VehicleID)
	d.workers[i] <- event
	metrics.GateEventsQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// EnqueueBatch enqueues multiple events preserving per-vehicle ordering.
func (d *Dispatcher) EnqueueBatch(events []ports.GateEventInput) {
	for _, e := range events {
		d.Enqueue(e)
	}
}

// shardIndex maps a vehicle registration deterministically to a worker index.
func (d *Dispatcher) shardIndex(vehicleID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(vehicleID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.GateEventInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, event); err != nil {
				metrics.GateEventsErrorsTotal.WithLabelValues(event.Direction).Inc()
				d.log.Error().Err(err).
					Str("vehicle_id", event.VehicleID).
					Str("direction", event.Direction).
					Int("worker_id", id).
					Msg("gate event processing failed")
			}
			metrics.GateEventsQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
