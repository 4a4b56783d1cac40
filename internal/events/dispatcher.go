package events

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"mwork_admission/internal/admission"
	"mwork_admission/internal/logger"
)

// Sink доставляет событие в одно место назначения (kafka, уведомления, почта).
type Sink interface {
	Name() string
	Deliver(ctx context.Context, change admission.StatusChange) error
}

// Dispatcher реализует admission.Notifier: Notify никогда не блокирует координатор,
// доставка идет в фоновых воркерах. У каждого воркера своя очередь, кастинг всегда
// попадает в одну и ту же, поэтому события одного кастинга доставляются по порядку.
type Dispatcher struct {
	queues  []chan admission.StatusChange
	sinks   []Sink
	timeout time.Duration

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

func NewDispatcher(buffer, workers int, sinks ...Sink) *Dispatcher {
	if buffer < 1 {
		buffer = 1
	}
	if workers < 1 {
		workers = 1
	}
	// buffer - общий объем, делится между очередями воркеров
	perQueue := (buffer + workers - 1) / workers
	queues := make([]chan admission.StatusChange, workers)
	for i := range queues {
		queues[i] = make(chan admission.StatusChange, perQueue)
	}
	return &Dispatcher{
		queues:  queues,
		sinks:   sinks,
		timeout: 10 * time.Second,
	}
}

func (d *Dispatcher) queueFor(castingID string) chan admission.StatusChange {
	h := fnv.New32a()
	_, _ = h.Write([]byte(castingID))
	return d.queues[h.Sum32()%uint32(len(d.queues))]
}

// Notify ставит событие в очередь. При переполненной очереди событие теряется с warning.
func (d *Dispatcher) Notify(change admission.StatusChange) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		logger.Warn("dispatcher stopped, event dropped", "assignment_id", change.AssignmentID)
		return
	}

	select {
	case d.queueFor(change.CastingID) <- change:
	default:
		logger.Warn("event queue full, event dropped",
			"assignment_id", change.AssignmentID,
			"casting_id", change.CastingID,
			"new_status", change.NewStatus,
		)
	}
}

// Start запускает воркеры. ctx передается в Deliver каждого sink.
func (d *Dispatcher) Start(ctx context.Context) {
	for _, queue := range d.queues {
		d.wg.Add(1)
		go func(queue chan admission.StatusChange) {
			defer d.wg.Done()
			for change := range queue {
				d.deliver(ctx, change)
			}
		}(queue)
	}
	logger.Info("event dispatcher started", "workers", len(d.queues), "sinks", len(d.sinks))
}

// Stop закрывает очередь и ждет, пока воркеры доставят оставшиеся события.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, queue := range d.queues {
		close(queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
	logger.Info("event dispatcher stopped")
}

func (d *Dispatcher) deliver(ctx context.Context, change admission.StatusChange) {
	for _, sink := range d.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, d.timeout)
		err := sink.Deliver(sinkCtx, change)
		cancel()
		if err != nil {
			logger.Error("event delivery failed",
				"sink", sink.Name(),
				"assignment_id", change.AssignmentID,
				"new_status", change.NewStatus,
				"error", err.Error(),
			)
		}
	}
}
