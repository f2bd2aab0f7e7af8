package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "octofit-tracker/internal/errors"
	"octofit-tracker/internal/logger"
	"octofit-tracker/internal/observability"
)

// RecomputeTask asks for the leaderboard to be regenerated
type RecomputeTask struct {
	Reason      string
	SubmittedAt time.Time
}

// Recomputer regenerates the leaderboard
type Recomputer interface {
	Recompute(ctx context.Context, reason string) error
}

// Pool runs leaderboard recomputes off the request path
type Pool struct {
	jobs        chan RecomputeTask
	workerCount int
	recomputer  Recomputer
	timeout     time.Duration
	log         *logger.Logger

	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	metrics *poolMetrics

	closeMu sync.RWMutex
	closed  bool
}

type poolMetrics struct {
	mu              sync.RWMutex
	processed       int64
	failed          int64
	backpressure    int64
	totalProcessing time.Duration
}

// Metrics is a point-in-time view of the pool counters
type Metrics struct {
	Processed         int64         `json:"processed"`
	Failed            int64         `json:"failed"`
	Backpressure      int64         `json:"backpressure_events"`
	AvgProcessingTime time.Duration `json:"avg_processing_time"`
	Queued            int           `json:"queued"`
	Capacity          int           `json:"capacity"`
}

// NewPool creates a pool; call Start to launch the workers
func NewPool(workerCount, queueSize int, recomputer Recomputer) *Pool {
	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		jobs:        make(chan RecomputeTask, queueSize),
		workerCount: workerCount,
		recomputer:  recomputer,
		timeout:     30 * time.Second,
		log:         logger.Component("worker"),
		ctx:         ctx,
		cancel:      cancel,
		metrics:     &poolMetrics{},
	}
}

// Start launches the worker goroutines
func (p *Pool) Start() {
	p.log.WithFields(map[string]interface{}{
		"workers":    p.workerCount,
		"queue_size": cap(p.jobs),
	}).Info("Starting recompute worker pool")

	for i := 1; i <= p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return

		case task, ok := <-p.jobs:
			if !ok {
				return
			}
			observability.SetQueueDepth(len(p.jobs))
			p.process(id, task)
		}
	}
}

func (p *Pool) process(workerID int, task RecomputeTask) {
	log := p.log.WithFields(map[string]interface{}{
		"worker": workerID,
		"reason": task.Reason,
	})

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Recompute panicked: %v", r)
			p.metrics.incrementFailed()
		}
	}()

	start := time.Now()

	ctx, cancel := context.WithTimeout(p.ctx, p.timeout)
	defer cancel()

	err := p.recomputer.Recompute(ctx, task.Reason)
	elapsed := time.Since(start)

	if err != nil {
		log.WithError(err).Warn("Recompute failed")
		p.metrics.incrementFailed()
		return
	}

	log.WithField("took", elapsed).Debug("Recompute finished")
	p.metrics.recordSuccess(elapsed)
}

// Submit queues a task without blocking. A full queue returns ErrQueueFull.
func (p *Pool) Submit(task RecomputeTask) error {
	p.closeMu.RLock()
	defer p.closeMu.RUnlock()

	if p.closed {
		return apperrors.ErrPoolClosed
	}
	if task.SubmittedAt.IsZero() {
		task.SubmittedAt = time.Now()
	}

	select {
	case p.jobs <- task:
		observability.SetQueueDepth(len(p.jobs))
		return nil
	default:
		p.log.WithField("reason", task.Reason).Warn("Recompute queue full, dropping task")
		p.metrics.incrementBackpressure()
		observability.RecordBackpressure()
		return apperrors.ErrQueueFull
	}
}

// Shutdown stops accepting tasks and waits for queued ones to finish
func (p *Pool) Shutdown(timeout time.Duration) error {
	p.closeMu.Lock()
	if p.closed {
		p.closeMu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.closeMu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m := p.Metrics()
		p.log.WithFields(map[string]interface{}{
			"processed":    m.Processed,
			"failed":       m.Failed,
			"backpressure": m.Backpressure,
		}).Info("Worker pool drained")
		p.cancel()
		return nil

	case <-time.After(timeout):
		p.cancel()
		return fmt.Errorf("worker pool shutdown timed out after %v", timeout)
	}
}

// Metrics returns a snapshot of the pool counters
func (p *Pool) Metrics() Metrics {
	p.metrics.mu.RLock()
	defer p.metrics.mu.RUnlock()

	var avg time.Duration
	if p.metrics.processed > 0 {
		avg = p.metrics.totalProcessing / time.Duration(p.metrics.processed)
	}

	return Metrics{
		Processed:         p.metrics.processed,
		Failed:            p.metrics.failed,
		Backpressure:      p.metrics.backpressure,
		AvgProcessingTime: avg,
		Queued:            len(p.jobs),
		Capacity:          cap(p.jobs),
	}
}

func (m *poolMetrics) recordSuccess(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processed++
	m.totalProcessing += d
}

func (m *poolMetrics) incrementFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed++
}

func (m *poolMetrics) incrementBackpressure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backpressure++
}
