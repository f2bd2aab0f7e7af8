package jobs

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	apperrors "octofit-tracker/internal/errors"
	"octofit-tracker/internal/events"
	"octofit-tracker/internal/logger"
	"octofit-tracker/internal/models"
	"octofit-tracker/internal/observability"
	"octofit-tracker/internal/repository"
	"octofit-tracker/internal/seed"
	"octofit-tracker/internal/worker"
)

// TaskSubmitter queues leaderboard recomputes
type TaskSubmitter interface {
	Submit(task worker.RecomputeTask) error
}

// ActivitySimulator generates demo traffic: each tick it records one random
// activity for a random user and asks for a leaderboard recompute
type ActivitySimulator struct {
	store      *repository.Store
	events     events.Publisher
	submitter  TaskSubmitter
	fabricator *seed.Fabricator
	rng        *rand.Rand
	tick       time.Duration
	log        *logger.Logger

	nextID  int64 // 0 means unknown; only touched by the loop goroutine
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	created   atomic.Int64
	errors    atomic.Int64
	startTime time.Time
}

// NewActivitySimulator creates a simulator; rng is owned by the simulator afterwards
func NewActivitySimulator(
	store *repository.Store,
	eventPublisher events.Publisher,
	submitter TaskSubmitter,
	rng *rand.Rand,
	tick time.Duration,
) *ActivitySimulator {
	if tick <= 0 {
		tick = 5 * time.Second
	}
	return &ActivitySimulator{
		store:      store,
		events:     eventPublisher,
		submitter:  submitter,
		fabricator: seed.NewFabricator(rng, time.Now),
		rng:        rng,
		tick:       tick,
		log:        logger.Component("simulator"),
		stopCh:     make(chan struct{}),
	}
}

// Start begins the simulation loop
func (s *ActivitySimulator) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return apperrors.ErrSimulatorRunning
	}

	s.startTime = time.Now()
	s.log.WithField("tick", s.tick.String()).Info("Activity simulator started")

	s.wg.Add(1)
	go s.loop(ctx)
	return nil
}

// Stop ends the loop and waits for the current tick to finish
func (s *ActivitySimulator) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	close(s.stopCh)
	s.wg.Wait()

	s.log.WithFields(map[string]interface{}{
		"created": s.created.Load(),
		"errors":  s.errors.Load(),
		"uptime":  time.Since(s.startTime).Round(time.Second).String(),
	}).Info("Activity simulator stopped")
}

// IsRunning returns whether the simulation is currently running
func (s *ActivitySimulator) IsRunning() bool {
	return s.running.Load()
}

// Metrics returns current simulation counters
func (s *ActivitySimulator) Metrics() map[string]interface{} {
	return map[string]interface{}{
		"running": s.running.Load(),
		"created": s.created.Load(),
		"errors":  s.errors.Load(),
	}
}

func (s *ActivitySimulator) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			if err := s.step(ctx); err != nil {
				// log sparsely, a missing store would otherwise flood the output
				if s.errors.Add(1)%20 == 1 {
					s.log.WithError(err).Warn("Simulation step failed")
				}
			}
		}
	}
}

// step records one activity and queues a recompute
func (s *ActivitySimulator) step(ctx context.Context) error {
	users, err := s.store.Users.List(ctx, repository.ListOptions{})
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		return apperrors.ErrNoUsers
	}
	user := users[s.rng.Intn(len(users))]

	activity, err := s.insert(ctx, user)
	if err != nil {
		return err
	}

	s.created.Add(1)
	observability.RecordSimulatedActivity()
	s.events.ActivityRecorded(ctx, activity)

	// a full queue means a recompute is already pending
	if err := s.submitter.Submit(worker.RecomputeTask{Reason: "simulator"}); err != nil && err != apperrors.ErrQueueFull {
		return fmt.Errorf("submit recompute: %w", err)
	}
	return nil
}

func (s *ActivitySimulator) insert(ctx context.Context, user models.User) (models.Activity, error) {
	if s.nextID == 0 {
		if err := s.rescanNextID(ctx); err != nil {
			return models.Activity{}, err
		}
	}

	activity := s.fabricator.Activity(s.nextID, user)
	err := s.store.Activities.Create(ctx, activity)
	if apperrors.IsAlreadyExists(err) {
		// ids were taken through the API since the last scan
		if err := s.rescanNextID(ctx); err != nil {
			return models.Activity{}, err
		}
		activity = activity.WithPrimaryKey(s.nextID)
		err = s.store.Activities.Create(ctx, activity)
	}
	if err != nil {
		return models.Activity{}, fmt.Errorf("create activity: %w", err)
	}

	s.nextID++
	return activity, nil
}

func (s *ActivitySimulator) rescanNextID(ctx context.Context) error {
	activities, err := s.store.Activities.List(ctx, repository.ListOptions{})
	if err != nil {
		return fmt.Errorf("list activities: %w", err)
	}
	var maxID int64
	for _, a := range activities {
		if a.ID > maxID {
			maxID = a.ID
		}
	}
	s.nextID = maxID + 1
	return nil
}
