package events

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"octofit-tracker/internal/logger"
	"octofit-tracker/internal/models"
	"octofit-tracker/internal/observability"

	"github.com/segmentio/kafka-go"
)

// ErrEventQueueFull is recorded when an event is dropped because the
// dispatcher is behind
var ErrEventQueueFull = errors.New("event queue full")

// MessageWriter is the subset of *kafka.Writer the publisher needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// DefaultQueueSize bounds the events waiting for the dispatcher
const DefaultQueueSize = 256

const writeTimeout = 5 * time.Second

type outgoing struct {
	topic string
	msg   kafka.Message
}

// KafkaPublisher writes JSON events with one writer per topic. Events are
// queued and written by a background dispatcher, so callers never wait on
// the broker; when the queue is full the event is dropped and counted.
type KafkaPublisher struct {
	activityTopic    string
	leaderboardTopic string
	newWriter        func(topic string) MessageWriter
	now              func() time.Time
	log              *logger.Logger

	queueMu sync.RWMutex
	queue   chan outgoing
	closed  bool
	wg      sync.WaitGroup

	mu      sync.Mutex
	writers map[string]MessageWriter
}

// NewKafkaPublisher creates a publisher writing to brokers and starts its dispatcher
func NewKafkaPublisher(brokers []string, activityTopic, leaderboardTopic string) *KafkaPublisher {
	return newKafkaPublisher(activityTopic, leaderboardTopic, DefaultQueueSize, func(topic string) MessageWriter {
		return &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           writeTimeout,
		}
	})
}

func newKafkaPublisher(activityTopic, leaderboardTopic string, queueSize int, newWriter func(string) MessageWriter) *KafkaPublisher {
	p := &KafkaPublisher{
		activityTopic:    activityTopic,
		leaderboardTopic: leaderboardTopic,
		newWriter:        newWriter,
		now:              time.Now,
		log:              logger.Component("events"),
		queue:            make(chan outgoing, queueSize),
		writers:          make(map[string]MessageWriter),
	}

	p.wg.Add(1)
	go p.dispatch()
	return p
}

// ActivityRecorded publishes an activity keyed by its user id so one user's
// activities stay on one partition
func (p *KafkaPublisher) ActivityRecorded(ctx context.Context, activity models.Activity) {
	p.publish(ctx, p.activityTopic, strconv.FormatInt(activity.UserID, 10), ActivityRecordedEvent{
		Type:       TypeActivityRecorded,
		OccurredAt: p.now().UTC(),
		Activity:   activity,
	})
}

// LeaderboardRecomputed publishes a recompute notification
func (p *KafkaPublisher) LeaderboardRecomputed(ctx context.Context, entries int, reason string) {
	p.publish(ctx, p.leaderboardTopic, "leaderboard", LeaderboardRecomputedEvent{
		Type:       TypeLeaderboardRecomputed,
		OccurredAt: p.now().UTC(),
		Entries:    entries,
		Reason:     reason,
	})
}

func (p *KafkaPublisher) publish(_ context.Context, topic, key string, event any) {
	value, err := json.Marshal(event)
	if err != nil {
		p.log.WithError(err).WithField("topic", topic).Error("Failed to encode event")
		observability.RecordEventPublished(topic, err)
		return
	}

	p.queueMu.RLock()
	defer p.queueMu.RUnlock()

	if p.closed {
		p.log.WithField("topic", topic).Warn("Event publisher closed, dropping event")
		return
	}
	select {
	case p.queue <- outgoing{topic: topic, msg: kafka.Message{Key: []byte(key), Value: value}}:
	default:
		observability.RecordEventPublished(topic, ErrEventQueueFull)
		p.log.WithField("topic", topic).Warn("Event queue full, dropping event")
	}
}

// dispatch writes queued events until the queue is closed and drained
func (p *KafkaPublisher) dispatch() {
	defer p.wg.Done()

	for out := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := p.writerFor(out.topic).WriteMessages(ctx, out.msg)
		cancel()

		observability.RecordEventPublished(out.topic, err)
		if err != nil {
			p.log.WithError(err).WithField("topic", out.topic).Warn("Failed to publish event")
		}
	}
}

func (p *KafkaPublisher) writerFor(topic string) MessageWriter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := p.newWriter(topic)
	p.writers[topic] = w
	return w
}

// Close drains the queue before releasing the writers. Events published
// after Close are dropped.
func (p *KafkaPublisher) Close() error {
	p.queueMu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.queueMu.Unlock()
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.writers, topic)
	}
	return firstErr
}
