package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/nerrad567/gray-logic-demos/internal/device"
	"github.com/nerrad567/gray-logic-demos/internal/infrastructure/mqtt"
)

// EventTypeDeviceRegistry is the event topic suffix for free-text notifications.
const EventTypeDeviceRegistry = "device_registry"

// Breaker settings for the publish path. After more than breakerFailures
// consecutive failures, publishes are skipped until breakerCooldown passes.
const (
	breakerFailures = 3
	breakerCooldown = 30 * time.Second
)

// Publisher is the subset of *mqtt.Client used by MQTTObserver.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	DefaultQoS() byte
}

// StatePayload is published retained on graylogic/core/device/{slug}/state.
type StatePayload struct {
	Device    string `json:"device"`
	On        bool   `json:"on"`
	Timestamp string `json:"timestamp"`
}

// EventPayload is published on graylogic/core/event/device_registry.
type EventPayload struct {
	EventID   string `json:"event_id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// MQTTObserver publishes state changes as retained device state messages
// and free-text notifications as non-retained events.
//
// Publishes go through a circuit breaker so a dead broker costs one
// publish timeout per cooldown rather than one per notification.
type MQTTObserver struct {
	pub    Publisher
	logger Logger
	topics mqtt.Topics
	cb     *gobreaker.CircuitBreaker
	now    func() time.Time
}

// NewMQTTObserver creates an observer publishing through pub.
func NewMQTTObserver(pub Publisher, logger Logger) *MQTTObserver {
	logger = orNoop(logger)
	return &MQTTObserver{
		pub:    pub,
		logger: logger,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "mqtt-observer",
			MaxRequests: 1,
			Timeout:     breakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > breakerFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Info("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			},
		}),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// OnMessage publishes an event with a fresh event ID.
func (o *MQTTObserver) OnMessage(_ context.Context, message string) {
	payload, err := json.Marshal(EventPayload{
		EventID:   uuid.NewString(),
		Type:      EventTypeDeviceRegistry,
		Message:   message,
		Timestamp: o.timestamp(),
	})
	if err != nil {
		o.logger.Error("encoding mqtt event", "error", err)
		return
	}

	o.publish(o.topics.Event(EventTypeDeviceRegistry), payload, false)
}

// OnStateChange publishes the retained state of the device.
func (o *MQTTObserver) OnStateChange(_ context.Context, name string, on bool) {
	slug := device.GenerateSlug(name)
	if slug == "" {
		o.logger.Warn("device name has no topic-safe characters, state not published", "device", name)
		return
	}

	payload, err := json.Marshal(StatePayload{
		Device:    name,
		On:        on,
		Timestamp: o.timestamp(),
	})
	if err != nil {
		o.logger.Error("encoding mqtt state", "error", err)
		return
	}

	o.publish(o.topics.DeviceState(slug), payload, true)
}

func (o *MQTTObserver) publish(topic string, payload []byte, retained bool) {
	_, err := o.cb.Execute(func() (interface{}, error) {
		return nil, o.pub.Publish(topic, payload, o.pub.DefaultQoS(), retained)
	})
	switch {
	case err == nil:
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		o.logger.Debug("mqtt publish skipped", "topic", topic, "reason", err)
	default:
		o.logger.Warn("publishing to mqtt", "topic", topic, "error", err)
	}
}

func (o *MQTTObserver) timestamp() string {
	return o.now().Format(time.RFC3339)
}

var _ device.Observer = (*MQTTObserver)(nil)
