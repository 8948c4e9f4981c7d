package mqtt

import "errors"

// Errors returned by the device notification publisher. The MQTT observer
// counts any of them as a breaker failure.
var (
	// ErrNotConnected means the broker link is down; paho may still be reconnecting.
	ErrNotConnected = errors.New("mqtt: not connected")

	// ErrConnectionFailed wraps the first connect attempt made by Connect.
	ErrConnectionFailed = errors.New("mqtt: connect failed")

	// ErrPublishFailed covers broker rejections, ack timeouts and oversize payloads.
	ErrPublishFailed = errors.New("mqtt: publish failed")

	// ErrInvalidQoS rejects a QoS above 2.
	ErrInvalidQoS = errors.New("mqtt: qos must be 0, 1 or 2")

	// ErrInvalidTopic rejects an empty topic.
	ErrInvalidTopic = errors.New("mqtt: empty topic")
)
