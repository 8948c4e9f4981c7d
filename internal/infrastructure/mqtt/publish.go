package mqtt

import "fmt"

// maxPayloadSize caps one device notification at 1MB.
const maxPayloadSize = 1 << 20

// Publish sends one device notification to topic.
//
// Parameters:
//   - topic: Built with Topics, e.g. Topics{}.DeviceState("device1")
//   - payload: JSON body produced by the notify package
//   - qos: 0, 1 or 2; the sink uses the configured default
//   - retained: true for device state so late subscribers see the current
//     value, false for free-text messages
//
// Returns:
//   - error: ErrInvalidTopic, ErrInvalidQoS or ErrNotConnected before any
//     network work; ErrPublishFailed wrapping the broker error otherwise
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	switch {
	case topic == "":
		return ErrInvalidTopic
	case qos > maxQoS:
		return ErrInvalidQoS
	case len(payload) > maxPayloadSize:
		return fmt.Errorf("%w: %d byte payload over %d byte limit", ErrPublishFailed, len(payload), maxPayloadSize)
	case !c.IsConnected():
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: no ack within %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}
