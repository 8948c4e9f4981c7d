package mqtt

import "fmt"

// Topic prefixes.
const (
	// TopicPrefixRegistry is the base for device registry topics.
	TopicPrefixRegistry = "graylogic/core"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "graylogic/system"
)

// Topics provides builders for the MQTT topics used by the demos.
//
//	topics := mqtt.Topics{}
//	stateTopic := topics.DeviceState("device1")
//	// Returns: "graylogic/core/device/device1/state"
type Topics struct{}

// DeviceState returns the retained on/off state topic for a device.
// The slug should be URL-safe (see device.GenerateSlug).
//
// Example: graylogic/core/device/device1/state
func (Topics) DeviceState(slug string) string {
	return fmt.Sprintf("%s/device/%s/state", TopicPrefixRegistry, slug)
}

// Event returns the topic for free-text registry events.
//
// Example: graylogic/core/event/device_registry
func (Topics) Event(eventType string) string {
	return fmt.Sprintf("%s/event/%s", TopicPrefixRegistry, eventType)
}

// SystemStatus returns the online/offline status topic.
//
// Example: graylogic/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}
