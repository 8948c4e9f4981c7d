// Package mqtt provides outbound MQTT connectivity for the smart-house demo.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// The device registry publishes each state change as a retained message on
// graylogic/core/device/{slug}/state and each free-text notification on
// graylogic/core/event/device_registry. Nothing is subscribed to; the
// demos accept no commands from the network.
//
// # Usage
//
//	client, err := mqtt.Connect(ctx, cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topic := mqtt.Topics{}.DeviceState("device1")
//	err = client.Publish(topic, []byte(`{"device":"Device1","on":true}`), client.DefaultQoS(), true)
//
// Use TLS (mqtt.broker.tls) for anything beyond a local broker.
package mqtt
