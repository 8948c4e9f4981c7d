// Package notify provides device.Observer implementations that forward
// registry notifications to the structured log, MQTT, InfluxDB and the
// SQLite history table.
//
// Each sink handles its own failures: errors are logged and never reach
// the device.Manager, so one unavailable sink does not affect the others
// or the console output.
//
//	mgr.RegisterObserver(notify.NewLogObserver(logger))
//	mgr.RegisterObserver(notify.NewMQTTObserver(mqttClient, logger))
//	mgr.RegisterObserver(notify.NewMetricsObserver(influxClient))
//	mgr.RegisterObserver(notify.NewHistoryObserver(historyRepo, logger))
package notify
