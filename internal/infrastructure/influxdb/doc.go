// Package influxdb records device state changes as InfluxDB time series.
//
// It wraps the official influxdb-client-go v2 library with connection
// management, a batched non-blocking write API and health checks.
//
// Each state change becomes one point:
//
//	device_state,device=Device1 on=1i
//
// # Usage
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteDeviceState("Device1", true)
//
// Writes are batched according to influxdb.batch_size and
// influxdb.flush_interval.
package influxdb
