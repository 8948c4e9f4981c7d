// Package config handles loading and validating configuration for the
// Gray Logic demo programs.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of the enabled sections
//   - Default value handling
//
// Every optional sink (MQTT, InfluxDB, SQLite history) is disabled by
// default, so running a demo without a config file prints only the
// console output.
//
// Usage:
//
//	cfg, err := config.LoadOrDefault("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Logging.Level)
//
// Sensitive values (MQTT password, InfluxDB token) should be set via
// environment variables rather than committed to the config file.
// LoadEnvFile reads them from a .env file when one is present.
package config
