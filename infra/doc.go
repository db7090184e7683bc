// Package infra holds the adapters behind the core interfaces: the zerolog
// logger, the Prometheus, InfluxDB and MQTT sinks, and the Sentry monitor.
// Sinks register themselves with core/metrics from init, so a binary only
// needs to import them.
package infra
