// Package metrics defines the observability events emitted while building and
// querying the traffic baseline. Sinks such as PromSink, InfluxSink or the
// MQTT alert publisher record them and can be combined with NewMultiSink;
// NewSink returns a MultiSink automatically when several sinks are
// configured.
package metrics
