// Package plugins links the built-in metrics sinks into the binary. Each
// imported package registers its sink types from init.
package plugins

import (
	coremetrics "github.com/kilianp07/trafficwatch/core/metrics"
	_ "github.com/kilianp07/trafficwatch/infra/metrics"
	_ "github.com/kilianp07/trafficwatch/infra/mqtt"
)

// SinkTypes lists every sink type available to the metrics configuration.
func SinkTypes() []string { return coremetrics.SinkTypes() }
