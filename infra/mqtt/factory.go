package mqtt

import (
	"github.com/kilianp07/trafficwatch/core/factory"
	coremetrics "github.com/kilianp07/trafficwatch/core/metrics"
)

// init registers the "mqtt" metrics sink.
func init() {
	_ = coremetrics.RegisterSink("mqtt", func(conf map[string]any) (coremetrics.Sink, error) {
		var c Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		pub, err := NewAlertPublisher(c)
		if err != nil {
			return nil, err
		}
		return pub, nil
	})
}
