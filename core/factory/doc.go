// Package factory is a generic registry turning configuration entries into
// modules. An entry names a registered type and carries raw settings that the
// factory decodes into its own typed struct:
//
//	sinks := factory.NewRegistry[metrics.Sink]()
//	_ = sinks.Register("influx", func(conf map[string]any) (metrics.Sink, error) {
//	    var c struct{ URL string `json:"url"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return newInfluxSink(c.URL), nil
//	})
//	s, err := sinks.Create(factory.ModuleConfig{Type: "influx", Conf: map[string]any{"url": "http://localhost:8086"}})
package factory
