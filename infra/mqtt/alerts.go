package mqtt

import (
	"encoding/json"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	coremetrics "github.com/kilianp07/trafficwatch/core/metrics"
	coremon "github.com/kilianp07/trafficwatch/core/monitoring"
	"github.com/kilianp07/trafficwatch/infra/logger"
)

// Alert is the JSON payload published for a verdict.
type Alert struct {
	SessionID string    `json:"session_id"`
	Level     string    `json:"level"`
	Hour      float64   `json:"hour"`
	Observed  float64   `json:"observed"`
	Predicted float64   `json:"predicted"`
	Timestamp time.Time `json:"timestamp"`
}

// AlertPublisher is a metrics sink publishing selected verdicts on MQTT.
type AlertPublisher struct {
	cli        pahoClient
	topic      string
	qos        byte
	retain     bool
	levels     map[string]bool
	maxRetries int
	backoff    time.Duration
	log        logger.Logger
}

// NewAlertPublisher connects to the broker described by cfg.
func NewAlertPublisher(cfg Config) (*AlertPublisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt-alerts")
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected to %s", cfg.Broker)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	levels := make(map[string]bool, len(cfg.Levels))
	for _, l := range cfg.Levels {
		levels[l] = true
	}
	return &AlertPublisher{
		cli:        c,
		topic:      cfg.Topic,
		qos:        cfg.QoS,
		retain:     cfg.Retain,
		levels:     levels,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
		log:        log,
	}, nil
}

// RecordMeasure is a no-op; only verdicts are published.
func (p *AlertPublisher) RecordMeasure(coremetrics.MeasureEvent) error { return nil }

// RecordVerdict publishes the verdict when its level is selected. Publishing
// is retried with exponential backoff; the last error is reported to the
// monitor and returned.
func (p *AlertPublisher) RecordVerdict(ev coremetrics.VerdictEvent) error {
	level := ev.Level.String()
	if !p.levels[level] {
		return nil
	}
	payload, err := json.Marshal(Alert{
		SessionID: ev.SessionID,
		Level:     level,
		Hour:      ev.Hour,
		Observed:  ev.Observed,
		Predicted: ev.Predicted,
		Timestamp: ev.Timestamp,
	})
	if err != nil {
		return err
	}
	var publishErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		token := p.cli.Publish(p.topic, p.qos, p.retain, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			p.log.Debugf("published %s alert to %s", level, p.topic)
			return nil
		}
		p.log.Errorf("publish attempt %d failed: %v", attempt+1, publishErr)
		if attempt < p.maxRetries {
			time.Sleep(p.backoff * time.Duration(1<<attempt))
		}
	}
	coremon.CaptureException(publishErr, map[string]string{"module": "mqtt", "level": level})
	return publishErr
}

// Close disconnects from the broker.
func (p *AlertPublisher) Close() error {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
	return nil
}
