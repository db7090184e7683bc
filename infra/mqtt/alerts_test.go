package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/trafficwatch/core/classify"
	"github.com/kilianp07/trafficwatch/core/factory"
	coremetrics "github.com/kilianp07/trafficwatch/core/metrics"
	coremon "github.com/kilianp07/trafficwatch/core/monitoring"
)

type dummyToken struct{ err error }

func (d *dummyToken) Wait() bool                     { return true }
func (d *dummyToken) WaitTimeout(time.Duration) bool { return true }
func (d *dummyToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (d *dummyToken) Error() error { return d.err }

type published struct {
	topic   string
	qos     byte
	retain  bool
	payload []byte
}

// mockClient implements pahoClient for tests
type mockClient struct {
	opts         *paho.ClientOptions
	connectErr   error
	published    []published
	publishErrs  []error
	disconnected bool
}

func (m *mockClient) IsConnected() bool   { return !m.disconnected }
func (m *mockClient) Connect() paho.Token { return &dummyToken{err: m.connectErr} }
func (m *mockClient) Disconnect(uint)     { m.disconnected = true }
func (m *mockClient) Publish(topic string, qos byte, retain bool, payload interface{}) paho.Token {
	m.published = append(m.published, published{topic, qos, retain, payload.([]byte)})
	if len(m.publishErrs) > 0 {
		err := m.publishErrs[0]
		m.publishErrs = m.publishErrs[1:]
		return &dummyToken{err: err}
	}
	return &dummyToken{}
}

func useMock(t *testing.T, mc *mockClient) {
	t.Helper()
	newMQTTClient = func(o *paho.ClientOptions) pahoClient { mc.opts = o; return mc }
	t.Cleanup(func() {
		newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return paho.NewClient(opts) }
	})
}

type recordMonitor struct {
	err  error
	tags map[string]string
}

func (r *recordMonitor) CaptureException(err error, tags map[string]string) {
	r.err = err
	r.tags = tags
}
func (r *recordMonitor) Flush(time.Duration) {}

func verdict(level classify.Level) coremetrics.VerdictEvent {
	return coremetrics.VerdictEvent{
		SessionID: "s1",
		Hour:      18.25,
		Observed:  950,
		Predicted: 708,
		Level:     level,
		Timestamp: time.Date(2021, 1, 10, 18, 15, 0, 0, time.UTC),
	}
}

func TestAlertPublisherPublishesSelectedLevels(t *testing.T) {
	mc := &mockClient{}
	useMock(t, mc)
	pub, err := NewAlertPublisher(Config{Broker: "tcp://localhost:1883", QoS: 1})
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	if mc.opts.ClientID != "trafficwatch" {
		t.Fatalf("default client id not applied")
	}
	if err := pub.RecordVerdict(verdict(classify.Normal)); err != nil {
		t.Fatalf("normal verdict: %v", err)
	}
	if len(mc.published) != 0 {
		t.Fatalf("normal verdict must not be published")
	}
	if err := pub.RecordVerdict(verdict(classify.Above)); err != nil {
		t.Fatalf("above verdict: %v", err)
	}
	if len(mc.published) != 1 {
		t.Fatalf("expected one publish, got %d", len(mc.published))
	}
	msg := mc.published[0]
	if msg.topic != "trafficwatch/alerts" || msg.qos != 1 {
		t.Fatalf("unexpected publish %+v", msg)
	}
	var alert Alert
	if err := json.Unmarshal(msg.payload, &alert); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if alert.Level != "above" || alert.Observed != 950 || alert.SessionID != "s1" {
		t.Fatalf("unexpected alert %+v", alert)
	}
	if err := pub.Close(); err != nil || !mc.disconnected {
		t.Fatalf("close: %v", err)
	}
}

func TestAlertPublisherRetries(t *testing.T) {
	mc := &mockClient{publishErrs: []error{errors.New("net fail"), nil}}
	useMock(t, mc)
	pub, err := NewAlertPublisher(Config{Broker: "tcp://localhost:1883", MaxRetries: 1, BackoffMS: 1})
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	if err := pub.RecordVerdict(verdict(classify.Below)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(mc.published) != 2 {
		t.Fatalf("expected retry, got %d publishes", len(mc.published))
	}
}

func TestAlertPublisherReportsFailure(t *testing.T) {
	fail := errors.New("net fail")
	mc := &mockClient{publishErrs: []error{fail, fail}}
	useMock(t, mc)
	mon := &recordMonitor{}
	coremon.Init(mon)
	defer coremon.Init(nil)

	pub, err := NewAlertPublisher(Config{Broker: "tcp://localhost:1883", MaxRetries: 1, BackoffMS: 1})
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	if err := pub.RecordVerdict(verdict(classify.Below)); !errors.Is(err, fail) {
		t.Fatalf("expected publish error, got %v", err)
	}
	if mon.err == nil || mon.tags["module"] != "mqtt" || mon.tags["level"] != "below" {
		t.Fatalf("error not captured: %+v", mon)
	}
}

func TestAlertPublisherConnectError(t *testing.T) {
	mc := &mockClient{connectErr: errors.New("refused")}
	useMock(t, mc)
	if _, err := NewAlertPublisher(Config{Broker: "tcp://localhost:1883"}); err == nil {
		t.Fatalf("expected connect error")
	}
}

func TestAlertPublisherFromSinkConfig(t *testing.T) {
	mc := &mockClient{}
	useMock(t, mc)
	sink, err := coremetrics.NewSink(nil)
	if err != nil {
		t.Fatalf("nop: %v", err)
	}
	if _, ok := sink.(coremetrics.NopSink); !ok {
		t.Fatalf("expected nop sink")
	}
	sink, err = coremetrics.NewSink([]factory.ModuleConfig{{Type: "mqtt", Conf: map[string]any{"broker": "tcp://localhost:1883", "topic": "alerts", "levels": []any{"above"}}}})
	if err != nil {
		t.Fatalf("mqtt sink: %v", err)
	}
	pub, ok := sink.(*AlertPublisher)
	if !ok {
		t.Fatalf("expected AlertPublisher, got %T", sink)
	}
	if pub.topic != "alerts" || !pub.levels["above"] || pub.levels["below"] {
		t.Fatalf("config not decoded: %+v", pub)
	}
}
