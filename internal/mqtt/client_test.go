package mqtt

import (
	"context"
	"crypto/tls"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 1 }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 1 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

type recordingListener struct {
	connects    atomic.Int32
	topics      []string
	payloads    [][]byte
	disconnects []string
	panicWith   any
}

func (l *recordingListener) HandleMessage(_ context.Context, topic string, payload []byte) error {
	if l.panicWith != nil {
		panic(l.panicWith)
	}
	l.topics = append(l.topics, topic)
	l.payloads = append(l.payloads, payload)
	return errors.New("already logged")
}

func (l *recordingListener) OnConnect(context.Context) { l.connects.Add(1) }

func (l *recordingListener) OnDisconnect(_ context.Context, reason string) {
	l.disconnects = append(l.disconnects, reason)
}

func Test_buildClientOptions(t *testing.T) {
	cases := []struct {
		name        string
		cfg         Config
		expectTLS   bool
		expectedErr error
	}{
		{
			name: "plain tcp with credentials",
			cfg:  Config{Broker: "tcp://localhost:1883", ClientID: "thsensor-1", Username: "th-sensors", Password: "ttn-account-v2.secret"},
		},
		{
			name:      "ssl scheme enables tls",
			cfg:       Config{Broker: "ssl://eu.thethings.network:8883", ClientID: "thsensor-1"},
			expectTLS: true,
		},
		{
			name:        "missing scheme",
			cfg:         Config{Broker: "localhost:1883"},
			expectedErr: ErrInvalidBroker,
		},
		{
			name:        "unreadable ca file",
			cfg:         Config{Broker: "ssl://broker:8883", CAFile: filepath.Join(t.TempDir(), "missing.pem")},
			expectedErr: ErrInvalidCA,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := buildClientOptions(tt.cfg)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, opts.Servers, 1)
			assert.Equal(t, tt.cfg.Broker, opts.Servers[0].String())
			assert.Equal(t, tt.cfg.ClientID, opts.ClientID)
			assert.Equal(t, tt.cfg.Username, opts.Username)
			assert.Equal(t, tt.cfg.Password, opts.Password)
			assert.True(t, opts.Order)
			assert.True(t, opts.AutoReconnect)
			assert.True(t, opts.CleanSession)
			assert.Equal(t, int64(defaultKeepAlive/time.Second), opts.KeepAlive)
			if tt.expectTLS {
				require.NotNil(t, opts.TLSConfig)
				assert.Equal(t, uint16(tls.VersionTLS12), opts.TLSConfig.MinVersion)
			}
		})
	}
}

func Test_buildTLSConfigRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(path, []byte("not a certificate"), 0o600))

	_, err := buildTLSConfig(path)
	assert.ErrorIs(t, err, ErrInvalidCA)
}

func Test_wrapHandler(t *testing.T) {
	l := &recordingListener{}
	c := &Client{ctx: context.Background(), listener: l}

	c.wrapHandler()(nil, &fakeMessage{topic: "th-sensors/devices/office-th-1/up", payload: []byte("{}")})

	assert.Equal(t, []string{"th-sensors/devices/office-th-1/up"}, l.topics)
	assert.Equal(t, [][]byte{[]byte("{}")}, l.payloads)
}

func Test_wrapHandlerRecoversPanic(t *testing.T) {
	c := &Client{ctx: context.Background(), listener: &recordingListener{panicWith: "boom"}}

	assert.NotPanics(t, func() {
		c.wrapHandler()(nil, &fakeMessage{topic: "t"})
	})
}

func Test_handleDisconnect(t *testing.T) {
	l := &recordingListener{}
	c := &Client{ctx: context.Background(), listener: l}

	c.handleDisconnect(errors.New("pingresp not received, disconnecting"))
	c.handleDisconnect(nil)

	assert.Equal(t, []string{"pingresp not received, disconnecting", "unknown"}, l.disconnects)
}

type fakeToken struct {
	done chan struct{}
	err  error
}

func pendingToken() *fakeToken { return &fakeToken{done: make(chan struct{})} }

func completedToken(err error) *fakeToken {
	t := &fakeToken{done: make(chan struct{}), err: err}
	close(t.done)
	return t
}

func (t *fakeToken) Wait() bool { <-t.done; return true }
func (t *fakeToken) WaitTimeout(d time.Duration) bool {
	select {
	case <-t.done:
		return true
	case <-time.After(d):
		return false
	}
}
func (t *fakeToken) Done() <-chan struct{} { return t.done }
func (t *fakeToken) Error() error          { return t.err }

// fakeClient stands in for a paho client whose CONNACK can arrive after
// the caller stopped waiting. Like paho, a client that has been told to
// disconnect drops a late CONNACK without running OnConnect.
type fakeClient struct {
	pahomqtt.Client
	opts    *pahomqtt.ClientOptions
	connect *fakeToken

	mu           sync.Mutex
	disconnected bool
}

func (c *fakeClient) Connect() pahomqtt.Token { return c.connect }

func (c *fakeClient) Disconnect(uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disconnected = true
}

func (c *fakeClient) Subscribe(string, byte, pahomqtt.MessageHandler) pahomqtt.Token {
	return completedToken(nil)
}

func (c *fakeClient) isDisconnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disconnected
}

func (c *fakeClient) lateConnAck() {
	if c.isDisconnected() {
		return
	}
	c.opts.OnConnect(c)
}

func Test_ConnectAbandonsFailedAttempts(t *testing.T) {
	tokens := []*fakeToken{pendingToken(), completedToken(errors.New("connection refused"))}
	var clients []*fakeClient
	newPahoClient = func(o *pahomqtt.ClientOptions) pahomqtt.Client {
		fc := &fakeClient{opts: o, connect: tokens[len(clients)]}
		clients = append(clients, fc)
		return fc
	}
	t.Cleanup(func() { newPahoClient = pahomqtt.NewClient })

	l := &recordingListener{}
	cfg := Config{
		Broker:         "tcp://127.0.0.1:1883",
		ClientID:       "thsensor-test",
		Topic:          "+/devices/+/up",
		ConnectTimeout: 50 * time.Millisecond,
		ConnectRetries: 2,
	}

	c, err := Connect(context.Background(), cfg, l)
	require.ErrorIs(t, err, ErrConnectFailed)
	assert.Nil(t, c)
	require.Len(t, clients, 2)

	for i, fc := range clients {
		assert.True(t, fc.isDisconnected(), "attempt %d left connected", i)
		fc.lateConnAck()
	}
	assert.Zero(t, l.connects.Load())
}

func Test_ConnectKeepsSuccessfulClient(t *testing.T) {
	var fc *fakeClient
	newPahoClient = func(o *pahomqtt.ClientOptions) pahomqtt.Client {
		fc = &fakeClient{opts: o, connect: completedToken(nil)}
		return fc
	}
	t.Cleanup(func() { newPahoClient = pahomqtt.NewClient })

	cfg := Config{Broker: "tcp://127.0.0.1:1883", Topic: "+/devices/+/up", ConnectTimeout: 50 * time.Millisecond, ConnectRetries: 1}
	l := &recordingListener{}

	c, err := Connect(context.Background(), cfg, l)
	require.NoError(t, err)
	require.NotNil(t, fc)
	assert.False(t, fc.isDisconnected())

	fc.lateConnAck()
	assert.Equal(t, int32(1), l.connects.Load())
	assert.Same(t, fc, c.client)
}
