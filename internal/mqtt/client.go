// Package mqtt subscribes to device uplinks on an MQTT broker and hands
// every delivery to a Listener.
package mqtt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

var (
	ErrConnectFailed   = errors.New("mqtt connect failed")
	ErrSubscribeFailed = errors.New("mqtt subscribe failed")
)

// Listener receives deliveries and connection changes. HandleMessage runs
// synchronously for each delivery.
type Listener interface {
	HandleMessage(ctx context.Context, topic string, payload []byte) error
	OnConnect(ctx context.Context)
	OnDisconnect(ctx context.Context, reason string)
}

// newPahoClient is replaced in tests.
var newPahoClient = pahomqtt.NewClient

type Client struct {
	ctx      context.Context
	cfg      Config
	client   pahomqtt.Client
	listener Listener
	timeout  time.Duration
}

// Connect dials the broker, retrying with exponential backoff, and
// subscribes to cfg.Topic. The subscription is renewed after every
// automatic reconnect.
func Connect(ctx context.Context, cfg Config, listener Listener) (*Client, error) {
	const fn = "MQTT:Connect"
	opts, err := buildClientOptions(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", fn, err)
	}

	c := &Client{
		ctx:      ctx,
		cfg:      cfg,
		listener: listener,
		timeout:  opts.ConnectTimeout,
	}
	opts.SetOnConnectHandler(c.handleConnect)
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) { c.handleDisconnect(err) })

	retries := cfg.ConnectRetries
	if retries <= 0 {
		retries = 5
	}
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 2 * time.Minute

	err = backoff.Retry(func() error {
		client, err := c.connectOnce(newPahoClient(opts))
		if err != nil {
			slog.WarnContext(ctx, "Failed to connect to MQTT broker", "broker", cfg.Broker, "error", err)
			return err
		}
		c.client = client
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(retries-1)), ctx))
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrConnectFailed, err)
	}

	slog.InfoContext(ctx, "Connected to MQTT broker", "broker", cfg.Broker, "client_id", cfg.ClientID)
	return c, nil
}

// connectOnce makes a single connection attempt. A client that failed or
// timed out is disconnected so it cannot finish connecting later and
// subscribe alongside the next attempt.
func (c *Client) connectOnce(client pahomqtt.Client) (pahomqtt.Client, error) {
	token := client.Connect()
	if !token.WaitTimeout(c.timeout) {
		client.Disconnect(0)
		return nil, fmt.Errorf("connect timed out after %s", c.timeout)
	}
	if err := token.Error(); err != nil {
		client.Disconnect(0)
		return nil, err
	}
	return client, nil
}

// handleConnect runs on every successful (re)connect. It uses the client
// paho passes in, since the first call can precede Connect returning.
func (c *Client) handleConnect(client pahomqtt.Client) {
	token := client.Subscribe(c.cfg.Topic, c.cfg.QoS, c.wrapHandler())
	if !token.WaitTimeout(c.timeout) || token.Error() != nil {
		slog.ErrorContext(c.ctx, "Subscribe failed", "topic", c.cfg.Topic, "error", fmt.Errorf("%w: %v", ErrSubscribeFailed, token.Error()))
		return
	}
	slog.InfoContext(c.ctx, "Subscribed", "topic", c.cfg.Topic, "qos", c.cfg.QoS)
	c.listener.OnConnect(c.ctx)
}

func (c *Client) handleDisconnect(err error) {
	reason := "unknown"
	if err != nil {
		reason = err.Error()
	}
	c.listener.OnDisconnect(c.ctx, reason)
}

// wrapHandler adapts the listener to paho and keeps a panicking handler
// from taking down the router goroutine.
func (c *Client) wrapHandler() pahomqtt.MessageHandler {
	return func(_ pahomqtt.Client, msg pahomqtt.Message) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.ctx, "MQTT handler panic recovered",
					"topic", msg.Topic(),
					"panic", r,
				)
			}
		}()
		// Outcome is already logged by the listener.
		_ = c.listener.HandleMessage(c.ctx, msg.Topic(), msg.Payload())
	}
}

func (c *Client) IsConnected() bool {
	return c.client != nil && c.client.IsConnectionOpen()
}

func (c *Client) Close() {
	if c.client == nil {
		return
	}
	c.client.Unsubscribe(c.cfg.Topic).WaitTimeout(c.timeout)
	c.client.Disconnect(defaultDisconnectQuiesce)
	slog.InfoContext(c.ctx, "MQTT connection closed")
}
