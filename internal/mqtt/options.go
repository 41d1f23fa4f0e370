package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

var (
	ErrInvalidBroker = errors.New("invalid broker url")
	ErrInvalidCA     = errors.New("invalid CA certificate file")
)

const (
	defaultConnectTimeout    = 10 * time.Second
	defaultKeepAlive         = 60 * time.Second
	defaultMaxReconnect      = 2 * time.Minute
	defaultDisconnectQuiesce = 250 // milliseconds
	tlsMinVersion            = tls.VersionTLS12
)

type Config struct {
	// Broker is a URL such as tcp://localhost:1883 or ssl://eu.thethings.network:8883.
	Broker         string
	ClientID       string
	Username       string
	Password       string
	CAFile         string
	Topic          string
	QoS            byte
	KeepAlive      time.Duration
	ConnectTimeout time.Duration
	ConnectRetries int
}

func isTLSScheme(scheme string) bool {
	switch scheme {
	case "ssl", "tls", "mqtts", "tcps":
		return true
	}
	return false
}

func buildTLSConfig(caFile string) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tlsMinVersion}
	if caFile == "" {
		return cfg, nil
	}
	pem, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCA, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("%w: no certificates in %s", ErrInvalidCA, caFile)
	}
	cfg.RootCAs = pool
	return cfg, nil
}

// buildClientOptions translates Config into paho options. Handlers are set
// by the caller.
func buildClientOptions(cfg Config) (*pahomqtt.ClientOptions, error) {
	u, err := url.Parse(cfg.Broker)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBroker, cfg.Broker)
	}

	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	if isTLSScheme(u.Scheme) || cfg.CAFile != "" {
		tlsCfg, err := buildTLSConfig(cfg.CAFile)
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}

	keepAlive := cfg.KeepAlive
	if keepAlive == 0 {
		keepAlive = defaultKeepAlive
	}
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout == 0 {
		connectTimeout = defaultConnectTimeout
	}

	opts.SetCleanSession(true)
	opts.SetKeepAlive(keepAlive)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(defaultMaxReconnect)
	// The initial connect is retried by Connect itself.
	opts.SetConnectRetry(false)
	// Deliveries are handled one at a time, in arrival order, on paho's
	// router goroutine. A slow store therefore slows acknowledgement.
	opts.SetOrderMatters(true)
	return opts, nil
}
