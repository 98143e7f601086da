// Package mqtt publishes session events to an MQTT broker as JSON. The
// announcer is optional and disabled by default; the core never depends on
// it and owns no wire protocol of its own.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/mhoffer/parkcast/core/events"
	"github.com/mhoffer/parkcast/infra/logger"
)

// Config defines the connection parameters for the announcer.
type Config struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TopicPrefix == "" {
		c.TopicPrefix = "parkcast/events"
	}
	if c.ClientID == "" {
		c.ClientID = fmt.Sprintf("parkcast-%s", uuid.NewString()[:8])
	}
}

// Validate checks mandatory fields when the announcer is enabled.
func (c Config) Validate() error {
	if c.Enabled && c.Broker == "" {
		return fmt.Errorf("mqtt broker is required when announcer is enabled")
	}
	return nil
}

// Announcer forwards bus events to the broker.
type Announcer struct {
	cli    paho.Client
	prefix string
	qos    byte
	log    logger.Logger
}

// NewAnnouncer connects to the broker.
func NewAnnouncer(cfg Config) (*Announcer, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(5 * time.Second)
	cli := paho.NewClient(opts)
	tok := cli.Connect()
	if !tok.WaitTimeout(5*time.Second) || tok.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %v", tok.Error())
	}
	return &Announcer{cli: cli, prefix: cfg.TopicPrefix, qos: cfg.QoS, log: logger.New("mqtt-announcer")}, nil
}

// Announce publishes the event as JSON under <prefix>/<kind>. Publish
// failures are logged, not returned: the announcer is a tap, never a
// dependency of the session.
func (a *Announcer) Announce(ev events.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		a.log.Errorf("marshal %s event: %v", ev.Kind(), err)
		return
	}
	topic := fmt.Sprintf("%s/%s", a.prefix, ev.Kind())
	tok := a.cli.Publish(topic, a.qos, false, payload)
	if !tok.WaitTimeout(2*time.Second) || tok.Error() != nil {
		a.log.Warnf("publish %s: %v", topic, tok.Error())
	}
}

// Close disconnects from the broker.
func (a *Announcer) Close() {
	a.cli.Disconnect(250)
}
