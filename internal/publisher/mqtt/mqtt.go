// Package mqtt publishes sensor snapshots to an MQTT broker.
package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hvac_monitor/internal/models"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	DefaultBroker   = "tcp://localhost:1883"
	DefaultClientID = "hvac-monitor"
	DefaultTopic    = "hvac/snapshot"

	qosAtMostOnce   = 0
	publishTimeout  = 2 * time.Second
	disconnectQuiet = 250 // ms
)

var ErrPublishTimeout = errors.New("mqtt publish timed out")

type Options struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

type Publisher struct {
	client publisher
	topic  string
}

// Payload is the JSON document published for every reading.
type Payload struct {
	TakenAt    time.Time             `json:"taken_at"`
	SensorData models.SensorSnapshot `json:"sensor_data"`
}

// Connect dials the broker and waits for the first connection or ctx.
func Connect(ctx context.Context, o Options) (*Publisher, error) {
	if o.Broker == "" {
		o.Broker = DefaultBroker
	}
	if o.ClientID == "" {
		o.ClientID = DefaultClientID
	}
	if o.Topic == "" {
		o.Topic = DefaultTopic
	}

	opts := paho.NewClientOptions().AddBroker(o.Broker).SetClientID(o.ClientID)
	if o.Username != "" {
		opts.SetUsername(o.Username)
	}
	if o.Password != "" {
		opts.SetPassword(o.Password)
	}
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(30 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()

	const poll = 200 * time.Millisecond
	for !token.WaitTimeout(poll) {
		select {
		case <-ctx.Done():
			client.Disconnect(disconnectQuiet)
			return nil, ctx.Err()
		default:
		}
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &Publisher{client: client, topic: o.Topic}, nil
}

func (p *Publisher) Name() string { return "mqtt" }

// Publish sends the reading with QoS 0, not retained.
func (p *Publisher) Publish(ctx context.Context, r models.Reading) error {
	b, err := Encode(r)
	if err != nil {
		return err
	}
	token := p.client.Publish(p.topic, qosAtMostOnce, false, b)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		return ErrPublishTimeout
	}
}

func (p *Publisher) Close() error {
	if p.client != nil {
		p.client.Disconnect(disconnectQuiet)
	}
	return nil
}

// Encode builds the published JSON body.
func Encode(r models.Reading) ([]byte, error) {
	return json.Marshal(Payload{TakenAt: r.TakenAt.UTC(), SensorData: r.Snapshot})
}
