package notification

import (
	"context"
	"os"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// ExchangeNotifications is a direct exchange; each user gets a routing
	// key of the form user.<id>, so a connected client binds a private queue.
	ExchangeNotifications = "projetox.notifications"
)

// MQConfig holds RabbitMQ connection settings.
type MQConfig struct {
	URL string
}

// MQConfigFromEnv reads RabbitMQ config from environment variables. An empty
// URL means live delivery is disabled and notifications are persist-only.
func MQConfigFromEnv() MQConfig {
	return MQConfig{URL: os.Getenv("AMQP_URL")}
}

// MQClient wraps one AMQP connection and channel.
type MQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// DialMQ connects to RabbitMQ and declares the notification topology.
func DialMQ(cfg MQConfig) (*MQClient, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(ExchangeNotifications, "direct", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &MQClient{conn: conn, channel: ch}, nil
}

// PublishJSON sends one JSON body to the notification exchange.
func (c *MQClient) PublishJSON(ctx context.Context, routingKey string, body []byte) error {
	return c.channel.PublishWithContext(ctx, ExchangeNotifications, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (c *MQClient) Close() {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
