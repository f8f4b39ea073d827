package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Change actions carried by Event.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event tells the launchers of one operator that a resource changed.
type Event struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
	ID       uint   `json:"id"`
	UserID   uint   `json:"user_id"`
}

// Notifier publishes change events. Implementations must not block the
// request for long and never fail it.
type Notifier interface {
	Publish(ctx context.Context, ev Event)
}

type NopNotifier struct{}

func (NopNotifier) Publish(context.Context, Event) {}

// MQTTConfig holds the broker settings for MQTTNotifier.
type MQTTConfig struct {
	BrokerURL   string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

type MQTTNotifier struct {
	client  mqtt.Client
	prefix  string
	timeout time.Duration
	logger  *zap.Logger
}

func NewMQTTNotifier(cfg MQTTConfig, logger *zap.Logger) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.BrokerURL)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost", zap.Error(err))
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &MQTTNotifier{
		client:  client,
		prefix:  cfg.TopicPrefix,
		timeout: 2 * time.Second,
		logger:  logger,
	}, nil
}

// EventTopic is <prefix>/<user_id>/<resource>.
func EventTopic(prefix string, ev Event) string {
	return fmt.Sprintf("%s/%d/%s", prefix, ev.UserID, ev.Resource)
}

func (n *MQTTNotifier) Publish(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		n.logger.Error("failed to encode event", zap.Error(err))
		return
	}

	topic := EventTopic(n.prefix, ev)
	token := n.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(n.timeout) {
		n.logger.Warn("mqtt publish timed out", zap.String("topic", topic))
		return
	}
	if err := token.Error(); err != nil {
		n.logger.Warn("mqtt publish failed", zap.String("topic", topic), zap.Error(err))
	}
}

func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
}
