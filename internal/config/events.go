package config

import (
	"log/slog"
	"strings"

	"github.com/OpenCampus-2025/learning-service/internal/events"
)

// EventConfig holds configuration for event publishing
type EventConfig struct {
	Enabled       bool
	Publisher     string // kafka or noop
	KafkaBrokers  string
	LearningTopic string
}

func LoadEventConfig() *EventConfig {
	return &EventConfig{
		Enabled:       getEnv("EVENTS_ENABLED", "true") == "true",
		Publisher:     getEnv("EVENTS_PUBLISHER", "kafka"),
		KafkaBrokers:  getEnv("KAFKA_BROKERS", "localhost:9092"),
		LearningTopic: getEnv("LEARNING_TOPIC", "learning-events"),
	}
}

// GetKafkaBrokers returns Kafka brokers as a slice
func (c *EventConfig) GetKafkaBrokers() []string {
	return strings.Split(c.KafkaBrokers, ",")
}

// CreateEventPublisher creates an event publisher based on configuration
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using noop publisher")
		return events.NoopEventPublisher{}, nil
	}

	switch c.Publisher {
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.LearningTopic)

		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.LearningTopic,
			Logger:       logger,
		})
	case "noop":
		logger.Info("Using noop event publisher")
		return events.NoopEventPublisher{}, nil
	default:
		logger.Warn("Unknown event publisher type, falling back to noop", "publisher", c.Publisher)
		return events.NoopEventPublisher{}, nil
	}
}
