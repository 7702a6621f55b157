// Package kafka publishes risk alerts produced by the background region
// monitor to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/seismic-analysis-service/internal/config"
	"github.com/couchcryptid/seismic-analysis-service/internal/seismic"
)

// Publisher produces risk alerts to a Kafka topic.
// It implements monitor.AlertPublisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured alerts topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishAnalysis serializes and publishes a completed region analysis as a
// risk alert.
func (p *Publisher) PublishAnalysis(ctx context.Context, analysis *seismic.Analysis) error {
	msg, err := serializeAlert(analysis)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeAlert marshals an analysis into a Kafka message keyed by region
// name so alerts for the same region land on the same partition.
func serializeAlert(analysis *seismic.Analysis) (kafkago.Message, error) {
	data, err := json.Marshal(analysis)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize risk alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(analysis.RegionName),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "region", Value: []byte(analysis.RegionName)},
			{Key: "risk_level", Value: []byte(analysis.RiskLevel)},
			{Key: "generated_at", Value: []byte(analysis.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
