package repository

import (
	"context"

	"DormBack/internal/domain/models"
	"DormBack/internal/domain/repository"
	"DormBack/pkg/util"

	pkgkafka "DormBack/pkg/kafka"
)

// KafkaSeriesPublisher implements Publisher for Kafka. Messages are
// keyed by run id so a run's points stay in one partition, in order.
type KafkaSeriesPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaSeriesPublisher creates a Kafka-backed fixture publisher.
func NewKafkaSeriesPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaSeriesPublisher{producer: producer, topic: topic}
}

func pointMessage(runID string, p *models.MarketPoint) map[string]interface{} {
	return map[string]interface{}{
		"run_id":     runID,
		"date":       util.FormatDate(p.Date),
		"price":      p.Price,
		"volume":     p.Volume,
		"volatility": p.Volatility,
	}
}

func (k *KafkaSeriesPublisher) Publish(ctx context.Context, runID string, p *models.MarketPoint) error {
	return k.producer.Publish(ctx, k.topic, []byte(runID), pointMessage(runID, p))
}

func (k *KafkaSeriesPublisher) PublishBatch(ctx context.Context, runID string, points []models.MarketPoint) error {
	if len(points) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(points))
	for i := range points {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(runID),
			Value: pointMessage(runID, &points[i]),
		}
	}
	return k.producer.PublishBatch(ctx, k.topic, msgs)
}

func (k *KafkaSeriesPublisher) Close() error {
	if k.producer != nil {
		return k.producer.Close()
	}
	return nil
}
