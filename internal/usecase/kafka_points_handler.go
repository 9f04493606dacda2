package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"DormBack/internal/domain/models"
	drepo "DormBack/internal/domain/repository"
	"DormBack/pkg/util"

	pkgkafka "DormBack/pkg/kafka"
)

// KafkaPointsHandler consumes fixture points from Kafka and writes them
// to storage. This closes the integration loop: points published by the
// series processor come back through the broker and land in ClickHouse.
type KafkaPointsHandler struct {
	topic   string
	storage drepo.Storage
	metrics drepo.Metrics
}

func NewKafkaPointsHandler(topic string, storage drepo.Storage, metrics drepo.Metrics) *KafkaPointsHandler {
	return &KafkaPointsHandler{topic: topic, storage: storage, metrics: metrics}
}

func (h *KafkaPointsHandler) Topic() string { return h.topic }

// incoming message schema: {run_id, date, price, volume, volatility}
func (h *KafkaPointsHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		RunID      string  `json:"run_id"`
		Date       string  `json:"date"`
		Price      float64 `json:"price"`
		Volume     float64 `json:"volume"`
		Volatility float64 `json:"volatility"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	day, ok := util.ParseTime(m.Date)
	if !ok {
		h.metrics.RecordError("consumer_date")
		return fmt.Errorf("bad point date %q", m.Date)
	}

	start := time.Now()
	err := h.storage.Store(ctx, m.RunID, &models.MarketPoint{
		Date:       day,
		Price:      m.Price,
		Volume:     m.Volume,
		Volatility: m.Volatility,
	})
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordPointsRouted("clickhouse", 1)
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaPointsHandler)(nil)
