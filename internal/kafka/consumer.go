package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/RaikyD/tracking-number-service/internal/domain"
	"github.com/RaikyD/tracking-number-service/internal/logger"
)

type ConsumerConfig struct {
	Brokers string
	Topic   string
	GroupID string
}

type Generator interface {
	GenerateTrackingNumber(attrs domain.OrderAttributes) (domain.TrackingNumberRecord, error)
}

type Publisher interface {
	PublishIssued(ctx context.Context, rec domain.TrackingNumberRecord) error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer turns generation requests read from Kafka into issued tracking
// numbers. A message is committed once it is either issued and published or
// found to be unusable; publish failures are retried without committing.
type Consumer struct {
	r       messageReader
	gen     Generator
	pub     Publisher
	backoff time.Duration
}

func NewConsumer(cfg ConsumerConfig, gen Generator, pub Publisher) *Consumer {
	brokers := strings.Split(cfg.Brokers, ",")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:         brokers,
		GroupID:         cfg.GroupID,
		Topic:           cfg.Topic,
		MinBytes:        1,
		MaxBytes:        10e6,
		CommitInterval:  0,
		StartOffset:     kafka.FirstOffset,
		ReadLagInterval: -1,
	})

	logger.Info("kafka consumer configured", "brokers", cfg.Brokers, "topic", cfg.Topic, "group", cfg.GroupID)
	return &Consumer{r: r, gen: gen, pub: pub, backoff: 300 * time.Millisecond}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.r.Close()

	for {
		m, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Warn("kafka fetch error", "err", err)
			if !sleep(ctx, c.backoff) {
				return nil
			}
			continue
		}
		logger.Info("tracking request fetched", "partition", m.Partition, "offset", m.Offset)

		if rec, ok := c.issue(m); ok && !c.publish(ctx, rec) {
			return nil
		}

		if err := c.r.CommitMessages(ctx, m); err != nil {
			logger.Warn("[kafka] commit failed", "err", err)
		} else {
			logger.Info("[kafka] committed", "topic", m.Topic, "partition", m.Partition, "offset", m.Offset)
		}
	}
}

// issue decodes, validates and generates exactly once per fetched message.
// ok is false when the message is unusable and should be committed as is.
func (c *Consumer) issue(m kafka.Message) (domain.TrackingNumberRecord, bool) {
	var req domain.TrackingRequest
	if err := json.Unmarshal(m.Value, &req); err != nil {
		logger.Warn("kafka invalid json. skip and commit", "err", err)
		return domain.TrackingNumberRecord{}, false
	}

	// the message timestamp stands in for a missing createdAt so that a
	// redelivered message hashes the same way
	now := func() time.Time {
		if m.Time.IsZero() {
			return time.Now()
		}
		return m.Time
	}

	attrs, err := req.Attributes(now)
	if err != nil {
		logger.Warn("kafka invalid tracking request. skip and commit", "err", err)
		return domain.TrackingNumberRecord{}, false
	}

	rec, err := c.gen.GenerateTrackingNumber(attrs)
	if err != nil {
		logger.Error("kafka generate tracking number failed. skip and commit", "err", err)
		return domain.TrackingNumberRecord{}, false
	}
	logger.Info("tracking number issued", "tracking_number", rec.TrackingNumber.String())
	return rec, true
}

// publish retries until the record is published; it reports false only when
// ctx is cancelled first.
func (c *Consumer) publish(ctx context.Context, rec domain.TrackingNumberRecord) bool {
	if c.pub == nil {
		return true
	}
	for {
		err := c.pub.PublishIssued(ctx, rec)
		if err == nil {
			return true
		}
		logger.Warn("kafka publish issued failed, will retry", "tracking_number", rec.TrackingNumber.String(), "err", err)
		if !sleep(ctx, c.backoff) {
			return false
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
