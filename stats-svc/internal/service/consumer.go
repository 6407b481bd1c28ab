package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"dinein-preorder/logger"
	"dinein-preorder/stats-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

const (
	defaultRetryBackoff = 200 * time.Millisecond
	maxRetryBackoff     = 10 * time.Second
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Log    *slog.Logger

	// RetryBackoff is the first wait after a failed fetch or store write. It
	// doubles on each consecutive failure up to maxRetryBackoff.
	RetryBackoff time.Duration
}

func NewConsumer(reader MessageReader, store StoreInterface, log *slog.Logger) *Consumer {
	if log == nil {
		log = logger.Discard()
	}
	return &Consumer{
		Reader:       reader,
		Store:        store,
		Log:          log,
		RetryBackoff: defaultRetryBackoff,
	}
}

// Start consumes until ctx is cancelled. A message whose store write fails is
// retried in place and nothing after it is fetched until it succeeds, so a
// later commit never skips it. Undecodable messages are logged and committed.
func (c *Consumer) Start(ctx context.Context) error {
	c.Log.Info("stats consumer started")
	fetchFailures := 0
	for {
		message, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.Log.Error("read message", "error", err)
			fetchFailures++
			if !c.wait(ctx, fetchFailures) {
				return nil
			}
			continue
		}
		fetchFailures = 0

		if !c.processWithRetry(ctx, message) {
			return nil
		}

		if err := c.Reader.CommitMessages(ctx, message); err != nil {
			c.Log.Error("commit message", "offset", message.Offset, "error", err)
		}
	}
}

// processWithRetry returns false only when ctx is cancelled first.
func (c *Consumer) processWithRetry(ctx context.Context, message kafka.Message) bool {
	for attempt := 1; ; attempt++ {
		err := c.HandleMessage(ctx, message)
		if err == nil {
			return true
		}
		c.Log.Error("process message", "offset", message.Offset, "attempt", attempt, "error", err)
		if !c.wait(ctx, attempt) {
			return false
		}
	}
}

func (c *Consumer) wait(ctx context.Context, failures int) bool {
	backoff := c.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	for i := 1; i < failures && backoff < maxRetryBackoff; i++ {
		backoff *= 2
	}
	if backoff > maxRetryBackoff {
		backoff = maxRetryBackoff
	}

	timer := time.NewTimer(backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (c *Consumer) HandleMessage(ctx context.Context, message kafka.Message) error {
	var event domain.OrderEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		c.Log.Warn("skipping undecodable message", "offset", message.Offset, "error", err)
		return nil
	}
	return c.ProcessOrder(ctx, event)
}

// ProcessOrder records order_placed events and ignores every other type.
func (c *Consumer) ProcessOrder(ctx context.Context, event domain.OrderEvent) error {
	if event.Type != domain.EventOrderPlaced {
		return nil
	}
	if event.RestaurantID == "" {
		c.Log.Warn("skipping order event without restaurant", "order_id", event.OrderID)
		return nil
	}

	recorded, err := c.Store.RecordOrder(ctx, event)
	if err != nil {
		return fmt.Errorf("record order %s: %w", event.OrderID, err)
	}
	if !recorded {
		c.Log.Info("duplicate order event", "order_id", event.OrderID)
		return nil
	}

	c.Log.Info("order recorded", "order_id", event.OrderID,
		"restaurant_id", event.RestaurantID, "total", event.Total)
	return nil
}
