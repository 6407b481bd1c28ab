package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"dinein-preorder/preorder-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return w.err
}

func TestKafkaPublisher_PublishOrder(t *testing.T) {
	writer := &recordingWriter{}
	publisher := NewKafkaPublisher(writer)
	event := domain.OrderEvent{
		Type:         domain.EventOrderPlaced,
		OrderID:      "order-1",
		RestaurantID: "rest-1",
		Items:        []domain.OrderItem{{MenuItemID: "a", Quantity: 2}},
		Total:        17,
	}

	require.NoError(t, publisher.PublishOrder(context.Background(), event))

	require.Len(t, writer.messages, 1)
	assert.Equal(t, "rest-1", string(writer.messages[0].Key))
	var decoded domain.OrderEvent
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	assert.Equal(t, "order-1", decoded.OrderID)
	assert.Equal(t, domain.EventOrderPlaced, decoded.Type)
}

func TestKafkaPublisher_PropagatesWriterError(t *testing.T) {
	publisher := NewKafkaPublisher(&recordingWriter{err: errors.New("broker down")})

	err := publisher.PublishOrder(context.Background(), domain.OrderEvent{RestaurantID: "rest-1"})

	assert.EqualError(t, err, "broker down")
}
