package tests

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dinein-preorder/stats-svc/internal/domain"
	"dinein-preorder/stats-svc/internal/mocks"
	"dinein-preorder/stats-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func orderPlaced() domain.OrderEvent {
	return domain.OrderEvent{
		Type:         domain.EventOrderPlaced,
		OrderID:      "order-1",
		RestaurantID: "rest-1",
		Items:        []domain.OrderItem{{MenuItemID: "item-a", Quantity: 2}},
		Total:        17,
	}
}

func TestConsumer_ProcessOrder(t *testing.T) {
	tests := []struct {
		name           string
		inputEvent     domain.OrderEvent
		setupMockStore func(*mocks.StoreInterface)
		expectErr      bool
	}{
		{
			name:       "success",
			inputEvent: orderPlaced(),
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordOrder", mock.Anything, orderPlaced()).Return(true, nil).Once()
			},
		},
		{
			name:       "duplicate",
			inputEvent: orderPlaced(),
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordOrder", mock.Anything, orderPlaced()).Return(false, nil).Once()
			},
		},
		{
			name:       "RecordOrder error",
			inputEvent: orderPlaced(),
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordOrder", mock.Anything, mock.Anything).Return(false, errors.New("redis error")).Once()
			},
			expectErr: true,
		},
		{
			name: "other event type",
			inputEvent: domain.OrderEvent{
				Type:         "order_cancelled",
				RestaurantID: "rest-1",
			},
			setupMockStore: func(*mocks.StoreInterface) {},
		},
		{
			name: "missing restaurant",
			inputEvent: domain.OrderEvent{
				Type:    domain.EventOrderPlaced,
				OrderID: "order-2",
			},
			setupMockStore: func(*mocks.StoreInterface) {},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			testCase.setupMockStore(mockStore)

			consumer := service.NewConsumer(nil, mockStore, nil)

			err := consumer.ProcessOrder(context.Background(), testCase.inputEvent)
			if testCase.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConsumer_HandleMessage_SkipsGarbage(t *testing.T) {
	mockStore := mocks.NewStoreInterface(t)
	consumer := service.NewConsumer(nil, mockStore, nil)

	err := consumer.HandleMessage(context.Background(), kafka.Message{Value: []byte("not json")})

	assert.NoError(t, err)
	mockStore.AssertNotCalled(t, "RecordOrder")
}

type fakeReader struct {
	mu        sync.Mutex
	fetchErrs int
	fetches   int
	messages  []kafka.Message
	committed []kafka.Message
	drained   chan struct{}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	r.fetches++
	if r.fetchErrs > 0 {
		r.fetchErrs--
		r.mu.Unlock()
		return kafka.Message{}, errors.New("broker unavailable")
	}
	if len(r.messages) > 0 {
		msg := r.messages[0]
		r.messages = r.messages[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	if len(r.messages) == 0 {
		select {
		case <-r.drained:
		default:
			close(r.drained)
		}
	}
	return nil
}

func TestConsumer_Start_CommitsProcessedMessages(t *testing.T) {
	mockStore := mocks.NewStoreInterface(t)
	mockStore.On("RecordOrder", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.OrderID == "order-1"
	})).Return(true, nil).Once()

	reader := &fakeReader{
		messages: []kafka.Message{
			{Offset: 1, Value: []byte(`{"type":"order_placed","order_id":"order-1","restaurant_id":"rest-1","total":8.5}`)},
			{Offset: 2, Value: []byte(`{"type":"order_cancelled","order_id":"order-1","restaurant_id":"rest-1"}`)},
		},
		drained: make(chan struct{}),
	}
	consumer := service.NewConsumer(reader, mockStore, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- consumer.Start(ctx) }()

	select {
	case <-reader.drained:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not drain messages")
	}
	cancel()
	require.NoError(t, <-done)

	reader.mu.Lock()
	defer reader.mu.Unlock()
	assert.Len(t, reader.committed, 2)
}

func TestConsumer_Start_RetriesFailedMessageInPlace(t *testing.T) {
	var (
		mu       sync.Mutex
		attempts []string
	)
	track := func(args mock.Arguments) {
		mu.Lock()
		defer mu.Unlock()
		attempts = append(attempts, args.Get(1).(domain.OrderEvent).OrderID)
	}

	mockStore := mocks.NewStoreInterface(t)
	isOrder := func(id string) interface{} {
		return mock.MatchedBy(func(e domain.OrderEvent) bool { return e.OrderID == id })
	}
	mockStore.On("RecordOrder", mock.Anything, isOrder("order-1")).Run(track).Return(false, errors.New("redis timeout")).Once()
	mockStore.On("RecordOrder", mock.Anything, isOrder("order-1")).Run(track).Return(true, nil).Once()
	mockStore.On("RecordOrder", mock.Anything, isOrder("order-2")).Run(track).Return(true, nil).Once()

	reader := &fakeReader{
		fetchErrs: 1,
		messages: []kafka.Message{
			{Offset: 1, Value: []byte(`{"type":"order_placed","order_id":"order-1","restaurant_id":"rest-1","total":8.5}`)},
			{Offset: 2, Value: []byte(`{"type":"order_placed","order_id":"order-2","restaurant_id":"rest-1","total":3.5}`)},
		},
		drained: make(chan struct{}),
	}
	consumer := service.NewConsumer(reader, mockStore, nil)
	consumer.RetryBackoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- consumer.Start(ctx) }()

	select {
	case <-reader.drained:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not drain messages")
	}
	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	assert.Equal(t, []string{"order-1", "order-1", "order-2"}, attempts)
	mu.Unlock()

	reader.mu.Lock()
	defer reader.mu.Unlock()
	require.Len(t, reader.committed, 2)
	assert.Equal(t, int64(1), reader.committed[0].Offset)
	assert.Equal(t, int64(2), reader.committed[1].Offset)
	// one failed fetch, two messages, then the fetch that blocks until cancel
	assert.Equal(t, 4, reader.fetches)
}

func TestConsumer_Start_StopsWhileRetrying(t *testing.T) {
	mockStore := mocks.NewStoreInterface(t)
	mockStore.On("RecordOrder", mock.Anything, mock.Anything).Return(false, errors.New("redis down"))

	reader := &fakeReader{
		messages: []kafka.Message{
			{Offset: 7, Value: []byte(`{"type":"order_placed","order_id":"order-9","restaurant_id":"rest-1"}`)},
		},
		drained: make(chan struct{}),
	}
	consumer := service.NewConsumer(reader, mockStore, nil)
	consumer.RetryBackoff = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, consumer.Start(ctx))

	reader.mu.Lock()
	defer reader.mu.Unlock()
	assert.Empty(t, reader.committed)
}
