package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
	mocks "github.com/SergeyBogomolovv/exchange-ledger/internal/handler/mocks"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/repo"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/service"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/cache"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/utils"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type commandFixture struct {
	h     *kafkaHandler
	views ViewService
	bids  BidService
}

func newCommandFixture(t *testing.T, matching MatchingEngine) commandFixture {
	t.Helper()

	store := repo.NewMemoryRepo()
	c := cache.NewLRUCache(10, time.Minute)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	events := service.NopPublisher{}

	orders := service.NewOrderService(logger, store, store, store, c, events)
	bids := service.NewBidService(logger, store, store, store, events)
	if matching == nil {
		matching = service.NewMatchingEngine(logger, store, store, store, c, events)
	}

	return commandFixture{
		h: &kafkaHandler{
			logger:   logger,
			validate: utils.NewValidator(),
			orders:   orders,
			bids:     bids,
			matching: matching,
		},
		views: service.NewViewService(store, store, store),
		bids:  bids,
	}
}

func message(value string) kafka.Message {
	return kafka.Message{Topic: "commands", Value: []byte(value)}
}

func TestKafkaHandler_HandleMessage_Flow(t *testing.T) {
	f := newCommandFixture(t, nil)
	ctx := context.Background()

	err := f.h.handleMessage(ctx, message(`{
		"type": "order.create",
		"user_id": "client",
		"order": {"amount": "250", "currency": "EUR", "location": "Bishkek", "delivery_type": "delivery"}
	}`))
	require.NoError(t, err)

	active, err := f.views.ActiveOrdersFor(ctx, "exchanger")
	require.NoError(t, err)
	require.Len(t, active, 1)
	order := active[0]
	assert.Equal(t, "client", order.RequesterID)

	err = f.h.handleMessage(ctx, message(fmt.Sprintf(`{
		"type": "bid.submit",
		"user_id": "exchanger",
		"bid": {"order_id": %q, "rate": "89.7", "time_estimate": 45}
	}`, order.ID)))
	require.NoError(t, err)

	bids, err := f.bids.BidsForOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, bids, 1)

	err = f.h.handleMessage(ctx, message(fmt.Sprintf(
		`{"type": "bid.accept", "user_id": "client", "bid_id": %q}`, bids[0].ID,
	)))
	require.NoError(t, err)

	// повторное принятие окончательная ошибка, уходит в DLQ без повторов
	err = f.h.handleMessage(ctx, message(fmt.Sprintf(
		`{"type": "bid.accept", "user_id": "client", "bid_id": %q}`, bids[0].ID,
	)))
	assert.ErrorIs(t, err, entities.ErrInvalidState)

	err = f.h.handleMessage(ctx, message(fmt.Sprintf(
		`{"type": "order.cancel", "user_id": "client", "order_id": %q}`, order.ID,
	)))
	assert.ErrorIs(t, err, entities.ErrOrderClosed)
}

func TestKafkaHandler_HandleMessage_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{name: "not json", value: `not json`},
		{name: "unknown type", value: `{"type": "order.delete", "user_id": "u"}`},
		{name: "missing user", value: `{"type": "order.cancel", "order_id": "o"}`},
		{name: "create without order", value: `{"type": "order.create", "user_id": "u"}`},
		{name: "accept without bid id", value: `{"type": "bid.accept", "user_id": "u"}`},
		{
			name:  "invalid order payload",
			value: `{"type": "order.create", "user_id": "u", "order": {"amount": "-5", "currency": "USD", "location": "x", "delivery_type": "pickup"}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCommandFixture(t, nil)
			err := f.h.handleMessage(context.Background(), message(tc.value))
			assert.ErrorIs(t, err, entities.ErrValidation)
		})
	}
}

func TestKafkaHandler_HandleMessage_RetriesConflict(t *testing.T) {
	m := mocks.NewMockMatchingEngine(t)
	m.EXPECT().AcceptBid(mock.Anything, "bid-1", "client").
		Return(entities.AcceptResult{}, entities.ErrConflict).Twice()
	m.EXPECT().AcceptBid(mock.Anything, "bid-1", "client").
		Return(entities.AcceptResult{}, nil).Once()

	f := newCommandFixture(t, m)
	err := f.h.handleMessage(context.Background(),
		message(`{"type": "bid.accept", "user_id": "client", "bid_id": "bid-1"}`))
	assert.NoError(t, err)
}

func TestKafkaHandler_HandleMessage_FinalErrorNotRetried(t *testing.T) {
	m := mocks.NewMockMatchingEngine(t)
	m.EXPECT().AcceptBid(mock.Anything, "bid-1", "client").
		Return(entities.AcceptResult{}, entities.ErrNotOrderOwner).Once()

	f := newCommandFixture(t, m)
	err := f.h.handleMessage(context.Background(),
		message(`{"type": "bid.accept", "user_id": "client", "bid_id": "bid-1"}`))
	assert.ErrorIs(t, err, entities.ErrForbidden)
}
