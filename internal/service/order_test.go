package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/repo"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/service"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/cache"
	mocks "github.com/SergeyBogomolovv/exchange-ledger/internal/service/mocks"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_CreateOrder(t *testing.T) {
	testCases := []struct {
		name    string
		modify  func(in *entities.NewOrder)
		wantErr error
	}{
		{
			name:   "OK",
			modify: func(in *entities.NewOrder) {},
		},
		{
			name:    "zero amount",
			modify:  func(in *entities.NewOrder) { in.Amount = decimal.Zero },
			wantErr: entities.ErrValidation,
		},
		{
			name:    "negative amount",
			modify:  func(in *entities.NewOrder) { in.Amount = decimal.NewFromInt(-5) },
			wantErr: entities.ErrValidation,
		},
		{
			name:    "amount below NUMERIC scale",
			modify:  func(in *entities.NewOrder) { in.Amount = decimal.RequireFromString("0.000000001") },
			wantErr: entities.ErrValidation,
		},
		{
			name:    "amount above NUMERIC precision",
			modify:  func(in *entities.NewOrder) { in.Amount = decimal.RequireFromString("1000000000000000") },
			wantErr: entities.ErrValidation,
		},
		{
			name:    "missing currency",
			modify:  func(in *entities.NewOrder) { in.Currency = "" },
			wantErr: entities.ErrValidation,
		},
		{
			name:    "missing location",
			modify:  func(in *entities.NewOrder) { in.Location = "   " },
			wantErr: entities.ErrValidation,
		},
		{
			name:    "unknown delivery type",
			modify:  func(in *entities.NewOrder) { in.DeliveryType = "teleport" },
			wantErr: entities.ErrValidation,
		},
		{
			name:    "missing requester",
			modify:  func(in *entities.NewOrder) { in.RequesterID = "" },
			wantErr: entities.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := repo.NewMemoryRepo()
			cache := mocks.NewMockCache(t)
			events := mocks.NewMockEventPublisher(t)

			if tc.wantErr == nil {
				events.EXPECT().
					Publish(mock.Anything, mock.MatchedBy(func(e entities.Event) bool {
						return e.Type == entities.EventOrderCreated && e.Order.RequesterID == "client"
					})).
					Return().Once()
			}

			svc := service.NewOrderService(discardLogger(), store, store, store, cache, events)

			in := newOrderInput("client")
			in.Currency = " usd "
			tc.modify(&in)

			order, err := svc.CreateOrder(context.Background(), in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				var ve validator.ValidationErrors
				assert.ErrorAs(t, err, &ve)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, order.ID)
			assert.Equal(t, entities.OrderActive, order.Status)
			assert.Equal(t, "USD", order.Currency)
			assert.False(t, order.CreatedAt.IsZero())

			stored, err := store.GetOrderByID(context.Background(), order.ID)
			require.NoError(t, err)
			assert.Equal(t, order, stored)
		})
	}
}

func TestOrderService_GetOrder(t *testing.T) {
	type MockBehavior func(cache *mocks.MockCache, order entities.Order)

	testCases := []struct {
		name         string
		orderID      func(order entities.Order) string
		mockBehavior MockBehavior
		wantErr      error
	}{
		{
			name:    "success from cache",
			orderID: func(o entities.Order) string { return o.ID },
			mockBehavior: func(cache *mocks.MockCache, order entities.Order) {
				data, err := order.Marshal()
				require.NoError(t, err)
				cache.EXPECT().Get(order.ID).Return(data, true).Once()
			},
		},
		{
			name:    "broken cache entry is dropped and reloaded",
			orderID: func(o entities.Order) string { return o.ID },
			mockBehavior: func(cache *mocks.MockCache, order entities.Order) {
				cache.EXPECT().Get(order.ID).Return([]byte("broken"), true).Once()
				cache.EXPECT().Delete(order.ID).Return().Once()
				cache.EXPECT().Version().Return(uint64(4)).Once()
				cache.EXPECT().SetIfVersion(order.ID, mock.AnythingOfType("[]uint8"), uint64(4)).Return(true).Once()
			},
		},
		{
			name:    "success from repo and set to cache",
			orderID: func(o entities.Order) string { return o.ID },
			mockBehavior: func(cache *mocks.MockCache, order entities.Order) {
				cache.EXPECT().Get(order.ID).Return(nil, false).Once()
				cache.EXPECT().Version().Return(uint64(7)).Once()
				cache.EXPECT().SetIfVersion(order.ID, mock.AnythingOfType("[]uint8"), uint64(7)).Return(true).Once()
			},
		},
		{
			name:    "invalidated during read is still returned",
			orderID: func(o entities.Order) string { return o.ID },
			mockBehavior: func(cache *mocks.MockCache, order entities.Order) {
				cache.EXPECT().Get(order.ID).Return(nil, false).Once()
				cache.EXPECT().Version().Return(uint64(7)).Once()
				cache.EXPECT().SetIfVersion(order.ID, mock.AnythingOfType("[]uint8"), uint64(7)).Return(false).Once()
			},
		},
		{
			name:    "not found in repo",
			orderID: func(entities.Order) string { return "not-exist" },
			mockBehavior: func(cache *mocks.MockCache, order entities.Order) {
				cache.EXPECT().Get("not-exist").Return(nil, false).Once()
				cache.EXPECT().Version().Return(uint64(0)).Once()
			},
			wantErr: entities.ErrOrderNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := repo.NewMemoryRepo()
			order := entities.Order{
				ID:           "order-1",
				RequesterID:  "client",
				Amount:       decimal.NewFromInt(1000),
				Currency:     "USD",
				Location:     "Tashkent",
				DeliveryType: entities.DeliveryPickup,
				Status:       entities.OrderActive,
			}
			require.NoError(t, store.CreateOrder(context.Background(), order))

			cache := mocks.NewMockCache(t)
			tc.mockBehavior(cache, order)

			svc := service.NewOrderService(discardLogger(), store, store, store, cache, service.NopPublisher{})

			got, err := svc.GetOrder(context.Background(), tc.orderID(order))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, order.ID, got.ID)
			assert.True(t, order.Amount.Equal(got.Amount))
			assert.Equal(t, order.Status, got.Status)
		})
	}
}

func TestOrderService_CancelOrder(t *testing.T) {
	t.Run("errors", func(t *testing.T) {
		l := newLedger(t)
		ctx := context.Background()
		order := l.mustCreateOrder(t, "client")

		_, err := l.orders.CancelOrder(ctx, "missing", "client")
		assert.ErrorIs(t, err, entities.ErrNotFound)

		_, err = l.orders.CancelOrder(ctx, order.ID, "stranger")
		assert.ErrorIs(t, err, entities.ErrForbidden)

		_, err = l.orders.CancelOrder(ctx, order.ID, "client")
		require.NoError(t, err)

		_, err = l.orders.CancelOrder(ctx, order.ID, "client")
		assert.ErrorIs(t, err, entities.ErrInvalidState)
	})

	t.Run("rejects all pending bids", func(t *testing.T) {
		l := newLedger(t)
		ctx := context.Background()
		order := l.mustCreateOrder(t, "client")
		for _, ex := range []string{"e1", "e2", "e3"} {
			l.mustSubmitBid(t, order.ID, ex, 12500)
		}

		cancelled, err := l.orders.CancelOrder(ctx, order.ID, "client")
		require.NoError(t, err)
		assert.Equal(t, entities.OrderClosed, cancelled.Status)

		bids, err := l.bids.BidsForOrder(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, bids, 3)
		for _, b := range bids {
			assert.Equal(t, entities.BidRejected, b.Status)
		}
		assert.Zero(t, countAccepted(bids))
	})

	t.Run("invalidates cached order", func(t *testing.T) {
		l := newLedger(t)
		ctx := context.Background()
		order := l.mustCreateOrder(t, "client")

		cached, err := l.orders.GetOrder(ctx, order.ID)
		require.NoError(t, err)
		require.Equal(t, entities.OrderActive, cached.Status)

		_, err = l.orders.CancelOrder(ctx, order.ID, "client")
		require.NoError(t, err)

		got, err := l.orders.GetOrder(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.OrderClosed, got.Status)
	})
}

// racingOrders выполняет afterRead один раз сразу после чтения заявки
type racingOrders struct {
	service.OrderRepo
	afterRead func()
}

func (r *racingOrders) GetOrderByID(ctx context.Context, id string) (entities.Order, error) {
	order, err := r.OrderRepo.GetOrderByID(ctx, id)
	if r.afterRead != nil {
		fn := r.afterRead
		r.afterRead = nil
		fn()
	}
	return order, err
}

func TestOrderService_GetOrder_StaleReadNotCached(t *testing.T) {
	ctx := context.Background()
	store := repo.NewMemoryRepo()
	c := cache.NewLRUCache(100, time.Minute)
	logger := discardLogger()

	orders := service.NewOrderService(logger, store, store, store, c, service.NopPublisher{})
	order, err := orders.CreateOrder(ctx, newOrderInput("client"))
	require.NoError(t, err)

	racing := &racingOrders{OrderRepo: store}
	racing.afterRead = func() {
		_, err := orders.CancelOrder(ctx, order.ID, "client")
		require.NoError(t, err)
	}
	slow := service.NewOrderService(logger, store, racing, store, c, service.NopPublisher{})

	stale, err := slow.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderActive, stale.Status)

	_, ok := c.Get(order.ID)
	assert.False(t, ok, "order read before cancel must not be cached")

	got, err := orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderClosed, got.Status)
}
