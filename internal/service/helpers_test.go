package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/repo"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/service"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type orderService interface {
	CreateOrder(ctx context.Context, in entities.NewOrder) (entities.Order, error)
	GetOrder(ctx context.Context, orderID string) (entities.Order, error)
	OrdersByRequester(ctx context.Context, requesterID string) ([]entities.Order, error)
	CancelOrder(ctx context.Context, orderID, requesterID string) (entities.Order, error)
}

type bidService interface {
	SubmitBid(ctx context.Context, in entities.NewBid) (entities.Bid, error)
	BidsForOrder(ctx context.Context, orderID string) ([]entities.Bid, error)
	BidsBySubmitter(ctx context.Context, exchangerID string) ([]entities.Bid, error)
	ArchiveCompleted(ctx context.Context, exchangerID string) (int, error)
}

type matchingEngine interface {
	AcceptBid(ctx context.Context, bidID, requesterID string) (entities.AcceptResult, error)
}

type viewService interface {
	ActiveOrdersFor(ctx context.Context, exchangerID string) ([]entities.Order, error)
	MyOrdersFor(ctx context.Context, clientID string) (entities.MyOrders, error)
	MyBidsFor(ctx context.Context, exchangerID string) (entities.MyBids, error)
	StatsFor(ctx context.Context, userID string) (entities.Stats, error)
}

type ledger struct {
	orders   orderService
	bids     bidService
	matching matchingEngine
	views    viewService
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLedger(t *testing.T) ledger {
	t.Helper()

	store := repo.NewMemoryRepo()
	c := cache.NewLRUCache(100, time.Minute)
	logger := discardLogger()
	events := service.NopPublisher{}

	return ledger{
		orders:   service.NewOrderService(logger, store, store, store, c, events),
		bids:     service.NewBidService(logger, store, store, store, events),
		matching: service.NewMatchingEngine(logger, store, store, store, c, events),
		views:    service.NewViewService(store, store, store),
	}
}

func newOrderInput(requesterID string) entities.NewOrder {
	return entities.NewOrder{
		RequesterID:  requesterID,
		Amount:       decimal.NewFromInt(1000),
		Currency:     "USD",
		Location:     "Tashkent",
		DeliveryType: entities.DeliveryPickup,
	}
}

func (l ledger) mustCreateOrder(t *testing.T, requesterID string) entities.Order {
	t.Helper()
	order, err := l.orders.CreateOrder(context.Background(), newOrderInput(requesterID))
	require.NoError(t, err)
	return order
}

func (l ledger) mustSubmitBid(t *testing.T, orderID, exchangerID string, rate int64) entities.Bid {
	t.Helper()
	bid, err := l.bids.SubmitBid(context.Background(), entities.NewBid{
		OrderID:      orderID,
		ExchangerID:  exchangerID,
		Rate:         decimal.NewFromInt(rate),
		TimeEstimate: 15,
	})
	require.NoError(t, err)
	return bid
}

func countAccepted(bids []entities.Bid) int {
	n := 0
	for _, b := range bids {
		if b.Status == entities.BidAccepted {
			n++
		}
	}
	return n
}
