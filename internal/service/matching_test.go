package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/repo"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/service"
	mocks "github.com/SergeyBogomolovv/exchange-ledger/internal/service/mocks"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMatchingEngine_AcceptBid_Scenario(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	order, err := l.orders.CreateOrder(ctx, entities.NewOrder{
		RequesterID:  "C",
		Amount:       decimal.NewFromInt(1000),
		Currency:     "USD",
		Location:     "Tashkent",
		DeliveryType: entities.DeliveryPickup,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.OrderActive, order.Status)

	b1, err := l.bids.SubmitBid(ctx, entities.NewBid{
		OrderID: order.ID, ExchangerID: "E1", Rate: decimal.NewFromInt(12500), TimeEstimate: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.BidPending, b1.Status)

	b2, err := l.bids.SubmitBid(ctx, entities.NewBid{
		OrderID: order.ID, ExchangerID: "E2", Rate: decimal.NewFromInt(12300), TimeEstimate: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.BidPending, b2.Status)

	res, err := l.matching.AcceptBid(ctx, b1.ID, "C")
	require.NoError(t, err)
	assert.Equal(t, entities.OrderClosed, res.Order.Status)
	assert.Equal(t, b1.ID, res.AcceptedBid.ID)
	assert.Equal(t, entities.BidAccepted, res.AcceptedBid.Status)
	require.Len(t, res.RejectedBids, 1)
	assert.Equal(t, b2.ID, res.RejectedBids[0].ID)
	assert.Equal(t, entities.BidRejected, res.RejectedBids[0].Status)

	_, err = l.matching.AcceptBid(ctx, b2.ID, "C")
	assert.ErrorIs(t, err, entities.ErrInvalidState)

	_, err = l.matching.AcceptBid(ctx, b1.ID, "C")
	assert.ErrorIs(t, err, entities.ErrInvalidState)

	_, err = l.bids.SubmitBid(ctx, entities.NewBid{
		OrderID: order.ID, ExchangerID: "E3", Rate: decimal.NewFromInt(12700), TimeEstimate: 5,
	})
	assert.ErrorIs(t, err, entities.ErrInvalidState)

	bids, err := l.bids.BidsForOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, countAccepted(bids))
}

func TestMatchingEngine_AcceptBid_Errors(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	order := l.mustCreateOrder(t, "client")
	bid := l.mustSubmitBid(t, order.ID, "e1", 12500)

	cancelled := l.mustCreateOrder(t, "client")
	staleBid := l.mustSubmitBid(t, cancelled.ID, "e1", 12500)
	_, err := l.orders.CancelOrder(ctx, cancelled.ID, "client")
	require.NoError(t, err)

	testCases := []struct {
		name        string
		bidID       string
		requesterID string
		wantErr     error
	}{
		{name: "bid not found", bidID: "missing", requesterID: "client", wantErr: entities.ErrBidNotFound},
		{name: "not the owner", bidID: bid.ID, requesterID: "e2", wantErr: entities.ErrForbidden},
		{name: "exchanger cannot accept own bid", bidID: bid.ID, requesterID: "e1", wantErr: entities.ErrForbidden},
		{name: "order cancelled", bidID: staleBid.ID, requesterID: "client", wantErr: entities.ErrOrderClosed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.matching.AcceptBid(ctx, tc.bidID, tc.requesterID)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// после неудачных попыток ничего не изменилось
	bids, err := l.bids.BidsForOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.BidPending, bids[0].Status)
}

type failingRejects struct {
	service.BidRepo
}

var errRejectFailed = errors.New("reject failed")

func (failingRejects) RejectPendingBids(context.Context, string, string) ([]entities.Bid, error) {
	return nil, errRejectFailed
}

func TestMatchingEngine_AcceptBid_RollsBackOnFailure(t *testing.T) {
	store := repo.NewMemoryRepo()
	c := cache.NewLRUCache(10, time.Minute)
	logger := discardLogger()
	ctx := context.Background()

	orders := service.NewOrderService(logger, store, store, store, c, service.NopPublisher{})
	bids := service.NewBidService(logger, store, store, store, service.NopPublisher{})
	engine := service.NewMatchingEngine(logger, store, store, failingRejects{BidRepo: store}, c, service.NopPublisher{})

	order, err := orders.CreateOrder(ctx, newOrderInput("client"))
	require.NoError(t, err)
	bid, err := bids.SubmitBid(ctx, entities.NewBid{
		OrderID: order.ID, ExchangerID: "e1", Rate: decimal.NewFromInt(1), TimeEstimate: 1,
	})
	require.NoError(t, err)

	_, err = engine.AcceptBid(ctx, bid.ID, "client")
	require.ErrorIs(t, err, errRejectFailed)

	storedOrder, err := store.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderActive, storedOrder.Status)

	storedBid, err := store.GetBidByID(ctx, bid.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.BidPending, storedBid.Status)
}

func TestMatchingEngine_AcceptBid_PublishesEvent(t *testing.T) {
	store := repo.NewMemoryRepo()
	c := cache.NewLRUCache(10, time.Minute)
	logger := discardLogger()
	ctx := context.Background()
	events := mocks.NewMockEventPublisher(t)

	orders := service.NewOrderService(logger, store, store, store, c, service.NopPublisher{})
	bids := service.NewBidService(logger, store, store, store, service.NopPublisher{})
	engine := service.NewMatchingEngine(logger, store, store, store, c, events)

	order, err := orders.CreateOrder(ctx, newOrderInput("client"))
	require.NoError(t, err)
	winner, err := bids.SubmitBid(ctx, entities.NewBid{
		OrderID: order.ID, ExchangerID: "e1", Rate: decimal.NewFromInt(2), TimeEstimate: 1,
	})
	require.NoError(t, err)
	loser, err := bids.SubmitBid(ctx, entities.NewBid{
		OrderID: order.ID, ExchangerID: "e2", Rate: decimal.NewFromInt(1), TimeEstimate: 1,
	})
	require.NoError(t, err)

	events.EXPECT().
		Publish(mock.Anything, mock.MatchedBy(func(e entities.Event) bool {
			return e.Type == entities.EventBidAccepted &&
				e.Bid != nil && e.Bid.ID == winner.ID &&
				len(e.RejectedBids) == 1 && e.RejectedBids[0].ID == loser.ID
		})).
		Return().Once()

	_, err = engine.AcceptBid(ctx, winner.ID, "client")
	require.NoError(t, err)
}

func TestMatchingEngine_ConcurrentAccepts(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	order := l.mustCreateOrder(t, "client")

	const n = 16
	bidIDs := make([]string, n)
	for i := range n {
		bidIDs[i] = l.mustSubmitBid(t, order.ID, "e", int64(12000+i)).ID
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  []error
	)
	start := make(chan struct{})
	for _, id := range bidIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			<-start
			_, err := l.matching.AcceptBid(ctx, id, "client")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			failures = append(failures, err)
		}(id)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	require.Len(t, failures, n-1)
	for _, err := range failures {
		assert.ErrorIs(t, err, entities.ErrInvalidState)
	}

	bids, err := l.bids.BidsForOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, countAccepted(bids))
	for _, b := range bids {
		assert.NotEqual(t, entities.BidPending, b.Status)
	}
}

func TestMatchingEngine_CancelRacesAccept(t *testing.T) {
	for range 20 {
		l := newLedger(t)
		ctx := context.Background()
		order := l.mustCreateOrder(t, "client")
		bid := l.mustSubmitBid(t, order.ID, "e1", 12500)

		var (
			wg                   sync.WaitGroup
			acceptErr, cancelErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, acceptErr = l.matching.AcceptBid(ctx, bid.ID, "client")
		}()
		go func() {
			defer wg.Done()
			_, cancelErr = l.orders.CancelOrder(ctx, order.ID, "client")
		}()
		wg.Wait()

		// ровно одна операция побеждает, вторая видит закрытую заявку
		require.True(t, (acceptErr == nil) != (cancelErr == nil), "accept=%v cancel=%v", acceptErr, cancelErr)
		if acceptErr != nil {
			assert.ErrorIs(t, acceptErr, entities.ErrInvalidState)
		} else {
			assert.ErrorIs(t, cancelErr, entities.ErrInvalidState)
		}

		bids, err := l.bids.BidsForOrder(ctx, order.ID)
		require.NoError(t, err)
		if acceptErr == nil {
			assert.Equal(t, entities.BidAccepted, bids[0].Status)
		} else {
			assert.Equal(t, entities.BidRejected, bids[0].Status)
		}
	}
}
