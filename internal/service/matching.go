package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/trm"
)

// matchingEngine единственный компонент, который меняет заявку и её ставки
// одновременно. На заявку может быть принята не более одной ставки.
type matchingEngine struct {
	logger    *slog.Logger
	txManager trm.Manager
	orders    OrderRepo
	bids      BidRepo
	cache     Cache
	events    EventPublisher
	now       func() time.Time
}

func NewMatchingEngine(
	logger *slog.Logger,
	txManager trm.Manager,
	orders OrderRepo,
	bids BidRepo,
	cache Cache,
	events EventPublisher,
) *matchingEngine {
	return &matchingEngine{
		logger:    logger.With(slog.String("service", "matching")),
		txManager: txManager,
		orders:    orders,
		bids:      bids,
		cache:     cache,
		events:    events,
		now:       time.Now,
	}
}

// AcceptBid принимает ставку, закрывает заявку и отклоняет остальные ожидающие
// ставки одной транзакцией. Любая ошибка откатывает всё целиком.
func (e *matchingEngine) AcceptBid(ctx context.Context, bidID, requesterID string) (entities.AcceptResult, error) {
	var result entities.AcceptResult

	err := e.txManager.Do(ctx, func(ctx context.Context) error {
		bid, err := e.bids.GetBidByID(ctx, bidID)
		if err != nil {
			return err
		}

		order, err := e.orders.LockOrder(ctx, bid.OrderID)
		if errors.Is(err, entities.ErrNotFound) {
			e.logger.Error("bid references missing order", slog.String("bid_id", bid.ID), slog.String("order_id", bid.OrderID))
			return entities.ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		// статус ставки мог измениться, пока мы ждали блокировку заявки
		bid, err = e.bids.GetBidByID(ctx, bidID)
		if err != nil {
			return err
		}

		if order.RequesterID != requesterID {
			return entities.ErrNotOrderOwner
		}
		if !order.IsActive() {
			return entities.ErrOrderClosed
		}
		if bid.Status != entities.BidPending {
			return entities.ErrBidNotPending
		}

		if err := e.bids.UpdateBidStatus(ctx, bid.ID, entities.BidAccepted); err != nil {
			return err
		}
		bid.Status = entities.BidAccepted

		if err := e.orders.UpdateOrderStatus(ctx, order.ID, entities.OrderClosed); err != nil {
			return err
		}
		order.Status = entities.OrderClosed

		rejected, err := e.bids.RejectPendingBids(ctx, order.ID, bid.ID)
		if err != nil {
			return err
		}

		result = entities.AcceptResult{
			Order:        order,
			AcceptedBid:  bid,
			RejectedBids: rejected,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, entities.ErrConflict) {
			txConflicts.WithLabelValues("accept_bid").Inc()
		}
		return entities.AcceptResult{}, err
	}

	e.cache.Delete(result.Order.ID)
	ordersClosed.WithLabelValues(resolutionAccepted).Inc()
	bidsRejected.Add(float64(len(result.RejectedBids)))

	e.logger.Info("bid accepted",
		slog.String("bid_id", result.AcceptedBid.ID),
		slog.String("order_id", result.Order.ID),
		slog.Int("rejected_bids", len(result.RejectedBids)),
	)
	e.events.Publish(ctx, entities.Event{
		Type:         entities.EventBidAccepted,
		OccurredAt:   e.now().UTC(),
		Order:        result.Order,
		Bid:          &result.AcceptedBid,
		RejectedBids: result.RejectedBids,
	})

	return result, nil
}
