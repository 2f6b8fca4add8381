package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/trm"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type bidService struct {
	logger    *slog.Logger
	txManager trm.Manager
	orders    OrderRepo
	bids      BidRepo
	events    EventPublisher
	validate  *validator.Validate
	now       func() time.Time
}

func NewBidService(
	logger *slog.Logger,
	txManager trm.Manager,
	orders OrderRepo,
	bids BidRepo,
	events EventPublisher,
) *bidService {
	return &bidService{
		logger:    logger.With(slog.String("service", "bid")),
		txManager: txManager,
		orders:    orders,
		bids:      bids,
		events:    events,
		validate:  utils.NewValidator(),
		now:       time.Now,
	}
}

// SubmitBid создаёт ставку в статусе pending. Заявка блокируется на время вставки,
// чтобы ставка не появилась у уже закрытой заявки.
func (s *bidService) SubmitBid(ctx context.Context, in entities.NewBid) (entities.Bid, error) {
	if err := s.validate.Struct(in); err != nil {
		return entities.Bid{}, fmt.Errorf("%w: %w", entities.ErrValidation, err)
	}

	var (
		bid   entities.Bid
		order entities.Order
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orders.LockOrder(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if !order.IsActive() {
			return entities.ErrOrderClosed
		}
		if order.RequesterID == in.ExchangerID {
			return entities.ErrOwnOrder
		}

		bid = entities.Bid{
			ID:           uuid.NewString(),
			OrderID:      order.ID,
			ExchangerID:  in.ExchangerID,
			Rate:         in.Rate,
			TimeEstimate: in.TimeEstimate,
			Comment:      in.Comment,
			Status:       entities.BidPending,
			CreatedAt:    s.now().UTC(),
		}
		return s.bids.CreateBid(ctx, bid)
	})
	if err != nil {
		if errors.Is(err, entities.ErrConflict) {
			txConflicts.WithLabelValues("submit_bid").Inc()
		}
		return entities.Bid{}, err
	}

	bidsSubmitted.Inc()
	s.logger.Debug("bid submitted", slog.String("bid_id", bid.ID), slog.String("order_id", bid.OrderID))
	s.events.Publish(ctx, entities.Event{
		Type:       entities.EventBidSubmitted,
		OccurredAt: bid.CreatedAt,
		Order:      order,
		Bid:        &bid,
	})

	return bid, nil
}

// BidsForOrder возвращает все ставки заявки в порядке подачи
func (s *bidService) BidsForOrder(ctx context.Context, orderID string) ([]entities.Bid, error) {
	if _, err := s.orders.GetOrderByID(ctx, orderID); err != nil {
		return nil, err
	}

	bids, err := s.bids.BidsByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order bids: %w", err)
	}
	return bids, nil
}

func (s *bidService) BidsBySubmitter(ctx context.Context, exchangerID string) ([]entities.Bid, error) {
	bids, err := s.bids.BidsByExchanger(ctx, exchangerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchanger bids: %w", err)
	}
	return bids, nil
}

// ArchiveCompleted скрывает завершённые ставки обменника из его списков
func (s *bidService) ArchiveCompleted(ctx context.Context, exchangerID string) (int, error) {
	n, err := s.bids.ArchiveCompletedBids(ctx, exchangerID, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to archive bids: %w", err)
	}
	s.logger.Debug("bids archived", slog.String("exchanger_id", exchangerID), slog.Int("count", n))
	return n, nil
}
