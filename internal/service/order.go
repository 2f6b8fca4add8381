package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/trm"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var readRetry = utils.RetryConfig{
	InitialDelay: 100 * time.Millisecond,
	MaxAttempts:  3,
	Multiplier:   2,
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	orders    OrderRepo
	bids      BidRepo
	cache     Cache
	events    EventPublisher
	validate  *validator.Validate
	now       func() time.Time
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	orders OrderRepo,
	bids BidRepo,
	cache Cache,
	events EventPublisher,
) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		orders:    orders,
		bids:      bids,
		cache:     cache,
		events:    events,
		validate:  utils.NewValidator(),
		now:       time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, in entities.NewOrder) (entities.Order, error) {
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	in.Location = strings.TrimSpace(in.Location)

	if err := s.validate.Struct(in); err != nil {
		return entities.Order{}, fmt.Errorf("%w: %w", entities.ErrValidation, err)
	}

	order := entities.Order{
		ID:           uuid.NewString(),
		RequesterID:  in.RequesterID,
		Amount:       in.Amount,
		Currency:     in.Currency,
		Location:     in.Location,
		DeliveryType: in.DeliveryType,
		Comment:      in.Comment,
		Status:       entities.OrderActive,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return entities.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	ordersCreated.Inc()
	s.logger.Debug("order created", slog.String("order_id", order.ID), slog.String("requester_id", order.RequesterID))
	s.events.Publish(ctx, entities.Event{Type: entities.EventOrderCreated, OccurredAt: order.CreatedAt, Order: order})

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (entities.Order, error) {
	if data, ok := s.cache.Get(orderID); ok {
		var order entities.Order
		if err := order.Unmarshal(data); err == nil {
			return order, nil
		}
		// битая запись, читаем из хранилища заново
		s.logger.Error("failed to unmarshal cached order", slog.String("order_id", orderID))
		s.cache.Delete(orderID)
	}

	version := s.cache.Version()

	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.orders.GetOrderByID(ctx, orderID)
		return err
	}
	if err := utils.Retry(readRetry, fn, entities.ErrNotFound); err != nil {
		return entities.Order{}, err
	}

	data, err := order.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal order", slog.String("order_id", order.ID), slog.Any("error", err))
		return order, nil
	}
	if !s.cache.SetIfVersion(order.ID, data, version) {
		s.logger.Debug("cache invalidated during read, skip caching", slog.String("order_id", order.ID))
	}
	return order, nil
}

func (s *orderService) ActiveOrders(ctx context.Context, excludeRequesterID string) ([]entities.Order, error) {
	orders, err := s.orders.ActiveOrders(ctx, excludeRequesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) OrdersByRequester(ctx context.Context, requesterID string) ([]entities.Order, error) {
	orders, err := s.orders.OrdersByRequester(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requester orders: %w", err)
	}
	return orders, nil
}

// CancelOrder закрывает заявку без победителя, все ожидающие ставки отклоняются
func (s *orderService) CancelOrder(ctx context.Context, orderID, requesterID string) (entities.Order, error) {
	var (
		order    entities.Order
		rejected []entities.Bid
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orders.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order.RequesterID != requesterID {
			return entities.ErrNotOrderOwner
		}
		if !order.IsActive() {
			return entities.ErrOrderClosed
		}

		if err := s.orders.UpdateOrderStatus(ctx, order.ID, entities.OrderClosed); err != nil {
			return err
		}
		order.Status = entities.OrderClosed

		rejected, err = s.bids.RejectPendingBids(ctx, order.ID, "")
		return err
	})
	if err != nil {
		if errors.Is(err, entities.ErrConflict) {
			txConflicts.WithLabelValues("cancel_order").Inc()
		}
		return entities.Order{}, err
	}

	s.cache.Delete(order.ID)
	ordersClosed.WithLabelValues(resolutionCancelled).Inc()
	bidsRejected.Add(float64(len(rejected)))

	s.logger.Info("order cancelled",
		slog.String("order_id", order.ID),
		slog.Int("rejected_bids", len(rejected)),
	)
	s.events.Publish(ctx, entities.Event{
		Type:         entities.EventOrderCancelled,
		OccurredAt:   s.now().UTC(),
		Order:        order,
		RejectedBids: rejected,
	})

	return order, nil
}

// WarmUpCache загружает последние заявки в кеш при старте
func (s *orderService) WarmUpCache(ctx context.Context, count int) error {
	orders, err := s.orders.LatestOrders(ctx, count)
	if err != nil {
		return fmt.Errorf("failed to load latest orders: %w", err)
	}
	for _, order := range orders {
		s.cacheOrder(order)
	}
	s.logger.Info("cache warmed up", slog.Int("orders", len(orders)))
	return nil
}

func (s *orderService) cacheOrder(order entities.Order) {
	data, err := order.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal order", slog.String("order_id", order.ID), slog.Any("error", err))
		return
	}
	s.cache.Set(order.ID, data)
}
