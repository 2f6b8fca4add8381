package service

import (
	"context"
	"fmt"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// viewService read-only проекции для клиентского UI. Ничего не кеширует и не
// меняет, поэтому опрос раз в несколько секунд безопасен.
type viewService struct {
	orders OrderRepo
	bids   BidRepo
	stats  StatsRepo
}

func NewViewService(orders OrderRepo, bids BidRepo, stats StatsRepo) *viewService {
	return &viewService{
		orders: orders,
		bids:   bids,
		stats:  stats,
	}
}

// ActiveOrdersFor лента активных заявок для обменника, без его собственных
func (s *viewService) ActiveOrdersFor(ctx context.Context, exchangerID string) ([]entities.Order, error) {
	orders, err := s.orders.ActiveOrders(ctx, exchangerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active orders: %w", err)
	}
	return orders, nil
}

func (s *viewService) MyOrdersFor(ctx context.Context, clientID string) (entities.MyOrders, error) {
	orders, err := s.orders.OrdersByRequester(ctx, clientID)
	if err != nil {
		return entities.MyOrders{}, fmt.Errorf("failed to get client orders: %w", err)
	}

	byStatus := lo.GroupBy(orders, func(o entities.Order) entities.OrderStatus {
		return o.Status
	})
	return entities.MyOrders{
		Active: nonNil(byStatus[entities.OrderActive]),
		Closed: nonNil(byStatus[entities.OrderClosed]),
	}, nil
}

func (s *viewService) MyBidsFor(ctx context.Context, exchangerID string) (entities.MyBids, error) {
	bids, err := s.bids.BidsByExchanger(ctx, exchangerID)
	if err != nil {
		return entities.MyBids{}, fmt.Errorf("failed to get exchanger bids: %w", err)
	}

	orderIDs := lo.Uniq(lo.Map(bids, func(b entities.Bid, _ int) string {
		return b.OrderID
	}))
	orders, err := s.orders.OrdersByIDs(ctx, orderIDs)
	if err != nil {
		return entities.MyBids{}, fmt.Errorf("failed to get orders of bids: %w", err)
	}
	byID := lo.KeyBy(orders, func(o entities.Order) string {
		return o.ID
	})

	withOrders := lo.Map(bids, func(b entities.Bid, _ int) entities.BidWithOrder {
		return entities.BidWithOrder{Bid: b, Order: byID[b.OrderID]}
	})
	return entities.MyBids{
		Pending: lo.Filter(withOrders, func(b entities.BidWithOrder, _ int) bool {
			return b.Status == entities.BidPending
		}),
		Completed: lo.Filter(withOrders, func(b entities.BidWithOrder, _ int) bool {
			return b.Status.IsTerminal()
		}),
	}, nil
}

// StatsFor пересчитывает счётчики при каждом запросе
func (s *viewService) StatsFor(ctx context.Context, userID string) (entities.Stats, error) {
	var stats entities.Stats

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.ActiveOrders, err = s.stats.CountOrders(ctx, userID, entities.OrderActive)
		return err
	})
	g.Go(func() (err error) {
		stats.CompletedOrders, err = s.stats.CountOrders(ctx, userID, entities.OrderClosed)
		return err
	})
	g.Go(func() (err error) {
		stats.PendingBids, err = s.stats.CountBids(ctx, userID, entities.BidPending)
		return err
	})
	g.Go(func() (err error) {
		stats.AcceptedBids, err = s.stats.CountBids(ctx, userID, entities.BidAccepted)
		return err
	})

	if err := g.Wait(); err != nil {
		return entities.Stats{}, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
