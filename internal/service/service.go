package service

import (
	"context"
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
)

type OrderRepo interface {
	CreateOrder(ctx context.Context, o entities.Order) error
	GetOrderByID(ctx context.Context, id string) (entities.Order, error)
	// LockOrder блокирует заявку до конца текущей транзакции
	LockOrder(ctx context.Context, id string) (entities.Order, error)
	ActiveOrders(ctx context.Context, excludeRequesterID string) ([]entities.Order, error)
	OrdersByRequester(ctx context.Context, requesterID string) ([]entities.Order, error)
	LatestOrders(ctx context.Context, limit int) ([]entities.Order, error)
	OrdersByIDs(ctx context.Context, ids []string) ([]entities.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status entities.OrderStatus) error
}

type BidRepo interface {
	CreateBid(ctx context.Context, b entities.Bid) error
	GetBidByID(ctx context.Context, id string) (entities.Bid, error)
	BidsByOrder(ctx context.Context, orderID string) ([]entities.Bid, error)
	BidsByExchanger(ctx context.Context, exchangerID string) ([]entities.Bid, error)
	UpdateBidStatus(ctx context.Context, id string, status entities.BidStatus) error
	RejectPendingBids(ctx context.Context, orderID, exceptBidID string) ([]entities.Bid, error)
	ArchiveCompletedBids(ctx context.Context, exchangerID string, at time.Time) (int, error)
}

type StatsRepo interface {
	CountOrders(ctx context.Context, requesterID string, status entities.OrderStatus) (int, error)
	CountBids(ctx context.Context, exchangerID string, status entities.BidStatus) (int, error)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	// Version и SetIfVersion не дают записать в кеш заявку, прочитанную до инвалидации
	Version() uint64
	SetIfVersion(key string, value []byte, version uint64) bool
	Delete(key string)
}

// EventPublisher доставляет события асинхронно, ошибки доставки не возвращаются
type EventPublisher interface {
	Publish(ctx context.Context, event entities.Event)
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, entities.Event) {}
