package repo

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/trm"
)

const (
	defaultMemLockTimeout = 2 * time.Second
	memLockPollInterval   = time.Millisecond
)

// memoryRepo хранилище в памяти для dev-режима и тестов. Транзакция держит
// эксклюзивную блокировку всего хранилища, при rollback восстанавливается снимок.
// Если блокировку не удалось взять за lockTimeout, BeginTx возвращает ErrConflict,
// как postgres при lock_timeout.
type memoryRepo struct {
	mu          sync.RWMutex
	lockTimeout time.Duration

	orders map[string]entities.Order
	bids   map[string]entities.Bid
	// порядок вставки, нужен для стабильной сортировки при равных created_at
	orderSeq []string
	bidSeq   []string
}

type MemoryOption func(*memoryRepo)

// WithLockTimeout задает, сколько BeginTx ждет блокировку хранилища
func WithLockTimeout(d time.Duration) MemoryOption {
	return func(r *memoryRepo) {
		if d > 0 {
			r.lockTimeout = d
		}
	}
}

func NewMemoryRepo(opts ...MemoryOption) *memoryRepo {
	r := &memoryRepo{
		lockTimeout: defaultMemLockTimeout,
		orders:      make(map[string]entities.Order),
		bids:        make(map[string]entities.Bid),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type memTxKey struct{}

type memTx struct {
	repo *memoryRepo
	done bool

	orders   map[string]entities.Order
	bids     map[string]entities.Bid
	orderSeq []string
	bidSeq   []string
}

func (tx *memTx) Commit() error {
	if tx.done {
		return sql.ErrTxDone
	}
	tx.done = true
	tx.repo.mu.Unlock()
	return nil
}

func (tx *memTx) Rollback() error {
	if tx.done {
		return sql.ErrTxDone
	}
	tx.done = true
	tx.repo.orders = tx.orders
	tx.repo.bids = tx.bids
	tx.repo.orderSeq = tx.orderSeq
	tx.repo.bidSeq = tx.bidSeq
	tx.repo.mu.Unlock()
	return nil
}

type nestedTx struct{}

func (nestedTx) Commit() error   { return nil }
func (nestedTx) Rollback() error { return nil }

func (r *memoryRepo) BeginTx(ctx context.Context) (context.Context, trm.Transaction, error) {
	if r.inTx(ctx) {
		return ctx, nestedTx{}, nil
	}
	if err := r.acquire(ctx); err != nil {
		return nil, nil, err
	}

	tx := &memTx{
		repo:     r,
		orders:   maps.Clone(r.orders),
		bids:     maps.Clone(r.bids),
		orderSeq: slices.Clone(r.orderSeq),
		bidSeq:   slices.Clone(r.bidSeq),
	}
	return context.WithValue(ctx, memTxKey{}, tx), tx, nil
}

func (r *memoryRepo) acquire(ctx context.Context) error {
	deadline := time.NewTimer(r.lockTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(memLockPollInterval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.mu.TryLock() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("%w: store is locked for %s", entities.ErrConflict, r.lockTimeout)
		case <-ticker.C:
		}
	}
}

func (r *memoryRepo) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	return trm.Run(ctx, r, callback)
}

func (r *memoryRepo) inTx(ctx context.Context) bool {
	tx, ok := ctx.Value(memTxKey{}).(*memTx)
	return ok && tx.repo == r && !tx.done
}

// rlock/lock ничего не делают внутри транзакции: блокировка уже взята в BeginTx
func (r *memoryRepo) rlock(ctx context.Context) func() {
	if r.inTx(ctx) {
		return func() {}
	}
	r.mu.RLock()
	return r.mu.RUnlock
}

func (r *memoryRepo) lock(ctx context.Context) func() {
	if r.inTx(ctx) {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

func (r *memoryRepo) CreateOrder(ctx context.Context, o entities.Order) error {
	defer r.lock(ctx)()

	r.orders[o.ID] = o
	r.orderSeq = append(r.orderSeq, o.ID)
	return nil
}

func (r *memoryRepo) GetOrderByID(ctx context.Context, id string) (entities.Order, error) {
	defer r.rlock(ctx)()

	o, ok := r.orders[id]
	if !ok {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	return o, nil
}

func (r *memoryRepo) LockOrder(ctx context.Context, id string) (entities.Order, error) {
	return r.GetOrderByID(ctx, id)
}

func (r *memoryRepo) OrdersByIDs(ctx context.Context, ids []string) ([]entities.Order, error) {
	defer r.rlock(ctx)()

	orders := make([]entities.Order, 0, len(ids))
	for _, id := range ids {
		if o, ok := r.orders[id]; ok {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *memoryRepo) ActiveOrders(ctx context.Context, excludeRequesterID string) ([]entities.Order, error) {
	return r.filterOrders(ctx, func(o entities.Order) bool {
		return o.IsActive() && (excludeRequesterID == "" || o.RequesterID != excludeRequesterID)
	}), nil
}

func (r *memoryRepo) OrdersByRequester(ctx context.Context, requesterID string) ([]entities.Order, error) {
	return r.filterOrders(ctx, func(o entities.Order) bool {
		return o.RequesterID == requesterID
	}), nil
}

func (r *memoryRepo) LatestOrders(ctx context.Context, limit int) ([]entities.Order, error) {
	orders := r.filterOrders(ctx, func(entities.Order) bool { return true })
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

// filterOrders возвращает заявки от новых к старым
func (r *memoryRepo) filterOrders(ctx context.Context, keep func(entities.Order) bool) []entities.Order {
	defer r.rlock(ctx)()

	result := make([]entities.Order, 0)
	for i := len(r.orderSeq) - 1; i >= 0; i-- {
		if o := r.orders[r.orderSeq[i]]; keep(o) {
			result = append(result, o)
		}
	}
	slices.SortStableFunc(result, func(a, b entities.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return result
}

func (r *memoryRepo) UpdateOrderStatus(ctx context.Context, id string, status entities.OrderStatus) error {
	defer r.lock(ctx)()

	o, ok := r.orders[id]
	if !ok {
		return entities.ErrOrderNotFound
	}
	o.Status = status
	r.orders[id] = o
	return nil
}

func (r *memoryRepo) CountOrders(ctx context.Context, requesterID string, status entities.OrderStatus) (int, error) {
	defer r.rlock(ctx)()

	count := 0
	for _, o := range r.orders {
		if o.RequesterID == requesterID && o.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *memoryRepo) CreateBid(ctx context.Context, b entities.Bid) error {
	defer r.lock(ctx)()

	if _, ok := r.orders[b.OrderID]; !ok {
		return entities.ErrOrderNotFound
	}
	r.bids[b.ID] = b
	r.bidSeq = append(r.bidSeq, b.ID)
	return nil
}

func (r *memoryRepo) GetBidByID(ctx context.Context, id string) (entities.Bid, error) {
	defer r.rlock(ctx)()

	b, ok := r.bids[id]
	if !ok {
		return entities.Bid{}, entities.ErrBidNotFound
	}
	return b, nil
}

func (r *memoryRepo) BidsByOrder(ctx context.Context, orderID string) ([]entities.Bid, error) {
	return r.filterBids(ctx, func(b entities.Bid) bool {
		return b.OrderID == orderID
	}), nil
}

func (r *memoryRepo) BidsByExchanger(ctx context.Context, exchangerID string) ([]entities.Bid, error) {
	bids := r.filterBids(ctx, func(b entities.Bid) bool {
		return b.ExchangerID == exchangerID && b.ArchivedAt == nil
	})
	slices.Reverse(bids)
	return bids, nil
}

// filterBids возвращает ставки в порядке подачи
func (r *memoryRepo) filterBids(ctx context.Context, keep func(entities.Bid) bool) []entities.Bid {
	defer r.rlock(ctx)()

	result := make([]entities.Bid, 0)
	for _, id := range r.bidSeq {
		if b := r.bids[id]; keep(b) {
			result = append(result, b)
		}
	}
	slices.SortStableFunc(result, func(a, b entities.Bid) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return result
}

func (r *memoryRepo) UpdateBidStatus(ctx context.Context, id string, status entities.BidStatus) error {
	defer r.lock(ctx)()

	b, ok := r.bids[id]
	if !ok {
		return entities.ErrBidNotFound
	}
	b.Status = status
	r.bids[id] = b
	return nil
}

func (r *memoryRepo) RejectPendingBids(ctx context.Context, orderID, exceptBidID string) ([]entities.Bid, error) {
	defer r.lock(ctx)()

	rejected := make([]entities.Bid, 0)
	for _, id := range r.bidSeq {
		b := r.bids[id]
		if b.OrderID != orderID || b.Status != entities.BidPending || b.ID == exceptBidID {
			continue
		}
		b.Status = entities.BidRejected
		r.bids[id] = b
		rejected = append(rejected, b)
	}
	return rejected, nil
}

func (r *memoryRepo) ArchiveCompletedBids(ctx context.Context, exchangerID string, at time.Time) (int, error) {
	defer r.lock(ctx)()

	archived := 0
	for id, b := range r.bids {
		if b.ExchangerID != exchangerID || !b.Status.IsTerminal() || b.ArchivedAt != nil {
			continue
		}
		archivedAt := at
		b.ArchivedAt = &archivedAt
		r.bids[id] = b
		archived++
	}
	return archived, nil
}

func (r *memoryRepo) CountBids(ctx context.Context, exchangerID string, status entities.BidStatus) (int, error) {
	defer r.rlock(ctx)()

	count := 0
	for _, b := range r.bids {
		if b.ExchangerID == exchangerID && b.Status == status {
			count++
		}
	}
	return count, nil
}
