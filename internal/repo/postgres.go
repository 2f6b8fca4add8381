package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// коды SQLSTATE, см. https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeLockNotAvailable     = "55P03"
	codeDeadlockDetected     = "40P01"
	codeSerializationFailure = "40001"
	codeInvalidTextRepr      = "22P02"
	codeCheckViolation       = "23514"
	codeNumericOutOfRange    = "22003"
)

type postgresRepo struct {
	db          *sqlx.DB
	qb          sq.StatementBuilderType
	lockTimeout time.Duration
}

func NewPostgresRepo(db *sqlx.DB, lockTimeout time.Duration) *postgresRepo {
	return &postgresRepo{
		db:          db,
		qb:          sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		lockTimeout: lockTimeout,
	}
}

func (r *postgresRepo) CreateOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns(orderColumns...).
		Values(
			o.ID, o.RequesterID, o.Amount, o.Currency, o.Location,
			string(o.DeliveryType), nullString(o.Comment), string(o.Status), o.CreatedAt,
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order: %w", mapError(err, nil))
	}
	return nil
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id string) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		MustSql()

	return r.getOrder(ctx, query, args...)
}

// LockOrder берёт строку заявки FOR UPDATE. Вызывать только внутри транзакции:
// конкурирующая транзакция ждёт не дольше lockTimeout и получает ErrConflict.
func (r *postgresRepo) LockOrder(ctx context.Context, id string) (entities.Order, error) {
	if trm.ExtractTx(ctx) == nil {
		return entities.Order{}, errors.New("lock order: no transaction in context")
	}

	if r.lockTimeout > 0 {
		// SET не поддерживает плейсхолдеры, значение целое число миллисекунд
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = %d", r.lockTimeout.Milliseconds())
		if _, err := r.execContext(ctx, stmt); err != nil {
			return entities.Order{}, fmt.Errorf("failed to set lock timeout: %w", err)
		}
	}

	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		MustSql()

	return r.getOrder(ctx, query, args...)
}

func (r *postgresRepo) getOrder(ctx context.Context, query string, args ...any) (entities.Order, error) {
	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", mapError(err, entities.ErrOrderNotFound))
	}
	return OrderToEntity(order), nil
}

func (r *postgresRepo) ActiveOrders(ctx context.Context, excludeRequesterID string) ([]entities.Order, error) {
	q := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"status": string(entities.OrderActive)}).
		OrderBy("created_at DESC", "id DESC")

	if excludeRequesterID != "" {
		q = q.Where(sq.NotEq{"requester_id": excludeRequesterID})
	}

	return r.selectOrders(ctx, q)
}

func (r *postgresRepo) OrdersByRequester(ctx context.Context, requesterID string) ([]entities.Order, error) {
	q := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"requester_id": requesterID}).
		OrderBy("created_at DESC", "id DESC")

	return r.selectOrders(ctx, q)
}

// OrdersByIDs возвращает найденные заявки, отсутствующие id пропускаются
func (r *postgresRepo) OrdersByIDs(ctx context.Context, ids []string) ([]entities.Order, error) {
	if len(ids) == 0 {
		return []entities.Order{}, nil
	}
	q := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": ids})

	return r.selectOrders(ctx, q)
}

func (r *postgresRepo) LatestOrders(ctx context.Context, limit int) ([]entities.Order, error) {
	q := r.qb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	return r.selectOrders(ctx, q)
}

func (r *postgresRepo) selectOrders(ctx context.Context, q sq.SelectBuilder) ([]entities.Order, error) {
	query, args := q.MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", mapError(err, nil))
	}
	return OrdersToEntities(orders), nil
}

func (r *postgresRepo) UpdateOrderStatus(ctx context.Context, id string, status entities.OrderStatus) error {
	query, args := r.qb.Update("orders").
		Set("status", string(status)).
		Where(sq.Eq{"id": id}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", mapError(err, entities.ErrOrderNotFound))
	}
	return requireAffected(res, entities.ErrOrderNotFound)
}

func (r *postgresRepo) CountOrders(ctx context.Context, requesterID string, status entities.OrderStatus) (int, error) {
	query, args := r.qb.Select("COUNT(*)").
		From("orders").
		Where(sq.Eq{"requester_id": requesterID, "status": string(status)}).
		MustSql()

	var count int
	if err := r.getContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", mapError(err, nil))
	}
	return count, nil
}

func (r *postgresRepo) CreateBid(ctx context.Context, b entities.Bid) error {
	query, args := r.qb.Insert("bids").
		Columns("id", "order_id", "exchanger_id", "rate", "time_estimate", "comment", "status", "created_at").
		Values(
			b.ID, b.OrderID, b.ExchangerID, b.Rate, b.TimeEstimate,
			nullString(b.Comment), string(b.Status), b.CreatedAt,
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert bid: %w", mapError(err, nil))
	}
	return nil
}

func (r *postgresRepo) GetBidByID(ctx context.Context, id string) (entities.Bid, error) {
	query, args := r.qb.Select(bidColumns...).
		From("bids").
		Where(sq.Eq{"id": id}).
		MustSql()

	var bid Bid
	err := r.getContext(ctx, &bid, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Bid{}, entities.ErrBidNotFound
	}
	if err != nil {
		return entities.Bid{}, fmt.Errorf("failed to get bid: %w", mapError(err, entities.ErrBidNotFound))
	}
	return BidToEntity(bid), nil
}

// BidsByOrder возвращает все ставки заявки в порядке подачи, включая архивные
func (r *postgresRepo) BidsByOrder(ctx context.Context, orderID string) ([]entities.Bid, error) {
	q := r.qb.Select(bidColumns...).
		From("bids").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("created_at ASC", "id ASC")

	return r.selectBids(ctx, q)
}

func (r *postgresRepo) BidsByExchanger(ctx context.Context, exchangerID string) ([]entities.Bid, error) {
	q := r.qb.Select(bidColumns...).
		From("bids").
		Where(sq.Eq{"exchanger_id": exchangerID, "archived_at": nil}).
		OrderBy("created_at DESC", "id DESC")

	return r.selectBids(ctx, q)
}

func (r *postgresRepo) selectBids(ctx context.Context, q sq.SelectBuilder) ([]entities.Bid, error) {
	query, args := q.MustSql()

	var bids []Bid
	if err := r.selectContext(ctx, &bids, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select bids: %w", mapError(err, nil))
	}
	return BidsToEntities(bids), nil
}

func (r *postgresRepo) UpdateBidStatus(ctx context.Context, id string, status entities.BidStatus) error {
	query, args := r.qb.Update("bids").
		Set("status", string(status)).
		Where(sq.Eq{"id": id}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update bid status: %w", mapError(err, entities.ErrBidNotFound))
	}
	return requireAffected(res, entities.ErrBidNotFound)
}

// RejectPendingBids отклоняет все ожидающие ставки заявки, кроме exceptBidID
// (пустая строка - без исключений) и возвращает отклонённые.
func (r *postgresRepo) RejectPendingBids(ctx context.Context, orderID, exceptBidID string) ([]entities.Bid, error) {
	q := r.qb.Update("bids").
		Set("status", string(entities.BidRejected)).
		Where(sq.Eq{"order_id": orderID, "status": string(entities.BidPending)})

	if exceptBidID != "" {
		q = q.Where(sq.NotEq{"id": exceptBidID})
	}

	query, args := q.Suffix("RETURNING " + strings.Join(bidColumns, ", ")).MustSql()

	var bids []Bid
	if err := r.selectContext(ctx, &bids, query, args...); err != nil {
		return nil, fmt.Errorf("failed to reject pending bids: %w", mapError(err, nil))
	}

	result := BidsToEntities(bids)
	sortBidsBySubmission(result)
	return result, nil
}

func (r *postgresRepo) ArchiveCompletedBids(ctx context.Context, exchangerID string, at time.Time) (int, error) {
	query, args := r.qb.Update("bids").
		Set("archived_at", at).
		Where(sq.Eq{
			"exchanger_id": exchangerID,
			"status":       []string{string(entities.BidAccepted), string(entities.BidRejected)},
			"archived_at":  nil,
		}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to archive bids: %w", mapError(err, nil))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return int(n), nil
}

func (r *postgresRepo) CountBids(ctx context.Context, exchangerID string, status entities.BidStatus) (int, error) {
	query, args := r.qb.Select("COUNT(*)").
		From("bids").
		Where(sq.Eq{"exchanger_id": exchangerID, "status": string(status)}).
		MustSql()

	var count int
	if err := r.getContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count bids: %w", mapError(err, nil))
	}
	return count, nil
}

// mapError переводит ошибки блокировок в ErrConflict, нарушения CHECK и
// переполнение NUMERIC в ErrValidation. Некорректный uuid
// в условии означает, что такой записи быть не может, это notFound.
func mapError(err error, notFound error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case codeLockNotAvailable, codeDeadlockDetected, codeSerializationFailure:
		return fmt.Errorf("%w: %s", entities.ErrConflict, pqErr.Message)
	case codeInvalidTextRepr:
		if notFound != nil {
			return notFound
		}
	case codeCheckViolation, codeNumericOutOfRange:
		return fmt.Errorf("%w: %s", entities.ErrValidation, pqErr.Message)
	}
	return err
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func (r *postgresRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r *postgresRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *postgresRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
