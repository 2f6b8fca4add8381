package trm

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Transaction interface {
	Commit() error
	Rollback() error
}

type txKey struct{}

func withTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// ExtractTx возвращает транзакцию из контекста, либо nil
func ExtractTx(ctx context.Context) *sqlx.Tx {
	tx, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	if !ok {
		return nil
	}
	return tx
}

type Beginner interface {
	BeginTx(ctx context.Context) (context.Context, Transaction, error)
}

type Manager interface {
	Beginner
	Do(ctx context.Context, callback func(ctx context.Context) error) (err error)
}

// Run выполняет callback в транзакции: commit при успехе, rollback при любой ошибке.
func Run(ctx context.Context, b Beginner, callback func(ctx context.Context) error) error {
	ctx, tx, err := b.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := callback(ctx); err != nil {
		return err
	}
	return tx.Commit()
}

type txManager struct {
	db *sqlx.DB
}

func NewManager(db *sqlx.DB) Manager {
	return &txManager{
		db: db,
	}
}

// BeginTx переиспользует транзакцию из контекста, если она уже открыта
func (t *txManager) BeginTx(ctx context.Context) (context.Context, Transaction, error) {
	if tx := ExtractTx(ctx); tx != nil {
		return ctx, nopTx{}, nil
	}
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	return withTx(ctx, tx), tx, nil
}

func (t *txManager) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	return Run(ctx, t, callback)
}

// nopTx используется для вложенных вызовов: фиксирует внешняя транзакция
type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }
