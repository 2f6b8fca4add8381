package repo

import (
	"database/sql"
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
	"github.com/shopspring/decimal"
)

var orderColumns = []string{
	"id", "requester_id", "amount", "currency", "location",
	"delivery_type", "comment", "status", "created_at",
}

var bidColumns = []string{
	"id", "order_id", "exchanger_id", "rate", "time_estimate",
	"comment", "status", "created_at", "archived_at",
}

type Order struct {
	ID           string          `db:"id"`
	RequesterID  string          `db:"requester_id"`
	Amount       decimal.Decimal `db:"amount"`
	Currency     string          `db:"currency"`
	Location     string          `db:"location"`
	DeliveryType string          `db:"delivery_type"`
	Comment      sql.NullString  `db:"comment"`
	Status       string          `db:"status"`
	CreatedAt    time.Time       `db:"created_at"`
}

type Bid struct {
	ID           string          `db:"id"`
	OrderID      string          `db:"order_id"`
	ExchangerID  string          `db:"exchanger_id"`
	Rate         decimal.Decimal `db:"rate"`
	TimeEstimate int             `db:"time_estimate"`
	Comment      sql.NullString  `db:"comment"`
	Status       string          `db:"status"`
	CreatedAt    time.Time       `db:"created_at"`
	ArchivedAt   sql.NullTime    `db:"archived_at"`
}

func OrderToEntity(o Order) entities.Order {
	return entities.Order{
		ID:           o.ID,
		RequesterID:  o.RequesterID,
		Amount:       o.Amount,
		Currency:     o.Currency,
		Location:     o.Location,
		DeliveryType: entities.DeliveryType(o.DeliveryType),
		Comment:      o.Comment.String,
		Status:       entities.OrderStatus(o.Status),
		CreatedAt:    o.CreatedAt,
	}
}

func OrdersToEntities(orders []Order) []entities.Order {
	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o))
	}
	return result
}

func BidToEntity(b Bid) entities.Bid {
	bid := entities.Bid{
		ID:           b.ID,
		OrderID:      b.OrderID,
		ExchangerID:  b.ExchangerID,
		Rate:         b.Rate,
		TimeEstimate: b.TimeEstimate,
		Comment:      b.Comment.String,
		Status:       entities.BidStatus(b.Status),
		CreatedAt:    b.CreatedAt,
	}
	if b.ArchivedAt.Valid {
		at := b.ArchivedAt.Time
		bid.ArchivedAt = &at
	}
	return bid
}

func BidsToEntities(bids []Bid) []entities.Bid {
	result := make([]entities.Bid, 0, len(bids))
	for _, b := range bids {
		result = append(result, BidToEntity(b))
	}
	return result
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
