package handler

import (
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Order заявка клиента на обмен
type Order struct {
	ID           string          `json:"id"`
	RequesterID  string          `json:"requester_id"`
	Amount       decimal.Decimal `json:"amount" swaggertype:"string" example:"1000.50"`
	Currency     string          `json:"currency" example:"USD"`
	Location     string          `json:"location"`
	DeliveryType string          `json:"delivery_type" enums:"delivery,pickup"`
	Comment      string          `json:"comment,omitempty"`
	Status       string          `json:"status" enums:"active,closed"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Bid предложение обменника
type Bid struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"order_id"`
	ExchangerID  string          `json:"exchanger_id"`
	Rate         decimal.Decimal `json:"rate" swaggertype:"string" example:"12650.5"`
	TimeEstimate int             `json:"time_estimate"`
	Comment      string          `json:"comment,omitempty"`
	Status       string          `json:"status" enums:"pending,accepted,rejected"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateOrderRequest тело запроса на создание заявки
type CreateOrderRequest struct {
	Amount       decimal.Decimal `json:"amount" swaggertype:"string" example:"1000"`
	Currency     string          `json:"currency" example:"USD"`
	Location     string          `json:"location" example:"Tashkent"`
	DeliveryType string          `json:"delivery_type" enums:"delivery,pickup"`
	Comment      string          `json:"comment,omitempty"`
}

// SubmitBidRequest тело запроса на подачу ставки
type SubmitBidRequest struct {
	OrderID      string          `json:"order_id"`
	Rate         decimal.Decimal `json:"rate" swaggertype:"string" example:"12650.5"`
	TimeEstimate int             `json:"time_estimate" example:"30"`
	Comment      string          `json:"comment,omitempty"`
}

// AcceptBidResponse итог принятия ставки
type AcceptBidResponse struct {
	Order        Order `json:"order"`
	AcceptedBid  Bid   `json:"accepted_bid"`
	RejectedBids []Bid `json:"rejected_bids"`
}

type MyOrders struct {
	Active []Order `json:"active"`
	Closed []Order `json:"closed"`
}

// OrderSummary заявка, на которую подана ставка
type OrderSummary struct {
	Amount       decimal.Decimal `json:"amount" swaggertype:"string" example:"1000.50"`
	Currency     string          `json:"currency" example:"USD"`
	Location     string          `json:"location"`
	DeliveryType string          `json:"delivery_type" enums:"delivery,pickup"`
	Status       string          `json:"status" enums:"active,closed"`
}

// MyBid ставка обменника вместе с краткой информацией о заявке
type MyBid struct {
	Bid
	Order OrderSummary `json:"order"`
}

type MyBids struct {
	Pending   []MyBid `json:"pending"`
	Completed []MyBid `json:"completed"`
}

type Stats struct {
	ActiveOrders    int `json:"active_orders"`
	CompletedOrders int `json:"completed_orders"`
	PendingBids     int `json:"pending_bids"`
	AcceptedBids    int `json:"accepted_bids"`
}

// ArchiveResponse число скрытых завершённых ставок
type ArchiveResponse struct {
	Removed int `json:"removed"`
}

func OrderEntityToJSON(o entities.Order) Order {
	return Order{
		ID:           o.ID,
		RequesterID:  o.RequesterID,
		Amount:       o.Amount,
		Currency:     o.Currency,
		Location:     o.Location,
		DeliveryType: string(o.DeliveryType),
		Comment:      o.Comment,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
	}
}

func OrdersEntityToJSON(orders []entities.Order) []Order {
	return lo.Map(orders, func(o entities.Order, _ int) Order {
		return OrderEntityToJSON(o)
	})
}

func BidEntityToJSON(b entities.Bid) Bid {
	return Bid{
		ID:           b.ID,
		OrderID:      b.OrderID,
		ExchangerID:  b.ExchangerID,
		Rate:         b.Rate,
		TimeEstimate: b.TimeEstimate,
		Comment:      b.Comment,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
	}
}

func BidsEntityToJSON(bids []entities.Bid) []Bid {
	return lo.Map(bids, func(b entities.Bid, _ int) Bid {
		return BidEntityToJSON(b)
	})
}

func (r CreateOrderRequest) ToEntity(requesterID string) entities.NewOrder {
	return entities.NewOrder{
		RequesterID:  requesterID,
		Amount:       r.Amount,
		Currency:     r.Currency,
		Location:     r.Location,
		DeliveryType: entities.DeliveryType(r.DeliveryType),
		Comment:      r.Comment,
	}
}

func (r SubmitBidRequest) ToEntity(exchangerID string) entities.NewBid {
	return entities.NewBid{
		OrderID:      r.OrderID,
		ExchangerID:  exchangerID,
		Rate:         r.Rate,
		TimeEstimate: r.TimeEstimate,
		Comment:      r.Comment,
	}
}

func AcceptResultToJSON(res entities.AcceptResult) AcceptBidResponse {
	return AcceptBidResponse{
		Order:        OrderEntityToJSON(res.Order),
		AcceptedBid:  BidEntityToJSON(res.AcceptedBid),
		RejectedBids: BidsEntityToJSON(res.RejectedBids),
	}
}

func MyOrdersToJSON(v entities.MyOrders) MyOrders {
	return MyOrders{
		Active: OrdersEntityToJSON(v.Active),
		Closed: OrdersEntityToJSON(v.Closed),
	}
}

func MyBidsToJSON(v entities.MyBids) MyBids {
	return MyBids{
		Pending:   lo.Map(v.Pending, myBidToJSON),
		Completed: lo.Map(v.Completed, myBidToJSON),
	}
}

func myBidToJSON(b entities.BidWithOrder, _ int) MyBid {
	return MyBid{
		Bid: BidEntityToJSON(b.Bid),
		Order: OrderSummary{
			Amount:       b.Order.Amount,
			Currency:     b.Order.Currency,
			Location:     b.Order.Location,
			DeliveryType: string(b.Order.DeliveryType),
			Status:       string(b.Order.Status),
		},
	}
}

func StatsToJSON(s entities.Stats) Stats {
	return Stats{
		ActiveOrders:    s.ActiveOrders,
		CompletedOrders: s.CompletedOrders,
		PendingBids:     s.PendingBids,
		AcceptedBids:    s.AcceptedBids,
	}
}
