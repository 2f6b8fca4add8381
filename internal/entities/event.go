package entities

import "time"

type EventType string

const (
	EventOrderCreated   EventType = "order.created"
	EventOrderCancelled EventType = "order.cancelled"
	EventBidSubmitted   EventType = "bid.submitted"
	EventBidAccepted    EventType = "bid.accepted"
)

// Event доменное событие, публикуется после коммита транзакции
type Event struct {
	Type       EventType
	OccurredAt time.Time
	Order      Order
	// Bid заполнен для bid.submitted и bid.accepted
	Bid *Bid
	// RejectedBids ставки, отклонённые побочным эффектом принятия или отмены
	RejectedBids []Bid
}
