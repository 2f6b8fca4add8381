package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

// IsTerminal сообщает, что статус ставки больше не может измениться
func (s BidStatus) IsTerminal() bool {
	return s == BidAccepted || s == BidRejected
}

// Bid предложение обменника по конкретной заявке
type Bid struct {
	ID           string
	OrderID      string
	ExchangerID  string
	Rate         decimal.Decimal
	TimeEstimate int
	Comment      string
	Status       BidStatus
	CreatedAt    time.Time
	// скрытые обменником завершённые ставки, см. ArchiveCompleted
	ArchivedAt *time.Time
}

type NewBid struct {
	OrderID      string          `validate:"required"`
	ExchangerID  string          `validate:"required"`
	Rate         decimal.Decimal `validate:"gt=0,decimal=20_8"`
	TimeEstimate int             `validate:"gt=0,lte=10080"`
	Comment      string          `validate:"max=1000"`
}

// AcceptResult результат принятия ставки
type AcceptResult struct {
	Order        Order
	AcceptedBid  Bid
	RejectedBids []Bid
}
