package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/config"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
	"github.com/samber/lo"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const headerEventType = "event-type"

type Order struct {
	ID           string          `json:"id"`
	RequesterID  string          `json:"requester_id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Location     string          `json:"location"`
	DeliveryType string          `json:"delivery_type"`
	Status       string          `json:"status"`
}

type Bid struct {
	ID           string          `json:"id"`
	ExchangerID  string          `json:"exchanger_id"`
	Rate         decimal.Decimal `json:"rate"`
	TimeEstimate int             `json:"time_estimate"`
	Status       string          `json:"status"`
}

// Payload сообщение в топике событий. Потребитель рассылает по нему уведомления:
// обменникам о новой заявке, клиенту о ставке, проигравшим о закрытии.
type Payload struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Order      Order     `json:"order"`
	Bid        *Bid      `json:"bid,omitempty"`

	RejectedBidIDs       []string `json:"rejected_bid_ids,omitempty"`
	RejectedExchangerIDs []string `json:"rejected_exchanger_ids,omitempty"`
}

func NewPayload(e entities.Event) Payload {
	p := Payload{
		Type:       string(e.Type),
		OccurredAt: e.OccurredAt,
		Order: Order{
			ID:           e.Order.ID,
			RequesterID:  e.Order.RequesterID,
			Amount:       e.Order.Amount,
			Currency:     e.Order.Currency,
			Location:     e.Order.Location,
			DeliveryType: string(e.Order.DeliveryType),
			Status:       string(e.Order.Status),
		},
	}

	if e.Bid != nil {
		p.Bid = &Bid{
			ID:           e.Bid.ID,
			ExchangerID:  e.Bid.ExchangerID,
			Rate:         e.Bid.Rate,
			TimeEstimate: e.Bid.TimeEstimate,
			Status:       string(e.Bid.Status),
		}
	}

	if len(e.RejectedBids) > 0 {
		p.RejectedBidIDs = lo.Map(e.RejectedBids, func(b entities.Bid, _ int) string {
			return b.ID
		})
		p.RejectedExchangerIDs = lo.Uniq(lo.Map(e.RejectedBids, func(b entities.Bid, _ int) string {
			return b.ExchangerID
		}))
	}
	return p
}

// Message ключ сообщения id заявки, поэтому события одной заявки идут в одну партицию по порядку
func Message(e entities.Event) (kafka.Message, error) {
	value, err := json.Marshal(NewPayload(e))
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(e.Order.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(e.Type)},
		},
	}, nil
}

type kafkaPublisher struct {
	logger *slog.Logger
	writer *kafka.Writer
}

func NewKafkaPublisher(logger *slog.Logger, cfg config.Kafka) *kafkaPublisher {
	logger = logger.With(slog.String("publisher", "kafka"))

	return &kafkaPublisher{
		logger: logger,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.EventsTopic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: cfg.BatchTimeout,
			RequiredAcks: kafka.RequireOne,
			Async:        true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					logger.Error("failed to deliver events", slog.Int("count", len(messages)), slog.Any("error", err))
				}
			},
		},
	}
}

// Publish не блокирует вызывающего, ошибки доставки только логируются
func (p *kafkaPublisher) Publish(ctx context.Context, e entities.Event) {
	msg, err := Message(e)
	if err != nil {
		p.logger.Error("failed to encode event", slog.String("type", string(e.Type)), slog.Any("error", err))
		return
	}

	if err := p.writer.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		p.logger.Error("failed to publish event",
			slog.String("type", string(e.Type)),
			slog.String("order_id", e.Order.ID),
			slog.Any("error", err),
		)
	}
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}
