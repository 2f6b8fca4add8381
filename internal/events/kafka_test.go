package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage(t *testing.T) {
	at := time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC)
	order := entities.Order{
		ID:           "order-1",
		RequesterID:  "client",
		Amount:       decimal.RequireFromString("1500.25"),
		Currency:     "USD",
		Location:     "Tashkent",
		DeliveryType: entities.DeliveryPickup,
		Status:       entities.OrderClosed,
	}
	accepted := entities.Bid{
		ID: "bid-2", OrderID: order.ID, ExchangerID: "e2",
		Rate: decimal.RequireFromString("12650.5"), TimeEstimate: 30, Status: entities.BidAccepted,
	}

	testCases := []struct {
		name  string
		event entities.Event
		want  string
	}{
		{
			name:  "order created",
			event: entities.Event{Type: entities.EventOrderCreated, OccurredAt: at, Order: order},
			want: `{
				"type": "order.created",
				"occurred_at": "2025-05-10T09:30:00Z",
				"order": {"id": "order-1", "requester_id": "client", "amount": "1500.25", "currency": "USD",
					"location": "Tashkent", "delivery_type": "pickup", "status": "closed"}
			}`,
		},
		{
			name: "bid accepted with losers",
			event: entities.Event{
				Type:       entities.EventBidAccepted,
				OccurredAt: at,
				Order:      order,
				Bid:        &accepted,
				RejectedBids: []entities.Bid{
					{ID: "bid-1", ExchangerID: "e1"},
					{ID: "bid-3", ExchangerID: "e3"},
					{ID: "bid-4", ExchangerID: "e1"},
				},
			},
			want: `{
				"type": "bid.accepted",
				"occurred_at": "2025-05-10T09:30:00Z",
				"order": {"id": "order-1", "requester_id": "client", "amount": "1500.25", "currency": "USD",
					"location": "Tashkent", "delivery_type": "pickup", "status": "closed"},
				"bid": {"id": "bid-2", "exchanger_id": "e2", "rate": "12650.5", "time_estimate": 30, "status": "accepted"},
				"rejected_bid_ids": ["bid-1", "bid-3", "bid-4"],
				"rejected_exchanger_ids": ["e1", "e3"]
			}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := events.Message(tc.event)
			require.NoError(t, err)

			assert.Equal(t, "order-1", string(msg.Key))
			require.Len(t, msg.Headers, 1)
			assert.Equal(t, string(tc.event.Type), string(msg.Headers[0].Value))
			assert.JSONEq(t, tc.want, string(msg.Value))

			var payload events.Payload
			require.NoError(t, json.Unmarshal(msg.Value, &payload))
			assert.Equal(t, string(tc.event.Type), payload.Type)
		})
	}
}
