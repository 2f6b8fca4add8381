package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/handler"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/middleware"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

var (
	brokers  = flag.String("brokers", "localhost:9092", "kafka broker")
	topic    = flag.String("topic", "ledger-commands", "commands topic")
	apiURL   = flag.String("api", "http://localhost:8080", "ledger http address")
	interval = flag.Duration("interval", 2*time.Second, "delay between rounds")
)

var (
	clients    = []string{"client-1", "client-2", "client-3"}
	exchangers = []string{"exchanger-1", "exchanger-2", "exchanger-3", "exchanger-4"}
	currencies = []string{"USD", "EUR", "RUB", "KZT"}
	locations  = []string{"Tashkent", "Almaty", "Bishkek"}
)

func pick(values []string) string {
	return values[rand.Intn(len(values))]
}

func randomOrder() *handler.CreateOrderRequest {
	delivery := "pickup"
	if rand.Intn(2) == 0 {
		delivery = "delivery"
	}
	return &handler.CreateOrderRequest{
		Amount:       decimal.NewFromInt(int64(rand.Intn(5000) + 100)),
		Currency:     pick(currencies),
		Location:     pick(locations),
		DeliveryType: delivery,
	}
}

func randomBid(orderID string) *handler.SubmitBidRequest {
	return &handler.SubmitBidRequest{
		OrderID:      orderID,
		Rate:         decimal.NewFromFloat(12000 + rand.Float64()*1000).Round(2),
		TimeEstimate: 15 + rand.Intn(120),
	}
}

// getJSON читает ленту от имени пользователя, ids заявок и ставок знает только сервер
func getJSON(ctx context.Context, path, userID string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, *apiURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set(middleware.UserIDHeader, userID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func send(ctx context.Context, w *kafka.Writer, cmd handler.Command) {
	data, err := json.Marshal(cmd)
	if err != nil {
		log.Println("marshal:", err)
		return
	}
	if err := w.WriteMessages(ctx, kafka.Message{Value: data}); err != nil {
		log.Println("write:", err)
		return
	}
	log.Println("command sent", cmd.Type, cmd.UserID)
}

func round(ctx context.Context, w *kafka.Writer) {
	send(ctx, w, handler.Command{
		Type:   handler.CommandCreateOrder,
		UserID: pick(clients),
		Order:  randomOrder(),
	})

	exchanger := pick(exchangers)
	var active []handler.Order
	if err := getJSON(ctx, "/api/orders/active", exchanger, &active); err != nil {
		log.Println(err)
		return
	}
	if len(active) == 0 {
		return
	}
	order := active[rand.Intn(len(active))]
	send(ctx, w, handler.Command{
		Type:   handler.CommandSubmitBid,
		UserID: exchanger,
		Bid:    randomBid(order.ID),
	})

	// иногда клиент принимает первую ставку
	if rand.Intn(3) != 0 {
		return
	}
	var bids []handler.Bid
	if err := getJSON(ctx, "/api/orders/"+order.ID+"/bids", order.RequesterID, &bids); err != nil {
		log.Println(err)
		return
	}
	if len(bids) == 0 {
		return
	}
	send(ctx, w, handler.Command{
		Type:   handler.CommandAcceptBid,
		UserID: order.RequesterID,
		BidID:  bids[0].ID,
	})
}

func main() {
	flag.Parse()

	writer := &kafka.Writer{
		Addr:  kafka.TCP(*brokers),
		Topic: *topic,
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			round(ctx, writer)
		case <-ctx.Done():
			return
		}
	}
}
