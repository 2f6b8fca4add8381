package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/config"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

type CommandType string

const (
	CommandCreateOrder CommandType = "order.create"
	CommandCancelOrder CommandType = "order.cancel"
	CommandSubmitBid   CommandType = "bid.submit"
	CommandAcceptBid   CommandType = "bid.accept"
)

// Command сообщение из топика команд. Набор обязательных полей зависит от Type.
type Command struct {
	Type    CommandType         `json:"type" validate:"required,oneof=order.create order.cancel bid.submit bid.accept"`
	UserID  string              `json:"user_id" validate:"required"`
	Order   *CreateOrderRequest `json:"order,omitempty" validate:"required_if=Type order.create"`
	Bid     *SubmitBidRequest   `json:"bid,omitempty" validate:"required_if=Type bid.submit"`
	OrderID string              `json:"order_id,omitempty" validate:"required_if=Type order.cancel"`
	BidID   string              `json:"bid_id,omitempty" validate:"required_if=Type bid.accept"`
}

// повторяем только ErrConflict, остальные виды ошибок окончательные
var conflictRetry = utils.RetryConfig{
	MaxAttempts:  5,
	InitialDelay: 50 * time.Millisecond,
	MaxDelay:     time.Second,
	Multiplier:   2,
}

var finalErrors = []error{
	entities.ErrValidation,
	entities.ErrNotFound,
	entities.ErrForbidden,
	entities.ErrInvalidState,
}

type kafkaHandler struct {
	dlq      *kafka.Writer
	reader   *kafka.Reader
	logger   *slog.Logger
	validate *validator.Validate

	orders   OrderService
	bids     BidService
	matching MatchingEngine
}

func NewKafkaHandler(
	logger *slog.Logger,
	cfg config.Kafka,
	orders OrderService,
	bids BidService,
	matching MatchingEngine,
) *kafkaHandler {
	return &kafkaHandler{
		logger: logger.With(slog.String("handler", "kafka")),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.CommandsTopic,
			MaxWait: cfg.ReaderMaxWait,
		}),
		dlq: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
		validate: utils.NewValidator(),
		orders:   orders,
		bids:     bids,
		matching: matching,
	}
}

func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				break
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		if err := h.handleMessage(ctx, m); err != nil {
			h.logger.Error("failed to handle command",
				slog.Any("error", err),
				slog.Int64("offset", m.Offset),
			)

			// в writer уже есть retry
			if err := h.WriteToDLQ(ctx, m); err != nil {
				h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
				continue
			}
			commandsDLQ.Inc()
		}

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

func (h *kafkaHandler) handleMessage(ctx context.Context, m kafka.Message) error {
	commandsInProgress.Inc()
	defer commandsInProgress.Dec()

	start := time.Now()
	defer func() {
		commandProcessingDuration.Observe(time.Since(start).Seconds())
	}()

	cmd, err := h.decodeCommand(m.Value)
	if err != nil {
		commandsFailed.WithLabelValues("unknown").Inc()
		return err
	}

	err = utils.Retry(conflictRetry, func() error {
		return h.execute(ctx, cmd)
	}, finalErrors...)
	if err != nil {
		commandsFailed.WithLabelValues(string(cmd.Type)).Inc()
		return fmt.Errorf("%s: %w", cmd.Type, err)
	}

	commandsProcessed.WithLabelValues(string(cmd.Type)).Inc()
	return nil
}

func (h *kafkaHandler) decodeCommand(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, fmt.Errorf("%w: failed to unmarshal command: %w", entities.ErrValidation, err)
	}
	if err := h.validate.Struct(cmd); err != nil {
		return Command{}, fmt.Errorf("%w: invalid command: %w", entities.ErrValidation, err)
	}
	return cmd, nil
}

func (h *kafkaHandler) execute(ctx context.Context, cmd Command) error {
	switch cmd.Type {
	case CommandCreateOrder:
		order, err := h.orders.CreateOrder(ctx, cmd.Order.ToEntity(cmd.UserID))
		if err != nil {
			return err
		}
		h.logger.Debug("order created from command", slog.String("order_id", order.ID))
		return nil

	case CommandCancelOrder:
		_, err := h.orders.CancelOrder(ctx, cmd.OrderID, cmd.UserID)
		return err

	case CommandSubmitBid:
		bid, err := h.bids.SubmitBid(ctx, cmd.Bid.ToEntity(cmd.UserID))
		if err != nil {
			return err
		}
		h.logger.Debug("bid submitted from command", slog.String("bid_id", bid.ID))
		return nil

	case CommandAcceptBid:
		_, err := h.matching.AcceptBid(ctx, cmd.BidID, cmd.UserID)
		return err
	}
	return fmt.Errorf("%w: unknown command type %q", entities.ErrValidation, cmd.Type)
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	m.Topic = fmt.Sprintf("%s-dlq", m.Topic)
	return h.dlq.WriteMessages(ctx, m)
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}
