package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/middleware"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type OrderService interface {
	CreateOrder(ctx context.Context, in entities.NewOrder) (entities.Order, error)
	GetOrder(ctx context.Context, orderID string) (entities.Order, error)
	OrdersByRequester(ctx context.Context, requesterID string) ([]entities.Order, error)
	CancelOrder(ctx context.Context, orderID, requesterID string) (entities.Order, error)
}

type BidService interface {
	SubmitBid(ctx context.Context, in entities.NewBid) (entities.Bid, error)
	BidsForOrder(ctx context.Context, orderID string) ([]entities.Bid, error)
	BidsBySubmitter(ctx context.Context, exchangerID string) ([]entities.Bid, error)
	ArchiveCompleted(ctx context.Context, exchangerID string) (int, error)
}

type MatchingEngine interface {
	AcceptBid(ctx context.Context, bidID, requesterID string) (entities.AcceptResult, error)
}

type ViewService interface {
	ActiveOrdersFor(ctx context.Context, exchangerID string) ([]entities.Order, error)
	MyOrdersFor(ctx context.Context, clientID string) (entities.MyOrders, error)
	MyBidsFor(ctx context.Context, exchangerID string) (entities.MyBids, error)
	StatsFor(ctx context.Context, userID string) (entities.Stats, error)
}

// retryAfter подсказка клиенту при ErrConflict, в секундах
const retryAfter = 1

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate

	orders   OrderService
	bids     BidService
	matching MatchingEngine
	views    ViewService
}

func NewHTTPHandler(
	logger *slog.Logger,
	orders OrderService,
	bids BidService,
	matching MatchingEngine,
	views ViewService,
) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: utils.NewValidator(),
		orders:   orders,
		bids:     bids,
		matching: matching,
		views:    views,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Identity)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.CreateOrder)
			r.Get("/active", h.ActiveOrders)
			r.Get("/my", h.MyOrders)
			r.Get("/{order_id}", h.GetOrder)
			r.Post("/{order_id}/cancel", h.CancelOrder)
			r.Get("/{order_id}/bids", h.BidsForOrder)
		})

		r.Route("/bids", func(r chi.Router) {
			r.Post("/", h.SubmitBid)
			r.Get("/my", h.MyBids)
			r.Delete("/my/completed", h.ArchiveCompleted)
			r.Post("/{bid_id}/accept", h.AcceptBid)
		})

		r.Route("/views", func(r chi.Router) {
			r.Get("/my-orders", h.MyOrdersView)
			r.Get("/my-bids", h.MyBidsView)
			r.Get("/stats", h.StatsView)
		})
	})
}

// pathID достаёт обязательный идентификатор из пути, при ошибке ответ уже записан
func (h *HTTPHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if err := h.validate.Var(id, "required"); err != nil {
		utils.WriteValidationError(w, err)
		return "", false
	}
	return id, true
}

// userID всегда есть: маршруты /api закрыты middleware.Identity
func userID(r *http.Request) string {
	id, _ := middleware.UserID(r.Context())
	return id
}

// stateMessages человекочитаемые причины для 409
var stateMessages = []struct {
	err error
	msg string
}{
	{entities.ErrOrderClosed, "order is already closed"},
	{entities.ErrBidNotPending, "this offer was already accepted or rejected"},
}

// writeServiceError переводит вид доменной ошибки в HTTP статус
func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, entities.ErrValidation):
		utils.WriteValidationError(w, err)

	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "order not found", http.StatusNotFound)

	case errors.Is(err, entities.ErrBidNotFound):
		utils.WriteError(w, "bid not found", http.StatusNotFound)

	case errors.Is(err, entities.ErrNotFound):
		utils.WriteError(w, "not found", http.StatusNotFound)

	case errors.Is(err, entities.ErrForbidden):
		utils.WriteError(w, "not allowed", http.StatusForbidden)

	case errors.Is(err, entities.ErrInvalidState):
		msg := "operation is not allowed in current state"
		for _, sm := range stateMessages {
			if errors.Is(err, sm.err) {
				msg = sm.msg
				break
			}
		}
		utils.WriteError(w, msg, http.StatusConflict)

	case errors.Is(err, entities.ErrConflict):
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		utils.WriteError(w, "temporarily unavailable, retry later", http.StatusServiceUnavailable)

	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("op", op),
			slog.String("user_id", userID(r)),
			slog.Any("error", err),
		)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
