package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/utils"
)

// CreateOrder создаёт заявку от имени вызывающего клиента.
// @Summary      Создать заявку
// @Description  Публикует новую заявку на обмен со статусом active
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header    string              true  "Идентификатор пользователя"
// @Param        request    body      CreateOrderRequest  true  "Параметры заявки"
// @Success      201  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      401  {object}  utils.ErrorResponse "Нет идентификатора пользователя"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), req.ToEntity(userID(r)))
	if err != nil {
		h.writeServiceError(w, r, "create order", err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// GetOrder возвращает заявку по ID.
// @Summary      Получить заявку
// @Description  Возвращает заявку по её идентификатору, ответ может кешироваться
// @Tags         orders
// @Produce      json
// @Param        X-User-ID  header    string  true  "Идентификатор пользователя"
// @Param        order_id   path      string  true  "Идентификатор заявки"
// @Success      200  {object}  Order
// @Failure      404  {object}  utils.ErrorResponse "Заявка не найдена"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/orders/{order_id} [get]
func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.pathID(w, r, "order_id")
	if !ok {
		return
	}

	start := time.Now()
	order, err := h.orders.GetOrder(r.Context(), orderID)
	orderLookupDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		orderLookupsTotal.WithLabelValues("found").Inc()
	case errors.Is(err, entities.ErrNotFound):
		orderLookupsTotal.WithLabelValues("not_found").Inc()
	default:
		orderLookupsTotal.WithLabelValues("error").Inc()
	}

	if err != nil {
		h.writeServiceError(w, r, "get order", err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// ActiveOrders лента активных заявок для обменника.
// @Summary      Активные заявки
// @Description  Все активные заявки, кроме собственных, от новых к старым
// @Tags         orders
// @Produce      json
// @Param        X-User-ID  header    string  true  "Идентификатор пользователя"
// @Success      200  {array}   Order
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/orders/active [get]
func (h *HTTPHandler) ActiveOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.views.ActiveOrdersFor(r.Context(), userID(r))
	if err != nil {
		h.writeServiceError(w, r, "active orders", err)
		return
	}

	utils.WriteJSON(w, OrdersEntityToJSON(orders), http.StatusOK)
}

// MyOrders заявки вызывающего клиента.
// @Summary      Мои заявки
// @Tags         orders
// @Produce      json
// @Param        X-User-ID  header    string  true  "Идентификатор пользователя"
// @Success      200  {array}   Order
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/orders/my [get]
func (h *HTTPHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.OrdersByRequester(r.Context(), userID(r))
	if err != nil {
		h.writeServiceError(w, r, "my orders", err)
		return
	}

	utils.WriteJSON(w, OrdersEntityToJSON(orders), http.StatusOK)
}

// CancelOrder отменяет заявку.
// @Summary      Отменить заявку
// @Description  Закрывает активную заявку и отклоняет все ожидающие ставки
// @Tags         orders
// @Produce      json
// @Param        X-User-ID  header    string  true  "Идентификатор пользователя"
// @Param        order_id   path      string  true  "Идентификатор заявки"
// @Success      200  {object}  Order
// @Failure      403  {object}  utils.ErrorResponse "Заявка принадлежит другому клиенту"
// @Failure      404  {object}  utils.ErrorResponse "Заявка не найдена"
// @Failure      409  {object}  utils.ErrorResponse "Заявка уже закрыта"
// @Failure      503  {object}  utils.ErrorResponse "Конфликт блокировок, повторите позже"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/orders/{order_id}/cancel [post]
func (h *HTTPHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.pathID(w, r, "order_id")
	if !ok {
		return
	}

	order, err := h.orders.CancelOrder(r.Context(), orderID, userID(r))
	if err != nil {
		h.writeServiceError(w, r, "cancel order", err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// BidsForOrder ставки по заявке.
// @Summary      Ставки по заявке
// @Description  Все ставки заявки в порядке подачи
// @Tags         orders
// @Produce      json
// @Param        X-User-ID  header    string  true  "Идентификатор пользователя"
// @Param        order_id   path      string  true  "Идентификатор заявки"
// @Success      200  {array}   Bid
// @Failure      404  {object}  utils.ErrorResponse "Заявка не найдена"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/orders/{order_id}/bids [get]
func (h *HTTPHandler) BidsForOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.pathID(w, r, "order_id")
	if !ok {
		return
	}

	bids, err := h.bids.BidsForOrder(r.Context(), orderID)
	if err != nil {
		h.writeServiceError(w, r, "bids for order", err)
		return
	}

	utils.WriteJSON(w, BidsEntityToJSON(bids), http.StatusOK)
}
