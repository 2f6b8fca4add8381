package handler

import (
	"net/http"

	"github.com/SergeyBogomolovv/exchange-ledger/pkg/utils"
)

// MyOrdersView заявки клиента, разделённые по статусу.
// @Summary      Мои заявки по статусам
// @Tags         views
// @Produce      json
// @Param        X-User-ID  header    string  true  "Идентификатор пользователя"
// @Success      200  {object}  MyOrders
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/views/my-orders [get]
func (h *HTTPHandler) MyOrdersView(w http.ResponseWriter, r *http.Request) {
	view, err := h.views.MyOrdersFor(r.Context(), userID(r))
	if err != nil {
		h.writeServiceError(w, r, "my orders view", err)
		return
	}
	utils.WriteJSON(w, MyOrdersToJSON(view), http.StatusOK)
}

// MyBidsView ставки обменника: ожидающие и завершённые.
// @Summary      Мои ставки по статусам
// @Tags         views
// @Produce      json
// @Param        X-User-ID  header    string  true  "Идентификатор пользователя"
// @Success      200  {object}  MyBids
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/views/my-bids [get]
func (h *HTTPHandler) MyBidsView(w http.ResponseWriter, r *http.Request) {
	view, err := h.views.MyBidsFor(r.Context(), userID(r))
	if err != nil {
		h.writeServiceError(w, r, "my bids view", err)
		return
	}
	utils.WriteJSON(w, MyBidsToJSON(view), http.StatusOK)
}

// StatsView счётчики для главного экрана.
// @Summary      Статистика пользователя
// @Tags         views
// @Produce      json
// @Param        X-User-ID  header    string  true  "Идентификатор пользователя"
// @Success      200  {object}  Stats
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/views/stats [get]
func (h *HTTPHandler) StatsView(w http.ResponseWriter, r *http.Request) {
	stats, err := h.views.StatsFor(r.Context(), userID(r))
	if err != nil {
		h.writeServiceError(w, r, "stats view", err)
		return
	}
	utils.WriteJSON(w, StatsToJSON(stats), http.StatusOK)
}
