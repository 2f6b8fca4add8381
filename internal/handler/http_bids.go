package handler

import (
	"net/http"

	"github.com/SergeyBogomolovv/exchange-ledger/pkg/utils"
)

// SubmitBid подаёт ставку на активную заявку.
// @Summary      Подать ставку
// @Tags         bids
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header    string            true  "Идентификатор пользователя"
// @Param        request    body      SubmitBidRequest  true  "Параметры ставки"
// @Success      201  {object}  Bid
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      403  {object}  utils.ErrorResponse "Ставка на собственную заявку"
// @Failure      404  {object}  utils.ErrorResponse "Заявка не найдена"
// @Failure      409  {object}  utils.ErrorResponse "Заявка уже закрыта"
// @Failure      503  {object}  utils.ErrorResponse "Конфликт блокировок, повторите позже"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/bids [post]
func (h *HTTPHandler) SubmitBid(w http.ResponseWriter, r *http.Request) {
	var req SubmitBidRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	bid, err := h.bids.SubmitBid(r.Context(), req.ToEntity(userID(r)))
	if err != nil {
		h.writeServiceError(w, r, "submit bid", err)
		return
	}

	utils.WriteJSON(w, BidEntityToJSON(bid), http.StatusCreated)
}

// MyBids ставки вызывающего обменника.
// @Summary      Мои ставки
// @Description  Неархивные ставки обменника, от новых к старым
// @Tags         bids
// @Produce      json
// @Param        X-User-ID  header    string  true  "Идентификатор пользователя"
// @Success      200  {array}   Bid
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/bids/my [get]
func (h *HTTPHandler) MyBids(w http.ResponseWriter, r *http.Request) {
	bids, err := h.bids.BidsBySubmitter(r.Context(), userID(r))
	if err != nil {
		h.writeServiceError(w, r, "my bids", err)
		return
	}

	utils.WriteJSON(w, BidsEntityToJSON(bids), http.StatusOK)
}

// AcceptBid принимает ставку и закрывает заявку.
// @Summary      Принять ставку
// @Description  Атомарно принимает ставку, закрывает заявку и отклоняет остальные ожидающие ставки
// @Tags         bids
// @Produce      json
// @Param        X-User-ID  header    string  true  "Идентификатор пользователя"
// @Param        bid_id     path      string  true  "Идентификатор ставки"
// @Success      200  {object}  AcceptBidResponse
// @Failure      403  {object}  utils.ErrorResponse "Заявка принадлежит другому клиенту"
// @Failure      404  {object}  utils.ErrorResponse "Ставка или заявка не найдена"
// @Failure      409  {object}  utils.ErrorResponse "Заявка закрыта или ставка уже обработана"
// @Failure      503  {object}  utils.ErrorResponse "Конфликт блокировок, повторите позже"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/bids/{bid_id}/accept [post]
func (h *HTTPHandler) AcceptBid(w http.ResponseWriter, r *http.Request) {
	bidID, ok := h.pathID(w, r, "bid_id")
	if !ok {
		return
	}

	res, err := h.matching.AcceptBid(r.Context(), bidID, userID(r))
	if err != nil {
		h.writeServiceError(w, r, "accept bid", err)
		return
	}

	utils.WriteJSON(w, AcceptResultToJSON(res), http.StatusOK)
}

// ArchiveCompleted скрывает завершённые ставки обменника.
// @Summary      Архивировать завершённые ставки
// @Description  Скрывает принятые и отклонённые ставки из списков обменника, ожидающие не трогает
// @Tags         bids
// @Produce      json
// @Param        X-User-ID  header    string  true  "Идентификатор пользователя"
// @Success      200  {object}  ArchiveResponse
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/bids/my/completed [delete]
func (h *HTTPHandler) ArchiveCompleted(w http.ResponseWriter, r *http.Request) {
	removed, err := h.bids.ArchiveCompleted(r.Context(), userID(r))
	if err != nil {
		h.writeServiceError(w, r, "archive completed bids", err)
		return
	}

	utils.WriteJSON(w, ArchiveResponse{Removed: removed}, http.StatusOK)
}
