package refund

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jpalomino/subastas/internal/domain"
	"github.com/jpalomino/subastas/internal/dto"
	"github.com/jpalomino/subastas/pkg/auth"
	"github.com/jpalomino/subastas/pkg/utils"
	"github.com/jpalomino/subastas/pkg/validate"
)

type Service interface {
	Request(ctx context.Context, userID int, auctionID uuid.UUID, monto decimal.Decimal, tipo string) (*domain.Refund, error)
	Manage(ctx context.Context, refundID uuid.UUID, decision string) (*domain.Refund, error)
	Cancel(ctx context.Context, userID int, refundID uuid.UUID) error
	Process(ctx context.Context, refundID uuid.UUID, voucherRef string) (*domain.BalanceSnapshot, error)
	GetRefunds(ctx context.Context, userID int) ([]domain.Refund, error)
}

type RefundHandler struct {
	refundService Service
}

func New(refundService Service) *RefundHandler {
	return &RefundHandler{
		refundService: refundService,
	}
}

// Request godoc
//
//	@Summary		Request a refund
//	@Description	Open a refund petition for an auction's held or available funds, choosing the settlement mode. No money moves until processing.
//	@Tags			Reembolsos
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			auctionID	path		string						true	"Auction ID"
//	@Param			request		body		dto.RequestRefundRequestDTO	true	"Refund petition"
//	@Success		201			{object}	dto.RefundResponseDTO		"Created refund"
//	@Failure		409			{object}	utils.Response				"Insufficient balance or duplicate open refund"
//	@Failure		422			{object}	utils.Response				"Invalid amount or settlement mode"
//	@Router			/api/auctions/{auctionID}/refunds [post]
func (h *RefundHandler) Request(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	auctionID, err := uuid.Parse(chi.URLParam(r, "auctionID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid auction id")
		return
	}

	var req dto.RequestRefundRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	monto, ok := validate.ParseAmount(req.Monto)
	if !ok {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	refund, err := h.refundService.Request(r.Context(), userID, auctionID, monto, req.TipoReembolso)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toRefundDTO(refund))
}

// Manage godoc
//
//	@Summary		Confirm or reject a refund
//	@Description	Admin authorization gate before any money moves. Neither decision touches the ledger.
//	@Tags			Reembolsos
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			refundID	path		string						true	"Refund ID"
//	@Param			request		body		dto.ManageRefundRequestDTO	true	"Decision"
//	@Success		200			{object}	dto.RefundResponseDTO
//	@Failure		404			{object}	utils.Response	"Refund not found"
//	@Failure		409			{object}	utils.Response	"Refund not solicitado"
//	@Router			/api/refunds/{refundID}/manage [post]
func (h *RefundHandler) Manage(w http.ResponseWriter, r *http.Request) {
	refundID, err := uuid.Parse(chi.URLParam(r, "refundID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid refund id")
		return
	}

	var req dto.ManageRefundRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	refund, err := h.refundService.Manage(r.Context(), refundID, req.Decision)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toRefundDTO(refund))
}

// Process godoc
//
//	@Summary		Process a confirmed refund
//	@Description	Settle the refund: release or remit the money according to the settlement mode and whether the amount is still held.
//	@Tags			Reembolsos
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			refundID	path		string						true	"Refund ID"
//	@Param			request		body		dto.ProcessRefundRequestDTO	true	"Settlement details"
//	@Success		200			{object}	dto.BalanceSnapshotDTO		"Post-refund balance"
//	@Failure		404			{object}	utils.Response				"Refund not found"
//	@Failure		409			{object}	utils.Response				"Refund not confirmado"
//	@Router			/api/refunds/{refundID}/process [post]
func (h *RefundHandler) Process(w http.ResponseWriter, r *http.Request) {
	refundID, err := uuid.Parse(chi.URLParam(r, "refundID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid refund id")
		return
	}

	var req dto.ProcessRefundRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snapshot, err := h.refundService.Process(r.Context(), refundID, req.VoucherRef)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewBalanceSnapshotDTO(snapshot))
}

// Cancel godoc
//
//	@Summary		Cancel a confirmed refund
//	@Tags			Reembolsos
//	@Security		BearerAuth
//	@Param			refundID	path		string	true	"Refund ID"
//	@Success		200			{string}	string	"Cancelled"
//	@Failure		403			{object}	utils.Response	"Refund belongs to another user"
//	@Failure		409			{object}	utils.Response	"Refund not confirmado"
//	@Router			/api/refunds/{refundID}/cancel [post]
func (h *RefundHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	refundID, err := uuid.Parse(chi.URLParam(r, "refundID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid refund id")
		return
	}

	if err := h.refundService.Cancel(r.Context(), userID, refundID); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "refund cancelled")
}

// GetRefunds godoc
//
//	@Summary		List the user's refunds
//	@Tags			Reembolsos
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.RefundResponseDTO
//	@Success		204	{object}	utils.Response	"No refunds"
//	@Router			/api/user/refunds [get]
func (h *RefundHandler) GetRefunds(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	refunds, err := h.refundService.GetRefunds(r.Context(), userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if len(refunds) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "no refunds found")
		return
	}

	response := make([]dto.RefundResponseDTO, len(refunds))
	for i, rf := range refunds {
		rf := rf
		response[i] = toRefundDTO(&rf)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toRefundDTO(rf *domain.Refund) dto.RefundResponseDTO {
	return dto.RefundResponseDTO{
		ID:            rf.ID.String(),
		AuctionID:     rf.AuctionID.String(),
		Monto:         rf.MontoSolicitado.StringFixed(2),
		TipoReembolso: rf.TipoReembolso,
		Estado:        rf.Estado,
		VoucherRef:    rf.VoucherRef,
		RequestedAt:   rf.RequestedAt,
		ResolvedAt:    rf.ResolvedAt,
	}
}
