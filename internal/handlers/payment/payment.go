package payment

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
	Submit(ctx context.Context, userID int, auctionID uuid.UUID, monto decimal.Decimal, voucherRef string) (*domain.Movement, error)
	Approve(ctx context.Context, movementID uuid.UUID) (*domain.BalanceSnapshot, error)
	Reject(ctx context.Context, movementID uuid.UUID, reasons []string) error
	GetMovements(ctx context.Context, auctionID uuid.UUID) ([]domain.Movement, error)
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Submit godoc
//
//	@Summary		Submit a guarantee payment
//	@Description	Register a guarantee payment voucher for an auction the user won. The payment stays pendiente until an admin reviews it.
//	@Tags			Pagos
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			auctionID	path		string						true	"Auction ID"
//	@Param			request		body		dto.SubmitPaymentRequestDTO	true	"Payment payload"
//	@Success		201			{object}	dto.MovementResponseDTO		"Created movement"
//	@Failure		403			{object}	utils.Response				"Not the current winner"
//	@Failure		409			{object}	utils.Response				"Auction not payable or already paid"
//	@Failure		422			{object}	utils.Response				"Invalid amount or payment date"
//	@Router			/api/auctions/{auctionID}/payments [post]
func (h *PaymentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	auctionID, err := uuid.Parse(chi.URLParam(r, "auctionID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid auction id")
		return
	}

	var req dto.SubmitPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	monto, ok := validate.ParseAmount(req.Monto)
	if !ok {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	movement, err := h.paymentService.Submit(r.Context(), userID, auctionID, monto, req.VoucherRef)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toMovementDTO(movement))
}

// Approve godoc
//
//	@Summary		Approve a guarantee payment
//	@Description	Approve a pendiente payment: the guarantee enters the ledger as retained balance and the auction becomes pagada.
//	@Tags			Pagos
//	@Security		BearerAuth
//	@Produce		json
//	@Param			movementID	path		string					true	"Movement ID"
//	@Success		200			{object}	dto.BalanceSnapshotDTO	"Post-approval balance"
//	@Failure		404			{object}	utils.Response			"Movement not found"
//	@Failure		409			{object}	utils.Response			"Movement not pendiente or duplicate approval"
//	@Router			/api/payments/{movementID}/approve [post]
func (h *PaymentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	movementID, err := uuid.Parse(chi.URLParam(r, "movementID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid movement id")
		return
	}

	snapshot, err := h.paymentService.Approve(r.Context(), movementID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewBalanceSnapshotDTO(snapshot))
}

// Reject godoc
//
//	@Summary		Reject a guarantee payment
//	@Description	Reject a pendiente payment with one or more reason codes. No ledger effect; the client may submit again.
//	@Tags			Pagos
//	@Security		BearerAuth
//	@Accept			json
//	@Param			movementID	path		string						true	"Movement ID"
//	@Param			request		body		dto.RejectPaymentRequestDTO	true	"Rejection reasons"
//	@Success		200			{string}	string						"Rejected"
//	@Failure		409			{object}	utils.Response				"Movement not pendiente"
//	@Failure		422			{object}	utils.Response				"Missing reasons"
//	@Router			/api/payments/{movementID}/reject [post]
func (h *PaymentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	movementID, err := uuid.Parse(chi.URLParam(r, "movementID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid movement id")
		return
	}

	var req dto.RejectPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.paymentService.Reject(r.Context(), movementID, req.Reasons); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "payment rejected")
}

// GetMovements godoc
//
//	@Summary		List an auction's payment submissions
//	@Tags			Pagos
//	@Security		BearerAuth
//	@Produce		json
//	@Param			auctionID	path		string	true	"Auction ID"
//	@Success		200			{array}		dto.MovementResponseDTO
//	@Success		204			{object}	utils.Response	"No movements"
//	@Router			/api/auctions/{auctionID}/payments [get]
func (h *PaymentHandler) GetMovements(w http.ResponseWriter, r *http.Request) {
	auctionID, err := uuid.Parse(chi.URLParam(r, "auctionID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid auction id")
		return
	}

	movements, err := h.paymentService.GetMovements(r.Context(), auctionID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if len(movements) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "no movements found")
		return
	}

	response := make([]dto.MovementResponseDTO, len(movements))
	for i, m := range movements {
		m := m
		response[i] = toMovementDTO(&m)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toMovementDTO(m *domain.Movement) dto.MovementResponseDTO {
	return dto.MovementResponseDTO{
		ID:            m.ID.String(),
		AuctionID:     m.AuctionID.String(),
		Monto:         m.Monto.StringFixed(2),
		Estado:        m.Estado,
		VoucherRef:    m.VoucherRef,
		RejectReasons: m.RejectReasons,
		SubmittedAt:   m.SubmittedAt,
		ResolvedAt:    m.ResolvedAt,
	}
}
