package billing

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jpalomino/subastas/internal/domain"
	"github.com/jpalomino/subastas/internal/dto"
	"github.com/jpalomino/subastas/internal/service/billingservice"
	"github.com/jpalomino/subastas/pkg/auth"
	"github.com/jpalomino/subastas/pkg/utils"
	"github.com/jpalomino/subastas/pkg/validate"
)

type Service interface {
	Complete(ctx context.Context, userID int, auctionID uuid.UUID, doc billingservice.DocumentInfo) (*domain.BalanceSnapshot, error)
}

type BillingHandler struct {
	billingService Service
}

func New(billingService Service) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
	}
}

// Complete godoc
//
//	@Summary		Complete the billing of a won auction
//	@Description	Fill the invoice data for a ganada auction. The held guarantee becomes applied balance and the auction becomes facturada.
//	@Tags			Facturacion
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			auctionID	path		string							true	"Auction ID"
//	@Param			request		body		dto.CompleteBillingRequestDTO	true	"Invoice data"
//	@Success		200			{object}	dto.BalanceSnapshotDTO			"Post-billing balance"
//	@Failure		404			{object}	utils.Response					"Auction or billing not found"
//	@Failure		409			{object}	utils.Response					"Already completed or duplicate document"
//	@Failure		422			{object}	utils.Response					"Invalid document data"
//	@Router			/api/auctions/{auctionID}/billing [post]
func (h *BillingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	auctionID, err := uuid.Parse(chi.URLParam(r, "auctionID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid auction id")
		return
	}

	var req dto.CompleteBillingRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validate.IsDocumentNumber(req.DocumentNumber) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "invalid document number")
		return
	}

	snapshot, err := h.billingService.Complete(r.Context(), userID, auctionID, billingservice.DocumentInfo{
		Type:   req.DocumentType,
		Number: req.DocumentNumber,
		Name:   req.DocumentName,
	})
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewBalanceSnapshotDTO(snapshot))
}
