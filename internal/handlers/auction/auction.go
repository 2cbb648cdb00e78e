package auction

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jpalomino/subastas/internal/domain"
	"github.com/jpalomino/subastas/internal/dto"
	"github.com/jpalomino/subastas/pkg/utils"
)

type Service interface {
	SetResult(ctx context.Context, auctionID uuid.UUID, outcome string) (*domain.BalanceSnapshot, error)
}

type AuctionHandler struct {
	auctionService Service
}

func New(auctionService Service) *AuctionHandler {
	return &AuctionHandler{
		auctionService: auctionService,
	}
}

// SetResult godoc
//
//	@Summary		Record the competition result
//	@Description	Set a paid auction's outcome. penalizada forfeits 30% of the guarantee and releases the rest into the available balance.
//	@Tags			Subastas
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			auctionID	path		string					true	"Auction ID"
//	@Param			request		body		dto.SetResultRequestDTO	true	"Outcome"
//	@Success		200			{object}	dto.BalanceSnapshotDTO	"Post-result balance"
//	@Failure		404			{object}	utils.Response			"Auction not found"
//	@Failure		409			{object}	utils.Response			"Auction not pagada"
//	@Failure		422			{object}	utils.Response			"Unknown outcome"
//	@Router			/api/auctions/{auctionID}/result [post]
func (h *AuctionHandler) SetResult(w http.ResponseWriter, r *http.Request) {
	auctionID, err := uuid.Parse(chi.URLParam(r, "auctionID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid auction id")
		return
	}

	var req dto.SetResultRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snapshot, err := h.auctionService.SetResult(r.Context(), auctionID, req.Outcome)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewBalanceSnapshotDTO(snapshot))
}
