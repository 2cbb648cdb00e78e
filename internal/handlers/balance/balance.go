package balance

import (
	"context"
	"net/http"

	"github.com/jpalomino/subastas/internal/domain"
	"github.com/jpalomino/subastas/internal/dto"
	"github.com/jpalomino/subastas/pkg/auth"
	"github.com/jpalomino/subastas/pkg/utils"
)

type Service interface {
	CreateBalance(ctx context.Context, userID int) (*domain.BalanceAccount, error)
	GetSnapshot(ctx context.Context, userID int) (*domain.BalanceSnapshot, error)
}

type BalanceHandler struct {
	balanceService Service
}

func New(balanceService Service) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current user balance
//	@Description	Retrieve the four balance figures for the authenticated user. saldo_disponible is derived, never stored.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceSnapshotDTO	"Current balance figures"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		404	{object}	utils.Response			"Balance account not found"
//	@Router			/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	snapshot, err := h.balanceService.GetSnapshot(r.Context(), userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewBalanceSnapshotDTO(snapshot))
}
