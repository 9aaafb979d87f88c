package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payflowhq/payflow_backend/internal/apperrors"
	portssvc "github.com/payflowhq/payflow_backend/internal/core/ports/services"
	"github.com/payflowhq/payflow_backend/internal/dto"
	"github.com/payflowhq/payflow_backend/internal/middleware"
)

// payoutHandler handles HTTP requests for payout batch generation.
type payoutHandler struct {
	payoutService portssvc.PayoutSvcFacade
}

func newPayoutHandler(ps portssvc.PayoutSvcFacade) *payoutHandler {
	return &payoutHandler{payoutService: ps}
}

// registerPayoutRoutes registers routes related to payouts.
func registerPayoutRoutes(rg *gin.RouterGroup, payoutService portssvc.PayoutSvcFacade) {
	h := newPayoutHandler(payoutService)

	payouts := rg.Group("/payouts")
	{
		payouts.POST("", h.buildPayout)
	}
}

// buildPayout godoc
// @Summary Build a payout batch
// @Description Admin only. Aggregates approved reimbursements (and due salaries when requested) into a multisig transaction payload, marking items paid unless dryRun.
// @Tags payouts
// @Accept json
// @Produce json
// @Param payout body dto.BuildPayoutRequest true "Payout options"
// @Success 200 {object} domain.AggregationResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payouts [post]
func (h *payoutHandler) buildPayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.BuildPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.payoutService.BuildPayout(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin role required"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to build payout", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build payout"})
		}
		return
	}

	logger.Info("Payout batch built",
		slog.Int("batches", len(result.Batches)),
		slog.Int("transactions", len(result.Transactions)),
		slog.Int("issues", len(result.Issues)),
		slog.Bool("dry_run", req.DryRun),
	)
	c.JSON(http.StatusOK, result)
}
