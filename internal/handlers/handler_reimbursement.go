package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/payflowhq/payflow_backend/internal/apperrors"
	"github.com/payflowhq/payflow_backend/internal/core/domain"
	portssvc "github.com/payflowhq/payflow_backend/internal/core/ports/services"
	"github.com/payflowhq/payflow_backend/internal/dto"
	"github.com/payflowhq/payflow_backend/internal/middleware"
)

// reimbursementHandler handles HTTP requests for expense claims.
type reimbursementHandler struct {
	reimbursementService portssvc.ReimbursementSvcFacade
}

func newReimbursementHandler(rs portssvc.ReimbursementSvcFacade) *reimbursementHandler {
	return &reimbursementHandler{reimbursementService: rs}
}

// registerReimbursementRoutes registers routes related to reimbursements.
func registerReimbursementRoutes(rg *gin.RouterGroup, reimbursementService portssvc.ReimbursementSvcFacade) {
	h := newReimbursementHandler(reimbursementService)

	reimbursements := rg.Group("/reimbursements")
	{
		reimbursements.POST("", h.submit)
		reimbursements.GET("/:id", h.get)
		reimbursements.GET("", h.list)
		reimbursements.POST("/:id/review", h.review)
	}
}

func (h *reimbursementHandler) respondServiceError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	default:
		logger.Error("Reimbursement operation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// submit godoc
// @Summary Submit an expense claim
// @Description Creates a claim for the logged-in user; the USD-equivalent amount is captured at submission with the best available rate.
// @Tags reimbursements
// @Accept json
// @Produce json
// @Param reimbursement body dto.CreateReimbursementRequest true "Claim details"
// @Success 201 {object} dto.ReimbursementResponse
// @Failure 400 {object} ErrorResponse "Missing or non-numeric amount, or unknown currency"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reimbursements [post]
func (h *reimbursementHandler) submit(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateReimbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	claim, err := h.reimbursementService.Submit(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// unknown currency with no fallback entry
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		h.respondServiceError(c, err, "submit reimbursement")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReimbursementResponse(claim))
}

// get godoc
// @Summary Get a claim by ID
// @Tags reimbursements
// @Produce json
// @Param id path string true "Reimbursement ID"
// @Success 200 {object} dto.ReimbursementResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reimbursements/{id} [get]
func (h *reimbursementHandler) get(c *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	claim, err := h.reimbursementService.GetByID(c.Request.Context(), c.Param("id"), requesterID)
	if err != nil {
		h.respondServiceError(c, err, "retrieve reimbursement")
		return
	}
	c.JSON(http.StatusOK, dto.ToReimbursementResponse(claim))
}

// list godoc
// @Summary List claims
// @Description Without parameters lists the logged-in user's claims. With status, lists all claims in that status (admin only). With userID, lists that user's claims (owner or admin).
// @Tags reimbursements
// @Produce json
// @Param status query string false "Filter by status across all users (admin only)"
// @Param userID query string false "List another user's claims (admin only)"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListReimbursementsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /reimbursements [get]
func (h *reimbursementHandler) list(c *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var claims []domain.Reimbursement
	var err error
	if status := c.Query("status"); status != "" {
		claims, err = h.reimbursementService.ListByStatus(c.Request.Context(), domain.ReimbursementStatus(status), requesterID, limit, offset)
	} else {
		userID := c.DefaultQuery("userID", requesterID)
		claims, err = h.reimbursementService.ListByUser(c.Request.Context(), userID, requesterID, limit, offset)
	}
	if err != nil {
		h.respondServiceError(c, err, "list reimbursements")
		return
	}

	resp := dto.ListReimbursementsResponse{Reimbursements: make([]dto.ReimbursementResponse, len(claims))}
	for i := range claims {
		resp.Reimbursements[i] = dto.ToReimbursementResponse(&claims[i])
	}
	c.JSON(http.StatusOK, resp)
}

// review godoc
// @Summary Approve or reject a submitted claim
// @Description Admin only. Only SUBMITTED claims can be reviewed.
// @Tags reimbursements
// @Accept json
// @Produce json
// @Param id path string true "Reimbursement ID"
// @Param review body dto.ReviewReimbursementRequest true "Review decision"
// @Success 200 {object} dto.ReimbursementResponse
// @Failure 400 {object} ErrorResponse "Claim is not in SUBMITTED status"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reimbursements/{id}/review [post]
func (h *reimbursementHandler) review(c *gin.Context) {
	reviewerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ReviewReimbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	claim, err := h.reimbursementService.Review(c.Request.Context(), c.Param("id"), req, reviewerID)
	if err != nil {
		h.respondServiceError(c, err, "review reimbursement")
		return
	}
	c.JSON(http.StatusOK, dto.ToReimbursementResponse(claim))
}
