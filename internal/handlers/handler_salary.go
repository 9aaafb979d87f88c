package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/payflowhq/payflow_backend/internal/apperrors"
	portssvc "github.com/payflowhq/payflow_backend/internal/core/ports/services"
	"github.com/payflowhq/payflow_backend/internal/dto"
	"github.com/payflowhq/payflow_backend/internal/middleware"
)

// salaryHandler handles HTTP requests for salary plans.
type salaryHandler struct {
	salaryService portssvc.SalarySvcFacade
}

func newSalaryHandler(ss portssvc.SalarySvcFacade) *salaryHandler {
	return &salaryHandler{salaryService: ss}
}

// registerSalaryRoutes registers routes related to salary plans.
func registerSalaryRoutes(rg *gin.RouterGroup, salaryService portssvc.SalarySvcFacade) {
	h := newSalaryHandler(salaryService)

	salaries := rg.Group("/salaries")
	{
		salaries.POST("", h.createPlan)
		salaries.GET("/:id", h.getPlan)
		salaries.GET("", h.listPlans)
		salaries.GET("/due", h.listDuePlans)
		salaries.PUT("/:id", h.updatePlan)
	}
}

func (h *salaryHandler) respondServiceError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin role required"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	default:
		logger.Error("Salary operation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// createPlan godoc
// @Summary Create a salary plan
// @Description Admin only. Sets up a recurring salary for an approved user.
// @Tags salaries
// @Accept json
// @Produce json
// @Param plan body dto.CreateSalaryPlanRequest true "Plan details"
// @Success 201 {object} dto.SalaryPlanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /salaries [post]
func (h *salaryHandler) createPlan(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateSalaryPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	plan, err := h.salaryService.CreatePlan(c.Request.Context(), req, actorID)
	if err != nil {
		h.respondServiceError(c, err, "create salary plan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSalaryPlanResponse(plan))
}

// getPlan godoc
// @Summary Get a salary plan by ID
// @Tags salaries
// @Produce json
// @Param id path string true "Salary Plan ID"
// @Success 200 {object} dto.SalaryPlanResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /salaries/{id} [get]
func (h *salaryHandler) getPlan(c *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	plan, err := h.salaryService.GetPlan(c.Request.Context(), c.Param("id"), requesterID)
	if err != nil {
		h.respondServiceError(c, err, "retrieve salary plan")
		return
	}
	c.JSON(http.StatusOK, dto.ToSalaryPlanResponse(plan))
}

// listPlans godoc
// @Summary List salary plans for a user
// @Tags salaries
// @Produce json
// @Param userID query string false "User whose plans to list (defaults to the logged-in user)"
// @Success 200 {object} dto.ListSalaryPlansResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /salaries [get]
func (h *salaryHandler) listPlans(c *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	userID := c.DefaultQuery("userID", requesterID)

	plans, err := h.salaryService.ListPlansByUser(c.Request.Context(), userID, requesterID)
	if err != nil {
		h.respondServiceError(c, err, "list salary plans")
		return
	}

	resp := dto.ListSalaryPlansResponse{Plans: make([]dto.SalaryPlanResponse, len(plans))}
	for i := range plans {
		resp.Plans[i] = dto.ToSalaryPlanResponse(&plans[i])
	}
	c.JSON(http.StatusOK, resp)
}

// listDuePlans godoc
// @Summary List plans with a payment due
// @Description Admin only. Lists active plans due on the given date (default today).
// @Tags salaries
// @Produce json
// @Param on query string false "Date (RFC 3339); defaults to now"
// @Success 200 {object} dto.ListSalaryPlansResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /salaries/due [get]
func (h *salaryHandler) listDuePlans(c *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	on := time.Now().UTC()
	if raw := c.Query("on"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'on' date; expected RFC 3339"})
			return
		}
		on = parsed
	}

	plans, err := h.salaryService.ListDuePlans(c.Request.Context(), on, requesterID)
	if err != nil {
		h.respondServiceError(c, err, "list due salary plans")
		return
	}

	resp := dto.ListSalaryPlansResponse{Plans: make([]dto.SalaryPlanResponse, len(plans))}
	for i := range plans {
		resp.Plans[i] = dto.ToSalaryPlanResponse(&plans[i])
	}
	c.JSON(http.StatusOK, resp)
}

// updatePlan godoc
// @Summary Update a salary plan
// @Description Admin only. Edits a plan's amount, payday or active flag.
// @Tags salaries
// @Accept json
// @Produce json
// @Param id path string true "Salary Plan ID"
// @Param plan body dto.UpdateSalaryPlanRequest true "Fields to update"
// @Success 200 {object} dto.SalaryPlanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /salaries/{id} [put]
func (h *salaryHandler) updatePlan(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateSalaryPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	plan, err := h.salaryService.UpdatePlan(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		h.respondServiceError(c, err, "update salary plan")
		return
	}
	c.JSON(http.StatusOK, dto.ToSalaryPlanResponse(plan))
}
