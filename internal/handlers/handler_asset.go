package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/payflowhq/payflow_backend/internal/apperrors"
	portssvc "github.com/payflowhq/payflow_backend/internal/core/ports/services"
	"github.com/payflowhq/payflow_backend/internal/dto"
	"github.com/payflowhq/payflow_backend/internal/middleware"
)

// assetHandler handles HTTP requests for assets and their valuation records.
type assetHandler struct {
	assetService portssvc.AssetSvcFacade
}

func newAssetHandler(as portssvc.AssetSvcFacade) *assetHandler {
	return &assetHandler{assetService: as}
}

// registerAssetRoutes registers routes related to assets and records.
func registerAssetRoutes(rg *gin.RouterGroup, assetService portssvc.AssetSvcFacade) {
	h := newAssetHandler(assetService)

	assets := rg.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.GET("/:id", h.getAsset)
		assets.GET("", h.listAssets)
		assets.PUT("/:id", h.updateAsset)
		assets.DELETE("/:id", h.deleteAsset)

		assets.POST("/:id/records", h.applyRecord)
		assets.GET("/:id/records", h.listRecords)
		assets.POST("/:id/recalculate", h.recalculate)
	}

	records := rg.Group("/records")
	{
		records.PUT("/:recordID", h.updateRecord)
		records.DELETE("/:recordID", h.deleteRecord)
	}
}

func (h *assetHandler) respondServiceError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	default:
		logger.Error("Asset operation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// createAsset godoc
// @Summary Create a new asset
// @Description Creates an asset for the logged-in user, seeded with an INITIAL record.
// @Tags assets
// @Accept json
// @Produce json
// @Param asset body dto.CreateAssetRequest true "Asset details"
// @Success 201 {object} dto.AssetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets [post]
func (h *assetHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger.Info("Received request to create asset", slog.String("asset_name", req.Name))

	asset, err := h.assetService.CreateAsset(c.Request.Context(), req, creatorUserID)
	if err != nil {
		h.respondServiceError(c, err, "create asset")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset))
}

// getAsset godoc
// @Summary Get an asset by ID
// @Tags assets
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} dto.AssetResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets/{id} [get]
func (h *assetHandler) getAsset(c *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	asset, err := h.assetService.GetAssetByID(c.Request.Context(), c.Param("id"), requesterID)
	if err != nil {
		h.respondServiceError(c, err, "retrieve asset")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// listAssets godoc
// @Summary List the logged-in user's assets
// @Tags assets
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListAssetsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets [get]
func (h *assetHandler) listAssets(c *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	assets, err := h.assetService.ListAssets(c.Request.Context(), requesterID, limit, offset)
	if err != nil {
		h.respondServiceError(c, err, "list assets")
		return
	}

	resp := dto.ListAssetsResponse{Assets: make([]dto.AssetResponse, len(assets))}
	for i := range assets {
		resp.Assets[i] = dto.ToAssetResponse(&assets[i])
	}
	c.JSON(http.StatusOK, resp)
}

// updateAsset godoc
// @Summary Update an asset's descriptive fields
// @Description Value changes go through records; this endpoint never touches values.
// @Tags assets
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Param asset body dto.UpdateAssetRequest true "Fields to update"
// @Success 200 {object} dto.AssetResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets/{id} [put]
func (h *assetHandler) updateAsset(c *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	asset, err := h.assetService.UpdateAsset(c.Request.Context(), c.Param("id"), req, requesterID)
	if err != nil {
		h.respondServiceError(c, err, "update asset")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// deleteAsset godoc
// @Summary Delete an asset and all its records
// @Tags assets
// @Produce json
// @Param id path string true "Asset ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets/{id} [delete]
func (h *assetHandler) deleteAsset(c *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.assetService.DeleteAsset(c.Request.Context(), c.Param("id"), requesterID); err != nil {
		h.respondServiceError(c, err, "delete asset")
		return
	}
	c.Status(http.StatusNoContent)
}

// applyRecord godoc
// @Summary Apply a valuation record to an asset
// @Description Appends a record and updates the asset's running value atomically.
// @Tags assets
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Param record body dto.ApplyRecordRequest true "Record details"
// @Success 201 {object} dto.ApplyRecordResponse
// @Failure 400 {object} ErrorResponse "Missing or non-numeric amount"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets/{id}/records [post]
func (h *assetHandler) applyRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ApplyRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	assetID := c.Param("id")
	logger.Info("Received request to apply record",
		slog.String("asset_id", assetID),
		slog.String("record_type", req.RecordType),
	)

	asset, record, err := h.assetService.ApplyRecord(c.Request.Context(), assetID, req, actorID)
	if err != nil {
		h.respondServiceError(c, err, "apply record")
		return
	}

	c.JSON(http.StatusCreated, dto.ApplyRecordResponse{
		Asset:  dto.ToAssetResponse(asset),
		Record: dto.ToRecordResponse(record),
	})
}

// listRecords godoc
// @Summary List an asset's record history
// @Description Returns records in date order (createdAt breaks ties) with cursor pagination.
// @Tags assets
// @Produce json
// @Param id path string true "Asset ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListRecordsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets/{id}/records [get]
func (h *assetHandler) listRecords(c *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, nextToken, err := h.assetService.ListRecords(c.Request.Context(), c.Param("id"), requesterID, limit, c.Query("nextToken"))
	if err != nil {
		h.respondServiceError(c, err, "list records")
		return
	}

	resp := dto.ListRecordsResponse{
		Records:   make([]dto.RecordResponse, len(records)),
		NextToken: nextToken,
	}
	for i := range records {
		resp.Records[i] = dto.ToRecordResponse(&records[i])
	}
	c.JSON(http.StatusOK, resp)
}

// recalculate godoc
// @Summary Recalculate an asset's history
// @Description Replays the full record history, rewriting derived fields and the running value.
// @Tags assets
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} dto.AssetResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets/{id}/recalculate [post]
func (h *assetHandler) recalculate(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	asset, err := h.assetService.Recalculate(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		h.respondServiceError(c, err, "recalculate asset")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// updateRecord godoc
// @Summary Edit a historical record
// @Description Edits the authoritative side of a record and replays the history.
// @Tags assets
// @Accept json
// @Produce json
// @Param recordID path string true "Record ID"
// @Param record body dto.UpdateRecordRequest true "Fields to update"
// @Success 200 {object} dto.AssetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{recordID} [put]
func (h *assetHandler) updateRecord(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	asset, err := h.assetService.UpdateRecord(c.Request.Context(), c.Param("recordID"), req, actorID)
	if err != nil {
		h.respondServiceError(c, err, "update record")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// deleteRecord godoc
// @Summary Delete a historical record
// @Description Removes a record and replays the remaining history.
// @Tags assets
// @Produce json
// @Param recordID path string true "Record ID"
// @Success 200 {object} dto.AssetResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{recordID} [delete]
func (h *assetHandler) deleteRecord(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	asset, err := h.assetService.DeleteRecord(c.Request.Context(), c.Param("recordID"), actorID)
	if err != nil {
		h.respondServiceError(c, err, "delete record")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}
