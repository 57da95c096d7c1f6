package handler

import (
	"context"

	supplyapp "github.com/frameshop/backend/internal/application/supply"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SupplyHandler handles supply catalog API endpoints
type SupplyHandler struct {
	BaseHandler
	supplyService *supplyapp.Service
}

// NewSupplyHandler creates a new SupplyHandler
func NewSupplyHandler(supplyService *supplyapp.Service) *SupplyHandler {
	return &SupplyHandler{
		supplyService: supplyService,
	}
}

// Create godoc
// @Summary      Register a new supply
// @Description  Creates a supply with its payment-term cost schedule and prices
// @Tags         supplies
// @Accept       json
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        request body supplyapp.CreateSupplyRequest true "Supply data"
// @Success      201 {object} dto.Response{data=supplyapp.SupplyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supplies [post]
func (h *SupplyHandler) Create(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req supplyapp.CreateSupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sup, err := h.supplyService.Create(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, sup)
}

// GetByID godoc
// @Summary      Get supply by ID
// @Tags         supplies
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        id path string true "Supply ID" format(uuid)
// @Success      200 {object} dto.Response{data=supplyapp.SupplyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supplies/{id} [get]
func (h *SupplyHandler) GetByID(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	supplyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supply ID format")
		return
	}

	sup, err := h.supplyService.GetByID(c.Request.Context(), storeID, supplyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sup)
}

// GetByCode godoc
// @Summary      Get supply by code
// @Tags         supplies
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        code path string true "Supply code"
// @Success      200 {object} dto.Response{data=supplyapp.SupplyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supplies/code/{code} [get]
func (h *SupplyHandler) GetByCode(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Supply code is required")
		return
	}

	sup, err := h.supplyService.GetByCode(c.Request.Context(), storeID, code)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sup)
}

// List godoc
// @Summary      List supplies
// @Description  Lists supplies with pagination, search and category/active filters
// @Tags         supplies
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        category query string false "Supply category"
// @Param        active query bool false "Active filter"
// @Param        search query string false "Search in code, description and supplier"
// @Success      200 {object} dto.Response{data=[]supplyapp.SupplyResponse,meta=dto.Meta}
// @Router       /supplies [get]
func (h *SupplyHandler) List(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var filter supplyapp.SupplyListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplies, total, err := h.supplyService.List(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	h.SuccessWithMeta(c, supplies, total, page, pageSize)
}

// Update godoc
// @Summary      Update a supply
// @Description  Partially updates supply description, supplier, costs, prices or frame profile
// @Tags         supplies
// @Accept       json
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        id path string true "Supply ID" format(uuid)
// @Param        request body supplyapp.UpdateSupplyRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=supplyapp.SupplyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supplies/{id} [put]
func (h *SupplyHandler) Update(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	supplyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supply ID format")
		return
	}

	var req supplyapp.UpdateSupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sup, err := h.supplyService.Update(c.Request.Context(), storeID, supplyID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sup)
}

// Activate godoc
// @Summary      Activate a supply
// @Tags         supplies
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        id path string true "Supply ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supplies/{id}/activate [post]
func (h *SupplyHandler) Activate(c *gin.Context) {
	h.runByID(c, h.supplyService.Activate)
}

// Deactivate godoc
// @Summary      Deactivate a supply
// @Description  Deactivated supplies are kept but excluded from new quotes
// @Tags         supplies
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        id path string true "Supply ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supplies/{id}/deactivate [post]
func (h *SupplyHandler) Deactivate(c *gin.Context) {
	h.runByID(c, h.supplyService.Deactivate)
}

// Delete godoc
// @Summary      Delete a supply
// @Tags         supplies
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        id path string true "Supply ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supplies/{id} [delete]
func (h *SupplyHandler) Delete(c *gin.Context) {
	h.runByID(c, h.supplyService.Delete)
}

// runByID runs an ID-addressed mutation that returns no body
func (h *SupplyHandler) runByID(c *gin.Context, op func(ctx context.Context, storeID, supplyID uuid.UUID) error) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	supplyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supply ID format")
		return
	}

	if err := op(c.Request.Context(), storeID, supplyID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
