package handler

import (
	"context"
	"strconv"

	orderapp "github.com/frameshop/backend/internal/application/order"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles frame order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// Create godoc
// @Summary      Create a frame order
// @Description  Recalculates the embedded quote server-side and snapshots it into a draft order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        request body orderapp.CreateOrderRequest true "Order data"
// @Success      201 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ord, err := h.orderService.Create(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, ord)
}

// GetByID godoc
// @Summary      Get order by ID
// @Tags         orders
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	ord, err := h.orderService.GetByID(c.Request.Context(), storeID, orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ord)
}

// GetByNumber godoc
// @Summary      Get order by sequential number
// @Tags         orders
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        number path int true "Order number"
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/number/{number} [get]
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil || number < 1 {
		h.BadRequest(c, "Invalid order number")
		return
	}

	ord, err := h.orderService.GetByNumber(c.Request.Context(), storeID, number)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ord)
}

// List godoc
// @Summary      List orders
// @Description  Lists orders with pagination, customer search and status filter
// @Tags         orders
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Order status filter"
// @Param        search query string false "Search in customer name and notes"
// @Success      200 {object} dto.Response{data=[]orderapp.OrderListResponse,meta=dto.Meta}
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), storeID, filter)
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

	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// Update godoc
// @Summary      Update a draft order
// @Description  Updates the customer name or notes of an order still in draft
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body orderapp.UpdateOrderRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ord, err := h.orderService.Update(c.Request.Context(), storeID, orderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ord)
}

// Approve godoc
// @Summary      Approve a draft order
// @Tags         orders
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id}/approve [post]
func (h *OrderHandler) Approve(c *gin.Context) {
	h.transition(c, h.orderService.Approve)
}

// SendToProduction godoc
// @Summary      Send an approved order to production
// @Tags         orders
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id}/send-to-production [post]
func (h *OrderHandler) SendToProduction(c *gin.Context) {
	h.transition(c, h.orderService.SendToProduction)
}

// Cancel godoc
// @Summary      Cancel an order
// @Tags         orders
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.orderService.Cancel)
}

// Delete godoc
// @Summary      Delete an order
// @Description  Only draft and cancelled orders can be deleted
// @Tags         orders
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        id path string true "Order ID" format(uuid)
// @Success      204
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), storeID, orderID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// transition runs a status transition addressed by order ID
func (h *OrderHandler) transition(c *gin.Context, op func(ctx context.Context, storeID, orderID uuid.UUID) (*orderapp.OrderResponse, error)) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	ord, err := op(c.Request.Context(), storeID, orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ord)
}
