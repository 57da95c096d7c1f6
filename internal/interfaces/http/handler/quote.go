package handler

import (
	quoteapp "github.com/frameshop/backend/internal/application/quote"
	"github.com/gin-gonic/gin"
)

// QuoteHandler handles quotation API endpoints
type QuoteHandler struct {
	BaseHandler
	quoteService *quoteapp.Service
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService *quoteapp.Service) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// Calculate godoc
// @Summary      Calculate a framing quote
// @Description  Prices a custom frame from dimensions, selected supplies and payment term
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        X-Store-ID header string false "Store ID (optional for dev)"
// @Param        request body quoteapp.CalculateRequest true "Quote parameters"
// @Success      200 {object} dto.Response{data=quoteapp.CalculateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /quotes/calculate [post]
func (h *QuoteHandler) Calculate(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req quoteapp.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.quoteService.Calculate(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
