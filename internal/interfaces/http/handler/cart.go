package handler

import (
	"github.com/buildmart/backend/internal/application/cart"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler handles shopping cart API endpoints
type CartHandler struct {
	BaseHandler
	service *cart.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(service *cart.Service) *CartHandler {
	return &CartHandler{service: service}
}

// List godoc
// @Summary      List cart lines
// @Description  Returns the user's cart lines joined with product display data
// @Tags         cart
// @Produce      json
// @Success      200 {object} APIResponse[cart.CartResponse]
// @Router       /cart [get]
func (h *CartHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// upsertLineRequest adds a product to the cart or replaces its quantity
type upsertLineRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

// UpsertLine godoc
// @Summary      Add or update a cart line
// @Description  Sets the quantity of a product in the cart, creating the line if needed
// @Tags         cart
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse[cart.CartResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /cart/lines [put]
func (h *CartHandler) UpsertLine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req upsertLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.service.UpsertLine(c.Request.Context(), userID, cart.UpsertLineRequest{
		ProductID: productID,
		Quantity:  req.Quantity,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveLine godoc
// @Summary      Remove a cart line
// @Description  Removes a product from the cart. Removing an absent line is a no-op.
// @Tags         cart
// @Produce      json
// @Success      204
// @Router       /cart/lines/{productId} [delete]
func (h *CartHandler) RemoveLine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.service.RemoveLine(c.Request.Context(), userID, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
