package handler

import (
	"github.com/buildmart/backend/internal/application/checkout"
	"github.com/buildmart/backend/internal/domain/order"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CheckoutHandler handles cart-to-order conversion
type CheckoutHandler struct {
	BaseHandler
	service *checkout.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// checkoutRequest converts the user's cart into an order
type checkoutRequest struct {
	AddressID   string `json:"address_id" binding:"required,uuid"`
	PaymentType string `json:"payment_type" binding:"required,oneof=bank_transfer cod"`
}

// Checkout godoc
// @Summary      Place an order from the cart
// @Description  Reserves stock for every cart line, snapshots product data into
// @Description  order lines, and purges the cart. All-or-nothing.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Success      201 {object} APIResponse[checkout.OrderResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	addressID, err := uuid.Parse(req.AddressID)
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	resp, err := h.service.Checkout(c.Request.Context(), userID, checkout.CheckoutRequest{
		AddressID:   addressID,
		PaymentType: order.PaymentType(req.PaymentType),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}
