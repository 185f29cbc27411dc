package handler

import (
	"context"

	apporder "github.com/buildmart/backend/internal/application/order"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles order lifecycle API endpoints
type OrderHandler struct {
	BaseHandler
	service *apporder.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service *apporder.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

// actor builds the acting identity from the JWT context
func (h *OrderHandler) actor(c *gin.Context) (apporder.Actor, bool) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return apporder.Actor{}, false
	}
	return apporder.Actor{ID: userID, Role: getRole(c)}, true
}

// orderID parses the order ID path parameter
func (h *OrderHandler) orderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return uuid.Nil, false
	}
	return id, true
}

// List godoc
// @Summary      List the user's orders
// @Tags         orders
// @Produce      json
// @Success      200 {object} APIResponse[[]apporder.SummaryResponse]
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var query apporder.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.ListByUser(c.Request.Context(), actor.ID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary      Get one of the user's orders
// @Description  Returns the order with its line snapshots and audit history
// @Tags         orders
// @Produce      json
// @Success      200 {object} APIResponse[apporder.Response]
// @Failure      404 {object} ErrorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), actor.ID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AttachSlip godoc
// @Summary      Attach a bank-transfer slip
// @Description  Records the slip reference and marks the payment as pending review.
// @Description  The order status itself does not change.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse[apporder.Response]
// @Failure      422 {object} ErrorResponse
// @Router       /orders/{id}/slip [post]
func (h *OrderHandler) AttachSlip(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	var req apporder.AttachSlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.AttachSlip(c.Request.Context(), actor, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel godoc
// @Summary      Cancel an order
// @Description  Routes the order to cancelled, req_cancel, or refunding depending
// @Description  on payment state, and releases reserved stock. A reason is required.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse[apporder.Response]
// @Failure      422 {object} ErrorResponse
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	var req apporder.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Cancel(c.Request.Context(), actor, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AdminList godoc
// @Summary      List all orders
// @Tags         admin-orders
// @Produce      json
// @Success      200 {object} APIResponse[[]apporder.SummaryResponse]
// @Router       /admin/orders [get]
func (h *OrderHandler) AdminList(c *gin.Context) {
	var query apporder.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// AdminStatusSummary godoc
// @Summary      Count orders per status
// @Tags         admin-orders
// @Produce      json
// @Success      200 {object} APIResponse[apporder.StatusSummaryResponse]
// @Router       /admin/orders/summary [get]
func (h *OrderHandler) AdminStatusSummary(c *gin.Context) {
	resp, err := h.service.StatusSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AdminGet godoc
// @Summary      Get any order
// @Tags         admin-orders
// @Produce      json
// @Success      200 {object} APIResponse[apporder.Response]
// @Failure      404 {object} ErrorResponse
// @Router       /admin/orders/{id} [get]
func (h *OrderHandler) AdminGet(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByIDAdmin(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AcceptPayment godoc
// @Summary      Accept a payment slip
// @Description  Marks the payment as checked and moves the order to pending
// @Tags         admin-orders
// @Produce      json
// @Success      200 {object} APIResponse[apporder.Response]
// @Failure      422 {object} ErrorResponse
// @Router       /admin/orders/{id}/accept-payment [post]
func (h *OrderHandler) AcceptPayment(c *gin.Context) {
	h.runTransition(c, h.service.AcceptPayment)
}

// RejectPayment godoc
// @Summary      Reject a payment slip
// @Description  Marks the slip review as rejected; the order stays in waiting_payment
// @Tags         admin-orders
// @Produce      json
// @Success      200 {object} APIResponse[apporder.Response]
// @Failure      422 {object} ErrorResponse
// @Router       /admin/orders/{id}/reject-payment [post]
func (h *OrderHandler) RejectPayment(c *gin.Context) {
	h.runTransition(c, h.service.RejectPayment)
}

// StartPreparing godoc
// @Summary      Start preparing an order
// @Tags         admin-orders
// @Produce      json
// @Success      200 {object} APIResponse[apporder.Response]
// @Failure      422 {object} ErrorResponse
// @Router       /admin/orders/{id}/preparing [post]
func (h *OrderHandler) StartPreparing(c *gin.Context) {
	h.runTransition(c, h.service.StartPreparing)
}

// Ship godoc
// @Summary      Mark an order as shipped
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse[apporder.Response]
// @Failure      422 {object} ErrorResponse
// @Router       /admin/orders/{id}/ship [post]
func (h *OrderHandler) Ship(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	var req apporder.ShipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Ship(c.Request.Context(), actor, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// MarkDelivered godoc
// @Summary      Mark an order as delivered
// @Tags         admin-orders
// @Produce      json
// @Success      200 {object} APIResponse[apporder.Response]
// @Failure      422 {object} ErrorResponse
// @Router       /admin/orders/{id}/delivered [post]
func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	h.runTransition(c, h.service.MarkDelivered)
}

// ConfirmReceipt godoc
// @Summary      Confirm receipt of a shipped order
// @Description  Lets the customer complete their own shipped order
// @Tags         orders
// @Produce      json
// @Success      200 {object} APIResponse[apporder.Response]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /orders/{id}/confirm-receipt [post]
func (h *OrderHandler) ConfirmReceipt(c *gin.Context) {
	h.runTransition(c, h.service.MarkDelivered)
}

// ConfirmRefund godoc
// @Summary      Confirm a refund
// @Description  Moves a refunding order to refunded
// @Tags         admin-orders
// @Produce      json
// @Success      200 {object} APIResponse[apporder.Response]
// @Failure      422 {object} ErrorResponse
// @Router       /admin/orders/{id}/refund [post]
func (h *OrderHandler) ConfirmRefund(c *gin.Context) {
	h.runTransition(c, h.service.ConfirmRefund)
}

// ResolveCancel godoc
// @Summary      Resolve a cancellation request
// @Description  Moves a req_cancel order to cancelled, or to refunding when a refund is owed
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse[apporder.Response]
// @Failure      422 {object} ErrorResponse
// @Router       /admin/orders/{id}/resolve-cancel [post]
func (h *OrderHandler) ResolveCancel(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	var req apporder.ResolveCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.ResolveCancel(c.Request.Context(), actor, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// runTransition executes a body-less status transition endpoint
func (h *OrderHandler) runTransition(
	c *gin.Context,
	fn func(ctx context.Context, actor apporder.Actor, orderID uuid.UUID) (*apporder.Response, error),
) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	resp, err := fn(c.Request.Context(), actor, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
