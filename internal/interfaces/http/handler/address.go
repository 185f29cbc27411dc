package handler

import (
	appcustomer "github.com/buildmart/backend/internal/application/customer"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AddressHandler handles address book API endpoints
type AddressHandler struct {
	BaseHandler
	service *appcustomer.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(service *appcustomer.AddressService) *AddressHandler {
	return &AddressHandler{service: service}
}

// addressRequest creates or updates an address book entry
type addressRequest struct {
	Line1       string `json:"line1" binding:"required"`
	Line2       string `json:"line2"`
	Subdistrict string `json:"subdistrict" binding:"required"`
	District    string `json:"district" binding:"required"`
	Province    string `json:"province" binding:"required"`
	ZipCode     string `json:"zip_code" binding:"required"`
	Phone       string `json:"phone"`
	IsDefault   bool   `json:"is_default"`
}

func (r addressRequest) toApplication() appcustomer.AddressRequest {
	return appcustomer.AddressRequest{
		Line1:       r.Line1,
		Line2:       r.Line2,
		Subdistrict: r.Subdistrict,
		District:    r.District,
		Province:    r.Province,
		ZipCode:     r.ZipCode,
		Phone:       r.Phone,
		IsDefault:   r.IsDefault,
	}
}

// List godoc
// @Summary      List addresses
// @Tags         addresses
// @Produce      json
// @Success      200 {object} APIResponse[[]customer.AddressResponse]
// @Router       /addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addresses, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, addresses)
}

// GetDefault godoc
// @Summary      Get the default address
// @Description  Returns the default address, or the earliest one when no default is set
// @Tags         addresses
// @Produce      json
// @Success      200 {object} APIResponse[customer.AddressResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /addresses/default [get]
func (h *AddressHandler) GetDefault(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	address, err := h.service.GetDefaultOrAny(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, address)
}

// Add godoc
// @Summary      Add an address
// @Description  Adds an address book entry. The first address becomes the default.
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Success      201 {object} APIResponse[customer.AddressResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /addresses [post]
func (h *AddressHandler) Add(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	address, err := h.service.Add(c.Request.Context(), userID, req.toApplication())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, address)
}

// Update godoc
// @Summary      Update an address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse[customer.AddressResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /addresses/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	address, err := h.service.Update(c.Request.Context(), userID, addressID, req.toApplication())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, address)
}

// Delete godoc
// @Summary      Delete an address
// @Description  Deletes an address. Deleting the default promotes the earliest remaining one.
// @Tags         addresses
// @Produce      json
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
