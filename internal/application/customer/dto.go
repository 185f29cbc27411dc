package customer

import (
	"time"

	"github.com/buildmart/backend/internal/domain/customer"
	"github.com/google/uuid"
)

// AddressRequest creates or updates an address book entry
type AddressRequest struct {
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	Subdistrict string `json:"subdistrict"`
	District    string `json:"district"`
	Province    string `json:"province"`
	ZipCode     string `json:"zip_code"`
	Phone       string `json:"phone"`
	IsDefault   bool   `json:"is_default"`
}

// AddressResponse is an address book entry
type AddressResponse struct {
	ID          uuid.UUID `json:"id"`
	Line1       string    `json:"line1"`
	Line2       string    `json:"line2,omitempty"`
	Subdistrict string    `json:"subdistrict"`
	District    string    `json:"district"`
	Province    string    `json:"province"`
	ZipCode     string    `json:"zip_code"`
	Phone       string    `json:"phone,omitempty"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToAddressResponse converts a domain address to its response form
func ToAddressResponse(a *customer.Address) *AddressResponse {
	return &AddressResponse{
		ID:          a.ID,
		Line1:       a.Line1,
		Line2:       a.Line2,
		Subdistrict: a.Subdistrict,
		District:    a.District,
		Province:    a.Province,
		ZipCode:     a.ZipCode,
		Phone:       a.Phone,
		IsDefault:   a.IsDefault,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
