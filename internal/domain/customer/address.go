package customer

import (
	"time"

	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/buildmart/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Address is a saved shipping address in a user's address book.
// Among a user's addresses exactly one carries IsDefault when any
// exist; the repository and service maintain that invariant.
type Address struct {
	shared.BaseEntity
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Line1       string
	Line2       string
	Subdistrict string
	District    string
	Province    string
	ZipCode     string
	Phone       string
	IsDefault   bool
}

// NewAddress creates a new address book entry
func NewAddress(userID uuid.UUID, line1, line2, subdistrict, district, province, zipCode, phone string) (*Address, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	// Validate through the value object so the address book and order
	// snapshots enforce identical rules.
	if _, err := valueobject.NewAddress(line1, subdistrict, district, province, zipCode,
		valueobject.WithLine2(line2), valueobject.WithPhone(phone)); err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}

	return &Address{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      userID,
		Line1:       line1,
		Line2:       line2,
		Subdistrict: subdistrict,
		District:    district,
		Province:    province,
		ZipCode:     zipCode,
		Phone:       phone,
	}, nil
}

// Update replaces the address fields
func (a *Address) Update(line1, line2, subdistrict, district, province, zipCode, phone string) error {
	if _, err := valueobject.NewAddress(line1, subdistrict, district, province, zipCode,
		valueobject.WithLine2(line2), valueobject.WithPhone(phone)); err != nil {
		return shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}

	a.Line1 = line1
	a.Line2 = line2
	a.Subdistrict = subdistrict
	a.District = district
	a.Province = province
	a.ZipCode = zipCode
	a.Phone = phone
	a.UpdatedAt = time.Now()
	return nil
}

// MarkDefault flags this address as the user's default
func (a *Address) MarkDefault() {
	a.IsDefault = true
	a.UpdatedAt = time.Now()
}

// UnmarkDefault clears the default flag
func (a *Address) UnmarkDefault() {
	a.IsDefault = false
	a.UpdatedAt = time.Now()
}

// Snapshot converts the entity into an immutable shipping address
// value for order capture.
func (a *Address) Snapshot() (valueobject.Address, error) {
	return valueobject.NewAddress(a.Line1, a.Subdistrict, a.District, a.Province, a.ZipCode,
		valueobject.WithLine2(a.Line2), valueobject.WithPhone(a.Phone))
}
