package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a value object representing a Thai shipping address.
// It is immutable and captured on the order as a snapshot, so later
// edits to the customer's address book never affect placed orders.
type Address struct {
	line1       string
	line2       string
	subdistrict string
	district    string
	province    string
	zipCode     string
	phone       string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithLine2 sets the optional second address line
func WithLine2(line2 string) AddressOption {
	return func(a *Address) {
		a.line2 = strings.TrimSpace(line2)
	}
}

// WithPhone sets the contact phone for the address
func WithPhone(phone string) AddressOption {
	return func(a *Address) {
		a.phone = strings.TrimSpace(phone)
	}
}

// NewAddress creates a new Address.
// Line1, subdistrict, district, province and zip code are required.
func NewAddress(line1, subdistrict, district, province, zipCode string, opts ...AddressOption) (Address, error) {
	line1 = strings.TrimSpace(line1)
	subdistrict = strings.TrimSpace(subdistrict)
	district = strings.TrimSpace(district)
	province = strings.TrimSpace(province)
	zipCode = strings.TrimSpace(zipCode)

	if err := validateRequired("line1", line1, 255); err != nil {
		return Address{}, err
	}
	if err := validateRequired("subdistrict", subdistrict, 100); err != nil {
		return Address{}, err
	}
	if err := validateRequired("district", district, 100); err != nil {
		return Address{}, err
	}
	if err := validateRequired("province", province, 100); err != nil {
		return Address{}, err
	}
	if err := validateZipCode(zipCode); err != nil {
		return Address{}, err
	}

	addr := Address{
		line1:       line1,
		subdistrict: subdistrict,
		district:    district,
		province:    province,
		zipCode:     zipCode,
	}

	for _, opt := range opts {
		opt(&addr)
	}

	if len(addr.line2) > 255 {
		return Address{}, fmt.Errorf("line2 cannot exceed 255 characters")
	}
	if len(addr.phone) > 20 {
		return Address{}, fmt.Errorf("phone cannot exceed 20 characters")
	}

	return addr, nil
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(line1, subdistrict, district, province, zipCode string, opts ...AddressOption) Address {
	addr, err := NewAddress(line1, subdistrict, district, province, zipCode, opts...)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// Line1 returns the first address line
func (a Address) Line1() string { return a.line1 }

// Line2 returns the second address line
func (a Address) Line2() string { return a.line2 }

// Subdistrict returns the subdistrict (tambon)
func (a Address) Subdistrict() string { return a.subdistrict }

// District returns the district (amphoe)
func (a Address) District() string { return a.district }

// Province returns the province
func (a Address) Province() string { return a.province }

// ZipCode returns the postal code
func (a Address) ZipCode() string { return a.zipCode }

// Phone returns the contact phone
func (a Address) Phone() string { return a.phone }

// IsEmpty returns true if the address has no content
func (a Address) IsEmpty() bool {
	return a.line1 == "" && a.subdistrict == "" && a.district == "" && a.province == ""
}

// FullAddress returns the complete formatted address string
func (a Address) FullAddress() string {
	if a.IsEmpty() {
		return ""
	}

	parts := make([]string, 0, 6)
	if a.line1 != "" {
		parts = append(parts, a.line1)
	}
	if a.line2 != "" {
		parts = append(parts, a.line2)
	}
	if a.subdistrict != "" {
		parts = append(parts, a.subdistrict)
	}
	if a.district != "" {
		parts = append(parts, a.district)
	}
	if a.province != "" {
		parts = append(parts, a.province)
	}
	if a.zipCode != "" {
		parts = append(parts, a.zipCode)
	}
	return strings.Join(parts, " ")
}

// String returns a string representation of the address
func (a Address) String() string {
	return a.FullAddress()
}

// Equals returns true if both addresses are equal
func (a Address) Equals(other Address) bool {
	return a == other
}

// addressJSON is used for JSON marshaling/unmarshaling
type addressJSON struct {
	Line1       string `json:"line1"`
	Line2       string `json:"line2,omitempty"`
	Subdistrict string `json:"subdistrict"`
	District    string `json:"district"`
	Province    string `json:"province"`
	ZipCode     string `json:"zip_code"`
	Phone       string `json:"phone,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Line1:       a.line1,
		Line2:       a.line2,
		Subdistrict: a.subdistrict,
		District:    a.district,
		Province:    a.province,
		ZipCode:     a.zipCode,
		Phone:       a.phone,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
// Empty JSON objects produce an empty address so optional columns scan cleanly.
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	if v.Line1 == "" && v.Subdistrict == "" && v.District == "" && v.Province == "" {
		*a = EmptyAddress()
		return nil
	}

	addr, err := NewAddress(v.Line1, v.Subdistrict, v.District, v.Province, v.ZipCode,
		WithLine2(v.Line2), WithPhone(v.Phone))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer for database storage.
// Stores as a JSON column.
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = EmptyAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = EmptyAddress()
		return nil
	}

	return json.Unmarshal(data, a)
}

func validateRequired(field, value string, maxLen int) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", field)
	}
	if len(value) > maxLen {
		return fmt.Errorf("%s cannot exceed %d characters", field, maxLen)
	}
	return nil
}

func validateZipCode(zipCode string) error {
	if zipCode == "" {
		return fmt.Errorf("zip code cannot be empty")
	}
	if len(zipCode) != 5 {
		return fmt.Errorf("zip code must be 5 digits")
	}
	for _, c := range zipCode {
		if c < '0' || c > '9' {
			return fmt.Errorf("zip code must contain only digits")
		}
	}
	return nil
}
