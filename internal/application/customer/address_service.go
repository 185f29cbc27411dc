package customer

import (
	"context"
	"errors"

	"github.com/buildmart/backend/internal/domain/customer"
	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddressService manages a user's address book. It maintains the
// invariant that exactly one address is the default whenever the user
// has any addresses at all.
type AddressService struct {
	addresses customer.AddressRepository
	logger    *zap.Logger
}

// NewAddressService creates a new address book service
func NewAddressService(addresses customer.AddressRepository, logger *zap.Logger) *AddressService {
	return &AddressService{addresses: addresses, logger: logger}
}

// Add creates an address. The user's first address becomes the default
// regardless of the request; a later address marked default demotes
// the previous one.
func (s *AddressService) Add(ctx context.Context, userID uuid.UUID, req AddressRequest) (*AddressResponse, error) {
	addr, err := customer.NewAddress(userID, req.Line1, req.Line2, req.Subdistrict, req.District, req.Province, req.ZipCode, req.Phone)
	if err != nil {
		return nil, err
	}

	count, err := s.addresses.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		addr.MarkDefault()
	} else if req.IsDefault {
		if err := s.addresses.ClearDefaultForUser(ctx, userID); err != nil {
			return nil, err
		}
		addr.MarkDefault()
	}

	if err := s.addresses.Save(ctx, addr); err != nil {
		return nil, err
	}

	s.logger.Info("address added",
		zap.String("user_id", userID.String()),
		zap.String("address_id", addr.ID.String()),
		zap.Bool("is_default", addr.IsDefault))

	return ToAddressResponse(addr), nil
}

// Update modifies an address the user owns
func (s *AddressService) Update(ctx context.Context, userID, addressID uuid.UUID, req AddressRequest) (*AddressResponse, error) {
	addr, err := s.findOwned(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	if err := addr.Update(req.Line1, req.Line2, req.Subdistrict, req.District, req.Province, req.ZipCode, req.Phone); err != nil {
		return nil, err
	}

	if req.IsDefault && !addr.IsDefault {
		if err := s.addresses.ClearDefaultForUser(ctx, userID); err != nil {
			return nil, err
		}
		addr.MarkDefault()
	}

	if err := s.addresses.Save(ctx, addr); err != nil {
		return nil, err
	}

	return ToAddressResponse(addr), nil
}

// Delete removes an address. Deleting the default promotes the
// earliest remaining address so the invariant holds.
func (s *AddressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	addr, err := s.findOwned(ctx, userID, addressID)
	if err != nil {
		return err
	}

	wasDefault := addr.IsDefault

	if err := s.addresses.Delete(ctx, addr.ID); err != nil {
		return err
	}

	if !wasDefault {
		return nil
	}

	remaining, err := s.addresses.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return nil
	}

	oldest := &remaining[0]
	oldest.MarkDefault()
	return s.addresses.Save(ctx, oldest)
}

// List returns the user's addresses ordered by creation time
func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]AddressResponse, error) {
	addrs, err := s.addresses.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]AddressResponse, len(addrs))
	for i := range addrs {
		out[i] = *ToAddressResponse(&addrs[i])
	}
	return out, nil
}

// GetDefaultOrAny returns the default address, or the earliest one
// when no default exists, or NOT_FOUND for an empty book.
func (s *AddressService) GetDefaultOrAny(ctx context.Context, userID uuid.UUID) (*AddressResponse, error) {
	addr, err := s.addresses.FindDefaultByUser(ctx, userID)
	if err == nil {
		return ToAddressResponse(addr), nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	addrs, err := s.addresses.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, shared.ErrNotFound
	}
	return ToAddressResponse(&addrs[0]), nil
}

// findOwned loads an address and verifies ownership. A foreign
// address reads as NOT_FOUND so the API does not leak existence.
func (s *AddressService) findOwned(ctx context.Context, userID, addressID uuid.UUID) (*customer.Address, error) {
	addr, err := s.addresses.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if addr.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return addr, nil
}
