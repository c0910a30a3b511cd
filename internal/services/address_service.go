package services

import (
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// AddressService handles business logic for the per-user address book.
type AddressService struct {
	repo repositories.AddressRepository
}

// NewAddressService creates a new AddressService.
func NewAddressService(repo repositories.AddressRepository) *AddressService {
	return &AddressService{
		repo: repo,
	}
}

// ListAddresses retrieves all of a user's saved addresses.
func (s *AddressService) ListAddresses(userID string) ([]models.Address, error) {
	return s.repo.GetByUser(userID)
}

// owned fetches an address and verifies ownership, reporting not-found on a
// mismatch.
func (s *AddressService) owned(userID string, id uint) (*models.Address, error) {
	address, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, fmt.Errorf("address with ID %d: %w", id, repositories.ErrNotFound)
	}
	return address, nil
}

// GetAddress retrieves one of the user's addresses.
func (s *AddressService) GetAddress(userID string, id uint) (*models.Address, error) {
	return s.owned(userID, id)
}

// CreateAddress persists a new address. Marking it default clears the flag
// on the user's other addresses of the same type.
func (s *AddressService) CreateAddress(address *models.Address) error {
	if err := s.repo.Create(address); err != nil {
		return err
	}
	if address.Default {
		return s.repo.ClearDefault(address.UserID, address.AddressType, address.ID)
	}
	return nil
}

// UpdateAddress applies changes to one of the user's addresses.
func (s *AddressService) UpdateAddress(userID string, address *models.Address) error {
	existing, err := s.owned(userID, address.ID)
	if err != nil {
		return err
	}
	address.UserID = existing.UserID
	address.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(address); err != nil {
		return err
	}
	if address.Default {
		return s.repo.ClearDefault(address.UserID, address.AddressType, address.ID)
	}
	return nil
}

// DeleteAddress removes one of the user's addresses. Orders referencing it
// keep their history; the storage layer nulls the reference instead of
// cascading.
func (s *AddressService) DeleteAddress(userID string, id uint) error {
	if _, err := s.owned(userID, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
