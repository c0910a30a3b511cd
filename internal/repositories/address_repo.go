package repositories

import (
	"storefront/internal/models"
)

// AddressRepository defines the interface for address-book data access.
type AddressRepository interface {
	GetByUser(userID string) ([]models.Address, error)
	GetByID(id uint) (*models.Address, error)
	Create(address *models.Address) error
	Update(address *models.Address) error
	Delete(id uint) error
	// ClearDefault unsets the default flag on the user's other addresses of
	// the given type, so at most one default exists per (user, type).
	ClearDefault(userID, addressType string, exceptID uint) error
}
