package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMAddressRepository is a GORM implementation of AddressRepository.
// Orders reference addresses with ON DELETE SET NULL (declared on the Order
// model), so deleting an address here never touches order history.
type GORMAddressRepository struct {
	db *gorm.DB
}

// NewGORMAddressRepository creates a new instance of GORMAddressRepository.
func NewGORMAddressRepository(db *gorm.DB) *GORMAddressRepository {
	return &GORMAddressRepository{
		db: db,
	}
}

// GetByUser retrieves all of a user's saved addresses.
func (r *GORMAddressRepository) GetByUser(userID string) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.Where("user_id = ?", userID).Order("id").Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to get addresses for user %s: %w", userID, err)
	}
	return addresses, nil
}

// GetByID retrieves a single address by its ID.
func (r *GORMAddressRepository) GetByID(id uint) (*models.Address, error) {
	var address models.Address
	if err := r.db.First(&address, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("address with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get address by ID %d: %w", id, err)
	}
	return &address, nil
}

// Create persists a new address.
func (r *GORMAddressRepository) Create(address *models.Address) error {
	if err := r.db.Create(address).Error; err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

// Update persists changes to an existing address.
func (r *GORMAddressRepository) Update(address *models.Address) error {
	res := r.db.Save(address)
	if res.Error != nil {
		return fmt.Errorf("failed to update address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("address with ID %d: %w", address.ID, ErrNotFound)
	}
	return nil
}

// Delete removes an address.
func (r *GORMAddressRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Address{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("address with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// ClearDefault unsets the default flag on the user's other addresses of the
// same type.
func (r *GORMAddressRepository) ClearDefault(userID, addressType string, exceptID uint) error {
	err := r.db.Model(&models.Address{}).
		Where("user_id = ? AND address_type = ? AND id <> ?", userID, addressType, exceptID).
		Update("default", false).Error
	if err != nil {
		return fmt.Errorf("failed to clear default addresses for user %s: %w", userID, err)
	}
	return nil
}
