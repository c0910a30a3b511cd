package repositories

import (
	"fmt"
	"sort"
	"sync"

	"storefront/internal/models"
)

// MockAddressRepository is an in-memory implementation of AddressRepository.
type MockAddressRepository struct {
	addresses map[uint]models.Address
	nextID    uint
	mu        sync.RWMutex
}

// NewMockAddressRepository creates a new instance of MockAddressRepository.
func NewMockAddressRepository() *MockAddressRepository {
	return &MockAddressRepository{
		addresses: make(map[uint]models.Address),
	}
}

// GetByUser returns all of a user's addresses.
func (r *MockAddressRepository) GetByUser(userID string) ([]models.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var addresses []models.Address
	for _, a := range r.addresses {
		if a.UserID == userID {
			addresses = append(addresses, a)
		}
	}
	sort.Slice(addresses, func(i, j int) bool { return addresses[i].ID < addresses[j].ID })
	return addresses, nil
}

// GetByID returns an address by its ID.
func (r *MockAddressRepository) GetByID(id uint) (*models.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	address, ok := r.addresses[id]
	if !ok {
		return nil, fmt.Errorf("address with ID %d: %w", id, ErrNotFound)
	}
	return &address, nil
}

// Create adds a new address.
func (r *MockAddressRepository) Create(address *models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	address.ID = r.nextID
	r.addresses[address.ID] = *address
	return nil
}

// Update modifies an existing address.
func (r *MockAddressRepository) Update(address *models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.addresses[address.ID]; !ok {
		return fmt.Errorf("address with ID %d: %w", address.ID, ErrNotFound)
	}
	r.addresses[address.ID] = *address
	return nil
}

// Delete removes an address.
func (r *MockAddressRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.addresses[id]; !ok {
		return fmt.Errorf("address with ID %d: %w", id, ErrNotFound)
	}
	delete(r.addresses, id)
	return nil
}

// ClearDefault unsets the default flag on the user's other addresses of the
// same type.
func (r *MockAddressRepository) ClearDefault(userID, addressType string, exceptID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, a := range r.addresses {
		if a.UserID == userID && a.AddressType == addressType && id != exceptID && a.Default {
			a.Default = false
			r.addresses[id] = a
		}
	}
	return nil
}
