package services_test

import (
	"errors"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession is an in-memory stand-in for the framework session, holding
// just the order identifier the cart cares about.
type fakeSession struct {
	id  uint
	set bool
}

func (s *fakeSession) OrderID() (uint, bool) {
	if !s.set {
		return 0, false
	}
	return s.id, true
}

func (s *fakeSession) SetOrderID(id uint) {
	s.id = id
	s.set = true
}

func (s *fakeSession) ClearOrderID() {
	s.id = 0
	s.set = false
}

// fakePublisher records published order events.
type fakePublisher struct {
	events []rabbitmq.OrderPlaced
}

func (p *fakePublisher) PublishOrderPlaced(event rabbitmq.OrderPlaced) error {
	p.events = append(p.events, event)
	return nil
}

type cartFixture struct {
	service     *services.CartService
	orderRepo   *repositories.MockOrderRepository
	productRepo *repositories.MockProductRepository
	addressRepo *repositories.MockAddressRepository
	publisher   *fakePublisher
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()

	f := &cartFixture{
		orderRepo:   repositories.NewMockOrderRepository(),
		productRepo: repositories.NewMockProductRepository(),
		addressRepo: repositories.NewMockAddressRepository(),
		publisher:   &fakePublisher{},
	}
	f.service = services.NewCartService(f.orderRepo, f.productRepo, f.addressRepo, f.publisher)

	err := f.productRepo.Create(&models.Product{
		Title:  "Zip Hoodie",
		Slug:   "zip-hoodie",
		Price:  500,
		Active: true,
	})
	require.NoError(t, err)
	err = f.productRepo.Create(&models.Product{
		Title:  "Framed Poster",
		Slug:   "framed-poster",
		Price:  1200,
		Active: true,
	})
	require.NoError(t, err)

	return f
}

func TestResolveOrderCreatesForNewSession(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}

	order, err := f.service.ResolveOrder(sess, "")
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.False(t, order.Ordered)
	assert.Nil(t, order.UserID)

	stored, ok := sess.OrderID()
	assert.True(t, ok)
	assert.Equal(t, order.ID, stored)
}

func TestResolveOrderIsStableWithinSession(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}

	first, err := f.service.ResolveOrder(sess, "")
	require.NoError(t, err)
	second, err := f.service.ResolveOrder(sess, "")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestResolveOrderReplacesFinalizedOrder(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}

	first, err := f.service.ResolveOrder(sess, "")
	require.NoError(t, err)

	// Finalize the order behind the session's back.
	first.Ordered = true
	require.NoError(t, f.orderRepo.Save(first))

	second, err := f.service.ResolveOrder(sess, "")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, second.Ordered)

	stored, ok := sess.OrderID()
	assert.True(t, ok)
	assert.Equal(t, second.ID, stored)
}

func TestResolveOrderHealsUnknownSessionID(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}
	sess.SetOrderID(999)

	order, err := f.service.ResolveOrder(sess, "")
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.NotEqual(t, uint(999), order.ID)

	stored, _ := sess.OrderID()
	assert.Equal(t, order.ID, stored)
}

func TestResolveOrderAttachesAuthenticatedUser(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}

	anon, err := f.service.ResolveOrder(sess, "")
	require.NoError(t, err)
	assert.Nil(t, anon.UserID)

	owned, err := f.service.ResolveOrder(sess, "user-1")
	require.NoError(t, err)
	require.NotNil(t, owned.UserID)
	assert.Equal(t, anon.ID, owned.ID)
	assert.Equal(t, "user-1", *owned.UserID)

	// An already-owned order is not re-assigned.
	same, err := f.service.ResolveOrder(sess, "user-2")
	require.NoError(t, err)
	require.NotNil(t, same.UserID)
	assert.Equal(t, "user-1", *same.UserID)
}

func TestAddToCartMergesRepeatAdds(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}

	require.NoError(t, f.service.AddToCart(sess, "", "zip-hoodie", 2))
	require.NoError(t, f.service.AddToCart(sess, "", "zip-hoodie", 3))

	cart, err := f.service.GetCart(sess, "")
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, int64(2500), cart.RawSubtotal())
}

func TestAddToCartSeparateItemsPerProduct(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}

	require.NoError(t, f.service.AddToCart(sess, "", "zip-hoodie", 2))
	require.NoError(t, f.service.AddToCart(sess, "", "framed-poster", 1))

	cart, err := f.service.GetCart(sess, "")
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, int64(2200), cart.RawSubtotal())
	assert.Equal(t, "22.00", cart.Subtotal())
}

func TestAddToCartUnknownProduct(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}

	err := f.service.AddToCart(sess, "", "no-such-product", 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}

	assert.Error(t, f.service.AddToCart(sess, "", "zip-hoodie", 0))
	assert.Error(t, f.service.AddToCart(sess, "", "zip-hoodie", -1))
}

func TestIncreaseQuantity(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}

	require.NoError(t, f.service.AddToCart(sess, "", "zip-hoodie", 1))
	cart, err := f.service.GetCart(sess, "")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	require.NoError(t, f.service.IncreaseQuantity(cart.Items[0].ID))

	cart, err = f.service.GetCart(sess, "")
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestDecreaseQuantityAtTwoLeavesOne(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}

	require.NoError(t, f.service.AddToCart(sess, "", "zip-hoodie", 2))
	cart, err := f.service.GetCart(sess, "")
	require.NoError(t, err)

	require.NoError(t, f.service.DecreaseQuantity(cart.Items[0].ID))

	cart, err = f.service.GetCart(sess, "")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestDecreaseQuantityAtOneDeletesItem(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}

	require.NoError(t, f.service.AddToCart(sess, "", "zip-hoodie", 1))
	cart, err := f.service.GetCart(sess, "")
	require.NoError(t, err)

	require.NoError(t, f.service.DecreaseQuantity(cart.Items[0].ID))

	cart, err = f.service.GetCart(sess, "")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestRemoveItem(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}

	require.NoError(t, f.service.AddToCart(sess, "", "zip-hoodie", 5))
	cart, err := f.service.GetCart(sess, "")
	require.NoError(t, err)

	require.NoError(t, f.service.RemoveItem(cart.Items[0].ID))

	cart, err = f.service.GetCart(sess, "")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	err = f.service.RemoveItem(999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

// seedAddresses stores a billing and a shipping address for the user and
// returns their IDs.
func seedAddresses(t *testing.T, repo *repositories.MockAddressRepository, userID string) (uint, uint) {
	t.Helper()

	billing := &models.Address{
		UserID:      userID,
		Line1:       "1 Main St",
		City:        "Springfield",
		Zip:         "12345",
		AddressType: models.AddressTypeBilling,
	}
	require.NoError(t, repo.Create(billing))

	shipping := &models.Address{
		UserID:      userID,
		Line1:       "2 Side St",
		City:        "Springfield",
		Zip:         "12345",
		AddressType: models.AddressTypeShipping,
	}
	require.NoError(t, repo.Create(shipping))

	return billing.ID, shipping.ID
}

func TestCheckout(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}
	billingID, shippingID := seedAddresses(t, f.addressRepo, "user-1")

	require.NoError(t, f.service.AddToCart(sess, "user-1", "zip-hoodie", 2))

	order, err := f.service.Checkout(sess, "user-1", billingID, shippingID)
	require.NoError(t, err)

	assert.True(t, order.Ordered)
	require.NotNil(t, order.OrderedDate)
	require.NotNil(t, order.BillingAddressID)
	require.NotNil(t, order.ShippingAddressID)
	assert.Equal(t, billingID, *order.BillingAddressID)
	assert.Equal(t, shippingID, *order.ShippingAddressID)

	// The session no longer points at the finalized order.
	_, ok := sess.OrderID()
	assert.False(t, ok)

	// The next cart interaction starts fresh.
	next, err := f.service.ResolveOrder(sess, "user-1")
	require.NoError(t, err)
	assert.NotEqual(t, order.ID, next.ID)

	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, order.ID, event.OrderID)
	assert.Equal(t, order.ReferenceNumber(), event.Reference)
	assert.Equal(t, int64(1000), event.RawSubtotal)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}
	billingID, shippingID := seedAddresses(t, f.addressRepo, "user-1")

	_, err := f.service.Checkout(sess, "user-1", billingID, shippingID)
	assert.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestCheckoutRequiresAuthentication(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}

	_, err := f.service.Checkout(sess, "", 1, 2)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, repositories.ErrNotFound))
}

func TestCheckoutRejectsForeignAddress(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}
	billingID, shippingID := seedAddresses(t, f.addressRepo, "someone-else")

	require.NoError(t, f.service.AddToCart(sess, "user-1", "zip-hoodie", 1))

	_, err := f.service.Checkout(sess, "user-1", billingID, shippingID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCheckoutRejectsMismatchedAddressType(t *testing.T) {
	f := newCartFixture(t)
	sess := &fakeSession{}
	billingID, shippingID := seedAddresses(t, f.addressRepo, "user-1")

	require.NoError(t, f.service.AddToCart(sess, "user-1", "zip-hoodie", 1))

	// Billing and shipping swapped.
	_, err := f.service.Checkout(sess, "user-1", shippingID, billingID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
