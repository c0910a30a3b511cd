package services_test

import (
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentFixture(t *testing.T) (*services.PaymentService, *repositories.MockOrderRepository) {
	t.Helper()

	orderRepo := repositories.NewMockOrderRepository()
	paymentRepo := repositories.NewMockPaymentRepository()
	return services.NewPaymentService(paymentRepo, orderRepo), orderRepo
}

func TestPaymentService_RecordPayment(t *testing.T) {
	service, orderRepo := newPaymentFixture(t)

	order := &models.Order{StartDate: time.Now()}
	require.NoError(t, orderRepo.Create(order))

	payment, err := service.RecordPayment(order.ID, models.PaymentMethodPaypal, 2200, true, `{"status":"COMPLETED"}`)
	require.NoError(t, err)

	assert.NotZero(t, payment.ID)
	assert.Equal(t, order.ID, payment.OrderID)
	assert.True(t, payment.Successful)
	assert.Equal(t, int64(2200), payment.Amount)
	assert.Equal(t, `{"status":"COMPLETED"}`, payment.RawResponse)
	assert.Equal(t, "PAYMENT-ORDER-1-1", payment.ReferenceNumber())
}

func TestPaymentService_RecordsFailedAttempts(t *testing.T) {
	service, orderRepo := newPaymentFixture(t)

	order := &models.Order{StartDate: time.Now()}
	require.NoError(t, orderRepo.Create(order))

	_, err := service.RecordPayment(order.ID, models.PaymentMethodPaypal, 2200, false, `{"error":"INSTRUMENT_DECLINED"}`)
	require.NoError(t, err)
	_, err = service.RecordPayment(order.ID, models.PaymentMethodPaypal, 2200, true, `{"status":"COMPLETED"}`)
	require.NoError(t, err)

	payments, err := service.ListPayments(order.ID)
	require.NoError(t, err)

	// The ledger keeps every attempt, oldest first, failures included.
	require.Len(t, payments, 2)
	assert.False(t, payments[0].Successful)
	assert.Equal(t, `{"error":"INSTRUMENT_DECLINED"}`, payments[0].RawResponse)
	assert.True(t, payments[1].Successful)
}

func TestPaymentService_UnknownOrder(t *testing.T) {
	service, _ := newPaymentFixture(t)

	_, err := service.RecordPayment(999, models.PaymentMethodPaypal, 100, true, "{}")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = service.ListPayments(999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
