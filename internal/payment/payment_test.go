package payment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/purebite/purebite/internal/api"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) CreatePaymentOrder(ctx context.Context, email, tierID string) (*api.PaymentOrder, error) {
	args := m.Called(ctx, email, tierID)
	if o := args.Get(0); o != nil {
		return o.(*api.PaymentOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBackend) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*api.PaymentConfirmation, error) {
	args := m.Called(ctx, orderID, paymentID, signature)
	if c := args.Get(0); c != nil {
		return c.(*api.PaymentConfirmation), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Checkout(ctx context.Context, order api.PaymentOrder) (CheckoutResult, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(CheckoutResult), args.Error(1)
}

func testOrder() *api.PaymentOrder {
	return &api.PaymentOrder{
		OrderID:    "order_123",
		Amount:     9900,
		Currency:   "INR",
		TierID:     "premium_monthly",
		GatewayKey: "key_test",
	}
}

func TestUpgradeHappyPath(t *testing.T) {
	ctx := context.Background()
	backend := new(mockBackend)
	gw := new(mockGateway)

	backend.On("CreatePaymentOrder", ctx, "parent@example.com", "premium_monthly").
		Return(testOrder(), nil)
	gw.On("Checkout", ctx, *testOrder()).
		Return(CheckoutResult{PaymentID: "pay_9", Signature: "sig_order_123"}, nil)
	backend.On("VerifyPayment", ctx, "order_123", "pay_9", "sig_order_123").
		Return(&api.PaymentConfirmation{Email: "parent@example.com", TierID: "premium_monthly"}, nil)

	conf, err := Upgrade(ctx, backend, gw, "parent@example.com", "premium_monthly")

	require.NoError(t, err)
	assert.Equal(t, "premium_monthly", conf.TierID)
	backend.AssertExpectations(t)
	gw.AssertExpectations(t)
}

func TestUpgradeOrderCreationFailurePassesThrough(t *testing.T) {
	ctx := context.Background()
	backend := new(mockBackend)
	gw := new(mockGateway)

	wantErr := &api.StatusError{Status: 400, Detail: "Invalid tier"}
	backend.On("CreatePaymentOrder", ctx, "parent@example.com", "bogus").
		Return(nil, wantErr)

	conf, err := Upgrade(ctx, backend, gw, "parent@example.com", "bogus")

	assert.Nil(t, conf)
	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Invalid tier", se.Detail)
	assert.False(t, errors.Is(err, ErrVerification))
	gw.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything)
}

func TestUpgradeCheckoutAbortSkipsVerification(t *testing.T) {
	ctx := context.Background()
	backend := new(mockBackend)
	gw := new(mockGateway)

	backend.On("CreatePaymentOrder", ctx, "parent@example.com", "premium_monthly").
		Return(testOrder(), nil)
	gw.On("Checkout", ctx, *testOrder()).
		Return(CheckoutResult{}, errors.New("checkout dismissed"))

	conf, err := Upgrade(ctx, backend, gw, "parent@example.com", "premium_monthly")

	assert.Nil(t, conf)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrVerification))
	backend.AssertNotCalled(t, "VerifyPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpgradeVerificationFailureIsDistinguished(t *testing.T) {
	ctx := context.Background()
	backend := new(mockBackend)
	gw := new(mockGateway)

	backend.On("CreatePaymentOrder", ctx, "parent@example.com", "premium_monthly").
		Return(testOrder(), nil)
	gw.On("Checkout", ctx, *testOrder()).
		Return(CheckoutResult{PaymentID: "pay_9", Signature: "bad"}, nil)
	backend.On("VerifyPayment", ctx, "order_123", "pay_9", "bad").
		Return(nil, &api.StatusError{Status: 400, Detail: "Signature mismatch"})

	conf, err := Upgrade(ctx, backend, gw, "parent@example.com", "premium_monthly")

	assert.Nil(t, conf)
	assert.True(t, errors.Is(err, ErrVerification))
}

func TestSimulatedGatewaySignsOrder(t *testing.T) {
	res, err := Simulated{}.Checkout(context.Background(), *testOrder())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.PaymentID, "pay_"))
	assert.Equal(t, "sig_order_123", res.Signature)
}
