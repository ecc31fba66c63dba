// Package payment drives the premium checkout: order creation, the handoff
// to the payment widget and the verification call. The widget itself sits
// behind the Gateway interface so the flow tests without a browser.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/purebite/purebite/internal/api"
)

// ErrVerification marks a payment that the gateway accepted but the backend
// could not verify. The UI must surface this distinctly (contact support),
// never retry it silently.
var ErrVerification = errors.New("payment verification failed")

// CheckoutResult is what the widget hands back after a completed checkout.
type CheckoutResult struct {
	PaymentID string
	Signature string
}

// Gateway is the external payment widget: begin a checkout for an order and
// eventually return its outcome.
type Gateway interface {
	Checkout(ctx context.Context, order api.PaymentOrder) (CheckoutResult, error)
}

// OrderAPI is the slice of the backend client the flow needs.
type OrderAPI interface {
	CreatePaymentOrder(ctx context.Context, email, tierID string) (*api.PaymentOrder, error)
	VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*api.PaymentConfirmation, error)
}

// Upgrade runs the full checkout: create the order, hand it to the gateway,
// verify the outcome. Order-creation and gateway errors come back as-is; a
// verification failure is wrapped in ErrVerification.
func Upgrade(ctx context.Context, backend OrderAPI, gw Gateway, email, tierID string) (*api.PaymentConfirmation, error) {
	order, err := backend.CreatePaymentOrder(ctx, email, tierID)
	if err != nil {
		return nil, err
	}

	result, err := gw.Checkout(ctx, *order)
	if err != nil {
		return nil, err
	}

	conf, err := backend.VerifyPayment(ctx, order.OrderID, result.PaymentID, result.Signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}
	return conf, nil
}

// Simulated stands in for the real payment widget. It approves every
// checkout with generated ids, which the demo backend accepts.
type Simulated struct{}

func (Simulated) Checkout(_ context.Context, order api.PaymentOrder) (CheckoutResult, error) {
	return CheckoutResult{
		PaymentID: "pay_" + uuid.NewString(),
		Signature: "sig_" + order.OrderID,
	}, nil
}
