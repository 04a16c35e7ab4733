package checkout

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-go/storefront/internal/cart"
	"github.com/storefront-go/storefront/internal/domain"
	"github.com/storefront-go/storefront/internal/kvstore/memory"
	apperrors "github.com/storefront-go/storefront/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func validDetails() PaymentDetails {
	return PaymentDetails{
		CardholderName: "Ada Lovelace",
		CardNumber:     "4242424242424242",
		ExpiryMonth:    12,
		ExpiryYear:     2030,
		CVC:            "123",
	}
}

func newCartWithItems(t *testing.T) *cart.Engine {
	t.Helper()
	ctx := context.Background()
	e := cart.New(ctx, memory.New(), "cart:test", testLogger())
	e.AddItem(ctx, domain.Product{ID: 1, Title: "Rice", Category: "groceries", Price: 12.50, DiscountPercentage: 10}, 3)
	e.AddItem(ctx, domain.Product{ID: 2, Title: "Laptop", Category: "laptops", Price: 1299, DiscountPercentage: 17.94}, 1)
	return e
}

func TestSubmit_EmptyCartRejected(t *testing.T) {
	svc := NewService(testLogger(), 0)
	e := cart.New(context.Background(), memory.New(), "cart:empty", testLogger())

	order, err := svc.Submit(context.Background(), e, validDetails())

	require.Error(t, err)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSubmit_InvalidPaymentDetailsRejected(t *testing.T) {
	svc := NewService(testLogger(), 0)
	e := newCartWithItems(t)

	details := validDetails()
	details.CardNumber = "not-a-number"

	_, err := svc.Submit(context.Background(), e, details)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	// A rejected submission never touches the cart.
	assert.False(t, e.IsEmpty())
}

func TestSubmit_Success_SnapshotsTotalsAndClearsCart(t *testing.T) {
	svc := NewService(testLogger(), 0)
	e := newCartWithItems(t)

	wantSubtotal := e.Subtotal()
	wantTax := e.TotalTax()
	wantSavings := e.TotalSavings()

	order, err := svc.Submit(context.Background(), e, validDetails())

	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Len(t, order.Lines, 2)
	assert.Equal(t, 4, order.ItemCount)
	assert.Equal(t, wantSubtotal, order.Subtotal)
	assert.Equal(t, wantTax, order.Tax)
	assert.Equal(t, wantSubtotal+wantTax, order.Total)
	assert.InDelta(t, wantSavings, order.Savings, 1e-9)
	assert.False(t, order.PlacedAt.IsZero())

	assert.True(t, e.IsEmpty())
}

func TestSubmit_CartNotClearedAtInitiation(t *testing.T) {
	svc := NewService(testLogger(), 100*time.Millisecond)
	e := newCartWithItems(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := svc.Submit(context.Background(), e, validDetails())
		assert.NoError(t, err)
	}()

	// Mid-delay the cart is still populated and interactive.
	time.Sleep(30 * time.Millisecond)
	assert.False(t, e.IsEmpty())

	<-done
	assert.True(t, e.IsEmpty())
}

func TestSubmit_CancellationLeavesCartIntact(t *testing.T) {
	svc := NewService(testLogger(), time.Second)
	e := newCartWithItems(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	order, err := svc.Submit(ctx, e, validDetails())

	require.Error(t, err)
	assert.Nil(t, order)
	assert.False(t, e.IsEmpty())
}
