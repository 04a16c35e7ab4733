// Package checkout simulates the payment round-trip that concludes a
// storefront session. There is no real payment processor behind it.
package checkout

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/storefront-go/storefront/internal/cart"
	"github.com/storefront-go/storefront/internal/domain"
	apperrors "github.com/storefront-go/storefront/pkg/errors"
	"github.com/storefront-go/storefront/pkg/validator"
)

// PaymentDetails carries the shopper's card input. Only shape is checked;
// the numbers are never charged.
type PaymentDetails struct {
	CardholderName string `json:"cardholder_name" validate:"required"`
	CardNumber     string `json:"card_number" validate:"required,numeric,min=12,max=19"`
	ExpiryMonth    int    `json:"expiry_month" validate:"required,gte=1,lte=12"`
	ExpiryYear     int    `json:"expiry_year" validate:"required,gte=2000"`
	CVC            string `json:"cvc" validate:"required,numeric,len=3"`
}

// Order is the confirmation produced by a completed checkout. Totals are
// snapshotted from the cart at completion time.
type Order struct {
	ID        string            `json:"id"`
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	Subtotal  float64           `json:"subtotal"`
	Tax       float64           `json:"tax"`
	Total     float64           `json:"total"`
	Savings   float64           `json:"savings"`
	PlacedAt  time.Time         `json:"placed_at"`
}

// Service runs simulated checkouts.
type Service struct {
	logger *slog.Logger
	delay  time.Duration
}

// NewService creates a checkout service with the given simulated processor
// latency.
func NewService(logger *slog.Logger, delay time.Duration) *Service {
	return &Service{
		logger: logger,
		delay:  delay,
	}
}

// Submit runs the simulated payment round-trip for the cart. The cart stays
// interactive during the artificial delay and is cleared only after the
// payment completes; a cancelled context aborts the checkout and leaves the
// cart intact.
func (s *Service) Submit(ctx context.Context, eng *cart.Engine, details PaymentDetails) (*Order, error) {
	if eng.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}
	if err := validator.Validate(details); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	// Simulated payment processor round-trip.
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	lines := eng.Items()
	order := &Order{
		ID:        uuid.New().String(),
		Lines:     lines,
		ItemCount: domain.ItemCount(lines),
		Subtotal:  domain.Subtotal(lines),
		Tax:       domain.TotalTax(lines),
		Total:     domain.Total(lines),
		Savings:   domain.TotalSavings(lines),
		PlacedAt:  time.Now().UTC(),
	}

	eng.Clear(ctx)

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.Int("item_count", order.ItemCount),
		slog.Float64("total", order.Total),
	)

	return order, nil
}
