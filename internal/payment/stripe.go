// Package payment creates hosted payment links for trips.
// The provider chain is product → price → payment link; the trip ID rides
// along as metadata so completed payments can be correlated later.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// LinkRequest describes one trip to sell.
type LinkRequest struct {
	Name        string
	Description string
	Images      []string
	// AmountCents is the unit price in the smallest currency unit.
	AmountCents int64
	TripID      string
	// SuccessURL is where the provider sends the buyer after completion.
	SuccessURL string
}

// LinkCreator is implemented by payment providers. The trip service depends
// on this interface so it can be unit-tested without touching Stripe.
type LinkCreator interface {
	// CreateLink provisions a payment link and returns its URL.
	CreateLink(ctx context.Context, req LinkRequest) (string, error)
}

// StripeLinkCreator implements LinkCreator against the Stripe API.
type StripeLinkCreator struct {
	api *client.API
}

// NewStripeLinkCreator constructs a StripeLinkCreator with the given secret key.
func NewStripeLinkCreator(secretKey string) *StripeLinkCreator {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeLinkCreator{api: api}
}

// CreateLink creates the product, a one-off price, and the payment link.
func (s *StripeLinkCreator) CreateLink(ctx context.Context, req LinkRequest) (string, error) {
	productParams := &stripe.ProductParams{
		Params: stripe.Params{Context: ctx},
		Name:   stripe.String(req.Name),
		Images: stripe.StringSlice(req.Images),
	}
	if req.Description != "" {
		productParams.Description = stripe.String(req.Description)
	}
	product, err := s.api.Products.New(productParams)
	if err != nil {
		return "", fmt.Errorf("payment.StripeLinkCreator.CreateLink: product: %w", err)
	}

	priceParams := &stripe.PriceParams{
		Params:     stripe.Params{Context: ctx},
		Product:    stripe.String(product.ID),
		UnitAmount: stripe.Int64(req.AmountCents),
		Currency:   stripe.String(string(stripe.CurrencyEUR)),
	}
	price, err := s.api.Prices.New(priceParams)
	if err != nil {
		return "", fmt.Errorf("payment.StripeLinkCreator.CreateLink: price: %w", err)
	}

	linkParams := &stripe.PaymentLinkParams{
		Params: stripe.Params{Context: ctx},
		LineItems: []*stripe.PaymentLinkLineItemParams{
			{Price: stripe.String(price.ID), Quantity: stripe.Int64(1)},
		},
		AfterCompletion: &stripe.PaymentLinkAfterCompletionParams{
			Type: stripe.String("redirect"),
			Redirect: &stripe.PaymentLinkAfterCompletionRedirectParams{
				URL: stripe.String(req.SuccessURL),
			},
		},
	}
	linkParams.AddMetadata("tripId", req.TripID)

	link, err := s.api.PaymentLinks.New(linkParams)
	if err != nil {
		return "", fmt.Errorf("payment.StripeLinkCreator.CreateLink: link: %w", err)
	}

	return link.URL, nil
}
