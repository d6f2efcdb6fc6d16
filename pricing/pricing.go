// Package pricing derives checkout totals from the catalog's tax-inclusive
// prices. Totals are always computed server side; a client-supplied total is
// only ever compared against the result, never trusted.
package pricing

import (
	"github.com/bikinisbytelly/bikinis-api/models"
	"github.com/shopspring/decimal"
)

var (
	taxDivisor            = decimal.NewFromFloat(1.08)
	flatShipping          = decimal.NewFromInt(10)
	freeShippingThreshold = decimal.NewFromInt(100)
	oneCent               = decimal.NewFromFloat(0.01)
)

type Quote struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// GoodsTotal sums unit price times quantity across the cart.
func GoodsTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.Round(2)
}

// QuoteGoods breaks a tax-inclusive goods total into subtotal, tax and
// shipping. Tax is the residual of the rounded subtotal so the identity
// subtotal + tax + shipping == total holds to the cent.
func QuoteGoods(goods decimal.Decimal) Quote {
	goods = goods.Round(2)
	subtotal := goods.Div(taxDivisor).Round(2)
	tax := goods.Sub(subtotal)

	shipping := flatShipping
	if goods.GreaterThanOrEqual(freeShippingThreshold) {
		shipping = decimal.Zero
	}

	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    goods.Add(shipping),
	}
}

// Cents converts decimal dollars to integer minor units for the payment
// gateway boundary.
func Cents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

// WithinOneCent reports whether two amounts agree to the cent.
func WithinOneCent(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(oneCent)
}
