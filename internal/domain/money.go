package domain

import "github.com/shopspring/decimal"

const (
	// DefaultHourlyRate is the rate used until the owner configures one.
	DefaultHourlyRate = 22

	// WATaxRate is the Washington sales-tax rate applied to non-cash
	// payments.
	WATaxRate = "0.1025"
)

// Discount types accepted on a job.
const (
	DiscountNone    = "none"
	DiscountPercent = "percent"
	DiscountDollar  = "dollar"
)

// HoursCost is hours x hourly rate, unrounded.
func HoursCost(hours, rate float64) float64 {
	c := decimal.NewFromFloat(hours).Mul(decimal.NewFromFloat(rate))
	return c.InexactFloat64()
}

// EstimateTotal applies the discount and, for non-cash payment methods,
// WA sales tax to a subtotal. Dollar discounts are taken before tax;
// the result never drops below zero. The returned value is unrounded;
// callers round to cents with Cents at display or invoice time.
func EstimateTotal(subtotal float64, discountType string, discountValue float64, paymentMethod string) float64 {
	base := decimal.NewFromFloat(subtotal)

	switch discountType {
	case DiscountPercent:
		pct := decimal.NewFromFloat(discountValue).Div(decimal.NewFromInt(100))
		base = base.Sub(base.Mul(pct))
	case DiscountDollar:
		base = base.Sub(decimal.NewFromFloat(discountValue))
	}

	if paymentMethod != "cash" {
		tax := decimal.RequireFromString(WATaxRate)
		base = base.Add(base.Mul(tax))
	}

	if base.IsNegative() {
		return 0
	}
	return base.InexactFloat64()
}

// Cents rounds an amount to two decimals, half away from zero.
// 99.225 rounds to 99.23.
func Cents(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}
