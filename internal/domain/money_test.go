package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTotal(t *testing.T) {
	tests := []struct {
		name          string
		subtotal      float64
		discountType  string
		discountValue float64
		payment       string
		want          float64
	}{
		{
			name:         "cash no discount is the subtotal",
			subtotal:     100,
			discountType: DiscountNone,
			payment:      "cash",
			want:         100,
		},
		{
			name:          "ten percent discount with card tax",
			subtotal:      100,
			discountType:  DiscountPercent,
			discountValue: 10,
			payment:       "card",
			want:          99.225, // (100 - 10) * 1.1025
		},
		{
			name:          "dollar discount before tax",
			subtotal:      200,
			discountType:  DiscountDollar,
			discountValue: 50,
			payment:       "venmo",
			want:          165.375,
		},
		{
			name:          "cash skips tax",
			subtotal:      100,
			discountType:  DiscountPercent,
			discountValue: 10,
			payment:       "cash",
			want:          90,
		},
		{
			name:          "oversized dollar discount floors at zero",
			subtotal:      40,
			discountType:  DiscountDollar,
			discountValue: 100,
			payment:       "card",
			want:          0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateTotal(tt.subtotal, tt.discountType, tt.discountValue, tt.payment)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCents(t *testing.T) {
	// The half-cent boundary rounds away from zero.
	assert.InDelta(t, 99.23, Cents(99.225), 1e-9)
	assert.InDelta(t, 99.22, Cents(99.224), 1e-9)
	assert.InDelta(t, 165.38, Cents(165.375), 1e-9)
	assert.InDelta(t, 0, Cents(0), 1e-9)
}

func TestCentsOnEstimateBoundary(t *testing.T) {
	total := EstimateTotal(100, DiscountPercent, 10, "card")
	assert.InDelta(t, 99.23, Cents(total), 1e-9)
}

func TestHoursCost(t *testing.T) {
	assert.InDelta(t, 257.4, HoursCost(11.7, 22), 1e-9)
	assert.InDelta(t, 0, HoursCost(0, 22), 1e-9)
}
