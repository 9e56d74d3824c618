package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotal(t *testing.T) {
	t.Run("full quote with discount", func(t *testing.T) {
		q := &Quote{
			GuestCount:       10,
			PricePerGuest:    500,
			ChefCost:         1000,
			ServingStaffCost: 500,
			DiscountAmount:   700,
			CustomCosts: []CustomCost{
				{Description: "Hyra av porslin", Amount: 200},
			},
		}

		// 10*500 + 1000 + 500 + 200 = 6700, minus 700 = 6000, plus 12% = 6720
		assert.InDelta(t, 6720.0, CalculateTotal(q), 0.001)
	})

	t.Run("nil quote", func(t *testing.T) {
		assert.Equal(t, 0.0, CalculateTotal(nil))
	})

	t.Run("zero quote", func(t *testing.T) {
		assert.Equal(t, 0.0, CalculateTotal(&Quote{}))
	})

	t.Run("discount larger than subtotal goes negative", func(t *testing.T) {
		q := &Quote{
			GuestCount:     2,
			PricePerGuest:  100,
			DiscountAmount: 1000,
		}

		// (200 - 1000) * 1.12 = -896
		assert.InDelta(t, -896.0, CalculateTotal(q), 0.001)
	})

	t.Run("custom costs summed into subtotal", func(t *testing.T) {
		q := &Quote{
			CustomCosts: []CustomCost{
				{Amount: 100},
				{Amount: 50.5},
			},
		}

		assert.InDelta(t, 150.5*1.12, CalculateTotal(q), 0.001)
	})
}

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want float64
	}{
		{"number", `123.45`, 123.45},
		{"integer", `200`, 200},
		{"numeric string", `"150"`, 150},
		{"decimal string", `"99.5"`, 99.5},
		{"empty string", `""`, 0},
		{"whitespace string", `"  "`, 0},
		{"non-numeric string", `"abc"`, 0},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tt.json), &a))
			assert.InDelta(t, tt.want, float64(a), 0.001)
		})
	}
}

func TestAmountInsideCustomCost(t *testing.T) {
	var c CustomCost
	require.NoError(t, json.Unmarshal([]byte(`{"description":"Bord","amount":"250"}`), &c))
	assert.Equal(t, Amount(250), c.Amount)
}

func TestCountUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Count
	}{
		{"number", `10`, 10},
		{"numeric string", `"25"`, 25},
		{"empty string", `""`, 0},
		{"non-numeric string", `"abc"`, 0},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Count
			require.NoError(t, json.Unmarshal([]byte(tt.json), &c))
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestQuoteDecodeWithClearedNumericInputs(t *testing.T) {
	// Cleared form inputs are stored as "" for any numeric field; a record
	// like that must decode, not poison the whole collection
	raw := `{
		"id": "q1",
		"customer": "Volvo",
		"guestCount": 10,
		"pricePerGuest": "",
		"chefCost": "1000",
		"servingStaffCost": null,
		"discountAmount": "",
		"numChefs": "",
		"numServingStaff": "2",
		"numVegan": ""
	}`

	var q Quote
	require.NoError(t, json.Unmarshal([]byte(raw), &q))

	assert.Equal(t, Count(10), q.GuestCount)
	assert.Equal(t, Amount(0), q.PricePerGuest)
	assert.Equal(t, Amount(1000), q.ChefCost)
	assert.Equal(t, Amount(0), q.ServingStaffCost)
	assert.Equal(t, Amount(0), q.DiscountAmount)
	assert.Equal(t, Count(0), q.NumChefs)
	assert.Equal(t, Count(2), q.NumServingStaff)
	assert.Equal(t, Count(0), q.NumVegan)

	// 1000 * 1.12
	assert.InDelta(t, 1120.0, CalculateTotal(&q), 0.001)
}

func TestCalculateTotalVATIsSeparateTerm(t *testing.T) {
	// total must equal discounted + discounted*0.12 exactly; folding into
	// discounted*1.12 rounds differently in float64
	for _, discounted := range []float64{0.01, 0.29, 123.45, 6000, 19999.99} {
		q := &Quote{ChefCost: Amount(discounted)}
		want := discounted + discounted*VATRate
		assert.Equal(t, want, CalculateTotal(q), "discounted=%v", discounted)
	}
}

func TestFormatSEK(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0,00 kr"},
		{6720, "6 720,00 kr"},
		{12345.5, "12 345,50 kr"},
		{1234567.89, "1 234 567,89 kr"},
		{999, "999,00 kr"},
		{-896, "−896,00 kr"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSEK(tt.value))
	}
}
