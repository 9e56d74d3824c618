package domain

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// VATRate is the flat Swedish catering VAT applied on top of the
// discounted subtotal
const VATRate = 0.12

// Amount is a float64 that tolerates the store's loose typing: values
// arrive as JSON numbers, numeric strings or empty strings depending on
// which client wrote the record. A cleared form input is stored as "".
// Anything non-numeric coerces to zero.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount(coerceNumber(data))
	return nil
}

// Count is an Amount counterpart for whole-number fields (guests, staff,
// dietary counts), with the same loose decoding
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	*c = Count(coerceNumber(data))
	return nil
}

func coerceNumber(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return 0
	}
	s := string(data)
	if s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return 0
		}
		s = strings.TrimSpace(unquoted)
	}
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// CalculateTotal returns the customer-facing total including VAT.
//
//	subtotal   = guests*pricePerGuest + chefCost + servingStaffCost + Σ customCosts
//	discounted = subtotal - discount
//	vat        = discounted * VATRate
//	total      = discounted + vat
//
// VAT is computed as a separate term and added, not folded into one
// multiplication: the two roundings differ in float64 and downstream
// totals must match what the store's other clients compute.
// The discount is applied before tax and is not floored at zero; an
// over-discounted quote yields a negative total. A nil quote totals zero.
func CalculateTotal(q *Quote) float64 {
	if q == nil {
		return 0
	}
	subtotal := float64(q.GuestCount)*float64(q.PricePerGuest) + float64(q.ChefCost) + float64(q.ServingStaffCost)
	for _, c := range q.CustomCosts {
		subtotal += float64(c.Amount)
	}
	discounted := subtotal - float64(q.DiscountAmount)
	vat := discounted * VATRate
	return discounted + vat
}

// FormatSEK renders an amount as Swedish kronor, sv-SE style:
// space-grouped thousands, comma decimals, "kr" suffix (12 345,50 kr).
func FormatSEK(v float64) string {
	neg := v < 0
	abs := math.Abs(v)
	whole := int64(math.Floor(abs))
	cents := int64(math.Round((abs - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(d)
	}

	sign := ""
	if neg && (whole != 0 || cents != 0) {
		sign = "−"
	}
	return fmt.Sprintf("%s%s,%02d kr", sign, b.String(), cents)
}
