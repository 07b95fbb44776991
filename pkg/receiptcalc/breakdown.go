// Package receiptcalc derives the printed amounts of a bill from its
// VAT-inclusive line items.
//
// Every receipt, sale slip and report goes through ComputeBreakdown so that
// the same order always prints the same figures.
package receiptcalc

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
)

// LineItem is a tax-inclusive line total and its VAT rate in percent.
// A zero rate means the line carries no VAT.
type LineItem struct {
	Total   decimal.Decimal `json:"total"`
	VATRate decimal.Decimal `json:"vat_rate"`
}

// AmountBreakdown holds the figures printed at the foot of a receipt.
type AmountBreakdown struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	VAT           decimal.Decimal `json:"vat"`
	ServiceCharge decimal.Decimal `json:"service_charge"`
	Discount      decimal.Decimal `json:"discount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// ComputeBreakdown rounds VAT and subtotal to whole currency units.
//
// A positive authoritativeVAT is taken as the VAT amount; otherwise VAT is
// extracted from each line as total*rate/(100+rate). The subtotal is the
// rounded difference between the items total and the unrounded VAT, so
// subtotal+VAT may differ from the items total by one unit.
//
// An empty item list yields a zero breakdown.
func ComputeBreakdown(items []LineItem, authoritativeVAT, serviceCharge, discount decimal.Decimal) (AmountBreakdown, error) {
	if serviceCharge.IsNegative() {
		return AmountBreakdown{}, &InvalidAmountError{Field: "service_charge", Reason: "must not be negative"}
	}
	if discount.IsNegative() {
		return AmountBreakdown{}, &InvalidAmountError{Field: "discount", Reason: "must not be negative"}
	}

	itemsTotal := decimal.Zero
	derivedVAT := decimal.Zero
	for i, item := range items {
		if item.VATRate.IsNegative() {
			return AmountBreakdown{}, &InvalidAmountError{Field: fmt.Sprintf("items[%d].vat_rate", i), Reason: "must not be negative"}
		}
		itemsTotal = itemsTotal.Add(item.Total)
		if !item.VATRate.IsZero() {
			derivedVAT = derivedVAT.Add(item.Total.Mul(item.VATRate).Div(hundred.Add(item.VATRate)))
		}
	}

	if len(items) == 0 {
		return AmountBreakdown{
			Subtotal:      decimal.Zero,
			VAT:           decimal.Zero,
			ServiceCharge: decimal.Zero,
			Discount:      decimal.Zero,
			GrandTotal:    decimal.Zero,
		}, nil
	}

	vat := derivedVAT
	if authoritativeVAT.IsPositive() {
		vat = authoritativeVAT
	}

	roundedVAT := RoundUnit(vat)
	subtotal := RoundUnit(itemsTotal.Sub(vat))

	return AmountBreakdown{
		Subtotal:      subtotal,
		VAT:           roundedVAT,
		ServiceCharge: serviceCharge,
		Discount:      discount,
		GrandTotal:    subtotal.Add(roundedVAT).Add(serviceCharge).Sub(discount),
	}, nil
}

// RoundUnit rounds to the nearest whole unit, halves toward positive
// infinity.
func RoundUnit(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

// ServiceChargeFor returns percent of base rounded to a whole unit.
func ServiceChargeFor(base, percent decimal.Decimal) (decimal.Decimal, error) {
	if percent.IsNegative() {
		return decimal.Zero, &InvalidAmountError{Field: "service_charge_percent", Reason: "must not be negative"}
	}
	return RoundUnit(base.Mul(percent).Div(hundred)), nil
}

// Sum adds breakdowns field by field.
func Sum(breakdowns ...AmountBreakdown) AmountBreakdown {
	total := AmountBreakdown{
		Subtotal:      decimal.Zero,
		VAT:           decimal.Zero,
		ServiceCharge: decimal.Zero,
		Discount:      decimal.Zero,
		GrandTotal:    decimal.Zero,
	}
	for _, b := range breakdowns {
		total.Subtotal = total.Subtotal.Add(b.Subtotal)
		total.VAT = total.VAT.Add(b.VAT)
		total.ServiceCharge = total.ServiceCharge.Add(b.ServiceCharge)
		total.Discount = total.Discount.Add(b.Discount)
		total.GrandTotal = total.GrandTotal.Add(b.GrandTotal)
	}
	return total
}

// FromFloat converts a wire amount, rejecting NaN and infinities.
func FromFloat(field string, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, &InvalidAmountError{Field: field, Reason: "must be a finite number"}
	}
	return decimal.NewFromFloat(f), nil
}
