package models

import "github.com/shopspring/decimal"

// Upper bounds for client-supplied quantities and prices. Within them units and totals
// cannot overflow.
const (
	MaxLineQuantity = 1_000_000
	MaxPrice        = 1_000_000_000
)

// LineUnits is the number of single units a line represents.
func LineUnits(quantity, boxes, unitsPerBox int) int {
	return quantity + boxes*unitsPerBox
}

// EffectivePrice returns the per-line override when one was given.
func EffectivePrice(price float64, customPrice *float64) float64 {
	if customPrice != nil {
		return *customPrice
	}
	return price
}

func lineAmount(units int, unitPrice float64) decimal.Decimal {
	return decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(units))).Round(2)
}

// LineTotal is units × unit price rounded half-up to cents.
func LineTotal(units int, unitPrice float64) float64 {
	return lineAmount(units, unitPrice).InexactFloat64()
}

// Compute fills Units and LineTotal from the line's quantities and prices.
func (i *OrderItem) Compute() {
	i.Units = LineUnits(i.Quantity, i.Boxes, i.UnitsPerBox)
	i.LineTotal = LineTotal(i.Units, EffectivePrice(i.Price, i.CustomPrice))
}

// OrderTotals recomputes every line and returns total amount, units and boxes.
func OrderTotals(items []OrderItem) (total float64, units int, boxes int) {
	sum := decimal.Zero
	for idx := range items {
		items[idx].Compute()
		sum = sum.Add(lineAmount(items[idx].Units, EffectivePrice(items[idx].Price, items[idx].CustomPrice)))
		units += items[idx].Units
		boxes += items[idx].Boxes
	}
	return sum.Round(2).InexactFloat64(), units, boxes
}

// Recompute refreshes the derived totals of the order from its items.
func (o *Order) Recompute() {
	o.Total, o.TotalUnits, o.TotalBoxes = OrderTotals(o.Items)
}
