package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func TestLineUnits(t *testing.T) {
	assert.Equal(t, 3, LineUnits(3, 0, 12))
	assert.Equal(t, 24, LineUnits(0, 2, 12))
	assert.Equal(t, 29, LineUnits(5, 2, 12))
}

func TestEffectivePrice(t *testing.T) {
	assert.Equal(t, 10.0, EffectivePrice(10, nil))
	assert.Equal(t, 8.5, EffectivePrice(10, price(8.5)))
	assert.Equal(t, 0.0, EffectivePrice(10, price(0)))
}

func TestLineTotalRoundsHalfUp(t *testing.T) {
	assert.Equal(t, 0.35, LineTotal(1, 0.345))
	assert.Equal(t, 10.05, LineTotal(3, 3.35))
}

func TestOrderRecompute(t *testing.T) {
	order := Order{Items: []OrderItem{
		{Name: "Apa", Price: 2.5, Boxes: 2, UnitsPerBox: 6, Quantity: 1},
		{Name: "Suc", Price: 4, CustomPrice: price(3.75), Boxes: 0, UnitsPerBox: 12, Quantity: 4},
	}}
	order.Recompute()

	require.Len(t, order.Items, 2)
	assert.Equal(t, 13, order.Items[0].Units)
	assert.Equal(t, 32.5, order.Items[0].LineTotal)
	assert.Equal(t, 4, order.Items[1].Units)
	assert.Equal(t, 15.0, order.Items[1].LineTotal)
	assert.Equal(t, 47.5, order.Total)
	assert.Equal(t, 17, order.TotalUnits)
	assert.Equal(t, 2, order.TotalBoxes)
}

func TestOrderTotalsEmpty(t *testing.T) {
	total, units, boxes := OrderTotals(nil)
	assert.Zero(t, total)
	assert.Zero(t, units)
	assert.Zero(t, boxes)
}

func TestNormalizeStock(t *testing.T) {
	cases := map[string]string{
		"in stoc":      StockIn,
		"out of stoc":  StockOut,
		"  OUT  ":      StockOut,
		"In Stock":     StockIn,
		"indisponibil": StockIn,
		"":             StockIn,
		"whatever":     StockIn,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeStock(in), "input %q", in)
	}
}

func TestNormalizeBarcode(t *testing.T) {
	assert.Nil(t, NormalizeBarcode("   "))
	code := NormalizeBarcode(" 5941234567890 ")
	require.NotNil(t, code)
	assert.Equal(t, "5941234567890", *code)
}

func TestFlexFloatAcceptsStringsAndNumbers(t *testing.T) {
	var in OrderItemInput
	err := json.Unmarshal([]byte(`{"productId":"7","boxes":2,"quantity":"","customPrice":" 3.5 "}`), &in)
	require.NoError(t, err)

	assert.Equal(t, uint(7), in.ProductRef())
	boxes, err := in.Boxes.Int()
	require.NoError(t, err)
	assert.Equal(t, 2, boxes)
	quantity, err := in.Quantity.Int()
	require.NoError(t, err)
	assert.Equal(t, 0, quantity)
	assert.Equal(t, 3.5, in.CustomPrice.Float())
}

func TestFlexFloatRejectsGarbage(t *testing.T) {
	var in OrderItemInput
	err := json.Unmarshal([]byte(`{"boxes":"two"}`), &in)
	assert.Error(t, err)
}

func TestFlexFloatRejectsNonFiniteAndBooleans(t *testing.T) {
	for _, body := range []string{
		`{"customPrice":"NaN"}`,
		`{"customPrice":"Inf"}`,
		`{"customPrice":"-Infinity"}`,
		`{"boxes":true}`,
		`{"quantity":false}`,
		`{"boxes":[1]}`,
		`{"boxes":{"n":1}}`,
	} {
		var in OrderItemInput
		err := json.Unmarshal([]byte(body), &in)
		assert.Error(t, err, body)
		if err != nil {
			assert.Contains(t, err.Error(), "invalid number", body)
		}
	}

	var product ProductInput
	assert.Error(t, json.Unmarshal([]byte(`{"price":"NaN"}`), &product))
}

func TestFlexFloatIntRejectsFractions(t *testing.T) {
	f := FlexFloat(1.5)
	_, err := f.Int()
	assert.Error(t, err)

	var missing *FlexFloat
	v, err := missing.Int()
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestProductRefFallsBackToLegacyID(t *testing.T) {
	var in OrderItemInput
	require.NoError(t, json.Unmarshal([]byte(`{"_id":12}`), &in))
	assert.Equal(t, uint(12), in.ProductRef())

	require.NoError(t, json.Unmarshal([]byte(`{"productId":0,"_id":0}`), &in))
	assert.Zero(t, in.ProductRef())
}
