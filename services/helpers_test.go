package services

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/Kariqs/agent-orders-api/initializers"
	"github.com/Kariqs/agent-orders-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := initializers.OpenDatabase("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, initializers.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	prev := Now
	Now = func() time.Time { return fixedNow }
	t.Cleanup(func() { Now = prev })
	return db
}

func signature(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	img.Set(5, 5, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, unitsPerBox int, stoc string) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: price, Category: "Bauturi", UnitsPerBox: unitsPerBox, Stoc: stoc}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func flex(v float64) *models.FlexFloat {
	f := models.FlexFloat(v)
	return &f
}

func line(productID uint, boxes, quantity float64) models.OrderItemInput {
	return models.OrderItemInput{ProductID: flex(float64(productID)), Boxes: flex(boxes), Quantity: flex(quantity)}
}

func orderRequest(t *testing.T, agent, magazine string, items ...models.OrderItemInput) models.CreateOrderRequest {
	return models.CreateOrderRequest{
		Items:             items,
		AgentName:         agent,
		MagazinName:       magazine,
		CUI:               "RO123456",
		Address:           "Str. Principala 1",
		ResponsiblePerson: "Maria",
		Signature:         signature(t),
	}
}
