package services

import (
	"context"
	"testing"
	"time"

	"github.com/Kariqs/agent-orders-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func storeOrder(t *testing.T, db *gorm.DB, number uint, agent, magazine string, created time.Time, items ...models.OrderItem) models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber: number, AgentName: agent, MagazinName: magazine,
		CUI: "RO1", Address: "Str. 1", ResponsiblePerson: "Ana", Signature: "sig",
		Items: items, CreatedAt: created,
	}
	order.Recompute()
	require.NoError(t, db.Create(&order).Error)
	return order
}

func item(name string, price float64, boxes, unitsPerBox, quantity int) models.OrderItem {
	return models.OrderItem{Name: name, Price: price, Boxes: boxes, UnitsPerBox: unitsPerBox, Quantity: quantity}
}

func seedOrders(t *testing.T, db *gorm.DB) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	storeOrder(t, db, 1, "Ion", "Mega", day.Add(9*time.Hour), item("Apa", 2, 2, 6, 0), item("Suc", 5, 0, 12, 4))
	storeOrder(t, db, 2, "Vasile", "Profi", day.Add(23*time.Hour+59*time.Minute), item("Apa", 2, 1, 6, 0))
	storeOrder(t, db, 3, "Ion", "Profi Centru", day.AddDate(0, 0, 1), item("Bere", 4, 3, 6, 0))
}

func TestFindOrdersFilters(t *testing.T) {
	db := testDB(t)
	seedOrders(t, db)
	ctx := context.Background()

	all, err := FindOrders(ctx, db, OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, uint(3), all[0].OrderNumber)
	assert.Len(t, all[2].Items, 2)

	bySearch, err := FindOrders(ctx, db, OrderFilter{Search: "PROFI"})
	require.NoError(t, err)
	assert.Len(t, bySearch, 2)

	byAgent, err := FindOrders(ctx, db, OrderFilter{Search: "vas"})
	require.NoError(t, err)
	require.Len(t, byAgent, 1)
	assert.Equal(t, "Vasile", byAgent[0].AgentName)

	from := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	byDay, err := FindOrders(ctx, db, OrderFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, byDay, 2)

	exact, err := FindOrders(ctx, db, OrderFilter{Magazine: "Profi"})
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, uint(2), exact[0].OrderNumber)
}

func TestFindOrdersSearchIsLiteral(t *testing.T) {
	db := testDB(t)
	seedOrders(t, db)
	storeOrder(t, db, 4, "Ion_Pop", "Magazin 100%", fixedNow, item("Apa", 2, 1, 6, 0))
	ctx := context.Background()

	for _, search := range []string{"%", "_", "100%", "n_p"} {
		found, err := FindOrders(ctx, db, OrderFilter{Search: search})
		require.NoError(t, err)
		require.Len(t, found, 1, "search %q", search)
		assert.Equal(t, uint(4), found[0].OrderNumber)
	}

	none, err := FindOrders(ctx, db, OrderFilter{Search: "i_n"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFindOrdersPage(t *testing.T) {
	db := testDB(t)
	seedOrders(t, db)

	orders, count, err := FindOrdersPage(context.Background(), db, OrderFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	require.Len(t, orders, 1)
	assert.Equal(t, uint(1), orders[0].OrderNumber)
}

func TestDistinctValues(t *testing.T) {
	db := testDB(t)
	seedOrders(t, db)

	magazines, err := DistinctValues(context.Background(), db, "magazin_name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mega", "Profi", "Profi Centru"}, magazines)

	agents, err := DistinctValues(context.Background(), db, "agent_name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ion", "Vasile"}, agents)
}

func TestDeletedOrdersAreHidden(t *testing.T) {
	db := testDB(t)
	seedOrders(t, db)
	require.NoError(t, db.Delete(&models.Order{}, "order_number = ?", 1).Error)

	orders, err := FindOrders(context.Background(), db, OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestComputeStats(t *testing.T) {
	db := testDB(t)
	seedOrders(t, db)
	orders, err := FindOrders(context.Background(), db, OrderFilter{})
	require.NoError(t, err)

	stats := ComputeStats(orders)
	// totals: 44, 12, 72
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 128.0, stats.TotalRevenue)
	assert.Equal(t, 12+4+6+18, stats.TotalUnits)
	assert.Equal(t, 6, stats.TotalBoxes)
	assert.Equal(t, 42.67, stats.AverageOrderValue)
	assert.Equal(t, 44.0, stats.MedianOrderValue)

	empty := ComputeStats(nil)
	assert.Zero(t, empty.TotalOrders)
	assert.Zero(t, empty.AverageOrderValue)
}

func TestTrending(t *testing.T) {
	db := testDB(t)
	seedOrders(t, db)
	orders, err := FindOrders(context.Background(), db, OrderFilter{})
	require.NoError(t, err)

	trending := Trending(orders, 2)
	require.Len(t, trending.MostSold, 2)
	assert.Equal(t, "Apa", trending.MostSold[0].Name)
	assert.Equal(t, 3, trending.MostSold[0].Boxes)
	assert.Equal(t, "Bere", trending.MostSold[1].Name)

	require.Len(t, trending.LeastSold, 2)
	assert.Equal(t, "Suc", trending.LeastSold[0].Name)
	assert.Equal(t, 4, trending.LeastSold[0].Units)
	assert.Equal(t, "Bere", trending.LeastSold[1].Name)

	ranked := RankProducts(orders)
	assert.Len(t, ranked, 3)
	assert.Equal(t, 36.0, ranked[0].Revenue)
}

func TestGroupStats(t *testing.T) {
	db := testDB(t)
	seedOrders(t, db)
	orders, err := FindOrders(context.Background(), db, OrderFilter{})
	require.NoError(t, err)

	agents := GroupStats(orders, ByAgent)
	require.Len(t, agents, 2)
	assert.Equal(t, "Ion", agents[0].Name)
	assert.Equal(t, 2, agents[0].Orders)
	assert.Equal(t, 116.0, agents[0].Revenue)
	assert.Equal(t, 5, agents[0].Boxes)
	assert.Equal(t, map[string]int{"Apa": 12, "Suc": 4, "Bere": 18}, agents[0].Products)

	magazines := GroupStats(orders, ByMagazine)
	require.Len(t, magazines, 3)
	assert.Equal(t, []string{"Mega", "Profi", "Profi Centru"}, []string{magazines[0].Name, magazines[1].Name, magazines[2].Name})
}
