package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Kariqs/agent-orders-api/models"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderFilter narrows order queries. Zero values mean "no restriction"; From is
// inclusive and To exclusive. Bounds are compared in UTC, the zone orders are stored in.
type OrderFilter struct {
	Search   string
	Magazine string
	Agent    string
	From     *time.Time
	To       *time.Time
}

func (f OrderFilter) Apply(db *gorm.DB) *gorm.DB {
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := containsPattern(s)
		db = db.Where("LOWER(agent_name) LIKE ? ESCAPE '!' OR LOWER(magazin_name) LIKE ? ESCAPE '!'", like, like)
	}
	if f.Magazine != "" {
		db = db.Where("magazin_name = ?", f.Magazine)
	}
	if f.Agent != "" {
		db = db.Where("agent_name = ?", f.Agent)
	}
	if f.From != nil {
		db = db.Where("created_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		db = db.Where("created_at < ?", f.To.UTC())
	}
	return db
}

// FindOrders returns matching orders with their items, newest first.
func FindOrders(ctx context.Context, db *gorm.DB, filter OrderFilter) ([]models.Order, error) {
	var orders []models.Order
	err := filter.Apply(db.WithContext(ctx).Model(&models.Order{})).
		Preload("Items").
		Order("created_at DESC").
		Order("id DESC").
		Find(&orders).Error
	return orders, err
}

// FindOrdersPage is FindOrders with offset pagination; it also returns the total count.
func FindOrdersPage(ctx context.Context, db *gorm.DB, filter OrderFilter, page, limit int) ([]models.Order, int64, error) {
	var count int64
	if err := filter.Apply(db.WithContext(ctx).Model(&models.Order{})).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := filter.Apply(db.WithContext(ctx).Model(&models.Order{})).
		Preload("Items").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&orders).Error
	return orders, count, err
}

// DistinctValues lists the distinct non-empty values of an order column, sorted.
func DistinctValues(ctx context.Context, db *gorm.DB, column string) ([]string, error) {
	var values []string
	err := db.WithContext(ctx).Model(&models.Order{}).
		Distinct(column).
		Where(column+" <> ?", "").
		Order(column).
		Pluck(column, &values).Error
	return values, err
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// ComputeStats sums revenue, units and boxes over orders.
func ComputeStats(orders []models.Order) models.OrderStats {
	result := models.OrderStats{TotalOrders: len(orders)}
	if len(orders) == 0 {
		return result
	}

	revenue := decimal.Zero
	totals := make(stats.Float64Data, 0, len(orders))
	for _, o := range orders {
		for _, item := range o.Items {
			result.TotalUnits += item.Units
			result.TotalBoxes += item.Boxes
			revenue = revenue.Add(decimal.NewFromFloat(item.LineTotal))
		}
		totals = append(totals, o.Total)
	}
	result.TotalRevenue = revenue.Round(2).InexactFloat64()

	if mean, err := stats.Mean(totals); err == nil {
		result.AverageOrderValue = round2(mean)
	}
	if median, err := stats.Median(totals); err == nil {
		result.MedianOrderValue = round2(median)
	}
	return result
}

func productSales(orders []models.Order) []models.ProductSales {
	byName := map[string]*models.ProductSales{}
	for _, o := range orders {
		for _, item := range o.Items {
			ps, ok := byName[item.Name]
			if !ok {
				ps = &models.ProductSales{Name: item.Name}
				byName[item.Name] = ps
			}
			ps.Boxes += item.Boxes
			ps.Units += item.Units
			ps.Revenue = round2(ps.Revenue + item.LineTotal)
		}
	}
	out := make([]models.ProductSales, 0, len(byName))
	for _, ps := range byName {
		out = append(out, *ps)
	}
	return out
}

// RankProducts orders product sales by boxes, then units (both descending), then name.
func RankProducts(orders []models.Order) []models.ProductSales {
	sales := productSales(orders)
	sort.Slice(sales, func(i, j int) bool {
		if sales[i].Boxes != sales[j].Boxes {
			return sales[i].Boxes > sales[j].Boxes
		}
		if sales[i].Units != sales[j].Units {
			return sales[i].Units > sales[j].Units
		}
		return sales[i].Name < sales[j].Name
	})
	return sales
}

// Trending returns the limit best and worst selling products. LeastSold starts with the
// weakest product.
func Trending(orders []models.Order, limit int) models.TrendingProducts {
	if limit <= 0 {
		limit = 5
	}
	ranked := RankProducts(orders)

	most := ranked
	if len(most) > limit {
		most = most[:limit]
	}

	least := make([]models.ProductSales, 0, min(limit, len(ranked)))
	for i := len(ranked) - 1; i >= 0 && len(least) < limit; i-- {
		least = append(least, ranked[i])
	}
	return models.TrendingProducts{MostSold: most, LeastSold: least}
}

// GroupStats aggregates orders per key (magazine or agent), sorted by name.
func GroupStats(orders []models.Order, key func(models.Order) string) []models.GroupStats {
	groups := map[string]*models.GroupStats{}
	for _, o := range orders {
		name := key(o)
		g, ok := groups[name]
		if !ok {
			g = &models.GroupStats{Name: name, Products: map[string]int{}}
			groups[name] = g
		}
		g.Orders++
		g.Revenue = round2(g.Revenue + o.Total)
		for _, item := range o.Items {
			g.Units += item.Units
			g.Boxes += item.Boxes
			g.Products[item.Name] += item.Units
		}
	}

	out := make([]models.GroupStats, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func ByMagazine(o models.Order) string { return o.MagazinName }

func ByAgent(o models.Order) string { return o.AgentName }
