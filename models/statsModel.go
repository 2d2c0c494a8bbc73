package models

type OrderStats struct {
	TotalOrders       int     `json:"totalOrders"`
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalUnits        int     `json:"totalUnits"`
	TotalBoxes        int     `json:"totalBoxes"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	MedianOrderValue  float64 `json:"medianOrderValue"`
}

type ProductSales struct {
	Name    string  `json:"name"`
	Boxes   int     `json:"boxes"`
	Units   int     `json:"units"`
	Revenue float64 `json:"revenue"`
}

type TrendingProducts struct {
	MostSold  []ProductSales `json:"mostSold"`
	LeastSold []ProductSales `json:"leastSold"`
}

// GroupStats aggregates orders sharing a magazine or an agent.
type GroupStats struct {
	Name     string         `json:"name"`
	Orders   int            `json:"orders"`
	Units    int            `json:"units"`
	Boxes    int            `json:"boxes"`
	Revenue  float64        `json:"revenue"`
	Products map[string]int `json:"products"`
}
