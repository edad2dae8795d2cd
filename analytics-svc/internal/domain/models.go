package domain

import "time"

// Dashboard is the admin overview of orders and menu.
type Dashboard struct {
	OrdersByStatus map[string]int `json:"orders_by_status"`
	TotalOrders    int            `json:"total_orders"`
	OpenOrders     int            `json:"open_orders"`
	Revenue        float64        `json:"revenue"`
	TodayOrders    int            `json:"today_orders"`
	TodayRevenue   float64        `json:"today_revenue"`
	MenuItems      int            `json:"menu_items"`
	OutOfStock     int            `json:"out_of_stock"`
	TopItems       []TopItem      `json:"top_items"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

type TopItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// Revenue totals; cancelled orders never count.
type Revenue struct {
	Total        float64
	TodayOrders  int
	TodayRevenue float64
}

type MenuCounts struct {
	Items      int
	OutOfStock int
}

const (
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Statuses lists every order status so the dashboard reports zeros too.
var Statuses = []string{"pending", "confirmed", "preparing", "ready", StatusDelivered, StatusCancelled}
