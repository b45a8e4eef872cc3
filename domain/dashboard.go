package domain

// DashboardOverview carries the headline counters of the summary screen.
type DashboardOverview struct {
	TotalUsers       int     `json:"totalUsers"`
	ActiveMembers    int     `json:"activeMembers"`
	TotalProducts    int     `json:"totalProducts"`
	MerchandiseSales float64 `json:"merchandiseSales"`
	TotalOrders      int     `json:"totalOrders"`
}

// ActivityItem is one entry of the recent-activity feed.
type ActivityItem struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	UserEmail   string  `json:"userEmail,omitempty"`
	ProductName string  `json:"productName,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	Timestamp   string  `json:"timestamp"`
}

// Dashboard is the aggregate payload of the summary screen.
type Dashboard struct {
	Overview       DashboardOverview `json:"overview"`
	RecentActivity []ActivityItem    `json:"recentActivity"`
}
