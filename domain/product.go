package domain

// Product is a merchandise item sold through the venue shop.
type Product struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	Price                float64  `json:"price"`
	Category             string   `json:"category"`
	Images               []string `json:"images,omitempty"`
	AvailableForPurchase bool     `json:"availableForPurchase"`
	InStock              bool     `json:"inStock"`
	StockQuantity        int      `json:"stockQuantity"`
	Sizes                []string `json:"sizes,omitempty"`
	Colors               []string `json:"colors,omitempty"`
	CreatedAt            string   `json:"createdAt,omitempty"`
	UpdatedAt            string   `json:"updatedAt,omitempty"`
}

// MerchandiseStats is the inventory summary block returned with product lists.
type MerchandiseStats struct {
	TotalItems     int     `json:"totalItems"`
	Available      int     `json:"available"`
	InventoryValue float64 `json:"inventoryValue"`
}
