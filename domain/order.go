package domain

// OrderItem is a single line of a merchandise order.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Size        string  `json:"size,omitempty"`
	Color       string  `json:"color,omitempty"`
}

// OrderCustomer is the optional embedded customer record on a raw order.
type OrderCustomer struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// RawOrder mirrors the upstream order document before the view transform.
// The API emits both `_id` and `id` depending on the code path, and may omit
// the order number entirely.
type RawOrder struct {
	MongoID               string         `json:"_id,omitempty"`
	ID                    string         `json:"id,omitempty"`
	UserID                string         `json:"userId"`
	Type                  string         `json:"type"`
	Amount                float64        `json:"amount"`
	Currency              string         `json:"currency,omitempty"`
	Status                string         `json:"status"`
	MerchandiseItems      []OrderItem    `json:"merchandiseItems,omitempty"`
	OrderNumber           string         `json:"OrderNumber,omitempty"`
	StripePaymentIntentID string         `json:"stripePaymentIntentId,omitempty"`
	User                  *OrderCustomer `json:"user,omitempty"`
	CreatedAt             string         `json:"createdAt,omitempty"`
	UpdatedAt             string         `json:"updatedAt,omitempty"`
}

// Order is the display-ready order record after the service transform.
type Order struct {
	ID                    string      `json:"id"`
	UserID                string      `json:"userId"`
	CustomerName          string      `json:"customerName"`
	CustomerEmail         string      `json:"customerEmail"`
	Type                  string      `json:"type"`
	Items                 []OrderItem `json:"items"`
	ItemCount             int         `json:"itemCount"`
	OrderNumber           string      `json:"orderNumber"`
	TotalAmount           float64     `json:"totalAmount"`
	Status                string      `json:"status"`
	PaymentStatus         string      `json:"paymentStatus"`
	StripePaymentIntentID string      `json:"stripePaymentIntentId,omitempty"`
	TrackingNumber        string      `json:"trackingNumber,omitempty"`
	Notes                 string      `json:"notes,omitempty"`
	CreatedAt             string      `json:"createdAt,omitempty"`
	UpdatedAt             string      `json:"updatedAt,omitempty"`
}

// Order statuses understood by the admin screens.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusInTransit  = "in_transit"
	OrderStatusDelivered  = "delivered"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)
