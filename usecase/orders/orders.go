package orders

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/cantina/adminctl/api/transport"
	"github.com/cantina/adminctl/domain"
	"github.com/cantina/adminctl/pkg/inflight"
)

const defaultLimit = 20

// UseCase exposes the orders screen operations.
type UseCase struct {
	client    transport.Caller
	mutations *inflight.Group
	logger    *zap.Logger
}

func New(client transport.Caller, mutations *inflight.Group, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mutations == nil {
		mutations = inflight.New()
	}
	return &UseCase{
		client:    client,
		mutations: mutations,
		logger:    logger,
	}
}

// ListParams filters the order list.
type ListParams struct {
	Page     int
	Limit    int
	Search   string
	Type     string
	Status   string
	DateFrom string
	DateTo   string
}

// ListResult is one order page plus its pagination block.
type ListResult struct {
	Orders     []domain.Order
	Pagination domain.Pagination
}

// UpdateParams carries a partial order update.
type UpdateParams struct {
	OrderID        string `json:"orderId"`
	Status         string `json:"status,omitempty"`
	PaymentStatus  string `json:"paymentStatus,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// List fetches a page of orders, transformed for display.
func (uc *UseCase) List(ctx context.Context, params ListParams) (*ListResult, error) {
	input := map[string]interface{}{
		"page":  defaultInt(params.Page, 1),
		"limit": defaultInt(params.Limit, defaultLimit),
	}
	for key, value := range map[string]string{
		"search":   params.Search,
		"type":     params.Type,
		"status":   params.Status,
		"dateFrom": params.DateFrom,
		"dateTo":   params.DateTo,
	} {
		if value != "" {
			input[key] = value
		}
	}

	res := uc.client.Post(ctx, "/api/trpc/admin.orders.getAll", input, nil)
	if !res.Success {
		return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to fetch orders"))
	}

	match := transport.MatchCollection(res.Data, "orders")
	var raw []domain.RawOrder
	if err := transport.DecodeValue(match.Items, &raw); err != nil {
		uc.logger.Warn("orders payload did not decode cleanly", zap.Error(err))
	}

	result := &ListResult{
		Orders: make([]domain.Order, 0, len(raw)),
		Pagination: domain.Pagination{
			Page:  input["page"].(int),
			Limit: input["limit"].(int),
		},
	}
	for _, order := range raw {
		result.Orders = append(result.Orders, Transform(order))
	}
	if err := match.PaginationFrom(&result.Pagination); err != nil {
		uc.logger.Debug("pagination block ignored", zap.Error(err))
	}
	return result, nil
}

// GetByID fetches a single order, transformed for display.
func (uc *UseCase) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Order ID is required")
	}

	res := uc.client.Post(ctx, "/api/trpc/admin.orders.getById", map[string]string{"orderId": orderID}, nil)
	if !res.Success {
		return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to fetch order"))
	}

	var raw domain.RawOrder
	if err := transport.DecodeValue(transport.Record(res.Data), &raw); err != nil {
		return nil, domain.WrapError(domain.ErrCodeRemote, "Failed to fetch order", err)
	}
	order := Transform(raw)
	return &order, nil
}

// Update sends a partial order update.
func (uc *UseCase) Update(ctx context.Context, params UpdateParams) (*domain.Order, error) {
	if strings.TrimSpace(params.OrderID) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Order ID is required")
	}

	value, err := uc.mutations.Do("orders:"+params.OrderID, func() (interface{}, error) {
		res := uc.client.Post(ctx, "/api/trpc/admin.orders.update", params, nil)
		if !res.Success {
			return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to update order"))
		}
		var raw domain.RawOrder
		if err := transport.DecodeValue(transport.Record(res.Data), &raw); err != nil {
			uc.logger.Warn("update response did not decode cleanly", zap.Error(err))
		}
		order := Transform(raw)
		return &order, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.Order), nil
}

// Delete removes an order.
func (uc *UseCase) Delete(ctx context.Context, orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return domain.NewError(domain.ErrCodeInvalid, "Order ID is required")
	}

	_, err := uc.mutations.Do("orders:"+orderID, func() (interface{}, error) {
		res := uc.client.Post(ctx, "/api/trpc/admin.orders.delete", map[string]string{"orderId": orderID}, nil)
		if !res.Success {
			return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to delete order"))
		}
		return nil, nil
	})
	return err
}

// Export asks the backend to build a CSV export and returns its URL. The
// file format itself is the server's business.
func (uc *UseCase) Export(ctx context.Context, params ListParams) (string, error) {
	input := map[string]interface{}{}
	for key, value := range map[string]string{
		"search":   params.Search,
		"type":     params.Type,
		"status":   params.Status,
		"dateFrom": params.DateFrom,
		"dateTo":   params.DateTo,
	} {
		if value != "" {
			input[key] = value
		}
	}

	res := uc.client.Post(ctx, "/api/trpc/admin.orders.export", input, nil)
	if !res.Success {
		return "", domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to export orders"))
	}
	if obj, ok := transport.Record(res.Data).(map[string]interface{}); ok {
		if url, ok := obj["url"].(string); ok {
			return url, nil
		}
	}
	return "", nil
}

// Transform converts an upstream order document into its display shape.
// The derived fields are deterministic functions of the record, so
// transforming the same document twice yields identical output.
func Transform(raw domain.RawOrder) domain.Order {
	itemCount := 0
	for _, item := range raw.MerchandiseItems {
		itemCount += item.Quantity
	}

	id := raw.MongoID
	if id == "" {
		id = raw.ID
	}

	shortUserID := "Unknown"
	if raw.UserID != "" {
		shortUserID = lastN(raw.UserID, 8)
	}

	customerName := "Customer " + shortUserID
	if raw.User != nil && raw.User.FirstName != "" && raw.User.LastName != "" {
		customerName = raw.User.FirstName + " " + raw.User.LastName
	}
	customerEmail := "user-" + shortUserID + "@example.com"
	if raw.User != nil && raw.User.Email != "" {
		customerEmail = raw.User.Email
	}

	orderNumber := raw.OrderNumber
	if orderNumber == "" {
		orderNumber = "ORD-" + strings.ToUpper(shortUserID) + "-" + strings.ToUpper(lastN(id, 4))
	}

	paymentStatus := "pending"
	switch raw.Status {
	case domain.OrderStatusCompleted:
		paymentStatus = "completed"
	case domain.OrderStatusCancelled:
		paymentStatus = "failed"
	}

	items := raw.MerchandiseItems
	if items == nil {
		items = []domain.OrderItem{}
	}

	return domain.Order{
		ID:                    id,
		UserID:                raw.UserID,
		CustomerName:          customerName,
		CustomerEmail:         customerEmail,
		Type:                  raw.Type,
		Items:                 items,
		ItemCount:             itemCount,
		OrderNumber:           orderNumber,
		TotalAmount:           raw.Amount,
		Status:                raw.Status,
		PaymentStatus:         paymentStatus,
		StripePaymentIntentID: raw.StripePaymentIntentID,
		CreatedAt:             raw.CreatedAt,
		UpdatedAt:             raw.UpdatedAt,
	}
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func defaultInt(val, fallback int) int {
	if val <= 0 {
		return fallback
	}
	return val
}
