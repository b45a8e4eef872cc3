package merchandise

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cantina/adminctl/api/transport"
	"github.com/cantina/adminctl/domain"
	"github.com/cantina/adminctl/pkg/inflight"
)

const defaultLimit = 20

// Upload endpoints. Unlike the rest of the admin surface these are plain
// REST paths taking multipart bodies, because product writes carry images.
const (
	createPath = "/api/api/admin/products/create"
	updatePath = "/api/api/admin/products/update"
)

// UseCase exposes the merchandise screen operations.
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

// ListParams filters the product list.
type ListParams struct {
	Page                 int
	Limit                int
	Search               string
	Category             string
	AvailableForPurchase *bool
}

// ListResult is one product page with its pagination and inventory stats.
type ListResult struct {
	Products   []domain.Product
	Pagination domain.Pagination
	Stats      domain.MerchandiseStats
}

// Image is a to-be-uploaded product picture.
type Image struct {
	Filename string
	Data     []byte
}

// ProductParams carries a product create or update. Price and stock arrive
// as strings (form input) and must parse as numbers before any call.
type ProductParams struct {
	ProductID            string // required for updates only
	Name                 string
	Description          string
	Price                string
	Category             string
	StockQuantity        string
	Sizes                []string
	Colors               []string
	AvailableForPurchase *bool
	InStock              *bool
	ExistingImages       []string // update only: image URLs to keep
	Images               []Image
}

// List fetches a page of products. The getAll procedure expects the
// tRPC-wrapped body shape.
func (uc *UseCase) List(ctx context.Context, params ListParams) (*ListResult, error) {
	input := map[string]interface{}{
		"page":  defaultInt(params.Page, 1),
		"limit": defaultInt(params.Limit, defaultLimit),
	}
	if params.Search != "" {
		input["search"] = params.Search
	}
	if params.Category != "" {
		input["category"] = params.Category
	}
	if params.AvailableForPurchase != nil {
		input["availableForPurchase"] = *params.AvailableForPurchase
	}

	res := uc.client.Post(ctx, "/api/trpc/admin.merchandise.getAll", trpcBody(input), nil)
	if !res.Success {
		return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to fetch products"))
	}

	match := transport.MatchCollection(res.Data, "products")
	result := &ListResult{
		Pagination: domain.Pagination{
			Page:  input["page"].(int),
			Limit: input["limit"].(int),
		},
	}
	if err := transport.DecodeValue(match.Items, &result.Products); err != nil {
		uc.logger.Warn("products payload did not decode cleanly", zap.Error(err))
	}
	if err := match.PaginationFrom(&result.Pagination); err != nil {
		uc.logger.Debug("pagination block ignored", zap.Error(err))
	}
	if match.Container != nil {
		if err := transport.DecodeValue(match.Container["stats"], &result.Stats); err != nil {
			uc.logger.Debug("stats block ignored", zap.Error(err))
		}
	}
	return result, nil
}

// GetByID fetches a single product.
func (uc *UseCase) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Product ID is required")
	}

	res := uc.client.Post(ctx, "/api/trpc/admin.merchandise.getById", trpcBody(map[string]interface{}{"id": productID}), nil)
	if !res.Success {
		return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to fetch product"))
	}

	var product domain.Product
	if err := transport.DecodeValue(transport.Record(res.Data), &product); err != nil {
		return nil, domain.WrapError(domain.ErrCodeRemote, "Failed to fetch product", err)
	}
	return &product, nil
}

// Create uploads a new product as a multipart form.
func (uc *UseCase) Create(ctx context.Context, params ProductParams) (*domain.Product, error) {
	form, err := uc.buildForm(params, false)
	if err != nil {
		return nil, err
	}
	return uc.upload(ctx, "merchandise:create:"+params.Name, createPath, form, "Failed to create product")
}

// Update uploads changes to an existing product as a multipart form.
func (uc *UseCase) Update(ctx context.Context, params ProductParams) (*domain.Product, error) {
	if strings.TrimSpace(params.ProductID) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Product ID is required")
	}
	form, err := uc.buildForm(params, true)
	if err != nil {
		return nil, err
	}
	return uc.upload(ctx, "merchandise:"+params.ProductID, updatePath, form, "Failed to update product")
}

// Delete removes a product.
func (uc *UseCase) Delete(ctx context.Context, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return domain.NewError(domain.ErrCodeInvalid, "Product ID is required")
	}

	_, err := uc.mutations.Do("merchandise:"+productID, func() (interface{}, error) {
		res := uc.client.Post(ctx, "/api/trpc/admin.merchandise.delete", map[string]string{"productId": productID}, nil)
		if !res.Success {
			return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to delete product"))
		}
		return nil, nil
	})
	return err
}

func (uc *UseCase) upload(ctx context.Context, key, path string, form *transport.Form, fallback string) (*domain.Product, error) {
	value, err := uc.mutations.Do(key, func() (interface{}, error) {
		res := uc.client.PostForm(ctx, path, form)
		if !res.Success {
			return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr(fallback))
		}
		var product domain.Product
		if err := transport.DecodeValue(transport.Record(res.Data), &product); err != nil {
			uc.logger.Warn("upload response did not decode cleanly", zap.Error(err))
		}
		return &product, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.Product), nil
}

// buildForm validates the write payload and renders the multipart form.
// Validation failures make no network call.
func (uc *UseCase) buildForm(params ProductParams, update bool) (*transport.Form, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Name is required")
	}
	if strings.TrimSpace(params.Description) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Description is required")
	}
	if strings.TrimSpace(params.Category) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Category is required")
	}
	price, err := strconv.ParseFloat(params.Price, 64)
	if err != nil || price < 0 {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Price must be a number")
	}
	stock, err := strconv.Atoi(params.StockQuantity)
	if err != nil || stock < 0 {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Stock quantity must be a number")
	}

	form := transport.NewForm()
	if update {
		form.AddField("productId", params.ProductID)
	}
	form.AddField("name", params.Name).
		AddField("description", params.Description).
		AddField("price", strconv.FormatFloat(price, 'f', -1, 64)).
		AddField("category", params.Category).
		AddField("stockQuantity", strconv.Itoa(stock))

	if params.AvailableForPurchase != nil {
		form.AddField("availableForPurchase", strconv.FormatBool(*params.AvailableForPurchase))
	}
	if params.InStock != nil {
		form.AddField("inStock", strconv.FormatBool(*params.InStock))
	}
	for _, size := range params.Sizes {
		form.AddField("sizes", size)
	}
	for _, color := range params.Colors {
		form.AddField("colors", color)
	}
	for _, url := range params.ExistingImages {
		form.AddField("existingImages[]", url)
	}
	for _, img := range params.Images {
		form.AddFile("images[]", img.Filename, img.Data)
	}
	return form, nil
}

// trpcBody wraps an input the way batched tRPC procedures expect it.
func trpcBody(input map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"0": map[string]interface{}{"json": input}}
}

func defaultInt(val, fallback int) int {
	if val <= 0 {
		return fallback
	}
	return val
}
