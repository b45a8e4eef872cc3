package admins

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/cantina/adminctl/api/transport"
	"github.com/cantina/adminctl/domain"
	"github.com/cantina/adminctl/pkg/inflight"
)

const defaultLimit = 20

// UseCase exposes the operator-accounts screen operations.
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

// ListParams filters the admins list.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// ListResult is one admins page plus its pagination block.
type ListResult struct {
	Admins     []domain.Admin
	Pagination domain.Pagination
}

// CreateParams carries a new operator account.
type CreateParams struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// UpdateParams carries a partial operator update.
type UpdateParams struct {
	AdminID   string `json:"adminId"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
}

// List fetches a page of operator accounts.
func (uc *UseCase) List(ctx context.Context, params ListParams) (*ListResult, error) {
	input := map[string]interface{}{
		"page":  defaultInt(params.Page, 1),
		"limit": defaultInt(params.Limit, defaultLimit),
	}
	if params.Search != "" {
		input["search"] = params.Search
	}

	res := uc.client.Post(ctx, "/api/trpc/admin.admins.getAll", input, nil)
	if !res.Success {
		return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to fetch admins"))
	}

	match := transport.MatchCollection(res.Data, "admins")
	result := &ListResult{
		Pagination: domain.Pagination{
			Page:  input["page"].(int),
			Limit: input["limit"].(int),
		},
	}
	if err := transport.DecodeValue(match.Items, &result.Admins); err != nil {
		uc.logger.Warn("admins payload did not decode cleanly", zap.Error(err))
	}
	if err := match.PaginationFrom(&result.Pagination); err != nil {
		uc.logger.Debug("pagination block ignored", zap.Error(err))
	}
	return result, nil
}

// GetByID fetches a single operator account.
func (uc *UseCase) GetByID(ctx context.Context, adminID string) (*domain.Admin, error) {
	if strings.TrimSpace(adminID) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Admin ID is required")
	}

	res := uc.client.Post(ctx, "/api/trpc/admin.admins.getById", map[string]string{"adminId": adminID}, nil)
	if !res.Success {
		return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to fetch admin"))
	}

	var admin domain.Admin
	if err := transport.DecodeValue(transport.Record(res.Data), &admin); err != nil {
		return nil, domain.WrapError(domain.ErrCodeRemote, "Failed to fetch admin", err)
	}
	return &admin, nil
}

// Create registers a new operator account.
func (uc *UseCase) Create(ctx context.Context, params CreateParams) (*domain.Admin, error) {
	if strings.TrimSpace(params.FirstName) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "First name is required")
	}
	if strings.TrimSpace(params.Email) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Email is required")
	}
	if params.Password == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Password is required")
	}

	value, err := uc.mutations.Do("admins:create:"+params.Email, func() (interface{}, error) {
		res := uc.client.Post(ctx, "/api/trpc/admin.admins.create", params, nil)
		if !res.Success {
			return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to create admin"))
		}
		var admin domain.Admin
		if err := transport.DecodeValue(transport.Record(res.Data), &admin); err != nil {
			uc.logger.Warn("create response did not decode cleanly", zap.Error(err))
		}
		return &admin, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.Admin), nil
}

// Update sends a partial operator update.
func (uc *UseCase) Update(ctx context.Context, params UpdateParams) (*domain.Admin, error) {
	if strings.TrimSpace(params.AdminID) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Admin ID is required")
	}

	value, err := uc.mutations.Do("admins:"+params.AdminID, func() (interface{}, error) {
		res := uc.client.Post(ctx, "/api/trpc/admin.admins.update", params, nil)
		if !res.Success {
			return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to update admin"))
		}
		var admin domain.Admin
		if err := transport.DecodeValue(transport.Record(res.Data), &admin); err != nil {
			uc.logger.Warn("update response did not decode cleanly", zap.Error(err))
		}
		return &admin, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.Admin), nil
}

// Delete removes an operator account.
func (uc *UseCase) Delete(ctx context.Context, adminID string) error {
	if strings.TrimSpace(adminID) == "" {
		return domain.NewError(domain.ErrCodeInvalid, "Admin ID is required")
	}

	_, err := uc.mutations.Do("admins:"+adminID, func() (interface{}, error) {
		res := uc.client.Post(ctx, "/api/trpc/admin.admins.delete", map[string]string{"adminId": adminID}, nil)
		if !res.Success {
			return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to delete admin"))
		}
		return nil, nil
	})
	return err
}

func defaultInt(val, fallback int) int {
	if val <= 0 {
		return fallback
	}
	return val
}
