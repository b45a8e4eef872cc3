package users

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/cantina/adminctl/api/transport"
	"github.com/cantina/adminctl/domain"
	"github.com/cantina/adminctl/pkg/inflight"
)

const defaultLimit = 10

// UseCase exposes the members screen operations.
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

// ListParams filters the members list. Zero values fall back to the screen
// defaults (status "all", page 1, limit 10).
type ListParams struct {
	Page             int
	Limit            int
	Search           string
	MembershipStatus string
}

// ListResult is the members page plus its pagination block.
type ListResult struct {
	Members    []domain.Member
	Pagination domain.Pagination
}

// UpdateParams carries a partial member update; only set fields are sent.
type UpdateParams struct {
	UserID           string             `json:"userId"`
	FirstName        string             `json:"firstName,omitempty"`
	LastName         string             `json:"lastName,omitempty"`
	Email            string             `json:"email,omitempty"`
	Phone            string             `json:"phone,omitempty"`
	Password         string             `json:"password,omitempty"`
	Birthday         string             `json:"birthday,omitempty"`
	ProfileImage     string             `json:"profileImage,omitempty"`
	MembershipStatus string             `json:"membershipStatus,omitempty"`
	Membership       *domain.Membership `json:"membership,omitempty"`
}

// List fetches a page of members.
func (uc *UseCase) List(ctx context.Context, params ListParams) (*ListResult, error) {
	input := map[string]interface{}{
		"membershipStatus": defaultString(params.MembershipStatus, "all"),
		"page":             defaultInt(params.Page, 1),
		"limit":            defaultInt(params.Limit, defaultLimit),
	}
	if params.Search != "" {
		input["search"] = params.Search
	}

	res := uc.client.Post(ctx, "/api/trpc/admin.users.getAll", input, nil)
	if !res.Success {
		return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to fetch users"))
	}

	match := transport.MatchCollection(res.Data, "users")
	result := &ListResult{
		Pagination: domain.Pagination{
			Page:  input["page"].(int),
			Limit: input["limit"].(int),
		},
	}
	if err := transport.DecodeValue(match.Items, &result.Members); err != nil {
		uc.logger.Warn("users payload did not decode cleanly", zap.Error(err))
	}
	if err := match.PaginationFrom(&result.Pagination); err != nil {
		uc.logger.Debug("pagination block ignored", zap.Error(err))
	}
	return result, nil
}

// GetByID fetches a single member record.
func (uc *UseCase) GetByID(ctx context.Context, userID string) (*domain.Member, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "User ID is required")
	}

	res := uc.client.Post(ctx, "/api/trpc/admin.users.getById", map[string]string{"userId": userID}, nil)
	if !res.Success {
		return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to fetch user"))
	}

	var member domain.Member
	if err := transport.DecodeValue(transport.Record(res.Data), &member); err != nil {
		return nil, domain.WrapError(domain.ErrCodeRemote, "Failed to fetch user", err)
	}
	return &member, nil
}

// Update sends a partial member update. Validation failures never reach
// the network; duplicate submits for the same member share one request.
func (uc *UseCase) Update(ctx context.Context, params UpdateParams) (*domain.Member, error) {
	if strings.TrimSpace(params.UserID) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "User ID is required")
	}

	value, err := uc.mutations.Do("users:"+params.UserID, func() (interface{}, error) {
		res := uc.client.Post(ctx, "/api/trpc/admin.users.update", params, nil)
		if !res.Success {
			return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to update user"))
		}
		var member domain.Member
		if err := transport.DecodeValue(transport.Record(res.Data), &member); err != nil {
			uc.logger.Warn("update response did not decode cleanly", zap.Error(err))
		}
		return &member, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.Member), nil
}

// Delete removes a member.
func (uc *UseCase) Delete(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.NewError(domain.ErrCodeInvalid, "User ID is required")
	}

	_, err := uc.mutations.Do("users:"+userID, func() (interface{}, error) {
		res := uc.client.Post(ctx, "/api/trpc/admin.users.delete", map[string]string{"userId": userID}, nil)
		if !res.Success {
			return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to delete user"))
		}
		return nil, nil
	})
	return err
}

func defaultString(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}

func defaultInt(val, fallback int) int {
	if val <= 0 {
		return fallback
	}
	return val
}
