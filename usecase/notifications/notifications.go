package notifications

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/cantina/adminctl/api/transport"
	"github.com/cantina/adminctl/domain"
	"github.com/cantina/adminctl/pkg/inflight"
)

const (
	defaultLimit = 50
	maxTitleLen  = 100
	maxBodyLen   = 500
)

// UseCase exposes the notifications screen operations.
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

// ListParams filters the notifications list.
type ListParams struct {
	Page       int
	Limit      int
	Search     string
	Status     string
	TargetTier string
}

// ListResult is one notifications page plus its pagination block.
type ListResult struct {
	Notifications []domain.Notification
	Pagination    domain.Pagination
}

// CreateParams carries a new notification. Title and body are trimmed
// before the length checks; tier and type default to "all"/"general".
type CreateParams struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	TargetTier   string `json:"targetTier,omitempty"`
	ScheduledFor string `json:"scheduledFor,omitempty"`
	Type         string `json:"type,omitempty"`
}

// List fetches a page of notifications.
func (uc *UseCase) List(ctx context.Context, params ListParams) (*ListResult, error) {
	input := map[string]interface{}{
		"status": defaultString(params.Status, "all"),
		"page":   defaultInt(params.Page, 1),
		"limit":  defaultInt(params.Limit, defaultLimit),
	}
	if params.Search != "" {
		input["search"] = params.Search
	}
	if params.TargetTier != "" {
		input["targetTier"] = params.TargetTier
	}

	res := uc.client.Post(ctx, "/api/trpc/admin.notifications.getAll", input, nil)
	if !res.Success {
		return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to fetch notifications"))
	}

	match := transport.MatchCollection(res.Data, "notifications")
	result := &ListResult{
		Pagination: domain.Pagination{
			Page:  input["page"].(int),
			Limit: input["limit"].(int),
		},
	}
	if err := transport.DecodeValue(match.Items, &result.Notifications); err != nil {
		uc.logger.Warn("notifications payload did not decode cleanly", zap.Error(err))
	}
	if err := match.PaginationFrom(&result.Pagination); err != nil {
		uc.logger.Debug("pagination block ignored", zap.Error(err))
	}
	return result, nil
}

// Create validates and sends a new notification. Validation failures make
// no network call.
func (uc *UseCase) Create(ctx context.Context, params CreateParams) (*domain.Notification, error) {
	params.Title = strings.TrimSpace(params.Title)
	params.Body = strings.TrimSpace(params.Body)

	if params.Title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Title is required")
	}
	if utf8.RuneCountInString(params.Title) > maxTitleLen {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Title must be 100 characters or less")
	}
	if params.Body == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Body is required")
	}
	if utf8.RuneCountInString(params.Body) > maxBodyLen {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Body must be 500 characters or less")
	}

	if params.TargetTier == "" {
		params.TargetTier = domain.TierAll
	}
	if params.Type == "" {
		params.Type = domain.NotificationTypeGeneral
	}

	value, err := uc.mutations.Do("notifications:create:"+params.Title, func() (interface{}, error) {
		res := uc.client.Post(ctx, "/api/trpc/admin.notifications.create", params, nil)
		if !res.Success {
			return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to create notification"))
		}
		var notification domain.Notification
		if err := transport.DecodeValue(transport.Record(res.Data), &notification); err != nil {
			uc.logger.Warn("create response did not decode cleanly", zap.Error(err))
		}
		return &notification, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.Notification), nil
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
