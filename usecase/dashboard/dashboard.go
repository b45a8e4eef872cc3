package dashboard

import (
	"context"

	"go.uber.org/zap"

	"github.com/cantina/adminctl/api/transport"
	"github.com/cantina/adminctl/domain"
)

// UseCase exposes the summary screen fetch.
type UseCase struct {
	client transport.Caller
	logger *zap.Logger
}

func New(client transport.Caller, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		client: client,
		logger: logger,
	}
}

// Get fetches the dashboard aggregate. The recent-activity feed is coerced
// to an empty slice when the backend sends something that is not a list.
func (uc *UseCase) Get(ctx context.Context) (*domain.Dashboard, error) {
	res := uc.client.Get(ctx, "/api/trpc/admin.dashboard", nil)
	if !res.Success {
		return nil, domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to fetch dashboard data"))
	}

	var dash domain.Dashboard
	if err := transport.DecodeValue(transport.Record(res.Data), &dash); err != nil {
		return nil, domain.WrapError(domain.ErrCodeRemote, "Failed to fetch dashboard data", err)
	}
	if dash.RecentActivity == nil {
		dash.RecentActivity = []domain.ActivityItem{}
	}
	return &dash, nil
}
