// Package cli wires the admin console commands. Every command builds its
// dependencies in the persistent pre-run, checks the auth gate for its
// route, and talks to the backend through the shared transport client.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cantina/adminctl/api/transport"
	"github.com/cantina/adminctl/domain"
	"github.com/cantina/adminctl/internal/config"
	redisInfra "github.com/cantina/adminctl/internal/infrastructure/redis"
	"github.com/cantina/adminctl/pkg/httpcontext"
	"github.com/cantina/adminctl/pkg/inflight"
	"github.com/cantina/adminctl/pkg/logger"
	"github.com/cantina/adminctl/repository"
	boltRepo "github.com/cantina/adminctl/repository/bolt"
	memoryRepo "github.com/cantina/adminctl/repository/memory"
	redisRepo "github.com/cantina/adminctl/repository/redis"
	"github.com/cantina/adminctl/usecase/authgate"
)

var (
	flagBaseURL  string
	flagBackend  string
	flagProfile  string
	flagLogLevel string

	cfg        *config.Config
	zlog       *zap.Logger
	store      repository.SessionStore
	storeClose func() error
	api        *transport.Client
	adapter    *httpcontext.Adapter
	gate       *authgate.Gate
	mutations  *inflight.Group
)

// NewRootCmd creates the root cobra command for the adminctl console.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "adminctl",
		Short: "Cantina admin console",
		Long:  "adminctl manages members, operators, merchandise, orders and notifications of the Cantina membership backend.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			teardown()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagBaseURL, "api", "", "API base URL (or API_BASE_URL env)")
	root.PersistentFlags().StringVar(&flagBackend, "session-backend", "", "Session backend: bolt, redis or memory (or SESSION_BACKEND env)")
	root.PersistentFlags().StringVar(&flagProfile, "profile", "", "Session profile name (or SESSION_PROFILE env)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (or LOG_LEVEL env)")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newResetPasswordCmd(),
		newDashboardCmd(),
		newUsersCmd(),
		newAdminsCmd(),
		newMerchandiseCmd(),
		newOrdersCmd(),
		newNotificationsCmd(),
		newStatusCmd(),
	)

	return root
}

func setup() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flagBaseURL != "" {
		cfg.API.BaseURL = flagBaseURL
	}
	if flagBackend != "" {
		cfg.Storage.Backend = flagBackend
	}
	if flagProfile != "" {
		cfg.Storage.Profile = flagProfile
	}
	if flagLogLevel != "" {
		cfg.Logger.Level = flagLogLevel
	}

	zlog, err = logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	store = openStore()
	api = transport.NewClient(cfg.API.BaseURL, store, cfg.API.RequestTimeout, zlog)
	adapter = httpcontext.NewAdapter(cfg.API.RequestTimeout)
	gate = authgate.New(store, zlog)
	mutations = inflight.New()
	return nil
}

func teardown() {
	if storeClose != nil {
		if err := storeClose(); err != nil {
			zlog.Warn("session store close failed", zap.Error(err))
		}
		storeClose = nil
	}
	if zlog != nil {
		_ = zlog.Sync()
	}
}

// openStore never fails the command: when the configured backend cannot be
// opened the console degrades to the unavailable store, which behaves as
// logged out and refuses writes.
func openStore() repository.SessionStore {
	switch cfg.Storage.Backend {
	case "redis":
		client, err := redisInfra.NewClient(cfg.Redis)
		if err != nil {
			zlog.Warn("redis unavailable, session disabled", zap.Error(err))
			return repository.Unavailable()
		}
		storeClose = client.Close
		return redisRepo.NewStore(client, cfg.Storage.Profile, zlog)
	case "memory":
		return memoryRepo.New()
	default:
		st, err := boltRepo.Open(cfg.Storage.Path, zlog)
		if err != nil {
			zlog.Warn("session file unavailable, session disabled",
				zap.String("path", cfg.Storage.Path), zap.Error(err))
			return repository.Unavailable()
		}
		storeClose = st.Close
		return st
	}
}

// commandContext derives the per-command context: request deadline,
// correlation ID and the auth gate.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx, cancel := adapter.Attach(cmd.Context())
	return authgate.WithGate(ctx, gate), cancel
}

// requireAuth runs the gate check for a protected route. Expired sessions
// are cleared by the gate before the command is refused.
func requireAuth(ctx context.Context, route string) (*domain.AdminUser, error) {
	verdict := authgate.FromContext(ctx).Check(route)
	if !verdict.Authenticated() {
		return nil, fmt.Errorf("%w, run `adminctl login` first", domain.ErrNoSession)
	}
	return verdict.User, nil
}
