// Package authgate decides, on every navigation, whether protected screens
// may render or the user is sent back to login.
package authgate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cantina/adminctl/domain"
	"github.com/cantina/adminctl/repository"
)

// State is the gate's verdict for one navigation.
type State string

const (
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// RouteLogin is where denied navigations are redirected.
const RouteLogin = "login"

// Routes reachable without a session.
var defaultPublicRoutes = []string{RouteLogin, "forgot-password", "privacy-policy"}

// Verdict is the outcome of one Check. RedirectTo is set when the
// requested route may not render.
type Verdict struct {
	State      State
	User       *domain.AdminUser
	RedirectTo string
}

// Authenticated reports whether the checked route may render.
func (v Verdict) Authenticated() bool { return v.State == StateAuthenticated }

// Gate consults the session store on every route change. It never caches a
// verdict: the store can change out of band (another process logging out),
// so each navigation re-derives the full check.
type Gate struct {
	store  repository.SessionStore
	public map[string]struct{}
	logger *zap.Logger
}

// New builds a gate over the given store. publicRoutes extends the default
// allow-list (login, forgot-password, privacy-policy).
func New(store repository.SessionStore, logger *zap.Logger, publicRoutes ...string) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	public := make(map[string]struct{}, len(defaultPublicRoutes)+len(publicRoutes))
	for _, route := range defaultPublicRoutes {
		public[route] = struct{}{}
	}
	for _, route := range publicRoutes {
		public[route] = struct{}{}
	}
	return &Gate{
		store:  store,
		public: public,
		logger: logger,
	}
}

// Check runs the session check for a navigation to route. An expired
// session is cleared before the unauthenticated verdict is returned.
func (g *Gate) Check(route string) Verdict {
	session := g.store.Load()

	if session.IsValid(time.Now()) && !g.store.IsExpired() {
		return Verdict{State: StateAuthenticated, User: session.User}
	}

	if session != nil && g.store.IsExpired() {
		if err := g.store.Clear(); err != nil {
			g.logger.Warn("failed to clear expired session", zap.Error(err))
		}
		g.logger.Info("session expired, cleared")
	}

	verdict := Verdict{State: StateUnauthenticated}
	if !g.IsPublic(route) {
		verdict.RedirectTo = RouteLogin
	}
	return verdict
}

// Logout clears the session and redirects to login regardless of route.
func (g *Gate) Logout() Verdict {
	if err := g.store.Clear(); err != nil {
		g.logger.Warn("failed to clear session on logout", zap.Error(err))
	}
	return Verdict{State: StateUnauthenticated, RedirectTo: RouteLogin}
}

// IsPublic reports whether route is on the allow-list.
func (g *Gate) IsPublic(route string) bool {
	_, ok := g.public[route]
	return ok
}

type ctxKey struct{}

// WithGate attaches the gate to a context for descendants.
func WithGate(ctx context.Context, g *Gate) context.Context {
	return context.WithValue(ctx, ctxKey{}, g)
}

// FromContext returns the gate attached by WithGate. Calling it without an
// ancestor gate is a wiring bug, not a runtime condition, so it panics.
func FromContext(ctx context.Context) *Gate {
	g, ok := ctx.Value(ctxKey{}).(*Gate)
	if !ok {
		panic("authgate: FromContext called without WithGate in scope")
	}
	return g
}
