package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/cantina/adminctl/api/transport"
	"github.com/cantina/adminctl/domain"
	"github.com/cantina/adminctl/repository"
)

// UseCase drives authentication against the remote API and owns the
// persisted session through the store.
type UseCase struct {
	client transport.Caller
	store  repository.SessionStore
	logger *zap.Logger
}

func New(client transport.Caller, store repository.SessionStore, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Credentials is the login request payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult reports the established session.
type LoginResult struct {
	Token     string
	User      *domain.AdminUser
	ExpiresIn time.Duration
}

// Login authenticates against the API and persists the resulting session.
// The login payload is loosely shaped upstream: the token may arrive under
// token, accessToken or access_token, and the user either nested or flat.
func (uc *UseCase) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Email and password are required")
	}

	res := uc.client.Post(ctx, "/api/trpc/admin.auth.login", creds, nil)
	if !res.Success {
		return nil, domain.NewError(domain.ErrCodeUnauthorized, res.ErrorOr("Login failed"))
	}

	payload, _ := res.Data.(map[string]interface{})
	token := firstString(payload, "token", "accessToken", "access_token")
	if token == "" {
		return nil, domain.NewError(domain.ErrCodeRemote, "Login response did not include a token")
	}

	user := extractUser(payload, creds.Email)

	expiresIn := expiryFromPayload(payload)
	if expiresIn == 0 {
		expiresIn = expiryFromJWT(token)
	}

	if err := uc.store.Save(token, user, expiresIn); err != nil {
		uc.logger.Warn("session not persisted", zap.Error(err))
	}

	return &LoginResult{Token: token, User: user, ExpiresIn: expiresIn}, nil
}

// Logout destroys the persisted session.
func (uc *UseCase) Logout() error {
	return uc.store.Clear()
}

// CurrentUser returns the locally stored user, or nil when logged out.
func (uc *UseCase) CurrentUser() *domain.AdminUser {
	if session := uc.store.Load(); session != nil {
		return session.User
	}
	return nil
}

// VerifyToken asks the backend whether the stored token is still accepted.
func (uc *UseCase) VerifyToken(ctx context.Context) bool {
	res := uc.client.Get(ctx, "/auth/verify", nil)
	if !res.Success {
		return false
	}
	if obj, ok := res.Data.(map[string]interface{}); ok {
		valid, _ := obj["valid"].(bool)
		return valid
	}
	return false
}

// ForgotPassword requests an OTP for the given email. The returned string
// is the development-mode OTP the server echoes back outside production;
// it is empty otherwise.
func (uc *UseCase) ForgotPassword(ctx context.Context, email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", domain.NewError(domain.ErrCodeInvalid, "Email is required")
	}

	res := uc.client.Post(ctx, "/api/trpc/admin.auth.forgotPassword", map[string]string{"email": email}, nil)
	if !res.Success {
		return "", domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to send OTP"))
	}

	if obj, ok := res.Data.(map[string]interface{}); ok {
		if otp, ok := obj["otp"].(string); ok {
			return otp, nil
		}
	}
	return "", nil
}

// VerifyOTP exchanges a verified OTP for the short-lived reset token that
// authorizes the final password change.
func (uc *UseCase) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(otp) == "" {
		return "", domain.NewError(domain.ErrCodeInvalid, "Email and OTP are required")
	}

	res := uc.client.Post(ctx, "/api/trpc/admin.auth.verifyOTP", map[string]string{
		"email": email,
		"otp":   otp,
	}, nil)
	if !res.Success {
		return "", domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Invalid OTP"))
	}

	payload, _ := res.Data.(map[string]interface{})
	resetToken := firstString(payload, "resetToken", "token")
	if resetToken == "" {
		return "", domain.NewError(domain.ErrCodeRemote, "Verification succeeded but no reset token was issued")
	}
	return resetToken, nil
}

// ResetPassword sets a new password using the reset token from VerifyOTP.
func (uc *UseCase) ResetPassword(ctx context.Context, resetToken, password string) error {
	if resetToken == "" {
		return domain.NewError(domain.ErrCodeInvalid, "Reset token is required")
	}

	res := uc.client.Post(ctx, "/api/trpc/admin.auth.resetPassword", map[string]string{
		"resetToken": resetToken,
		"password":   password,
	}, nil)
	if !res.Success {
		return domain.NewError(domain.ErrCodeRemote, res.ErrorOr("Failed to reset password"))
	}
	return nil
}

// extractUser projects the login payload into the stored user record,
// tolerating both nested and flat shapes and MongoDB-style _id fields.
func extractUser(payload map[string]interface{}, fallbackEmail string) *domain.AdminUser {
	source := payload
	if nested, ok := payload["user"].(map[string]interface{}); ok {
		source = nested
	}

	user := &domain.AdminUser{
		ID:    firstString(source, "id", "_id"),
		Email: firstString(source, "email"),
		Role:  firstString(source, "role"),
		Name:  firstString(source, "name", "username"),
	}
	if user.Email == "" {
		user.Email = fallbackEmail
	}
	if user.Role == "" {
		user.Role = "admin"
	}
	return user
}

func expiryFromPayload(payload map[string]interface{}) time.Duration {
	if seconds, ok := payload["expiresIn"].(float64); ok && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return 0
}

// expiryFromJWT derives a session lifetime from the token's exp claim when
// the server omits expiresIn. The claim is read without verification; the
// server remains the authority, this only schedules the local logout.
func expiryFromJWT(token string) time.Duration {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return 0
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return 0
	}
	remaining := time.Until(time.Unix(int64(exp), 0))
	if remaining <= 0 {
		return 0
	}
	return remaining
}

func firstString(obj map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if val, ok := obj[key].(string); ok && val != "" {
			return val
		}
	}
	return ""
}
