package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/cashewcorner/backend/internal/auth"
	"github.com/cashewcorner/backend/internal/config"
	"github.com/cashewcorner/backend/internal/domain"
	"github.com/cashewcorner/backend/internal/events"
	"github.com/cashewcorner/backend/internal/observability"
	"github.com/cashewcorner/backend/internal/repository"
	apperrors "github.com/cashewcorner/backend/pkg/util"
)

const invalidCredentialsMessage = "Invalid email or password"

// LoginResult carries the outcome of a successful login.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64
	User         *domain.User
	Message      string
}

// LogoutResult confirms a completed logout.
type LogoutResult struct {
	Message   string
	Timestamp time.Time
	Username  string
	Success   bool
}

// AuthService orchestrates login, logout and request-time identity
// resolution.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	blacklist  auth.TokenBlacklist
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	expiresIn  int64
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Blacklist  auth.TokenBlacklist
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL()),
		blacklist:  deps.Blacklist,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		expiresIn:  cfg.Auth.AccessTokenTTLSeconds(),
	}
}

// Login authenticates a user by email and issues an access/refresh token
// pair. Unknown email and wrong password produce the same error message.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	s.logger.Info("user login initiated", zap.String("email", email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("login failed: user not found", zap.String("email", email))
			s.publishLoginFailed(ctx, email, "user not found")
			return nil, apperrors.NewAuthentication(invalidCredentialsMessage)
		}
		return nil, err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		s.logger.Warn("login failed: invalid password", zap.String("email", email))
		s.publishLoginFailed(ctx, email, "invalid password")
		return nil, apperrors.NewAuthentication(invalidCredentialsMessage)
	}

	if !user.IsActive {
		s.logger.Warn("login failed: account inactive", zap.String("email", email))
		s.publishLoginFailed(ctx, email, "account inactive")
		return nil, apperrors.NewAuthentication("User account is inactive")
	}

	accessToken, err := s.tokens.IssueAccessToken(user.Username, user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.Username, user.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	s.logger.Info("user login successful", zap.String("email", user.Email))
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventLoginSucceeded,
		Username:  user.Username,
		Email:     user.Email,
		Timestamp: now,
	})

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.expiresIn,
		User:         user,
		Message:      "Login successful",
	}, nil
}

// Logout blacklists the presented token after validating it against the
// username.
func (s *AuthService) Logout(ctx context.Context, token, username string) (*LogoutResult, error) {
	s.logger.Info("user logout initiated", zap.String("username", username))

	if !s.tokens.Validate(token, username) {
		s.logger.Warn("logout failed: invalid token", zap.String("username", username))
		return nil, apperrors.NewAuthentication("Invalid or expired token")
	}

	expiresAt, err := s.tokens.ExtractExpiration(token)
	if err != nil {
		return nil, apperrors.NewAuthentication("Invalid or expired token")
	}
	if err := s.blacklist.Add(ctx, token, expiresAt); err != nil {
		return nil, err
	}
	s.logger.Debug("token added to blacklist", zap.String("username", username))

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUserNotFound(username)
		}
		return nil, err
	}

	now := time.Now()
	s.logger.Info("user logout successful", zap.String("username", username))
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventLogout,
		Username:  user.Username,
		Email:     user.Email,
		Timestamp: now,
	})

	return &LogoutResult{
		Message:   "Logout successful",
		Timestamp: now,
		Username:  username,
		Success:   true,
	}, nil
}

// ResolveIdentity turns a bearer token into a principal. Every failure
// collapses to nil so the request proceeds anonymously; nothing escapes as
// an error.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) *domain.Principal {
	blacklisted, err := s.blacklist.Contains(ctx, token)
	if err != nil {
		// A reachability problem with the revocation store is not the
		// caller's fault; signature and expiry checks still apply below.
		s.logger.Warn("blacklist lookup failed", zap.Error(err))
	}
	if blacklisted {
		s.logger.Warn("token is blacklisted; it has been logged out")
		s.rejectToken(ctx, "blacklisted")
		return nil
	}

	username, err := s.tokens.ExtractUsername(token)
	if err != nil {
		s.logger.Warn("token processing failed", zap.Error(err))
		s.rejectToken(ctx, "malformed")
		return nil
	}

	if !s.tokens.Validate(token, username) {
		s.logger.Warn("token validation failed", zap.String("username", username))
		s.rejectToken(ctx, "invalid")
		return nil
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		s.logger.Warn("token subject lookup failed", zap.String("username", username), zap.Error(err))
		s.rejectToken(ctx, "unknown subject")
		return nil
	}

	principal := &domain.Principal{Username: username, UserID: user.ID}
	if user.Role != nil {
		principal.Authorities = []string{user.Role.Name.Authority()}
		s.logger.Debug("token authorities resolved",
			zap.String("username", username),
			zap.String("role", string(user.Role.Name)))
	}
	return principal
}

// IsTokenBlacklisted reports whether the token has been logged out.
func (s *AuthService) IsTokenBlacklisted(ctx context.Context, token string) bool {
	blacklisted, err := s.blacklist.Contains(ctx, token)
	if err != nil {
		s.logger.Warn("blacklist lookup failed", zap.Error(err))
		return false
	}
	return blacklisted
}

// ValidateToken reports whether the token is valid for the username.
func (s *AuthService) ValidateToken(token, username string) bool {
	return s.tokens.Validate(token, username)
}

// ExtractUsername returns the token subject.
func (s *AuthService) ExtractUsername(token string) (string, error) {
	return s.tokens.ExtractUsername(token)
}

// TokenManager exposes the underlying token manager.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// rejectToken records a rejected bearer token in the auth outcome counters
// and publishes the matching audit event.
func (s *AuthService) rejectToken(ctx context.Context, reason string) {
	s.metrics.RecordAuthOutcome("token_rejected")
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTokenRejected,
		Timestamp: time.Now(),
		Payload:   events.TokenRejectedPayload{Reason: reason},
	})
}

func (s *AuthService) publishLoginFailed(ctx context.Context, email, reason string) {
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventLoginFailed,
		Email:     email,
		Timestamp: time.Now(),
		Payload:   events.LoginFailedPayload{Reason: reason},
	})
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
