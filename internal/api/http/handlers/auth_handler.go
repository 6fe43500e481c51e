package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cashewcorner/backend/internal/api/dto"
	"github.com/cashewcorner/backend/internal/auth"
	"github.com/cashewcorner/backend/internal/observability"
	"github.com/cashewcorner/backend/internal/service"
	apperrors "github.com/cashewcorner/backend/pkg/util"
)

// AuthHandler exposes login, logout and audit-trail endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	audit   *service.AuditService
	metrics *observability.Metrics
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, auditService *service.AuditService, metrics *observability.Metrics) *AuthHandler {
	return &AuthHandler{auth: authService, audit: auditService, metrics: metrics}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		h.metrics.RecordAuthOutcome("login_failure")
		return err
	}
	h.metrics.RecordAuthOutcome("login_success")

	return c.JSON(dto.LoginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    result.TokenType,
		ExpiresIn:    result.ExpiresIn,
		User:         dto.FromUser(result.User),
		Message:      result.Message,
	})
}

// Logout handles POST /api/auth/logout. The token to revoke is taken from
// the Authorization header.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return apperrors.NewInvalidToken("Missing or invalid JWT token")
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	username, err := h.auth.ExtractUsername(token)
	if err != nil {
		return apperrors.NewInvalidToken("Invalid or expired token")
	}

	result, err := h.auth.Logout(c.UserContext(), token, username)
	if err != nil {
		return err
	}
	h.metrics.RecordAuthOutcome("logout")

	return c.JSON(dto.LogoutResponse{
		Message:   result.Message,
		Timestamp: result.Timestamp,
		Username:  result.Username,
		Success:   result.Success,
	})
}

// Me handles GET /api/auth/me. The route is guarded, so a principal is
// always present here.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewAuthentication("Missing or invalid JWT token")
	}
	return c.JSON(dto.PrincipalResponse{
		Username:    principal.Username,
		UserID:      principal.UserID,
		Authorities: principal.Authorities,
	})
}

// Events handles GET /api/auth/events: the most recent audit entries,
// newest first.
func (h *AuthHandler) Events(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)

	records, err := h.audit.RecentEvents(c.UserContext(), limit)
	if err != nil {
		return apperrors.MapError(err)
	}

	responses := make([]dto.AuthEventResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, dto.AuthEventResponse{
			ID:         record.ID,
			EventType:  record.EventType,
			Username:   record.Username,
			Email:      record.Email,
			Detail:     record.Detail,
			OccurredAt: record.OccurredAt,
		})
	}
	return c.JSON(fiber.Map{"data": responses, "count": len(responses)})
}

// Status handles GET /api/auth/health.
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).SendString("Authentication service is running")
}
