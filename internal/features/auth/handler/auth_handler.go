package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"shipping-analytics/internal/features/auth/service"
)

// SessionCookie is the cookie carrying the session token. Clients may send
// the token in the X-Session-ID header instead.
const SessionCookie = "session_token"

// SessionHeader is the header alternative to the session cookie.
const SessionHeader = "X-Session-ID"

// AuthHandler handles HTTP requests for dashboard authentication.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// LoginRequest carries the dashboard password.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login godoc
// @Summary Log in to the dashboard
// @Description Validates the dashboard password and issues a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	token, err := h.authService.Login(c.UserContext(), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Message: "invalid password",
				RayID:   c.Locals("requestid").(string),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return c.JSON(LoginResponse{Token: token})
}

// Logout godoc
// @Summary Log out of the dashboard
// @Description Revokes the current session token
// @Tags auth
// @Produce json
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := SessionToken(c)
	if err := h.authService.Logout(c.UserContext(), token); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}
	c.ClearCookie(SessionCookie)
	return c.SendStatus(fiber.StatusNoContent)
}

// SessionToken extracts the session token from the header or cookie.
func SessionToken(c *fiber.Ctx) string {
	if token := c.Get(SessionHeader); token != "" {
		return token
	}
	return c.Cookies(SessionCookie)
}

// RequireSession returns a middleware that rejects requests without a valid
// session and stores the session id in request locals.
func RequireSession(authService *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := SessionToken(c)
		if err := authService.Validate(c.UserContext(), token); err != nil {
			if errors.Is(err, service.ErrInvalidSession) {
				return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
					Message: "authentication required",
					RayID:   c.Locals("requestid").(string),
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   c.Locals("requestid").(string),
			})
		}
		c.Locals("session_id", token)
		return c.Next()
	}
}
