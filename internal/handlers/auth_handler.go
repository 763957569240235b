package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/niley1nov/LMS/internal/config"
	"github.com/niley1nov/LMS/internal/dto"
	"github.com/niley1nov/LMS/internal/middleware"
	"github.com/niley1nov/LMS/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// GoogleSignIn exchanges a Google ID token for a session cookie. The user
// row is created or refreshed from the verified identity in the same call.
func (h *AuthHandler) GoogleSignIn(c *fiber.Ctx) error {
	var req dto.GoogleSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := dto.Validate(&req); fields != nil {
		return invalidFields(c, fields)
	}

	user, token, err := h.authService.AuthenticateGoogle(c.UserContext(), req.Token)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Cookie(h.sessionCookie(token, int(h.cfg.JWTExpiry.Seconds())))
	return c.JSON(user)
}

// Logout expires the session cookie. Always succeeds, signed in or not.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(h.sessionCookie("", -1))
	return c.SendStatus(fiber.StatusNoContent)
}

// sessionCookie builds the session cookie. SameSite=None with Secure lets
// the frontend call from a different origin; HTTPOnly keeps scripts out.
func (h *AuthHandler) sessionCookie(value string, maxAge int) *fiber.Cookie {
	cookie := &fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	}
	if maxAge < 0 {
		cookie.Expires = time.Unix(0, 0)
	}
	return cookie
}
