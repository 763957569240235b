package middleware

import (
	"errors"
	"strconv"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/niley1nov/LMS/internal/config"
	"github.com/niley1nov/LMS/internal/dto"
	"github.com/niley1nov/LMS/internal/models"
	"gorm.io/gorm"
)

// SessionCookie is the cookie carrying the session JWT.
const SessionCookie = "access_token"

const currentUserKey = "current_user"

// RequireUser reads the session cookie, verifies the JWT and loads the user
// record. Requests without a valid session get 401; a token whose subject no
// longer exists is treated the same as no token.
func RequireUser(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: "cookie:" + SessionCookie,
		SuccessHandler: func(c *fiber.Ctx) error {
			user, err := resolveUser(c, db)
			if err != nil {
				return unauthorized(c)
			}
			c.Locals(currentUserKey, user)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

// OptionalUser resolves the session user when a valid cookie is present and
// lets the request through anonymously otherwise. Expired or malformed
// cookies do not fail the request; the handler just sees no user.
func OptionalUser(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: "cookie:" + SessionCookie,
		SuccessHandler: func(c *fiber.Ctx) error {
			if user, err := resolveUser(c, db); err == nil {
				c.Locals(currentUserKey, user)
			}
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Next()
		},
	})
}

// CurrentUser returns the session user stored by RequireUser/OptionalUser.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(currentUserKey).(*models.User)
	return user, ok
}

func resolveUser(c *fiber.Ctx, db *gorm.DB) (*models.User, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("missing subject")
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized: missing or invalid session",
	})
}
