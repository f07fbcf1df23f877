package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	localUserName = "userName"
	localIsAdmin  = "isAdmin"
)

// Auth verifies the bearer token issued by the hosted auth backend and puts
// the user's display name and admin flag into the request locals. An empty
// secret with allowAnonymous set means local development: every request runs
// as an anonymous admin. Without allowAnonymous an empty secret refuses all
// requests.
func Auth(secret string, allowAnonymous bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if secret == "" {
			if !allowAnonymous {
				return unauthorized(ctx, "Unauthorized: authentication is not configured")
			}
			ctx.Locals(localUserName, "")
			ctx.Locals(localIsAdmin, true)
			return ctx.Next()
		}

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(ctx, "Missing Authorization header")
		}
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			return unauthorized(ctx, "Invalid Authorization header format")
		}

		token, err := jwt.Parse(tokenParts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid signing method")
			}
			return []byte(secret), nil
		}, jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			return unauthorized(ctx, "Unauthorized: Invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(ctx, "Unauthorized: Invalid token")
		}
		name, _ := claims["name"].(string)
		if name == "" {
			name, _ = claims["sub"].(string)
		}
		if name == "" {
			return unauthorized(ctx, "Unauthorized: Token has no user name")
		}

		ctx.Locals(localUserName, name)
		ctx.Locals(localIsAdmin, isAdminClaim(claims))
		return ctx.Next()
	}
}

func isAdminClaim(claims jwt.MapClaims) bool {
	if admin, ok := claims["is_admin"].(bool); ok {
		return admin
	}
	role, _ := claims["role"].(string)
	return strings.EqualFold(role, "admin")
}

// RequireAdmin must run after Auth.
func RequireAdmin(ctx *fiber.Ctx) error {
	if !IsAdmin(ctx) {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Forbidden: admin only",
		})
	}
	return ctx.Next()
}

func UserName(ctx *fiber.Ctx) string {
	name, _ := ctx.Locals(localUserName).(string)
	return name
}

func IsAdmin(ctx *fiber.Ctx) bool {
	admin, _ := ctx.Locals(localIsAdmin).(bool)
	return admin
}

func unauthorized(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
