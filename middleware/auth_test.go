package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"parttrack/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "shop-floor-secret"

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newAuthApp(secret string, allowAnonymous bool) *fiber.App {
	app := fiber.New()
	app.Use(Auth(secret, allowAnonymous))
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"name": UserName(c), "admin": IsAdmin(c)})
	})
	app.Delete("/admin", RequireAdmin, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestAuth(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	tests := []struct {
		name   string
		secret string
		method string
		path   string
		header string
		want   int
	}{
		{"dev mode is anonymous admin", "", "DELETE", "/admin", "", fiber.StatusNoContent},
		{"missing header", testSecret, "GET", "/me", "", fiber.StatusUnauthorized},
		{"not bearer", testSecret, "GET", "/me", "Basic abc", fiber.StatusUnauthorized},
		{"wrong secret", testSecret, "GET", "/me", "Bearer " + signed(t, "other", jwt.MapClaims{"name": "Dana", "exp": exp}), fiber.StatusUnauthorized},
		{"expired", testSecret, "GET", "/me", "Bearer " + signed(t, testSecret, jwt.MapClaims{"name": "Dana", "exp": time.Now().Add(-time.Hour).Unix()}), fiber.StatusUnauthorized},
		{"no expiry", testSecret, "GET", "/me", "Bearer " + signed(t, testSecret, jwt.MapClaims{"name": "Dana"}), fiber.StatusUnauthorized},
		{"valid user", testSecret, "GET", "/me", "Bearer " + signed(t, testSecret, jwt.MapClaims{"name": "Dana", "exp": exp}), fiber.StatusOK},
		{"user is not admin", testSecret, "DELETE", "/admin", "Bearer " + signed(t, testSecret, jwt.MapClaims{"name": "Dana", "exp": exp}), fiber.StatusForbidden},
		{"admin role", testSecret, "DELETE", "/admin", "Bearer " + signed(t, testSecret, jwt.MapClaims{"name": "Ana", "role": "Admin", "exp": exp}), fiber.StatusNoContent},
		{"admin flag", testSecret, "DELETE", "/admin", "Bearer " + signed(t, testSecret, jwt.MapClaims{"sub": "ana", "is_admin": true, "exp": exp}), fiber.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := newAuthApp(tt.secret, true).Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestAuthWithoutSecret(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	tests := []struct {
		name           string
		allowAnonymous bool
		method         string
		path           string
		header         string
		want           int
	}{
		{"development allows anonymous admin", true, "DELETE", "/admin", "", fiber.StatusNoContent},
		{"production refuses anonymous", false, "GET", "/me", "", fiber.StatusUnauthorized},
		{"production refuses anonymous admin", false, "DELETE", "/admin", "", fiber.StatusUnauthorized},
		{"production refuses any token", false, "GET", "/me", "Bearer " + signed(t, testSecret, jwt.MapClaims{"name": "Dana", "exp": exp}), fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := newAuthApp("", tt.allowAnonymous).Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestLogger(logger.Nop()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Header.Get(HeaderRequestID) == "" {
		t.Error("response has no request ID")
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.Header.Get(HeaderRequestID); got != "abc-123" {
		t.Errorf("request ID = %q, want the caller's", got)
	}
}
