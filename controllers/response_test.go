package controllers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"parttrack/apperror"

	"github.com/gofiber/fiber/v2"
)

func TestRespondErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperror.ValidationFields("invalid request", map[string]string{"name": "is required"}), fiber.StatusBadRequest},
		{"not found", apperror.NotFound("bom %d not found", 7), fiber.StatusNotFound},
		{"conflict", apperror.Conflict("try again", nil), fiber.StatusConflict},
		{"store unavailable", apperror.StoreUnavailable(errors.New("dial tcp: refused")), fiber.StatusServiceUnavailable},
		{"fiber error", fiber.NewError(fiber.StatusBadRequest, "bad"), fiber.StatusBadRequest},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return RespondError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			var body struct {
				Success bool              `json:"success"`
				Message string            `json:"message"`
				Errors  map[string]string `json:"errors"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Success || body.Message == "" {
				t.Errorf("body = %+v", body)
			}
			if tt.name == "validation" && body.Errors["name"] != "is required" {
				t.Errorf("errors = %v", body.Errors)
			}
		})
	}
}
