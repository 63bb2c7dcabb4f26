package api

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "short username",
			err:            errors.New("username must be at least 3 characters"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"bad_request"`,
		},
		{
			name:           "short password",
			err:            errors.New("password must be at least 6 characters"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"bad_request"`,
		},
		{
			name:           "title out of range",
			err:            errors.New("title must be 3-100 characters"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `Title must be 3-100 characters`,
		},
		{
			name:           "description too long",
			err:            errors.New("description must be at most 500 characters"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"bad_request"`,
		},
		{
			name:           "missing task title",
			err:            errors.New("task title is required"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `Task title is required`,
		},
		{
			name:           "duplicate username",
			err:            errors.New("username already exists"),
			expectedStatus: http.StatusConflict,
			expectedBody:   `"conflict"`,
		},
		{
			name:           "bad credentials",
			err:            errors.New("invalid username or password"),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"unauthorized"`,
		},
		{
			name:           "project not found or not owned",
			err:            errors.New("project not found"),
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"not_found"`,
		},
		{
			name:           "task not found or not owned",
			err:            errors.New("task not found"),
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"not_found"`,
		},
		{
			name:           "storage fault stays generic",
			err:            errors.New("database is locked"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `An internal error occurred`,
		},
	}

	handlers := &Handlers{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/test", func(c *fiber.Ctx) error {
				return handlers.handleServiceError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/test", nil), -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.expectedStatus)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("io.ReadAll() error = %v", err)
			}
			if !strings.Contains(string(body), tt.expectedBody) {
				t.Errorf("body = %v, want to contain %v", string(body), tt.expectedBody)
			}

			// Internal detail never crosses the boundary
			if tt.expectedStatus == http.StatusInternalServerError &&
				strings.Contains(string(body), "database is locked") {
				t.Error("internal error detail leaked to the client")
			}
		})
	}
}
