package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/pkg/logger"
)

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestRecoveryMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewRecoveryMiddleware())
	app.Get("/panic", func(fiber.Ctx) error {
		panic("boom")
	})
	app.Get("/ok", func(ctx fiber.Ctx) error {
		return ctx.SendString("fine")
	})

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, body)

	resp, body = send(t, app, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "fine", body)
}

func TestBodyParserMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewBodyParserMiddleware())
	app.Post("/echo", func(ctx fiber.Ctx) error {
		return ctx.JSON(middleware.Body(ctx))
	})

	testCases := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantBody    string
	}{
		{
			name:        "json object",
			contentType: "application/json",
			body:        `{"content":"a","important":true}`,
			wantStatus:  http.StatusOK,
			wantBody:    `{"content":"a","important":true}`,
		},
		{
			name:        "json with charset",
			contentType: "application/json; charset=utf-8",
			body:        `{"content":"b"}`,
			wantStatus:  http.StatusOK,
			wantBody:    `{"content":"b"}`,
		},
		{
			name:        "plain text is ignored",
			contentType: "text/plain",
			body:        `{"content":"c"}`,
			wantStatus:  http.StatusOK,
			wantBody:    `{}`,
		},
		{
			name:        "empty json body",
			contentType: "application/json",
			body:        "",
			wantStatus:  http.StatusOK,
			wantBody:    `{}`,
		},
		{
			name:        "malformed json",
			contentType: "application/json",
			body:        `{"content"`,
			wantStatus:  http.StatusBadRequest,
			wantBody:    `{"error":"invalid request body"}`,
		},
		{
			name:        "json array is rejected",
			contentType: "application/json",
			body:        `[1,2]`,
			wantStatus:  http.StatusBadRequest,
			wantBody:    `{"error":"invalid request body"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", tc.contentType)

			resp, body := send(t, app, req)

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.JSONEq(t, tc.wantBody, body)
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewRequestIDMiddleware())
	app.Get("/", func(ctx fiber.Ctx) error {
		id, ok := logger.GetRequestID(middleware.RequestContext(ctx))
		if !ok {
			return ctx.SendStatus(fiber.StatusInternalServerError)
		}
		return ctx.SendString(id)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderRequestID, "given-id")
	resp, body := send(t, app, req)
	assert.Equal(t, "given-id", body)
	assert.Equal(t, "given-id", resp.Header.Get(middleware.HeaderRequestID))

	resp, body = send(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, body, 36)
	assert.Equal(t, body, resp.Header.Get(middleware.HeaderRequestID))
}

func TestRequestContextWithoutMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(ctx fiber.Ctx) error {
		if _, ok := logger.GetRequestID(middleware.RequestContext(ctx)); ok {
			return ctx.SendString("unexpected id")
		}
		return ctx.JSON(middleware.Body(ctx))
	})

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{}`, body)
}

func TestLoggerMiddlewareDoesNotShortCircuit(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewLoggerMiddleware())
	app.Get("/", func(ctx fiber.Ctx) error {
		return ctx.Status(fiber.StatusTeapot).SendString("reached")
	})

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "reached", body)
}
