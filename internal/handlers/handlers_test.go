package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"musiclabel/config"
	"musiclabel/internal/app"
	"musiclabel/internal/handlers/middleware"
	"musiclabel/internal/server"
	"musiclabel/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
		HasNext    bool  `json:"hasNext"`
	} `json:"pagination"`
	Error *struct {
		Kind    string            `json:"kind"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
	Message string `json:"message"`
	TraceID string `json:"traceId"`
}

func testConfig(t *testing.T) config.Config {
	return config.Config{
		GeneralVersion:             "test",
		Environment:                "test",
		UploadDir:                  t.TempDir(),
		RateLimitMax:               1000,
		RateLimitWindowSeconds:     60,
		FormRateLimitMax:           100,
		FormRateLimitWindowSeconds: 60,
	}
}

func newTestServer(t *testing.T, cfg config.Config) *fiber.App {
	t.Helper()

	application, err := app.Build(cfg, testutil.NewTestDB(t))
	require.NoError(t, err)

	appServer, err := server.New(application)
	require.NoError(t, err)
	return appServer.FiberApp
}

func doJSON(t *testing.T, fiberApp *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return send(t, fiberApp, req)
}

func send(t *testing.T, fiberApp *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()

	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

type idOnly struct {
	ID int `json:"id"`
}

func TestHealth(t *testing.T) {
	fiberApp := newTestServer(t, testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.TraceIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(middleware.TraceIDHeader, "trace-123")
	resp, err = fiberApp.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "trace-123", resp.Header.Get(middleware.TraceIDHeader))
}

func TestErrorResponsesCarryTraceID(t *testing.T) {
	fiberApp := newTestServer(t, testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/api/artists/999", nil)
	req.Header.Set(middleware.TraceIDHeader, "trace-404")
	status, body := send(t, fiberApp, req)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "trace-404", body.TraceID)

	req = httptest.NewRequest(http.MethodGet, "/api/artists?limit=500", nil)
	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, resp.Header.Get(middleware.TraceIDHeader), out.TraceID)
	assert.NotEmpty(t, out.TraceID)

	req = httptest.NewRequest(http.MethodGet, "/api/artists/999", nil)
	req.Header.Set(middleware.TraceIDHeader, strings.Repeat("x", 200))
	status, body = send(t, fiberApp, req)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Len(t, body.TraceID, 36)

	status, body = doJSON(t, fiberApp, http.MethodGet, "/api/artists", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body.TraceID)
}

func TestArtistEndpoints(t *testing.T) {
	fiberApp := newTestServer(t, testConfig(t))

	status, body := doJSON(t, fiberApp, http.MethodPost, "/api/artists", map[string]any{
		"name":        "Glass Harbour",
		"socialLinks": map[string]string{"website": "https://glassharbour.example.com"},
		"unknown":     "ignored",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, body.Success)
	artist := decode[idOnly](t, body.Data)

	status, body = doJSON(t, fiberApp, http.MethodGet, fmt.Sprintf("/api/artists/%d", artist.ID), nil)
	assert.Equal(t, http.StatusOK, status)

	t.Run("duplicate name", func(t *testing.T) {
		status, body := doJSON(t, fiberApp, http.MethodPost, "/api/artists", map[string]any{"name": "Glass Harbour"})
		assert.Equal(t, http.StatusConflict, status)
		require.NotNil(t, body.Error)
		assert.Equal(t, "Conflict", body.Error.Kind)
		assert.False(t, body.Success)
	})

	t.Run("validation", func(t *testing.T) {
		status, body := doJSON(t, fiberApp, http.MethodPost, "/api/artists", map[string]any{
			"name":        "",
			"socialLinks": map[string]string{"myspace": "https://myspace.com/x"},
		})
		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, body.Error)
		assert.Equal(t, "ValidationFailure", body.Error.Kind)
		assert.Contains(t, body.Error.Fields, "name")
		assert.Contains(t, body.Error.Fields, "socialLinks.myspace")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/artists", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		status, body := send(t, fiberApp, req)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body.Error.Fields, "body")
	})

	t.Run("non numeric id", func(t *testing.T) {
		status, body := doJSON(t, fiberApp, http.MethodGet, "/api/artists/abc", nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body.Error.Fields, "id")
	})

	t.Run("missing artist", func(t *testing.T) {
		status, body := doJSON(t, fiberApp, http.MethodGet, "/api/artists/999", nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Artist not found", body.Error.Message)
	})

	t.Run("list with pagination", func(t *testing.T) {
		status, body := doJSON(t, fiberApp, http.MethodGet, "/api/artists?page=1&limit=5&search=glass", nil)
		require.Equal(t, http.StatusOK, status)
		require.NotNil(t, body.Pagination)
		assert.Equal(t, int64(1), body.Pagination.Total)
		assert.Equal(t, 1, body.Pagination.TotalPages)

		status, body = doJSON(t, fiberApp, http.MethodGet, "/api/artists?limit=500", nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body.Error.Fields, "limit")

		status, _ = doJSON(t, fiberApp, http.MethodGet, "/api/artists?sort=popularity", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("delete", func(t *testing.T) {
		status, body := doJSON(t, fiberApp, http.MethodDelete, fmt.Sprintf("/api/artists/%d", artist.ID), nil)
		assert.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, body.Message)

		status, _ = doJSON(t, fiberApp, http.MethodDelete, fmt.Sprintf("/api/artists/%d", artist.ID), nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestArtistImageUploadIsServed(t *testing.T) {
	fiberApp := newTestServer(t, testConfig(t))

	status, body := doJSON(t, fiberApp, http.MethodPost, "/api/artists", map[string]any{"name": "Pictured"})
	require.Equal(t, http.StatusCreated, status)
	artist := decode[idOnly](t, body.Data)

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 32, 32))))

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/artists/%d/image", artist.ID), &form)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	status, body = send(t, fiberApp, req)
	require.Equal(t, http.StatusOK, status)

	updated := decode[struct {
		ImageURL string `json:"imageUrl"`
	}](t, body.Data)
	assert.Equal(t, fmt.Sprintf("/uploads/artists/%d_profile.webp", artist.ID), updated.ImageURL)

	resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, updated.ImageURL, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/webp", resp.Header.Get("Content-Type"))

	t.Run("missing file", func(t *testing.T) {
		var empty bytes.Buffer
		writer := multipart.NewWriter(&empty)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/artists/%d/image", artist.ID), &empty)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		status, body := send(t, fiberApp, req)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body.Error.Fields, "image")
	})
}

func TestNewsEndpoints(t *testing.T) {
	fiberApp := newTestServer(t, testConfig(t))

	status, body := doJSON(t, fiberApp, http.MethodPost, "/api/news", map[string]any{
		"title":   "Label Showcase",
		"content": "Join us for a night of *new music*.",
	})
	require.Equal(t, http.StatusCreated, status)
	news := decode[struct {
		ID   int    `json:"id"`
		Slug string `json:"slug"`
	}](t, body.Data)
	assert.Equal(t, "label-showcase", news.Slug)

	status, body = doJSON(t, fiberApp, http.MethodGet, "/api/news", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(0), body.Pagination.Total)

	status, _ = doJSON(t, fiberApp, http.MethodPatch, fmt.Sprintf("/api/news/%d/publish", news.ID), nil)
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, fiberApp, http.MethodPatch, fmt.Sprintf("/api/news/%d/publish", news.ID), nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "InvariantViolation", body.Error.Kind)

	status, body = doJSON(t, fiberApp, http.MethodGet, "/api/news/slug/label-showcase", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body.Data), "<em>new music</em>")

	status, _ = doJSON(t, fiberApp, http.MethodGet, "/api/news?status=archived", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestContactEndpoints(t *testing.T) {
	fiberApp := newTestServer(t, testConfig(t))

	submission := map[string]any{
		"name":    "Riley",
		"email":   "riley@example.com",
		"subject": "Press request",
		"message": "Could we interview the band next week?",
		"type":    "press",
	}

	for i := 0; i < 3; i++ {
		status, _ := doJSON(t, fiberApp, http.MethodPost, "/api/contact", submission)
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := doJSON(t, fiberApp, http.MethodPost, "/api/contact", submission)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Contains(t, body.Error.Message, "Too many")

	spam := map[string]any{
		"name":    "Casino",
		"email":   "bonus@example.com",
		"subject": "Free offer",
		"message": "BUY NOW and claim your casino bonus!!!",
	}
	status, body = doJSON(t, fiberApp, http.MethodPost, "/api/contact", spam)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "SpamRejected", body.Error.Kind)

	status, body = doJSON(t, fiberApp, http.MethodGet, "/api/contact?processed=false&type=press", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(3), body.Pagination.Total)

	items := decode[[]idOnly](t, body.Data)
	status, body = doJSON(t, fiberApp, http.MethodPatch, fmt.Sprintf("/api/contact/%d/processed", items[0].ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body.Data), `"processed":true`)

	status, body = doJSON(t, fiberApp, http.MethodGet, "/api/contact/stats", nil)
	require.Equal(t, http.StatusOK, status)
	stats := decode[struct {
		Total       int64 `json:"total"`
		Unprocessed int64 `json:"unprocessed"`
	}](t, body.Data)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Unprocessed)
}

func TestNewsletterEndpoints(t *testing.T) {
	fiberApp := newTestServer(t, testConfig(t))

	status, body := doJSON(t, fiberApp, http.MethodPost, "/api/newsletter/subscribe", map[string]string{"email": "reader@example.com"})
	require.Equal(t, http.StatusCreated, status)
	first := decode[idOnly](t, body.Data)

	status, _ = doJSON(t, fiberApp, http.MethodPost, "/api/newsletter/subscribe", map[string]string{"email": "Reader@Example.com"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = doJSON(t, fiberApp, http.MethodPost, "/api/newsletter/unsubscribe", map[string]string{"email": "reader@example.com"})
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, fiberApp, http.MethodPost, "/api/newsletter/subscribe", map[string]string{"email": "reader@example.com"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, first.ID, decode[idOnly](t, body.Data).ID)

	status, _ = doJSON(t, fiberApp, http.MethodPost, "/api/newsletter/unsubscribe", map[string]string{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusNotFound, status)

	status, body = doJSON(t, fiberApp, http.MethodGet, "/api/newsletter/stats", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"total":1,"active":1,"inactive":0}`, string(body.Data))
}

func TestFormRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.FormRateLimitMax = 1
	fiberApp := newTestServer(t, cfg)

	status, _ := doJSON(t, fiberApp, http.MethodPost, "/api/newsletter/subscribe", map[string]string{"email": "one@example.com"})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, fiberApp, http.MethodPost, "/api/newsletter/subscribe", map[string]string{"email": "two@example.com"})
	assert.Equal(t, http.StatusTooManyRequests, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, middleware.RateLimitMessage, body.Error.Message)
	assert.NotEmpty(t, body.TraceID)

	status, _ = doJSON(t, fiberApp, http.MethodGet, "/api/newsletter/stats", nil)
	assert.Equal(t, http.StatusOK, status)
}
