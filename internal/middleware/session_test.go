package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionApp(t *testing.T) (*fiber.App, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	app := fiber.New()
	app.Use(Session(rdb, SessionConfig{Secret: "testsecret"}))
	return app, rdb
}

func TestSession_LoginPersistsUser(t *testing.T) {
	app, rdb := setupSessionApp(t)
	app.Post("/login", func(c *fiber.Ctx) error {
		RegenerateSessionID(c)
		SetSessionUser(c, SessionUser{UserID: "u1", Username: "a", Email: "a@x.com"})
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		u := CurrentUser(c)
		if u == nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(u.Username)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
	require.NoError(t, err)
	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName {
			cookie = c.Name + "=" + c.Value
		}
	}
	require.NotEmpty(t, cookie)

	keys, err := rdb.Keys(context.Background(), SessionRedisPrefix+"*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Cookie", cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSession_StaleCookieIsAnonymous(t *testing.T) {
	app, _ := setupSessionApp(t)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Cookie", SessionCookieName+"=s:does-not-exist")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestFlash_ShownExactlyOnce(t *testing.T) {
	app, _ := setupSessionApp(t)
	app.Get("/flash", func(c *fiber.Ctx) error {
		AddFlash(c, "error", "boom")
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/page", func(c *fiber.Ctx) error {
		flash := PopFlash(c)
		return c.JSON(flash)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/flash", nil))
	require.NoError(t, err)
	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName {
			cookie = c.Name + "=" + c.Value
		}
	}
	require.NotEmpty(t, cookie, "AddFlash must create a session for anonymous visitors")

	req := httptest.NewRequest("GET", "/page", nil)
	req.Header.Set("Cookie", cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	body := make(map[string][]string)
	require.NoError(t, jsonDecode(resp.Body, &body))
	assert.Equal(t, []string{"boom"}, body["error"])

	req = httptest.NewRequest("GET", "/page", nil)
	req.Header.Set("Cookie", cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	body = make(map[string][]string)
	require.NoError(t, jsonDecode(resp.Body, &body))
	assert.Empty(t, body["error"])
}

func jsonDecode(r io.Reader, v interface{}) error {
	return json.NewDecoder(r).Decode(v)
}

func TestRequireAuth_RedirectsAnonymous(t *testing.T) {
	app, _ := setupSessionApp(t)
	app.Get("/gated", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/gated", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
