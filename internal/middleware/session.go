package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionConfig for the Redis-backed session; cookie and Redis key format
// match the connect-redis layout (cookie value "s:<id>", key "session:<id>").
type SessionConfig struct {
	Secret       string
	IsProduction bool
}

const (
	SessionCookieName  = "wanderlust.sid"
	SessionRedisPrefix = "session:"
	sessionMaxAge      = 24 * time.Hour

	sessionIDLocal   = "session_id"
	sessionDataLocal = "session_data"
	sessionCfgLocal  = "session_cfg"
	userLocal        = "user"
)

// SessionUser is the shape stored in the session under "user".
type SessionUser struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session returns a Fiber middleware that loads the session from Redis before
// the handler runs and persists it afterwards. Handlers interact with the
// session only through the helpers below.
func Session(rdb *redis.Client, cfg SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(SessionCookieName)
		if strings.HasPrefix(sessionID, "s:") {
			parts := strings.SplitN(sessionID[2:], ".", 2)
			sessionID = parts[0]
		}

		var data map[string]interface{}
		if sessionID != "" {
			b, err := rdb.Get(context.Background(), SessionRedisPrefix+sessionID).Bytes()
			if err == nil {
				_ = json.Unmarshal(b, &data)
			} else {
				// Stale cookie with no server-side session.
				sessionID = ""
			}
		}
		if data == nil {
			data = make(map[string]interface{})
		}

		c.Locals(sessionDataLocal, data)
		c.Locals(sessionCfgLocal, cfg)
		if u, ok := data[userLocal]; ok {
			c.Locals(userLocal, u)
		} else {
			c.Locals(userLocal, nil)
		}
		c.Locals(sessionIDLocal, sessionID)

		if err := c.Next(); err != nil {
			return err
		}

		// Persist if a session exists (login, flash, or a pre-existing one).
		if sid, _ := c.Locals(sessionIDLocal).(string); sid != "" {
			updated, _ := c.Locals(sessionDataLocal).(map[string]interface{})
			if updated != nil {
				b, _ := json.Marshal(updated)
				rdb.Set(context.Background(), SessionRedisPrefix+sid, b, sessionMaxAge)
			}
		}
		return nil
	}
}

// GetSessionID returns the current session ID from context.
func GetSessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(sessionIDLocal).(string)
	return sid
}

// GetUser returns the session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// CurrentUser decodes the session user, or nil when not authenticated.
func CurrentUser(c *fiber.Ctx) *SessionUser {
	m, ok := c.Locals(userLocal).(map[string]interface{})
	if !ok {
		return nil
	}
	id, _ := m["user_id"].(string)
	if id == "" {
		return nil
	}
	username, _ := m["username"].(string)
	email, _ := m["email"].(string)
	return &SessionUser{UserID: id, Username: username, Email: email}
}

// SetSessionUser stores the user in the session (call after login/signup,
// typically right after RegenerateSessionID).
func SetSessionUser(c *fiber.Ctx, user SessionUser) {
	data := sessionData(c)
	data[userLocal] = map[string]interface{}{
		"user_id":  user.UserID,
		"username": user.Username,
		"email":    user.Email,
	}
	c.Locals(sessionDataLocal, data)
	c.Locals(userLocal, data[userLocal])
}

// RegenerateSessionID creates a new session ID and sets the session cookie.
func RegenerateSessionID(c *fiber.Ctx) string {
	newID := uuid.New().String()
	c.Locals(sessionIDLocal, newID)
	cfg, _ := c.Locals(sessionCfgLocal).(SessionConfig)
	cookie := SessionCookieConfig(cfg)
	cookie.Value = "s:" + newID
	c.Cookie(&cookie)
	return newID
}

// DestroySession clears user and session data from Locals and stops the
// middleware from persisting; the caller deletes the Redis key and cookie.
func DestroySession(c *fiber.Ctx) {
	c.Locals(sessionDataLocal, make(map[string]interface{}))
	c.Locals(userLocal, nil)
	c.Locals(sessionIDLocal, "")
}

// AddFlash queues a one-time flash message ("success" or "error") for the next
// rendered page. Creates a session on the fly for anonymous visitors so the
// message survives the redirect.
func AddFlash(c *fiber.Ctx, kind, message string) {
	if GetSessionID(c) == "" {
		RegenerateSessionID(c)
	}
	data := sessionData(c)
	flash, _ := data["flash"].(map[string]interface{})
	if flash == nil {
		flash = make(map[string]interface{})
	}
	msgs, _ := flash[kind].([]interface{})
	flash[kind] = append(msgs, message)
	data["flash"] = flash
	c.Locals(sessionDataLocal, data)
}

// PopFlash drains pending flash messages, keyed by kind. The drain is
// persisted when the session middleware saves, so each message shows once.
func PopFlash(c *fiber.Ctx) map[string][]string {
	out := make(map[string][]string)
	data := sessionData(c)
	flash, _ := data["flash"].(map[string]interface{})
	if flash == nil {
		return out
	}
	for kind, v := range flash {
		msgs, _ := v.([]interface{})
		for _, m := range msgs {
			if s, ok := m.(string); ok {
				out[kind] = append(out[kind], s)
			}
		}
	}
	delete(data, "flash")
	c.Locals(sessionDataLocal, data)
	return out
}

// SessionCookieConfig returns cookie options (24h, HTTP-only).
func SessionCookieConfig(cfg SessionConfig) fiber.Cookie {
	return fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: "Lax",
	}
}

func sessionData(c *fiber.Ctx) map[string]interface{} {
	data, _ := c.Locals(sessionDataLocal).(map[string]interface{})
	if data == nil {
		data = make(map[string]interface{})
		c.Locals(sessionDataLocal, data)
	}
	return data
}
