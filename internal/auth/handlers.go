package auth

import (
	"context"
	"errors"

	"wanderlust-backend/internal/middleware"
	"wanderlust-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const userSessionsPrefix = "user_sessions:"

// Handlers holds dependencies for the signup/login/logout endpoints.
type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// SignupForm GET /signup — the signup page (flash surfaced in metadata).
func (h *Handlers) SignupForm(c *fiber.Ctx) error {
	return response.Success(c, "Signup", nil, fiber.Map{"flash": middleware.PopFlash(c)})
}

// Signup POST /signup — register, establish a session, redirect to listings.
// A duplicate username/email flashes the error back on the signup page.
func (h *Handlers) Signup(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		middleware.AddFlash(c, "error", ErrFieldsRequired.Error())
		return c.Redirect("/signup", fiber.StatusFound)
	}

	user, err := Register(h.DB, input)
	if err != nil {
		if errors.Is(err, ErrFieldsRequired) || errors.Is(err, ErrDuplicateIdentity) {
			middleware.AddFlash(c, "error", err.Error())
			return c.Redirect("/signup", fiber.StatusFound)
		}
		return err
	}

	h.establishSession(c, user.UserID.String(), user.Username, user.Email)
	middleware.AddFlash(c, "success", "Welcome to Wanderlust!")
	return c.Redirect("/listings", fiber.StatusFound)
}

// LoginForm GET /login — the login page.
func (h *Handlers) LoginForm(c *fiber.Ctx) error {
	return response.Success(c, "Login", nil, fiber.Map{"flash": middleware.PopFlash(c)})
}

// Login POST /login — authenticate and establish a session. Every failure
// flashes the same generic message back on the login page.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		middleware.AddFlash(c, "error", ErrInvalidCredentials.Error())
		return c.Redirect("/login", fiber.StatusFound)
	}

	user, err := Login(h.DB, input)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			middleware.AddFlash(c, "error", ErrInvalidCredentials.Error())
			return c.Redirect("/login", fiber.StatusFound)
		}
		return err
	}

	h.establishSession(c, user.UserID.String(), user.Username, user.Email)
	middleware.AddFlash(c, "success", "Welcome back, "+user.Username+"!")
	return c.Redirect("/listings", fiber.StatusFound)
}

// Logout GET /logout — invalidate the server-side session and clear the
// cookie; the goodbye flash rides on a fresh anonymous session.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	user := middleware.CurrentUser(c)

	if sessionID != "" {
		ctx := context.Background()
		h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID)
		if user != nil {
			h.Rdb.SRem(ctx, userSessionsPrefix+user.UserID, sessionID)
		}
	}
	middleware.DestroySession(c)

	middleware.AddFlash(c, "success", "Logged out successfully!")
	return c.Redirect("/listings", fiber.StatusFound)
}

func (h *Handlers) establishSession(c *fiber.Ctx, userID, username, email string) {
	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   userID,
		Username: username,
		Email:    email,
	})
	h.Rdb.SAdd(context.Background(), userSessionsPrefix+userID, sessionID)
}
