package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/ticketr/internal/config"
	"github.com/iliyamo/ticketr/internal/middleware"
	"github.com/iliyamo/ticketr/internal/model"
	"github.com/iliyamo/ticketr/internal/repository"
	"github.com/iliyamo/ticketr/internal/utils"
)

// UserHandler serves /api/users, including login and /me.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Log   zerolog.Logger
}

func NewUserHandler(cfg config.Config, users *repository.UserRepo, log zerolog.Logger) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users, Log: log}
}

type createUserReq struct {
	Name     string `json:"user_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	IsVIP    bool   `json:"is_vip"`
}

// updateUserReq leaves the password untouched when it is omitted.
type updateUserReq struct {
	Name     string `json:"user_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	IsVIP    bool   `json:"is_vip"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	u := model.User{Name: strings.TrimSpace(req.Name), Email: req.Email, IsVIP: req.IsVIP}
	if err := h.Users.Create(ctx, &u, req.Password, h.Cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return conflict(c, "email already exists")
		}
		return serverError(c, h.Log, err, "failed to create user")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "User created successfully", "user_id": u.ID})
}

func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return serverError(c, h.Log, err, "failed to list users")
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return notFound(c, "User not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to load user")
	}
	return c.JSON(http.StatusOK, u)
}

// GetByEmail looks a user up by the email query parameter.
func (h *UserHandler) GetByEmail(c echo.Context) error {
	email := strings.TrimSpace(c.QueryParam("email"))
	if email == "" {
		return badRequest(c, "email is required")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return notFound(c, "User not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to load user")
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	var req updateUserReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	u := model.User{ID: id, Name: strings.TrimSpace(req.Name), Email: req.Email, IsVIP: req.IsVIP}
	switch err := h.Users.Update(ctx, &u, req.Password, h.Cfg.BcryptCost); {
	case errors.Is(err, repository.ErrUserNotFound):
		return notFound(c, "User not found")
	case errors.Is(err, repository.ErrEmailExists):
		return conflict(c, "email already exists")
	case err != nil:
		return serverError(c, h.Log, err, "failed to update user")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User updated successfully"})
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	err := h.Users.Delete(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return notFound(c, "User not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to delete user")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}

// Login checks the password and issues an access token. Unknown emails and
// wrong passwords get the same 401.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if err != nil {
		return serverError(c, h.Log, err, "login failed")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, utils.KindUser, h.Cfg.TokenTTL)
	if err != nil {
		return serverError(c, h.Log, err, "failed to issue token")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Login successful",
		"user":       u,
		"token":      tok.Token,
		"expires_at": tok.Exp,
	})
}

// Me returns the user the bearer token was issued for.
func (h *UserHandler) Me(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok || id.Kind != utils.KindUser {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id.ID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return notFound(c, "User not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to load user")
	}
	return c.JSON(http.StatusOK, u)
}
