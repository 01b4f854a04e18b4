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

// OrganizationHandler serves /api/organizations, including login and /me.
type OrganizationHandler struct {
	Cfg  config.Config
	Orgs *repository.OrganizationRepo
	Log  zerolog.Logger
}

func NewOrganizationHandler(cfg config.Config, orgs *repository.OrganizationRepo, log zerolog.Logger) *OrganizationHandler {
	return &OrganizationHandler{Cfg: cfg, Orgs: orgs, Log: log}
}

type orgReq struct {
	Name      string  `json:"org_name" validate:"required"`
	Address   *string `json:"address"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password"`
	IsPremium bool    `json:"is_premium"`
}

func (r orgReq) model(id uint64) model.Organization {
	return model.Organization{
		ID:        id,
		Name:      strings.TrimSpace(r.Name),
		Address:   r.Address,
		Email:     r.Email,
		IsPremium: r.IsPremium,
	}
}

func (h *OrganizationHandler) Create(c echo.Context) error {
	var req orgReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.Password == "" {
		return badRequest(c, "password is required")
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	o := req.model(0)
	if err := h.Orgs.Create(ctx, &o, req.Password, h.Cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return conflict(c, "email already exists")
		}
		return serverError(c, h.Log, err, "failed to create organization")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Organization created successfully", "org_id": o.ID})
}

func (h *OrganizationHandler) List(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	orgs, err := h.Orgs.List(ctx)
	if err != nil {
		return serverError(c, h.Log, err, "failed to list organizations")
	}
	return c.JSON(http.StatusOK, orgs)
}

func (h *OrganizationHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid organization id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	o, err := h.Orgs.GetByID(ctx, id)
	if errors.Is(err, repository.ErrOrganizationNotFound) {
		return notFound(c, "Organization not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to load organization")
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrganizationHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid organization id")
	}
	var req orgReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	o := req.model(id)
	switch err := h.Orgs.Update(ctx, &o, req.Password, h.Cfg.BcryptCost); {
	case errors.Is(err, repository.ErrOrganizationNotFound):
		return notFound(c, "Organization not found")
	case errors.Is(err, repository.ErrEmailExists):
		return conflict(c, "email already exists")
	case err != nil:
		return serverError(c, h.Log, err, "failed to update organization")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Organization updated successfully"})
}

func (h *OrganizationHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid organization id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	err := h.Orgs.Delete(ctx, id)
	if errors.Is(err, repository.ErrOrganizationNotFound) {
		return notFound(c, "Organization not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to delete organization")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Organization deleted successfully"})
}

func (h *OrganizationHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	o, err := h.Orgs.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrOrganizationNotFound) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if err != nil {
		return serverError(c, h.Log, err, "login failed")
	}
	if !utils.VerifyPassword(o.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, o.ID, o.Email, utils.KindOrganization, h.Cfg.TokenTTL)
	if err != nil {
		return serverError(c, h.Log, err, "failed to issue token")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Login successful",
		"org":        o,
		"token":      tok.Token,
		"expires_at": tok.Exp,
	})
}

func (h *OrganizationHandler) Me(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok || id.Kind != utils.KindOrganization {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	o, err := h.Orgs.GetByID(ctx, id.ID)
	if errors.Is(err, repository.ErrOrganizationNotFound) {
		return notFound(c, "Organization not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to load organization")
	}
	return c.JSON(http.StatusOK, o)
}
