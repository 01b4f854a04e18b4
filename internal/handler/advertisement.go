package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/ticketr/internal/model"
	"github.com/iliyamo/ticketr/internal/repository"
)

// AdvertisementHandler serves /api/advertisements.
type AdvertisementHandler struct {
	Ads *repository.AdvertisementRepo
	Log zerolog.Logger
}

func NewAdvertisementHandler(ads *repository.AdvertisementRepo, log zerolog.Logger) *AdvertisementHandler {
	return &AdvertisementHandler{Ads: ads, Log: log}
}

type adReq struct {
	AdvertiserName string           `json:"advertiser_name" validate:"required"`
	Type           string           `json:"advertisement_type"`
	EventID        uint64           `json:"event_id" validate:"required"`
	StartDate      model.Timestamp  `json:"start_date" validate:"required"`
	EndDate        model.Timestamp  `json:"end_date" validate:"required"`
	Cost           *decimal.Decimal `json:"cost" validate:"required"`
	Status         string           `json:"status"`
}

// bindAd decodes an advertisement. Type defaults to "banner" and status to
// "active"; the end date may not precede the start date.
func bindAd(c echo.Context) (model.Advertisement, error) {
	var req adReq
	if err := bind(c, &req); err != nil {
		return model.Advertisement{}, err
	}
	if req.Cost.IsNegative() {
		return model.Advertisement{}, errors.New("cost must not be negative")
	}
	if req.StartDate.Parsed() && req.EndDate.Parsed() && req.EndDate.Time.Before(req.StartDate.Time) {
		return model.Advertisement{}, errors.New("end_date must not be before start_date")
	}
	a := model.Advertisement{
		AdvertiserName: strings.TrimSpace(req.AdvertiserName),
		Type:           strings.TrimSpace(req.Type),
		EventID:        req.EventID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Cost:           *req.Cost,
		Status:         strings.TrimSpace(req.Status),
	}
	if a.Type == "" {
		a.Type = "banner"
	}
	if a.Status == "" {
		a.Status = "active"
	}
	return a, nil
}

func (h *AdvertisementHandler) Create(c echo.Context) error {
	a, err := bindAd(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	if err := h.Ads.Create(ctx, &a); err != nil {
		return serverError(c, h.Log, err, "failed to create advertisement")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Advertisement created successfully", "advertisement_id": a.ID})
}

func (h *AdvertisementHandler) List(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	ads, err := h.Ads.List(ctx)
	if err != nil {
		return serverError(c, h.Log, err, "failed to list advertisements")
	}
	return c.JSON(http.StatusOK, ads)
}

func (h *AdvertisementHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid advertisement id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	a, err := h.Ads.GetByID(ctx, id)
	if errors.Is(err, repository.ErrAdvertisementNotFound) {
		return notFound(c, "Advertisement not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to load advertisement")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AdvertisementHandler) ListByEvent(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	ads, err := h.Ads.ListByEvent(ctx, eventID)
	if err != nil {
		return serverError(c, h.Log, err, "failed to list advertisements")
	}
	return c.JSON(http.StatusOK, ads)
}

func (h *AdvertisementHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid advertisement id")
	}
	a, err := bindAd(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	a.ID = id
	err = h.Ads.Update(ctx, &a)
	if errors.Is(err, repository.ErrAdvertisementNotFound) {
		return notFound(c, "Advertisement not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to update advertisement")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Advertisement updated successfully"})
}

func (h *AdvertisementHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid advertisement id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	err := h.Ads.Delete(ctx, id)
	if errors.Is(err, repository.ErrAdvertisementNotFound) {
		return notFound(c, "Advertisement not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to delete advertisement")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Advertisement deleted successfully"})
}
