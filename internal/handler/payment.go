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

// PaymentHandler serves /api/payments.
type PaymentHandler struct {
	Payments *repository.PaymentRepo
	Log      zerolog.Logger
}

func NewPaymentHandler(payments *repository.PaymentRepo, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{Payments: payments, Log: log}
}

type paymentReq struct {
	UserID        uint64           `json:"user_id" validate:"required"`
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
	PlatformFee   *decimal.Decimal `json:"platform_fee" validate:"required"`
	PaymentMethod string           `json:"payment_method" validate:"required"`
}

func bindPayment(c echo.Context) (model.Payment, error) {
	var req paymentReq
	if err := bind(c, &req); err != nil {
		return model.Payment{}, err
	}
	if req.Amount.IsNegative() {
		return model.Payment{}, errors.New("amount must not be negative")
	}
	if req.PlatformFee.IsNegative() {
		return model.Payment{}, errors.New("platform_fee must not be negative")
	}
	return model.Payment{
		UserID:        req.UserID,
		Amount:        *req.Amount,
		PlatformFee:   *req.PlatformFee,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
	}, nil
}

func (h *PaymentHandler) Create(c echo.Context) error {
	p, err := bindPayment(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	if err := h.Payments.Create(ctx, &p); err != nil {
		return serverError(c, h.Log, err, "failed to create payment")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Payment created successfully", "payment_id": p.ID})
}

func (h *PaymentHandler) List(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	payments, err := h.Payments.List(ctx)
	if err != nil {
		return serverError(c, h.Log, err, "failed to list payments")
	}
	return c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid payment id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	p, err := h.Payments.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPaymentNotFound) {
		return notFound(c, "Payment not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to load payment")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) ListByUser(c echo.Context) error {
	userID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	payments, err := h.Payments.ListByUser(ctx, userID)
	if err != nil {
		return serverError(c, h.Log, err, "failed to list payments")
	}
	return c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid payment id")
	}
	p, err := bindPayment(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	p.ID = id
	err = h.Payments.Update(ctx, &p)
	if errors.Is(err, repository.ErrPaymentNotFound) {
		return notFound(c, "Payment not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to update payment")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment updated successfully"})
}

func (h *PaymentHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid payment id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	err := h.Payments.Delete(ctx, id)
	if errors.Is(err, repository.ErrPaymentNotFound) {
		return notFound(c, "Payment not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to delete payment")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment deleted successfully"})
}
