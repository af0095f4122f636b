package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"gmrportal/internal/adapter/api/middleware"
	"gmrportal/internal/usecase"
	"gmrportal/pkg/errors"
	"gmrportal/pkg/response"
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

type createOrderRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description" validate:"max=255"`
	ServiceRequestID string          `json:"service_request_id"`
}

type checkoutRequest struct {
	ServiceID string `json:"service_id" validate:"required"`
}

// Field names follow the checkout widget's success callback.
type verifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	PaymentID         string `json:"payment_id"`
}

type failureRequest struct {
	PaymentID string `json:"payment_id" validate:"required"`
	Reason    string `json:"reason" validate:"max=500"`
}

func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.paymentUseCase.CreateOrder(c.Request().Context(), middleware.UID(c), usecase.CreateOrderInput{
		Amount:           req.Amount,
		Description:      req.Description,
		ServiceRequestID: req.ServiceRequestID,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, result)
}

func (h *PaymentHandler) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.paymentUseCase.Checkout(c.Request().Context(), middleware.UID(c), req.ServiceID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

// Verify leaves field presence to the use case so a partial callback gets
// "Missing required fields" rather than a validator report.
func (h *PaymentHandler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	result, err := h.paymentUseCase.Verify(c.Request().Context(), middleware.UID(c), usecase.VerifyInput{
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpaySignature: req.RazorpaySignature,
		PaymentID:         req.PaymentID,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *PaymentHandler) ReportFailure(c echo.Context) error {
	var req failureRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	payment, err := h.paymentUseCase.ReportFailure(c.Request().Context(), middleware.UID(c), req.PaymentID, req.Reason)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, payment)
}

func (h *PaymentHandler) History(c echo.Context) error {
	payments, err := h.paymentUseCase.History(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, payments)
}
