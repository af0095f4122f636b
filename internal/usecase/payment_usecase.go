package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gmrportal/internal/domain/entity"
	"gmrportal/internal/domain/repository"
	"gmrportal/internal/domain/service"
	"gmrportal/pkg/errors"
	"gmrportal/pkg/logger"
)

type PaymentUseCase struct {
	paymentRepo repository.PaymentRepository
	requestRepo repository.ServiceRequestRepository
	requests    *ServiceRequestUseCase
	catalog     *CatalogUseCase
	gateway     service.PaymentGateway
	currency    string
}

func NewPaymentUseCase(
	paymentRepo repository.PaymentRepository,
	requestRepo repository.ServiceRequestRepository,
	requests *ServiceRequestUseCase,
	catalog *CatalogUseCase,
	gateway service.PaymentGateway,
	currency string,
) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo: paymentRepo,
		requestRepo: requestRepo,
		requests:    requests,
		catalog:     catalog,
		gateway:     gateway,
		currency:    currency,
	}
}

type CreateOrderInput struct {
	Amount           decimal.Decimal
	Description      string
	ServiceRequestID string
}

// OrderResult is what the checkout widget needs to open. Amount is in paise.
type OrderResult struct {
	OrderID          string `json:"order_id"`
	KeyID            string `json:"key_id"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
	PaymentID        string `json:"payment_id"`
	Description      string `json:"description"`
	ServiceRequestID string `json:"service_request_id,omitempty"`
}

func (uc *PaymentUseCase) CreateOrder(ctx context.Context, uid string, input CreateOrderInput) (*OrderResult, error) {
	if uid == "" {
		return nil, errors.Unauthorized("Please log in to make a payment", nil)
	}
	amount := input.Amount.Round(2)
	if input.ServiceRequestID != "" {
		req, err := uc.requestRepo.GetByID(ctx, input.ServiceRequestID)
		if err != nil {
			return nil, err
		}
		if req.UserID != uid {
			return nil, errors.NotFound("Service request", nil)
		}
		// a linked order is always charged what the request is worth
		if amount, err = uc.amountDue(req); err != nil {
			return nil, err
		}
	}
	if !amount.IsPositive() {
		return nil, errors.BadRequest("Amount must be greater than zero", nil)
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = "Service payment"
	}

	payment := &entity.Payment{
		ID:               uuid.New().String(),
		UserID:           uid,
		ServiceRequestID: input.ServiceRequestID,
		Amount:           amount.InexactFloat64(),
		Currency:         uc.currency,
		Status:           entity.PaymentPending,
		Description:      description,
	}
	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	notes := map[string]string{"payment_id": payment.ID, "user_id": uid}
	if input.ServiceRequestID != "" {
		notes["service_request_id"] = input.ServiceRequestID
	}

	order, err := uc.gateway.CreateOrder(ctx, service.OrderRequest{
		AmountMinor: amount.Shift(2).IntPart(),
		Currency:    uc.currency,
		Receipt:     payment.ID,
		Notes:       notes,
	})
	if err != nil {
		logger.LogPaymentError(payment.ID, "create order", err)
		payment.Status = entity.PaymentFailed
		payment.FailureReason = "order creation failed"
		if upErr := uc.paymentRepo.Update(ctx, payment); upErr != nil {
			logger.LogPaymentError(payment.ID, "mark failed", upErr)
		}
		return nil, errors.BadGateway("Failed to create payment order", err)
	}

	payment.RazorpayOrderID = order.ID
	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	return &OrderResult{
		OrderID:          order.ID,
		KeyID:            uc.gateway.KeyID(),
		Amount:           order.AmountMinor,
		Currency:         order.Currency,
		PaymentID:        payment.ID,
		Description:      description,
		ServiceRequestID: input.ServiceRequestID,
	}, nil
}

// amountDue is the server-side price of a request: the GST-inclusive quote
// before work starts, the staff-set final amount once completed.
func (uc *PaymentUseCase) amountDue(req *entity.ServiceRequest) (decimal.Decimal, error) {
	switch req.Status.Normalize() {
	case entity.StatusPending:
		quote, err := uc.catalog.Quote(req.ServiceID)
		if err != nil {
			return decimal.Zero, errors.Conflict("This service request has no checkout price")
		}
		return decimal.NewFromInt(quote.Total), nil
	case entity.StatusCompleted:
		if req.Amount == nil {
			return decimal.Zero, errors.Conflict("The final amount for this request has not been set")
		}
		return decimal.NewFromFloat(*req.Amount).Round(2), nil
	}
	return decimal.Zero, errors.Conflict("This service request is not awaiting payment")
}

type CheckoutResult struct {
	Quote      *Quote                 `json:"quote,omitempty"`
	Order      *OrderResult           `json:"order,omitempty"`
	Request    *entity.ServiceRequest `json:"request,omitempty"`
	RedirectTo string                 `json:"redirect_to,omitempty"`
	Message    string                 `json:"message,omitempty"`
}

// Checkout opens an order for a pricing entry. A pending request for the
// same service is reused; a request already being worked on sends the
// client back to the dashboard instead.
func (uc *PaymentUseCase) Checkout(ctx context.Context, uid, serviceID string) (*CheckoutResult, error) {
	if uid == "" {
		return nil, errors.Unauthorized("Please login to continue", nil)
	}

	quote, err := uc.catalog.Quote(serviceID)
	if err != nil {
		return nil, err
	}

	result, err := uc.requests.RequestService(ctx, uid, serviceID)
	if err != nil {
		return nil, err
	}
	req := result.Request
	if !result.Created && req.Status.Normalize() != entity.StatusPending {
		return &CheckoutResult{
			Request:    req,
			RedirectTo: result.RedirectTo,
			Message:    result.Message,
		}, nil
	}

	order, err := uc.CreateOrder(ctx, uid, CreateOrderInput{
		Amount:           decimal.NewFromInt(quote.Total),
		Description:      quote.Title,
		ServiceRequestID: req.ID,
	})
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{Quote: quote, Order: order, Request: req}, nil
}

type VerifyInput struct {
	RazorpayOrderID   string
	RazorpayPaymentID string
	RazorpaySignature string
	PaymentID         string
}

type VerifyResult struct {
	Payment *entity.Payment        `json:"payment"`
	Request *entity.ServiceRequest `json:"request,omitempty"`
	Message string                 `json:"message"`
}

func (uc *PaymentUseCase) Verify(ctx context.Context, uid string, input VerifyInput) (*VerifyResult, error) {
	if input.RazorpayOrderID == "" || input.RazorpayPaymentID == "" || input.RazorpaySignature == "" || input.PaymentID == "" {
		return nil, errors.BadRequest("Missing required fields", nil)
	}

	payment, err := uc.paymentRepo.GetByID(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != uid {
		return nil, errors.NotFound("Payment", nil)
	}
	if payment.Status == entity.PaymentCompleted && payment.RazorpayPaymentID == input.RazorpayPaymentID {
		return &VerifyResult{Payment: payment, Message: "Payment verified successfully"}, nil
	}

	if payment.RazorpayOrderID == "" || payment.RazorpayOrderID != input.RazorpayOrderID {
		logger.Warn("Order %s does not belong to payment %s", input.RazorpayOrderID, payment.ID)
		return nil, errors.PaymentVerificationFailed(nil)
	}

	payment.RazorpayPaymentID = input.RazorpayPaymentID
	payment.RazorpaySignature = input.RazorpaySignature

	if !uc.gateway.VerifySignature(input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature) {
		logger.Warn("Signature verification failed for order %s", input.RazorpayOrderID)
		payment.Status = entity.PaymentFailed
		payment.FailureReason = "signature mismatch"
		if err := uc.paymentRepo.Update(ctx, payment); err != nil {
			logger.LogPaymentError(payment.ID, "mark failed", err)
		}
		return nil, errors.PaymentVerificationFailed(nil)
	}

	payment.Status = entity.PaymentCompleted
	payment.PaymentMethod = "razorpay"
	payment.FailureReason = ""
	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, errors.Internal("Failed to update payment status", err)
	}
	logger.Info("Payment verified successfully: %s", payment.ID)

	result := &VerifyResult{Payment: payment, Message: "Payment verified successfully"}
	if payment.ServiceRequestID != "" {
		req, err := uc.requests.AdvanceAfterPayment(ctx, payment.ServiceRequestID, decimal.NewFromFloat(payment.Amount))
		if err != nil {
			// the money is taken; staff can reconcile the request by hand
			logger.LogRequestError(payment.ServiceRequestID, "advance after payment", err)
		} else {
			result.Request = req
		}
	}
	return result, nil
}

// ReportFailure records the widget's failure callback. The request is untouched.
func (uc *PaymentUseCase) ReportFailure(ctx context.Context, uid, paymentID, reason string) (*entity.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != uid {
		return nil, errors.NotFound("Payment", nil)
	}
	if payment.Status == entity.PaymentCompleted {
		return nil, errors.Conflict("Payment already completed")
	}

	payment.Status = entity.PaymentFailed
	payment.FailureReason = strings.TrimSpace(reason)
	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (uc *PaymentUseCase) History(ctx context.Context, uid string) ([]*entity.Payment, error) {
	return uc.paymentRepo.ListByUser(ctx, uid)
}
