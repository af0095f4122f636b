package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gmrportal/internal/domain/entity"
	"gmrportal/internal/domain/service"
	"gmrportal/pkg/errors"
)

type paymentFixture struct {
	*fixture
	payments *memPayments
	gateway  *mockGateway
	uc       *PaymentUseCase
}

func newPaymentFixture() *paymentFixture {
	f := newFixture()
	pf := &paymentFixture{
		fixture:  f,
		payments: newMemPayments(),
		gateway:  &mockGateway{},
	}
	pf.uc = NewPaymentUseCase(pf.payments, f.requests, f.requestsUC, f.catalog, pf.gateway, "INR")
	return pf
}

func TestCreateOrderConvertsToPaise(t *testing.T) {
	pf := newPaymentFixture()
	pf.gateway.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req service.OrderRequest) bool {
		return req.AmountMinor == 123456 && req.Currency == "INR" && req.Receipt != ""
	})).Return(&service.Order{ID: "order_1", AmountMinor: 123456, Currency: "INR"}, nil)

	res, err := pf.uc.CreateOrder(context.Background(), "client-1", CreateOrderInput{
		Amount:      decimal.RequireFromString("1234.56"),
		Description: "Consultation",
	})
	require.NoError(t, err)
	assert.Equal(t, "order_1", res.OrderID)
	assert.Equal(t, "rzp_test_key", res.KeyID)
	assert.Equal(t, int64(123456), res.Amount)

	stored := pf.payments.rows[res.PaymentID]
	require.NotNil(t, stored)
	assert.Equal(t, entity.PaymentPending, stored.Status)
	assert.Equal(t, "order_1", stored.RazorpayOrderID)
	assert.Equal(t, 1234.56, stored.Amount)
	pf.gateway.AssertExpectations(t)
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	pf := newPaymentFixture()
	pf.gateway.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("boom"))

	_, err := pf.uc.CreateOrder(context.Background(), "client-1", CreateOrderInput{Amount: decimal.NewFromInt(100)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeBadGateway))
	assert.Equal(t, "Failed to create payment order", err.(*errors.AppError).Message)

	for _, p := range pf.payments.rows {
		assert.Equal(t, entity.PaymentFailed, p.Status)
	}
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	pf := newPaymentFixture()
	ctx := context.Background()

	_, err := pf.uc.CreateOrder(ctx, "", CreateOrderInput{Amount: decimal.NewFromInt(1)})
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))

	_, err = pf.uc.CreateOrder(ctx, "client-1", CreateOrderInput{Amount: decimal.Zero})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	pf.requests.put(&entity.ServiceRequest{ID: "r1", UserID: "client-2", Status: entity.StatusPending})
	_, err = pf.uc.CreateOrder(ctx, "client-1", CreateOrderInput{Amount: decimal.NewFromInt(1), ServiceRequestID: "r1"})
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestCheckoutCreatesRequestAndChargesTotal(t *testing.T) {
	pf := newPaymentFixture()
	pf.gateway.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req service.OrderRequest) bool {
		return req.AmountMinor == 353900
	})).Return(&service.Order{ID: "order_9", AmountMinor: 353900, Currency: "INR"}, nil)

	res, err := pf.uc.Checkout(context.Background(), "client-1", "income-tax-filing")
	require.NoError(t, err)
	require.NotNil(t, res.Order)
	assert.Equal(t, int64(3539), res.Quote.Total)
	assert.Equal(t, entity.StatusPending, res.Request.Status)
	assert.Equal(t, res.Request.ID, res.Order.ServiceRequestID)
	assert.Equal(t, "Income Tax Filing", res.Order.Description)
}

func TestCheckoutReusesPendingRequest(t *testing.T) {
	pf := newPaymentFixture()
	pf.requests.put(&entity.ServiceRequest{ID: "existing", UserID: "client-1", ServiceID: "gst-registration", Status: entity.StatusPending})
	pf.gateway.On("CreateOrder", mock.Anything, mock.Anything).Return(&service.Order{ID: "order_2", AmountMinor: 235900, Currency: "INR"}, nil)

	res, err := pf.uc.Checkout(context.Background(), "client-1", "gst-registration")
	require.NoError(t, err)
	assert.Equal(t, "existing", res.Request.ID)

	mine, _ := pf.requests.ListByUser(context.Background(), "client-1")
	assert.Len(t, mine, 1)
}

func TestCheckoutRedirectsWhenWorkStarted(t *testing.T) {
	pf := newPaymentFixture()
	pf.requests.put(&entity.ServiceRequest{ID: "busy", UserID: "client-1", ServiceID: "gst-registration", Status: "in-progress"})

	res, err := pf.uc.Checkout(context.Background(), "client-1", "gst-registration")
	require.NoError(t, err)
	assert.Nil(t, res.Order)
	assert.Equal(t, "/dashboard", res.RedirectTo)
	pf.gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestCheckoutUnknownOrAnonymous(t *testing.T) {
	pf := newPaymentFixture()

	_, err := pf.uc.Checkout(context.Background(), "", "income-tax-filing")
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))

	_, err = pf.uc.Checkout(context.Background(), "client-1", "nope")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func seedPayment(pf *paymentFixture, id, requestID string) {
	pf.payments.rows[id] = &entity.Payment{
		ID:               id,
		UserID:           "client-1",
		ServiceRequestID: requestID,
		Amount:           100,
		Currency:         "INR",
		Status:           entity.PaymentPending,
		RazorpayOrderID:  "order_1",
	}
}

func TestVerifyMissingFields(t *testing.T) {
	pf := newPaymentFixture()

	_, err := pf.uc.Verify(context.Background(), "client-1", VerifyInput{RazorpayOrderID: "order_1"})
	require.Error(t, err)
	assert.Equal(t, "Missing required fields", err.(*errors.AppError).Message)
}

func TestVerifyBadSignatureMarksFailedAndLeavesRequest(t *testing.T) {
	pf := newPaymentFixture()
	pf.requests.put(&entity.ServiceRequest{ID: "r1", UserID: "client-1", Status: entity.StatusPending})
	seedPayment(pf, "pay-1", "r1")
	pf.gateway.On("VerifySignature", "order_1", "pay_1", "bad").Return(false)

	_, err := pf.uc.Verify(context.Background(), "client-1", VerifyInput{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "bad",
		PaymentID:         "pay-1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodePaymentVerificationFailed))
	assert.Equal(t, "Payment verification failed", err.(*errors.AppError).Message)

	stored := pf.payments.rows["pay-1"]
	assert.Equal(t, entity.PaymentFailed, stored.Status)
	assert.Equal(t, "pay_1", stored.RazorpayPaymentID)
	assert.Equal(t, "bad", stored.RazorpaySignature)

	req, _ := pf.requests.GetByID(context.Background(), "r1")
	assert.Equal(t, entity.StatusPending, req.Status)
	assert.Empty(t, pf.publisher.all())
}

func TestVerifySuccessAdvancesRequest(t *testing.T) {
	cases := []struct {
		name         string
		start        entity.RequestStatus
		wantStatus   entity.RequestStatus
		wantProgress int
	}{
		{"pending starts work", entity.StatusPending, entity.StatusInProgress, 10},
		{"completed becomes paid", entity.StatusCompleted, entity.StatusPaid, 100},
		{"in progress untouched", entity.StatusInProgress, entity.StatusInProgress, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pf := newPaymentFixture()
			pf.requests.put(&entity.ServiceRequest{ID: "r1", UserID: "client-1", Status: tc.start, Progress: 100, Amount: ptr(100.0)})
			seedPayment(pf, "pay-1", "r1")
			pf.gateway.On("VerifySignature", "order_1", "pay_1", "good").Return(true)

			res, err := pf.uc.Verify(context.Background(), "client-1", VerifyInput{
				RazorpayOrderID:   "order_1",
				RazorpayPaymentID: "pay_1",
				RazorpaySignature: "good",
				PaymentID:         "pay-1",
			})
			require.NoError(t, err)
			assert.Equal(t, entity.PaymentCompleted, res.Payment.Status)
			assert.Equal(t, "razorpay", res.Payment.PaymentMethod)

			req, _ := pf.requests.GetByID(context.Background(), "r1")
			assert.Equal(t, tc.wantStatus, req.Status)
			assert.Equal(t, tc.wantProgress, req.Progress)
		})
	}
}

func TestVerifyRejectsForeignOrder(t *testing.T) {
	pf := newPaymentFixture()
	pf.requests.put(&entity.ServiceRequest{ID: "r1", UserID: "client-1", Status: entity.StatusPending})
	seedPayment(pf, "pay-1", "r1")
	pf.gateway.On("VerifySignature", "order_cheap", "pay_cheap", "sig_cheap").Return(true).Maybe()

	_, err := pf.uc.Verify(context.Background(), "client-1", VerifyInput{
		RazorpayOrderID:   "order_cheap",
		RazorpayPaymentID: "pay_cheap",
		RazorpaySignature: "sig_cheap",
		PaymentID:         "pay-1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodePaymentVerificationFailed))

	stored := pf.payments.rows["pay-1"]
	assert.Equal(t, entity.PaymentPending, stored.Status)
	assert.Equal(t, "order_1", stored.RazorpayOrderID)

	req, _ := pf.requests.GetByID(context.Background(), "r1")
	assert.Equal(t, entity.StatusPending, req.Status)
	assert.Empty(t, pf.publisher.all())
}

func TestCreateOrderLinkedRequestUsesServerAmount(t *testing.T) {
	cases := []struct {
		name      string
		request   *entity.ServiceRequest
		wantPaise int64
	}{
		{
			name:      "completed request charges the final amount",
			request:   &entity.ServiceRequest{ID: "r1", UserID: "client-1", ServiceID: "income-tax-filing", Status: entity.StatusCompleted, Amount: ptr(50000.0)},
			wantPaise: 5000000,
		},
		{
			name:      "pending request charges the quote total",
			request:   &entity.ServiceRequest{ID: "r1", UserID: "client-1", ServiceID: "income-tax-filing", Status: entity.StatusPending},
			wantPaise: 353900,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pf := newPaymentFixture()
			pf.requests.put(tc.request)
			pf.gateway.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req service.OrderRequest) bool {
				return req.AmountMinor == tc.wantPaise
			})).Return(&service.Order{ID: "order_1", AmountMinor: tc.wantPaise, Currency: "INR"}, nil)

			res, err := pf.uc.CreateOrder(context.Background(), "client-1", CreateOrderInput{
				Amount:           decimal.NewFromInt(1),
				ServiceRequestID: "r1",
			})
			require.NoError(t, err)
			assert.Equal(t, tc.wantPaise, res.Amount)
			assert.Equal(t, float64(tc.wantPaise)/100, pf.payments.rows[res.PaymentID].Amount)
			pf.gateway.AssertExpectations(t)
		})
	}
}

func TestCreateOrderLinkedRequestNotPayable(t *testing.T) {
	pf := newPaymentFixture()
	pf.requests.put(&entity.ServiceRequest{ID: "busy", UserID: "client-1", ServiceID: "income-tax-filing", Status: entity.StatusInProgress})
	pf.requests.put(&entity.ServiceRequest{ID: "unpriced", UserID: "client-1", ServiceID: "income-tax-filing", Status: entity.StatusCompleted})

	for _, id := range []string{"busy", "unpriced"} {
		_, err := pf.uc.CreateOrder(context.Background(), "client-1", CreateOrderInput{
			Amount:           decimal.NewFromInt(1),
			ServiceRequestID: id,
		})
		assert.True(t, errors.Is(err, errors.CodeConflict), id)
	}
	assert.Empty(t, pf.payments.rows)
	pf.gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestVerifyUnderpaidCompletedRequestStaysCompleted(t *testing.T) {
	pf := newPaymentFixture()
	pf.requests.put(&entity.ServiceRequest{ID: "r1", UserID: "client-1", Status: entity.StatusCompleted, Progress: 100, Amount: ptr(50000.0)})
	seedPayment(pf, "pay-1", "r1")
	pf.gateway.On("VerifySignature", "order_1", "pay_1", "good").Return(true)

	res, err := pf.uc.Verify(context.Background(), "client-1", VerifyInput{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "good",
		PaymentID:         "pay-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCompleted, res.Payment.Status)

	req, _ := pf.requests.GetByID(context.Background(), "r1")
	assert.Equal(t, entity.StatusCompleted, req.Status)
}

func TestVerifyOtherUsersPayment(t *testing.T) {
	pf := newPaymentFixture()
	seedPayment(pf, "pay-1", "")

	_, err := pf.uc.Verify(context.Background(), "client-2", VerifyInput{
		RazorpayOrderID: "o", RazorpayPaymentID: "p", RazorpaySignature: "s", PaymentID: "pay-1",
	})
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestReportFailureLeavesRequest(t *testing.T) {
	pf := newPaymentFixture()
	pf.requests.put(&entity.ServiceRequest{ID: "r1", UserID: "client-1", Status: entity.StatusPending})
	seedPayment(pf, "pay-1", "r1")

	p, err := pf.uc.ReportFailure(context.Background(), "client-1", "pay-1", "card declined")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentFailed, p.Status)
	assert.Equal(t, "card declined", p.FailureReason)

	req, _ := pf.requests.GetByID(context.Background(), "r1")
	assert.Equal(t, entity.StatusPending, req.Status)
}
