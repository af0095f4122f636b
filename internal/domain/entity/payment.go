package entity

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID                string        `json:"id" firestore:"id"`
	UserID            string        `json:"user_id" firestore:"userId"`
	ServiceRequestID  string        `json:"service_request_id,omitempty" firestore:"serviceRequestId,omitempty"`
	Amount            float64       `json:"amount" firestore:"amount"`
	Currency          string        `json:"currency" firestore:"currency"`
	Status            PaymentStatus `json:"status" firestore:"status"`
	RazorpayOrderID   string        `json:"razorpay_order_id,omitempty" firestore:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string        `json:"razorpay_payment_id,omitempty" firestore:"razorpayPaymentId,omitempty"`
	RazorpaySignature string        `json:"-" firestore:"razorpaySignature,omitempty"`
	PaymentMethod     string        `json:"payment_method,omitempty" firestore:"paymentMethod,omitempty"`
	Description       string        `json:"description" firestore:"description"`
	FailureReason     string        `json:"failure_reason,omitempty" firestore:"failureReason,omitempty"`
	CreatedAt         time.Time     `json:"created_at" firestore:"createdAt"`
	UpdatedAt         time.Time     `json:"updated_at" firestore:"updatedAt"`
}
