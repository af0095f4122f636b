package entity

import (
	"fmt"
	"strings"
	"time"
)

type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
	StatusPaid       RequestStatus = "paid"
	StatusCancelled  RequestStatus = "cancelled"

	// legacy spelling still present in older rows
	statusInProgressDashed RequestStatus = "in-progress"
)

// ParseRequestStatus accepts both spellings of in_progress.
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusInProgress, statusInProgressDashed:
		return StatusInProgress, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusPaid:
		return StatusPaid, nil
	case StatusCancelled:
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("unknown service request status %q", s)
}

// Normalize maps stored spellings onto the canonical value. Unknown values
// are returned unchanged.
func (s RequestStatus) Normalize() RequestStatus {
	if parsed, err := ParseRequestStatus(string(s)); err == nil {
		return parsed
	}
	return s
}

// Spellings returns every stored form of s, for queries.
func (s RequestStatus) Spellings() []RequestStatus {
	if s.Normalize() == StatusInProgress {
		return []RequestStatus{StatusInProgress, statusInProgressDashed}
	}
	return []RequestStatus{s}
}

func (s RequestStatus) Label() string {
	switch s.Normalize() {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusPaid:
		return "Paid"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Active statuses block a second request for the same service.
func (s RequestStatus) Active() bool {
	switch s.Normalize() {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func (s RequestStatus) Terminal() bool {
	n := s.Normalize()
	return n == StatusPaid || n == StatusCancelled
}

// ActiveStatuses lists every stored spelling that Active accepts.
func ActiveStatuses() []RequestStatus {
	return []RequestStatus{StatusPending, StatusInProgress, statusInProgressDashed, StatusCompleted}
}

type ServiceRequest struct {
	ID          string        `json:"id" firestore:"id"`
	UserID      string        `json:"user_id" firestore:"userId"`
	ServiceID   string        `json:"service_id" firestore:"serviceId"`
	ServiceName string        `json:"service_name" firestore:"serviceName"`
	Status      RequestStatus `json:"status" firestore:"status"`
	Progress    int           `json:"progress" firestore:"progress"`
	Notes       *string       `json:"notes" firestore:"notes"`
	Amount      *float64      `json:"amount" firestore:"amount"`
	DocumentURL *string       `json:"document_url" firestore:"documentUrl"`
	AssignedCA  *string       `json:"assigned_ca" firestore:"assignedCa"`
	CreatedAt   time.Time     `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time     `json:"updated_at" firestore:"updatedAt"`
}

// Clone returns a deep copy, used as the "old" row of a change event.
func (r *ServiceRequest) Clone() *ServiceRequest {
	if r == nil {
		return nil
	}
	cp := *r
	if r.Notes != nil {
		v := *r.Notes
		cp.Notes = &v
	}
	if r.Amount != nil {
		v := *r.Amount
		cp.Amount = &v
	}
	if r.DocumentURL != nil {
		v := *r.DocumentURL
		cp.DocumentURL = &v
	}
	if r.AssignedCA != nil {
		v := *r.AssignedCA
		cp.AssignedCA = &v
	}
	return &cp
}

func (r *ServiceRequest) NotesText() string {
	if r == nil || r.Notes == nil {
		return ""
	}
	return *r.Notes
}

// ServiceRequestWithClient is the staff view of a request.
type ServiceRequestWithClient struct {
	*ServiceRequest
	Client *Profile `json:"client,omitempty"`
}

type RequestStats struct {
	Total      int `json:"total"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}
