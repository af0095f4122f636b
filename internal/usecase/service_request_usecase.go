package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"gmrportal/internal/domain/entity"
	"gmrportal/internal/domain/notify"
	"gmrportal/internal/domain/repository"
	"gmrportal/pkg/errors"
	"gmrportal/pkg/logger"
)

const (
	dashboardPath           = "/dashboard"
	duplicateRequestMessage = "You already have an active request for this service."
	recentNotificationLimit = 10
)

type ServiceRequestUseCase struct {
	requestRepo repository.ServiceRequestRepository
	profileRepo repository.ProfileRepository
	catalog     *CatalogUseCase
	publisher   EventPublisher
}

func NewServiceRequestUseCase(
	requestRepo repository.ServiceRequestRepository,
	profileRepo repository.ProfileRepository,
	catalog *CatalogUseCase,
	publisher EventPublisher,
) *ServiceRequestUseCase {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &ServiceRequestUseCase{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		catalog:     catalog,
		publisher:   publisher,
	}
}

// RequestResult is returned whether or not a row was written; the UI
// follows RedirectTo either way.
type RequestResult struct {
	Created    bool                   `json:"created"`
	Request    *entity.ServiceRequest `json:"request,omitempty"`
	RedirectTo string                 `json:"redirect_to"`
	Message    string                 `json:"message"`
}

func (uc *ServiceRequestUseCase) RequestService(ctx context.Context, uid, serviceID string) (*RequestResult, error) {
	if uid == "" {
		return nil, errors.Unauthorized("Please sign in to request a service", nil)
	}

	name, ok := uc.catalog.ResolveName(serviceID)
	if !ok {
		return nil, errors.NotFound("Service", nil)
	}

	req := &entity.ServiceRequest{
		UserID:      uid,
		ServiceID:   serviceID,
		ServiceName: name,
		Status:      entity.StatusPending,
		Progress:    0,
	}

	existing, err := uc.requestRepo.CreateIfNoActive(ctx, req)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &RequestResult{
			Created:    false,
			Request:    existing,
			RedirectTo: dashboardPath,
			Message:    duplicateRequestMessage,
		}, nil
	}

	uc.publisher.Publish(notify.InsertedEvent(req))
	logger.Info("Service request %s created for user %s (%s)", req.ID, uid, serviceID)

	return &RequestResult{
		Created:    true,
		Request:    req,
		RedirectTo: dashboardPath,
		Message:    "Service request submitted successfully",
	}, nil
}

func (uc *ServiceRequestUseCase) ListMine(ctx context.Context, uid string) ([]*entity.ServiceRequest, error) {
	return uc.requestRepo.ListByUser(ctx, uid)
}

// Get returns the request if uid owns it or is staff.
func (uc *ServiceRequestUseCase) Get(ctx context.Context, uid, id string) (*entity.ServiceRequest, error) {
	req, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.UserID == uid {
		return req, nil
	}
	if staff, err := uc.isStaff(ctx, uid); err != nil || !staff {
		// hide other users' requests entirely
		return nil, errors.NotFound("Service request", nil)
	}
	return req, nil
}

func (uc *ServiceRequestUseCase) isStaff(ctx context.Context, uid string) (bool, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, uid)
	if err != nil {
		return false, err
	}
	return profile.Role.IsStaff(), nil
}

func (uc *ServiceRequestUseCase) Stats(ctx context.Context, uid string) (*entity.RequestStats, error) {
	reqs, err := uc.requestRepo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	stats := &entity.RequestStats{Total: len(reqs)}
	for _, r := range reqs {
		switch r.Status.Normalize() {
		case entity.StatusInProgress:
			stats.InProgress++
		case entity.StatusCompleted:
			stats.Completed++
		}
	}
	return stats, nil
}

// RecentItem is one row of the notification bell.
type RecentItem struct {
	*entity.ServiceRequest
	StatusLabel string `json:"status_label"`
}

func (uc *ServiceRequestUseCase) Recent(ctx context.Context, uid string) ([]RecentItem, error) {
	reqs, err := uc.requestRepo.ListRecentByUser(ctx, uid, recentNotificationLimit)
	if err != nil {
		return nil, err
	}

	out := make([]RecentItem, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, RecentItem{ServiceRequest: r, StatusLabel: r.Status.Label()})
	}
	return out, nil
}

// Cancel lets the owner withdraw a request nobody has started on.
func (uc *ServiceRequestUseCase) Cancel(ctx context.Context, uid, id string) (*entity.ServiceRequest, error) {
	req, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.UserID != uid {
		return nil, errors.NotFound("Service request", nil)
	}
	if req.Status.Normalize() != entity.StatusPending {
		return nil, errors.Conflict("Only pending requests can be cancelled")
	}

	return uc.apply(ctx, req, func(r *entity.ServiceRequest) {
		r.Status = entity.StatusCancelled
	})
}

// ListAll is the staff view. status "" or "all" disables the filter.
func (uc *ServiceRequestUseCase) ListAll(ctx context.Context, status string) ([]*entity.ServiceRequestWithClient, error) {
	var statuses []entity.RequestStatus
	if status != "" && status != "all" {
		parsed, err := entity.ParseRequestStatus(status)
		if err != nil {
			return nil, errors.BadRequest("Invalid status filter", err)
		}
		statuses = parsed.Spellings()
	}

	reqs, err := uc.requestRepo.ListAll(ctx, statuses)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(reqs))
	seen := map[string]bool{}
	for _, r := range reqs {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			ids = append(ids, r.UserID)
		}
	}

	profiles, err := uc.profileRepo.GetByUserIDs(ctx, ids)
	if err != nil {
		// a missing client profile should not hide the queue
		logger.Warn("Failed to load client profiles for staff view: %v", err)
		profiles = map[string]*entity.Profile{}
	}

	out := make([]*entity.ServiceRequestWithClient, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, &entity.ServiceRequestWithClient{ServiceRequest: r, Client: profiles[r.UserID]})
	}
	return out, nil
}

// StaffStats counts the queue per status tab.
func (uc *ServiceRequestUseCase) StaffStats(ctx context.Context) (map[string]int, error) {
	reqs, err := uc.requestRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{
		"all":                          len(reqs),
		string(entity.StatusPending):    0,
		string(entity.StatusInProgress): 0,
		string(entity.StatusCompleted):  0,
		string(entity.StatusPaid):       0,
	}
	for _, r := range reqs {
		key := string(r.Status.Normalize())
		if _, tracked := counts[key]; tracked {
			counts[key]++
		}
	}
	return counts, nil
}

type StaffUpdateInput struct {
	Status   string
	Progress *int
	Notes    *string
	Amount   *float64
}

type StaffUpdateResult struct {
	Request *entity.ServiceRequest `json:"request"`
	Message string                 `json:"message"`
}

func (uc *ServiceRequestUseCase) StaffUpdate(ctx context.Context, id string, input StaffUpdateInput) (*StaffUpdateResult, error) {
	req, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status.Terminal() {
		return nil, errors.Conflict("Paid or cancelled requests can no longer be updated")
	}

	status := req.Status.Normalize()
	if input.Status != "" {
		status, err = entity.ParseRequestStatus(input.Status)
		if err != nil {
			return nil, errors.BadRequest("Invalid status", err)
		}
		if status == entity.StatusPaid {
			return nil, errors.BadRequest("Requests are marked paid by payment verification", nil)
		}
	}

	amount := req.Amount
	if input.Amount != nil {
		if *input.Amount < 0 {
			return nil, errors.BadRequest("Amount cannot be negative", nil)
		}
		v := *input.Amount
		amount = &v
	}
	if status == entity.StatusCompleted && amount == nil {
		return nil, errors.BadRequest("Please set the final amount before marking as completed", nil)
	}

	progress := req.Progress
	if input.Progress != nil {
		progress = clampProgress(*input.Progress)
	}
	if status == entity.StatusCompleted {
		progress = 100
	}

	updated, err := uc.apply(ctx, req, func(r *entity.ServiceRequest) {
		r.Status = status
		r.Progress = progress
		r.Amount = amount
		if input.Notes != nil {
			r.Notes = normalizeNotes(*input.Notes)
		}
	})
	if err != nil {
		return nil, err
	}

	msg := "Service request updated successfully"
	if status == entity.StatusCompleted {
		msg = "Service marked as completed. Client has been notified and can now make payment."
	}
	return &StaffUpdateResult{Request: updated, Message: msg}, nil
}

func (uc *ServiceRequestUseCase) AssignToMe(ctx context.Context, staffID, id string) (*entity.ServiceRequest, error) {
	req, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.apply(ctx, req, func(r *entity.ServiceRequest) {
		r.AssignedCA = &staffID
	})
}

// SetDeliverable records the stored deliverable path on the request.
func (uc *ServiceRequestUseCase) SetDeliverable(ctx context.Context, req *entity.ServiceRequest, path string) (*entity.ServiceRequest, error) {
	return uc.apply(ctx, req, func(r *entity.ServiceRequest) {
		r.DocumentURL = &path
	})
}

// AdvanceAfterPayment moves a request along once its payment is verified:
// pending starts work, completed becomes paid when paid covers the final
// amount. Other states are left alone.
func (uc *ServiceRequestUseCase) AdvanceAfterPayment(ctx context.Context, id string, paid decimal.Decimal) (*entity.ServiceRequest, error) {
	req, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch req.Status.Normalize() {
	case entity.StatusPending:
		return uc.apply(ctx, req, func(r *entity.ServiceRequest) {
			r.Status = entity.StatusInProgress
			r.Progress = 10
		})
	case entity.StatusCompleted:
		if req.Amount == nil || paid.LessThan(decimal.NewFromFloat(*req.Amount).Round(2)) {
			logger.Warn("Payment of %s does not cover request %s", paid.StringFixed(2), req.ID)
			return req, nil
		}
		return uc.apply(ctx, req, func(r *entity.ServiceRequest) {
			r.Status = entity.StatusPaid
		})
	}
	return req, nil
}

// apply mutates a copy, persists it and publishes the change.
func (uc *ServiceRequestUseCase) apply(ctx context.Context, current *entity.ServiceRequest, mutate func(*entity.ServiceRequest)) (*entity.ServiceRequest, error) {
	old := current.Clone()
	next := current.Clone()
	mutate(next)

	if err := uc.requestRepo.Update(ctx, next); err != nil {
		logger.LogRequestError(next.ID, "update", err)
		return nil, err
	}

	uc.publisher.Publish(notify.UpdatedEvent(old, next))
	return next, nil
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func normalizeNotes(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
