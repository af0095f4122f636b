package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"gmrportal/internal/domain/entity"
	"gmrportal/internal/domain/repository"
	"gmrportal/pkg/errors"
	"gmrportal/pkg/logger"
)

const contactThanks = "Thank you! We'll get back to you within 24 hours."

type ContactUseCase struct {
	contactRepo repository.ContactRepository
}

func NewContactUseCase(contactRepo repository.ContactRepository) *ContactUseCase {
	return &ContactUseCase{contactRepo: contactRepo}
}

type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

type ContactResult struct {
	Inquiry *entity.ContactInquiry `json:"inquiry"`
	Message string                 `json:"message"`
}

func (uc *ContactUseCase) Submit(ctx context.Context, in ContactInput) (*ContactResult, error) {
	inquiry := &entity.ContactInquiry{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: time.Now(),
	}
	if inquiry.Name == "" || inquiry.Email == "" || inquiry.Subject == "" || inquiry.Message == "" {
		return nil, errors.BadRequest("Please fill in all required fields", nil)
	}

	if err := uc.contactRepo.Create(ctx, inquiry); err != nil {
		return nil, err
	}
	logger.Info("Contact inquiry %s received", inquiry.ID)

	return &ContactResult{Inquiry: inquiry, Message: contactThanks}, nil
}
