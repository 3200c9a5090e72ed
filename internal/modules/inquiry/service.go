package inquiry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"communew/internal/domain"
	"communew/internal/modules/catalog"
)

// Notifier delivers the inquiry to the studio owner. Implemented by the
// notifier module; failures never propagate back here.
type Notifier interface {
	NotifyOwnerOfInquiry(ctx context.Context, inq *domain.StudioInquiry)
}

// StudioLookup is the slice of the catalog module this service needs.
type StudioLookup interface {
	GetStudio(ctx context.Context, id string) (*domain.Studio, error)
}

// StatusPublisher pushes status transitions to the realtime feed.
type StatusPublisher interface {
	InquiryStatusChanged(inq *domain.StudioInquiry, old domain.InquiryStatus)
}

type Service struct {
	repo      Repository
	studios   StudioLookup
	notifier  Notifier
	publisher StatusPublisher
}

func NewService(repo Repository, studios StudioLookup, notifier Notifier, publisher StatusPublisher) *Service {
	return &Service{repo: repo, studios: studios, notifier: notifier, publisher: publisher}
}

type CreateInquiryRequest struct {
	StudioID  string    `json:"studio_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Message   string    `json:"message"`
}

// CreateInquiry validates and persists a booking inquiry, then hands it to
// the notifier. The notifier call is fire-and-forget: the inquiry is already
// committed and stays committed whatever happens downstream.
func (s *Service) CreateInquiry(ctx context.Context, requesterID string, req CreateInquiryRequest) (*domain.StudioInquiry, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	if _, err := s.studios.GetStudio(ctx, req.StudioID); err != nil {
		if errors.Is(err, catalog.ErrStudioNotFound) {
			return nil, ErrStudioNotFound
		}
		return nil, fmt.Errorf("failed to resolve studio: %w", err)
	}

	inq := &domain.StudioInquiry{
		ID:          uuid.NewString(),
		StudioID:    req.StudioID,
		RequesterID: requesterID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Message:     req.Message,
		Status:      domain.InquiryPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, inq); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyOwnerOfInquiry(ctx, inq)
	}
	return inq, nil
}

// UpdateStatus moves a pending inquiry to approved or declined. Only the
// studio owner may do this; any transition off a non-pending status is
// rejected.
func (s *Service) UpdateStatus(ctx context.Context, actorID, inquiryID string, newStatus domain.InquiryStatus) (*domain.StudioInquiry, error) {
	inq, err := s.repo.GetByID(ctx, inquiryID)
	if err != nil {
		return nil, err
	}

	studio, err := s.studios.GetStudio(ctx, inq.StudioID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve studio: %w", err)
	}
	if studio.OwnerID != actorID {
		return nil, ErrForbidden
	}

	if inq.Status != domain.InquiryPending {
		return nil, ErrInvalidStatusTransition
	}
	if newStatus != domain.InquiryApproved && newStatus != domain.InquiryDeclined {
		return nil, ErrInvalidStatusTransition
	}

	old := inq.Status
	if err := s.repo.UpdateStatus(ctx, inquiryID, newStatus); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	inq.Status = newStatus
	inq.UpdatedAt = time.Now()

	if s.publisher != nil {
		s.publisher.InquiryStatusChanged(inq, old)
	}
	return inq, nil
}

func (s *Service) ListForRequester(ctx context.Context, requesterID string) ([]domain.StudioInquiry, error) {
	return s.repo.ListByRequester(ctx, requesterID)
}

func (s *Service) ListForOwner(ctx context.Context, ownerID string) ([]domain.StudioInquiry, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}
