package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"communew/internal/domain"
)

type Service struct {
	events  EventRepository
	studios StudioRepository
}

func NewService(events EventRepository, studios StudioRepository) *Service {
	return &Service{events: events, studios: studios}
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	City        string    `json:"city" binding:"required"`
	Venue       string    `json:"venue"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Capacity    int       `json:"capacity"`
	Price       float64   `json:"price"`
}

func (s *Service) CreateEvent(ctx context.Context, hostID string, req CreateEventRequest) (*domain.Event, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrValidation
	}

	e := &domain.Event{
		ID:          uuid.NewString(),
		HostID:      hostID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    req.Category,
		City:        req.City,
		Venue:       req.Venue,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Capacity:    req.Capacity,
		Price:       req.Price,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return e, nil
}

func (s *Service) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *Service) ListEvents(ctx context.Context, city, category string, limit, offset int) ([]domain.Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.events.List(ctx, city, category, limit, offset)
}

func (s *Service) ListHostEvents(ctx context.Context, hostID string) ([]domain.Event, error) {
	return s.events.ListByHost(ctx, hostID)
}

type CreateStudioRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	City        string  `json:"city" binding:"required"`
	HourlyRate  float64 `json:"hourly_rate"`
}

func (s *Service) CreateStudio(ctx context.Context, ownerID string, req CreateStudioRequest) (*domain.Studio, error) {
	st := &domain.Studio{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		HourlyRate:  req.HourlyRate,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.studios.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to create studio: %w", err)
	}
	return st, nil
}

func (s *Service) GetStudio(ctx context.Context, id string) (*domain.Studio, error) {
	return s.studios.GetByID(ctx, id)
}

func (s *Service) ListStudios(ctx context.Context, city string, limit, offset int) ([]domain.Studio, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.studios.List(ctx, city, limit, offset)
}

func (s *Service) ListOwnerStudios(ctx context.Context, ownerID string) ([]domain.Studio, error) {
	return s.studios.ListByOwner(ctx, ownerID)
}
