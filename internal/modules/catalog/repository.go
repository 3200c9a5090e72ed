package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"communew/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, city, category string, limit, offset int) ([]domain.Event, error)
	ListByHost(ctx context.Context, hostID string) ([]domain.Event, error)
}

type StudioRepository interface {
	Create(ctx context.Context, s *domain.Studio) error
	GetByID(ctx context.Context, id string) (*domain.Studio, error)
	List(ctx context.Context, city string, limit, offset int) ([]domain.Studio, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Studio, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	var e domain.Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) List(ctx context.Context, city, category string, limit, offset int) ([]domain.Event, error) {
	q := r.db.WithContext(ctx).Model(&domain.Event{})
	if city != "" {
		q = q.Where("city = ?", city)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var events []domain.Event
	err := q.Order("start_time ASC").Limit(limit).Offset(offset).Find(&events).Error
	return events, err
}

func (r *eventRepository) ListByHost(ctx context.Context, hostID string) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

type studioRepository struct {
	db *gorm.DB
}

func NewStudioRepository(db *gorm.DB) StudioRepository {
	return &studioRepository{db: db}
}

func (r *studioRepository) Create(ctx context.Context, s *domain.Studio) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *studioRepository) GetByID(ctx context.Context, id string) (*domain.Studio, error) {
	var s domain.Studio
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStudioNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studioRepository) List(ctx context.Context, city string, limit, offset int) ([]domain.Studio, error) {
	q := r.db.WithContext(ctx).Model(&domain.Studio{})
	if city != "" {
		q = q.Where("city = ?", city)
	}

	var studios []domain.Studio
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&studios).Error
	return studios, err
}

func (r *studioRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Studio, error) {
	var studios []domain.Studio
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&studios).Error
	return studios, err
}
