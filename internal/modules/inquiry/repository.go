package inquiry

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"communew/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, inq *domain.StudioInquiry) error
	GetByID(ctx context.Context, id string) (*domain.StudioInquiry, error)
	ListByRequester(ctx context.Context, requesterID string) ([]domain.StudioInquiry, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.StudioInquiry, error)
	UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, inq *domain.StudioInquiry) error {
	err := r.db.WithContext(ctx).Create(inq).Error
	if isSlotConflict(err) {
		return ErrSlotTaken
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id string) (*domain.StudioInquiry, error) {
	var inq domain.StudioInquiry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&inq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInquiryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inq, nil
}

func (r *repository) ListByRequester(ctx context.Context, requesterID string) ([]domain.StudioInquiry, error) {
	var inqs []domain.StudioInquiry
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&inqs).Error
	return inqs, err
}

func (r *repository) ListByOwner(ctx context.Context, ownerID string) ([]domain.StudioInquiry, error) {
	var inqs []domain.StudioInquiry
	err := r.db.WithContext(ctx).
		Joins("JOIN studios ON studios.id = studio_inquiries.studio_id AND studios.owner_id = ?", ownerID).
		Order("studio_inquiries.created_at DESC").
		Find(&inqs).Error
	return inqs, err
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.StudioInquiry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// isSlotConflict detects the Postgres exclusion/unique violation raised by
// the no-double-booking constraint on approved inquiries.
func isSlotConflict(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" || pgErr.Code == "23505"
	}
	return false
}
