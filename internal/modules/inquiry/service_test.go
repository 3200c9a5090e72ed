package inquiry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"communew/internal/domain"
	"communew/internal/modules/catalog"
)

type MockInquiryRepository struct {
	mock.Mock
}

func (m *MockInquiryRepository) Create(ctx context.Context, inq *domain.StudioInquiry) error {
	args := m.Called(ctx, inq)
	return args.Error(0)
}

func (m *MockInquiryRepository) GetByID(ctx context.Context, id string) (*domain.StudioInquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudioInquiry), args.Error(1)
}

func (m *MockInquiryRepository) ListByRequester(ctx context.Context, requesterID string) ([]domain.StudioInquiry, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).([]domain.StudioInquiry), args.Error(1)
}

func (m *MockInquiryRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.StudioInquiry, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.StudioInquiry), args.Error(1)
}

func (m *MockInquiryRepository) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockStudioLookup struct {
	mock.Mock
}

func (m *MockStudioLookup) GetStudio(ctx context.Context, id string) (*domain.Studio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Studio), args.Error(1)
}

type recordingNotifier struct {
	inquiries []*domain.StudioInquiry
}

func (n *recordingNotifier) NotifyOwnerOfInquiry(ctx context.Context, inq *domain.StudioInquiry) {
	n.inquiries = append(n.inquiries, inq)
}

type recordingPublisher struct {
	changed []domain.StudioInquiry
	old     []domain.InquiryStatus
}

func (p *recordingPublisher) InquiryStatusChanged(inq *domain.StudioInquiry, old domain.InquiryStatus) {
	p.changed = append(p.changed, *inq)
	p.old = append(p.old, old)
}

func TestService_CreateInquiry_Success(t *testing.T) {
	repo := new(MockInquiryRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	studios := new(MockStudioLookup)
	studios.On("GetStudio", mock.Anything, "s1").Return(&domain.Studio{ID: "s1", OwnerID: "u1"}, nil)

	notifs := &recordingNotifier{}
	service := NewService(repo, studios, notifs, nil)

	start := time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)
	inq, err := service.CreateInquiry(context.Background(), "u2", CreateInquiryRequest{
		StudioID:  "s1",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Message:   "First time, is that ok?",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.InquiryPending, inq.Status)
	assert.Equal(t, "u2", inq.RequesterID)
	assert.Len(t, notifs.inquiries, 1)
	assert.Equal(t, inq.ID, notifs.inquiries[0].ID)
}

func TestService_CreateInquiry_InvalidRangeNeverPersisted(t *testing.T) {
	repo := new(MockInquiryRepository)
	studios := new(MockStudioLookup)
	service := NewService(repo, studios, nil, nil)

	start := time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)
	for _, end := range []time.Time{start, start.Add(-time.Hour)} {
		_, err := service.CreateInquiry(context.Background(), "u2", CreateInquiryRequest{
			StudioID:  "s1",
			StartTime: start,
			EndTime:   end,
		})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	studios.AssertNotCalled(t, "GetStudio", mock.Anything, mock.Anything)
}

func TestService_CreateInquiry_UnknownStudio(t *testing.T) {
	repo := new(MockInquiryRepository)
	studios := new(MockStudioLookup)
	studios.On("GetStudio", mock.Anything, "missing").Return(nil, catalog.ErrStudioNotFound)

	service := NewService(repo, studios, nil, nil)

	start := time.Now().Add(time.Hour)
	_, err := service.CreateInquiry(context.Background(), "u2", CreateInquiryRequest{
		StudioID:  "missing",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})

	assert.ErrorIs(t, err, ErrStudioNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateInquiry_NotifierFailureIsInvisible(t *testing.T) {
	repo := new(MockInquiryRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	studios := new(MockStudioLookup)
	studios.On("GetStudio", mock.Anything, "s1").Return(&domain.Studio{ID: "s1", OwnerID: "u1"}, nil)

	// No notifier wired at all: creation must still succeed.
	service := NewService(repo, studios, nil, nil)

	start := time.Now().Add(time.Hour)
	inq, err := service.CreateInquiry(context.Background(), "u2", CreateInquiryRequest{
		StudioID:  "s1",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})

	assert.NoError(t, err)
	assert.NotNil(t, inq)
}

func TestService_UpdateStatus_OwnerApproves(t *testing.T) {
	pending := &domain.StudioInquiry{
		ID:          "inq-1",
		StudioID:    "s1",
		RequesterID: "u2",
		Status:      domain.InquiryPending,
	}

	repo := new(MockInquiryRepository)
	repo.On("GetByID", mock.Anything, "inq-1").Return(pending, nil)
	repo.On("UpdateStatus", mock.Anything, "inq-1", domain.InquiryApproved).Return(nil)

	studios := new(MockStudioLookup)
	studios.On("GetStudio", mock.Anything, "s1").Return(&domain.Studio{ID: "s1", OwnerID: "u1"}, nil)

	pub := &recordingPublisher{}
	service := NewService(repo, studios, nil, pub)

	out, err := service.UpdateStatus(context.Background(), "u1", "inq-1", domain.InquiryApproved)

	assert.NoError(t, err)
	assert.Equal(t, domain.InquiryApproved, out.Status)
	assert.Len(t, pub.changed, 1)
	assert.Equal(t, domain.InquiryPending, pub.old[0])
	repo.AssertExpectations(t)
}

func TestService_UpdateStatus_NonOwnerForbidden(t *testing.T) {
	pending := &domain.StudioInquiry{ID: "inq-1", StudioID: "s1", RequesterID: "u2", Status: domain.InquiryPending}

	repo := new(MockInquiryRepository)
	repo.On("GetByID", mock.Anything, "inq-1").Return(pending, nil)

	studios := new(MockStudioLookup)
	studios.On("GetStudio", mock.Anything, "s1").Return(&domain.Studio{ID: "s1", OwnerID: "u1"}, nil)

	service := NewService(repo, studios, nil, nil)

	// The requester cannot approve their own inquiry.
	_, err := service.UpdateStatus(context.Background(), "u2", "inq-1", domain.InquiryApproved)

	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateStatus_AlreadyDecided(t *testing.T) {
	decided := &domain.StudioInquiry{ID: "inq-1", StudioID: "s1", RequesterID: "u2", Status: domain.InquiryApproved}

	repo := new(MockInquiryRepository)
	repo.On("GetByID", mock.Anything, "inq-1").Return(decided, nil)

	studios := new(MockStudioLookup)
	studios.On("GetStudio", mock.Anything, "s1").Return(&domain.Studio{ID: "s1", OwnerID: "u1"}, nil)

	service := NewService(repo, studios, nil, nil)

	_, err := service.UpdateStatus(context.Background(), "u1", "inq-1", domain.InquiryDeclined)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestService_UpdateStatus_RejectsPendingTarget(t *testing.T) {
	pending := &domain.StudioInquiry{ID: "inq-1", StudioID: "s1", RequesterID: "u2", Status: domain.InquiryPending}

	repo := new(MockInquiryRepository)
	repo.On("GetByID", mock.Anything, "inq-1").Return(pending, nil)

	studios := new(MockStudioLookup)
	studios.On("GetStudio", mock.Anything, "s1").Return(&domain.Studio{ID: "s1", OwnerID: "u1"}, nil)

	service := NewService(repo, studios, nil, nil)

	_, err := service.UpdateStatus(context.Background(), "u1", "inq-1", domain.InquiryPending)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
