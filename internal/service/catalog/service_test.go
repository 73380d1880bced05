package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/parlorhq/parlor-api/internal/model"
	apperrors "github.com/parlorhq/parlor-api/pkg/errors"
)

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(ctx context.Context, svc *model.Service) error {
	args := m.Called(ctx, svc)
	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockServiceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *MockServiceRepository) List(ctx context.Context) ([]*model.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Service), args.Error(1)
}

func (m *MockServiceRepository) Update(ctx context.Context, svc *model.Service) error {
	args := m.Called(ctx, svc)
	return args.Error(0)
}

func (m *MockServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func catalogService(id uuid.UUID) *model.Service {
	svc := &model.Service{Name: "Haircut", Price: 45, Duration: 30}
	svc.ID = id
	return svc
}

func TestGetService_CachesReads(t *testing.T) {
	repo := new(MockServiceRepository)
	svc := NewService(repo)
	ctx := context.Background()
	id := uuid.New()

	repo.On("Get", ctx, id).Return(catalogService(id), nil).Once()

	first, err := svc.GetService(ctx, id)
	require.NoError(t, err)
	second, err := svc.GetService(ctx, id)
	require.NoError(t, err)

	assert.Same(t, first, second)
	repo.AssertNumberOfCalls(t, "Get", 1)
}

func TestGetService_NotFound(t *testing.T) {
	repo := new(MockServiceRepository)
	svc := NewService(repo)
	ctx := context.Background()
	id := uuid.New()

	repo.On("Get", ctx, id).Return(nil, sql.ErrNoRows)

	_, err := svc.GetService(ctx, id)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateService_InvalidatesCache(t *testing.T) {
	repo := new(MockServiceRepository)
	svc := NewService(repo)
	ctx := context.Background()
	id := uuid.New()

	repo.On("Get", ctx, id).Return(catalogService(id), nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	_, err := svc.GetService(ctx, id)
	require.NoError(t, err)

	newName := "Premium Haircut"
	_, err = svc.UpdateService(ctx, id, &model.UpdateServiceRequest{Name: &newName})
	require.NoError(t, err)

	// The follow-up read must hit the repository again.
	_, err = svc.GetService(ctx, id)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "Get", 2)
}

func TestCreateService_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *model.CreateServiceRequest
	}{
		{name: "empty name", req: &model.CreateServiceRequest{Price: 45, Duration: 30}},
		{name: "negative price", req: &model.CreateServiceRequest{Name: "Haircut", Price: -1, Duration: 30}},
		{name: "zero duration", req: &model.CreateServiceRequest{Name: "Haircut", Price: 45}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(new(MockServiceRepository))
			_, err := svc.CreateService(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		})
	}
}

func TestListServices_CachesReads(t *testing.T) {
	repo := new(MockServiceRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("List", ctx).Return([]*model.Service{catalogService(uuid.New())}, nil).Once()

	_, err := svc.ListServices(ctx)
	require.NoError(t, err)
	_, err = svc.ListServices(ctx)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "List", 1)
}
