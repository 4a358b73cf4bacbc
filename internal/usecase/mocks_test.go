package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/poi-microservice/internal/domain"
)

// MockPOIRepository is a mock of POIRepository
type MockPOIRepository struct {
	mock.Mock
}

func (m *MockPOIRepository) List(ctx context.Context, limit, offset int) ([]*domain.POI, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.POI), args.Int(1), args.Error(2)
}

func (m *MockPOIRepository) GetByID(ctx context.Context, id int64) (*domain.POI, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.POI), args.Error(1)
}

func (m *MockPOIRepository) Create(ctx context.Context, poi *domain.POI) (*domain.POI, error) {
	args := m.Called(ctx, poi)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.POI), args.Error(1)
}

func (m *MockPOIRepository) Update(ctx context.Context, id int64, upd domain.POIUpdate) (*domain.POI, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.POI), args.Error(1)
}

func (m *MockPOIRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPOIRepository) GetNearby(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]*domain.NearbyPOI, error) {
	args := m.Called(ctx, lat, lng, radiusMeters, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.NearbyPOI), args.Error(1)
}

// MockSpatialRepository is a mock of SpatialRepository
type MockSpatialRepository struct {
	mock.Mock
}

func (m *MockSpatialRepository) PostGISVersion(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockEventPublisher is a mock of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.POIEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
