package usecase_test

import (
	"context"
	stderrors "errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/poi-microservice/internal/domain"
	"github.com/poi-microservice/internal/pkg/errors"
	"github.com/poi-microservice/internal/usecase"
	"github.com/poi-microservice/internal/usecase/dto"
)

type fixture struct {
	repo      *MockPOIRepository
	spatial   *MockSpatialRepository
	publisher *MockEventPublisher
	uc        *usecase.POIUseCase
}

func newFixture() *fixture {
	f := &fixture{
		repo:      &MockPOIRepository{},
		spatial:   &MockSpatialRepository{},
		publisher: &MockEventPublisher{},
	}
	f.uc = usecase.NewPOIUseCase(f.repo, f.spatial, f.publisher, zap.NewNop())
	return f
}

func floatPtr(f float64) *float64 {
	return &f
}

func strPtr(s string) *string {
	return &s
}

// ============================================================================
// List
// ============================================================================

func TestPOIUseCase_List_Normalizes(t *testing.T) {
	tests := []struct {
		name       string
		req        dto.ListPOIsRequest
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", dto.ListPOIsRequest{}, 1, 50, 0},
		{"second page", dto.ListPOIsRequest{Page: 2, Limit: 10}, 2, 10, 10},
		{"limit clamped", dto.ListPOIsRequest{Page: 3, Limit: 1000}, 3, 100, 200},
		{"negative values", dto.ListPOIsRequest{Page: -1, Limit: -5}, 1, 50, 0},
		{"page past int range", dto.ListPOIsRequest{Page: math.MaxInt, Limit: 100}, math.MaxInt/100 + 1, 100, (math.MaxInt / 100) * 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			pois := []*domain.POI{{ID: 1, Name: "A"}}
			f.repo.On("List", mock.Anything, tt.wantLimit, tt.wantOffset).Return(pois, 25, nil)

			resp, err := f.uc.List(context.Background(), tt.req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPage, resp.Page)
			assert.Equal(t, tt.wantLimit, resp.Limit)
			assert.Equal(t, 25, resp.Total)
			assert.Equal(t, pois, resp.Data)
			f.repo.AssertExpectations(t)
		})
	}
}

func TestPOIUseCase_List_StoreError(t *testing.T) {
	f := newFixture()
	f.repo.On("List", mock.Anything, 50, 0).Return(nil, 0, errors.ErrDatabaseError)

	resp, err := f.uc.List(context.Background(), dto.ListPOIsRequest{})
	assert.ErrorIs(t, err, errors.ErrDatabaseError)
	assert.Nil(t, resp)
}

// ============================================================================
// Get / Create / Update / Delete
// ============================================================================

func TestPOIUseCase_Get_NotFound(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(7)).Return(nil, errors.ErrPOINotFound)

	poi, err := f.uc.Get(context.Background(), 7)
	assert.ErrorIs(t, err, errors.ErrPOINotFound)
	assert.Nil(t, poi)
}

func TestPOIUseCase_Create_PublishesEvent(t *testing.T) {
	f := newFixture()
	created := &domain.POI{ID: 1, Name: "Taj Mahal", Tags: []string{}}

	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.POI) bool {
		return p.Name == "Taj Mahal" && p.Location != nil &&
			p.Location.Lat() == 27.175 && p.Location.Lng() == 78.0422
	})).Return(created, nil)
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.POIEvent) bool {
		return e.Type == domain.POICreated && e.POIID == 1 && e.POI == created
	})).Return(nil)

	poi, err := f.uc.Create(context.Background(), dto.CreatePOIRequest{
		Name:      "  Taj Mahal ",
		Latitude:  floatPtr(27.175),
		Longitude: floatPtr(78.0422),
	})
	require.NoError(t, err)
	assert.Equal(t, created, poi)

	f.repo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestPOIUseCase_Create_ValidationFailed(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), dto.CreatePOIRequest{
		Name:     "Bad",
		Latitude: floatPtr(95),
	})
	require.ErrorIs(t, err, errors.ErrValidationFailed)

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, map[string]interface{}{"latitude": "max=90"}, appErr.Details)

	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPOIUseCase_Create_PublishFailureIgnored(t *testing.T) {
	f := newFixture()
	created := &domain.POI{ID: 2, Name: "Agra Fort"}

	f.repo.On("Create", mock.Anything, mock.Anything).Return(created, nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(stderrors.New("redis down"))

	poi, err := f.uc.Create(context.Background(), dto.CreatePOIRequest{Name: "Agra Fort"})
	require.NoError(t, err)
	assert.Equal(t, created, poi)
}

func TestPOIUseCase_Create_StoreErrorSkipsPublish(t *testing.T) {
	f := newFixture()
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.ErrDatabaseError)

	_, err := f.uc.Create(context.Background(), dto.CreatePOIRequest{Name: "X"})
	assert.ErrorIs(t, err, errors.ErrDatabaseError)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPOIUseCase_Update_PassesPartialUpdate(t *testing.T) {
	f := newFixture()
	updated := &domain.POI{ID: 3, Name: "Renamed", Rating: floatPtr(4.5)}

	f.repo.On("Update", mock.Anything, int64(3), domain.POIUpdate{
		Name:   strPtr("Renamed"),
		Rating: floatPtr(4.5),
	}).Return(updated, nil)
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.POIEvent) bool {
		return e.Type == domain.POIUpdated && e.POIID == 3
	})).Return(nil)

	poi, err := f.uc.Update(context.Background(), 3, dto.UpdatePOIRequest{
		Name:   strPtr(" Renamed "),
		Rating: floatPtr(4.5),
	})
	require.NoError(t, err)
	assert.Equal(t, updated, poi)
	f.repo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestPOIUseCase_Update_BlankName(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Update(context.Background(), 3, dto.UpdatePOIRequest{Name: strPtr("   ")})
	assert.ErrorIs(t, err, errors.ErrValidationFailed)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestPOIUseCase_Update_NotFound(t *testing.T) {
	f := newFixture()
	f.repo.On("Update", mock.Anything, int64(9), mock.Anything).Return(nil, errors.ErrPOINotFound)

	_, err := f.uc.Update(context.Background(), 9, dto.UpdatePOIRequest{Rating: floatPtr(1)})
	assert.ErrorIs(t, err, errors.ErrPOINotFound)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPOIUseCase_Delete(t *testing.T) {
	f := newFixture()
	f.repo.On("Delete", mock.Anything, int64(4)).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.POIEvent) bool {
		return e.Type == domain.POIDeleted && e.POIID == 4 && e.POI == nil
	})).Return(nil)

	require.NoError(t, f.uc.Delete(context.Background(), 4))
	f.publisher.AssertExpectations(t)
}

func TestPOIUseCase_Delete_NotFound(t *testing.T) {
	f := newFixture()
	f.repo.On("Delete", mock.Anything, int64(4)).Return(errors.ErrPOINotFound)

	assert.ErrorIs(t, f.uc.Delete(context.Background(), 4), errors.ErrPOINotFound)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPOIUseCase_NilPublisher(t *testing.T) {
	repo := &MockPOIRepository{}
	uc := usecase.NewPOIUseCase(repo, &MockSpatialRepository{}, nil, zap.NewNop())
	repo.On("Delete", mock.Anything, int64(1)).Return(nil)

	assert.NoError(t, uc.Delete(context.Background(), 1))
}

// ============================================================================
// Nearby
// ============================================================================

func TestPOIUseCase_Nearby(t *testing.T) {
	f := newFixture()
	result := []*domain.NearbyPOI{
		{POI: domain.POI{ID: 1, Name: "Taj Mahal"}, Distance: 120.5},
		{POI: domain.POI{ID: 2, Name: "Agra Fort"}, Distance: 2400},
	}

	f.spatial.On("PostGISVersion", mock.Anything).Return("3.4 USE_GEOS=1", nil)
	f.repo.On("GetNearby", mock.Anything, 27.17, 78.04, 5000.0, domain.LimitNearbyPOIs).Return(result, nil)

	resp, err := f.uc.Nearby(context.Background(), dto.NearbyRequest{Lat: 27.17, Lng: 78.04, RadiusKm: 5})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, result, resp.POIs)
	f.spatial.AssertExpectations(t)
	f.repo.AssertExpectations(t)
}

func TestPOIUseCase_Nearby_InvalidCoordinates(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lng  float64
	}{
		{"latitude too high", 91, 0},
		{"latitude too low", -90.0001, 0},
		{"longitude too high", 0, 180.5},
		{"longitude too low", 0, -181},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			resp, err := f.uc.Nearby(context.Background(), dto.NearbyRequest{Lat: tt.lat, Lng: tt.lng, RadiusKm: 5})
			assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
			assert.Nil(t, resp)

			f.spatial.AssertNotCalled(t, "PostGISVersion", mock.Anything)
			f.repo.AssertNotCalled(t, "GetNearby", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestPOIUseCase_Nearby_BoundaryCoordinatesAccepted(t *testing.T) {
	f := newFixture()
	f.spatial.On("PostGISVersion", mock.Anything).Return("3.4", nil)
	f.repo.On("GetNearby", mock.Anything, 90.0, -180.0, 1000.0, domain.LimitNearbyPOIs).Return([]*domain.NearbyPOI{}, nil)

	resp, err := f.uc.Nearby(context.Background(), dto.NearbyRequest{Lat: 90, Lng: -180, RadiusKm: 1})
	require.NoError(t, err)
	assert.Zero(t, resp.Total)
	assert.NotNil(t, resp.POIs)
}

func TestPOIUseCase_Nearby_PostGISUnavailable(t *testing.T) {
	f := newFixture()
	f.spatial.On("PostGISVersion", mock.Anything).Return("", stderrors.New(`function postgis_version() does not exist`))

	resp, err := f.uc.Nearby(context.Background(), dto.NearbyRequest{Lat: 27.17, Lng: 78.04, RadiusKm: 5})
	assert.ErrorIs(t, err, errors.ErrSpatialCapabilityUnavailable)
	assert.Nil(t, resp)
	f.repo.AssertNotCalled(t, "GetNearby", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPOIUseCase_Nearby_StoreError(t *testing.T) {
	f := newFixture()
	f.spatial.On("PostGISVersion", mock.Anything).Return("3.4", nil)
	f.repo.On("GetNearby", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.ErrDatabaseError)

	_, err := f.uc.Nearby(context.Background(), dto.NearbyRequest{Lat: 1, Lng: 1, RadiusKm: 5})
	assert.ErrorIs(t, err, errors.ErrDatabaseError)
}
