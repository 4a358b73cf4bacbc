package usecase

import (
	"context"

	"github.com/poi-microservice/internal/domain"
	"github.com/poi-microservice/internal/domain/repository"
	"github.com/poi-microservice/internal/pkg/errors"
	"github.com/poi-microservice/internal/pkg/utils"
	"github.com/poi-microservice/internal/pkg/validator"
	"github.com/poi-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

type POIUseCase struct {
	poiRepo     repository.POIRepository
	spatialRepo repository.SpatialRepository
	publisher   repository.EventPublisher
	logger      *zap.Logger
}

func NewPOIUseCase(
	poiRepo repository.POIRepository,
	spatialRepo repository.SpatialRepository,
	publisher repository.EventPublisher,
	logger *zap.Logger,
) *POIUseCase {
	return &POIUseCase{
		poiRepo:     poiRepo,
		spatialRepo: spatialRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// List - страница POI, новые первыми
func (uc *POIUseCase) List(ctx context.Context, req dto.ListPOIsRequest) (*dto.ListPOIsResponse, error) {
	req.Normalize()

	pois, total, err := uc.poiRepo.List(ctx, req.Limit, req.Offset())
	if err != nil {
		uc.logger.Error("Failed to list POIs", zap.Int("page", req.Page), zap.Error(err))
		return nil, err
	}

	return &dto.ListPOIsResponse{
		Data:  pois,
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	}, nil
}

func (uc *POIUseCase) Get(ctx context.Context, id int64) (*domain.POI, error) {
	return uc.poiRepo.GetByID(ctx, id)
}

func (uc *POIUseCase) Create(ctx context.Context, req dto.CreatePOIRequest) (*domain.POI, error) {
	if err := validator.ValidateRequest(&req); err != nil {
		return nil, err
	}

	poi, err := uc.poiRepo.Create(ctx, req.ToDomain())
	if err != nil {
		uc.logger.Error("Failed to create POI", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	uc.publish(ctx, domain.NewPOIEvent(domain.POICreated, poi.ID, poi))
	return poi, nil
}

// Update - частичное обновление. location пересчитывается только если
// в запросе есть обе координаты, иначе остаётся прежним.
func (uc *POIUseCase) Update(ctx context.Context, id int64, req dto.UpdatePOIRequest) (*domain.POI, error) {
	if err := validator.ValidateRequest(&req); err != nil {
		return nil, err
	}

	upd := req.ToDomain()
	if (upd.Latitude == nil) != (upd.Longitude == nil) {
		uc.logger.Warn("Partial coordinate update keeps previous location",
			zap.Int64("id", id))
	}

	poi, err := uc.poiRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.NewPOIEvent(domain.POIUpdated, poi.ID, poi))
	return poi, nil
}

func (uc *POIUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.poiRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.publish(ctx, domain.NewPOIEvent(domain.POIDeleted, id, nil))
	return nil
}

// Nearby - POI в радиусе от точки. Порядок проверок: диапазон координат,
// наличие PostGIS, затем сам запрос. При ошибке валидации в хранилище не ходим.
func (uc *POIUseCase) Nearby(ctx context.Context, req dto.NearbyRequest) (*dto.NearbyResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	version, err := uc.spatialRepo.PostGISVersion(ctx)
	if err != nil {
		uc.logger.Error("PostGIS capability probe failed", zap.Error(err))
		return nil, errors.ErrSpatialCapabilityUnavailable
	}
	uc.logger.Debug("PostGIS available", zap.String("version", version))

	pois, err := uc.poiRepo.GetNearby(ctx, req.Lat, req.Lng, req.RadiusMeters(), domain.LimitNearbyPOIs)
	if err != nil {
		uc.logger.Error("Failed to search nearby POIs",
			zap.Float64("lat", req.Lat),
			zap.Float64("lng", req.Lng),
			zap.Float64("radius_km", req.RadiusKm),
			zap.Error(err),
		)
		return nil, err
	}

	return &dto.NearbyResponse{
		POIs:  pois,
		Total: len(pois),
	}, nil
}

// publish - событие отправляется после записи; ошибка только логируется,
// запись в хранилище уже выполнена
func (uc *POIUseCase) publish(ctx context.Context, event domain.POIEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("Failed to publish POI event",
			zap.String("type", string(event.Type)),
			zap.Int64("poi_id", event.POIID),
			zap.Error(err),
		)
	}
}
