package repository

import (
	"context"

	"github.com/poi-microservice/internal/domain"
)

// POIRepository определяет методы для работы с точками интереса
type POIRepository interface {
	// List возвращает страницу POI (новые первыми) и общее количество
	List(ctx context.Context, limit, offset int) ([]*domain.POI, int, error)

	// GetByID возвращает POI по ID
	GetByID(ctx context.Context, id int64) (*domain.POI, error)

	// Create сохраняет POI, location выводится из координат
	Create(ctx context.Context, poi *domain.POI) (*domain.POI, error)

	// Update применяет частичное обновление
	Update(ctx context.Context, id int64, upd domain.POIUpdate) (*domain.POI, error)

	// Delete удаляет POI без возможности восстановления
	Delete(ctx context.Context, id int64) error

	// GetNearby возвращает POI в радиусе (метры) от точки, ближайшие первыми
	GetNearby(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]*domain.NearbyPOI, error)
}

// SpatialRepository - проверка пространственных возможностей хранилища
type SpatialRepository interface {
	// PostGISVersion падает, если расширение PostGIS не установлено
	PostGISVersion(ctx context.Context) (string, error)
}
