package dto

import "github.com/poi-microservice/internal/domain"

// ListPOIsResponse - страница POI; total - количество всех POI, а не размер страницы
type ListPOIsResponse struct {
	Data  []*domain.POI `json:"data"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int           `json:"total"`
}

// NearbyResponse - POI в радиусе, ближайшие первыми
type NearbyResponse struct {
	POIs  []*domain.NearbyPOI `json:"pois"`
	Total int                 `json:"total"`
}
