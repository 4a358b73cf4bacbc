package dto

import (
	"math"
	"strings"

	"github.com/poi-microservice/internal/domain"
	"github.com/poi-microservice/internal/pkg/errors"
	"github.com/poi-microservice/internal/pkg/utils"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
	// MaxLimit - потолок размера страницы, большие значения обрезаются
	MaxLimit = 100

	DefaultRadiusKm = 5.0
)

// ListPOIsRequest - запрос страницы POI
type ListPOIsRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize подставляет значения по умолчанию, ограничивает limit и page
func (r *ListPOIsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.Limit < 1 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	// (Page-1)*Limit не должен переполнить int: такая страница всё равно пустая
	if r.Page-1 > math.MaxInt/r.Limit {
		r.Page = math.MaxInt/r.Limit + 1
	}
}

func (r ListPOIsRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// CreatePOIRequest - тело запроса на создание POI
type CreatePOIRequest struct {
	Name        string   `json:"name" validate:"required,notblank"`
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude" validate:"omitnil,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"omitnil,min=-180,max=180"`
	Tags        []string `json:"tags" validate:"omitempty,dive,notblank"`
	Rating      *float64 `json:"rating"`
}

func (r CreatePOIRequest) ToDomain() *domain.POI {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.POI{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Location:    domain.DeriveLocation(r.Latitude, r.Longitude),
		Tags:        tags,
		Rating:      r.Rating,
	}
}

// UpdatePOIRequest - частичное обновление, отсутствующие поля не меняются
type UpdatePOIRequest struct {
	Name        *string  `json:"name" validate:"omitnil,notblank"`
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude" validate:"omitnil,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"omitnil,min=-180,max=180"`
	Tags        []string `json:"tags" validate:"omitempty,dive,notblank"`
	Rating      *float64 `json:"rating"`
}

func (r UpdatePOIRequest) ToDomain() domain.POIUpdate {
	upd := domain.POIUpdate{
		Description: r.Description,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Tags:        r.Tags,
		Rating:      r.Rating,
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		upd.Name = &name
	}
	return upd
}

// NearbyRequest - поиск POI в радиусе, радиус в километрах
type NearbyRequest struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RadiusKm float64 `json:"radius"`
}

// RadiusMeters - радиус для запроса к хранилищу
func (r NearbyRequest) RadiusMeters() float64 {
	return r.RadiusKm * 1000
}

// ParseNearbyRequest разбирает сырые query-параметры. lat и lng обязательны,
// radius необязателен, но если передан, то должен быть числом: значение по
// умолчанию подставляется только когда параметра нет.
// Диапазон координат здесь не проверяется.
func ParseNearbyRequest(lat, lng, radius string) (NearbyRequest, error) {
	req := NearbyRequest{RadiusKm: DefaultRadiusKm}

	var ok bool
	if req.Lat, ok = utils.ParseFloat(lat); !ok {
		return NearbyRequest{}, errors.ErrInvalidParameters
	}
	if req.Lng, ok = utils.ParseFloat(lng); !ok {
		return NearbyRequest{}, errors.ErrInvalidParameters
	}

	if strings.TrimSpace(radius) != "" {
		if req.RadiusKm, ok = utils.ParseFloat(radius); !ok {
			return NearbyRequest{}, errors.ErrInvalidParameters.WithMessage("radius must be a valid number")
		}
	}

	return req, nil
}
