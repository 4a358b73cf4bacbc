package domain

import (
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// POI представляет точку интереса
type POI struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Location    *Location `json:"location"`
	Tags        []string  `json:"tags"`
	Rating      *float64  `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LimitNearbyPOIs - жёсткий предел результатов поиска по радиусу, без пагинации
const LimitNearbyPOIs = 200

// NearbyPOI - POI с расстоянием до точки запроса в метрах
type NearbyPOI struct {
	POI
	Distance float64 `json:"distance"`
}

// POIUpdate - частичное обновление POI, nil поля не меняются
type POIUpdate struct {
	Name        *string
	Description *string
	Latitude    *float64
	Longitude   *float64
	Tags        []string
	Rating      *float64
}

// RederivesLocation - location пересчитывается только когда в запросе
// пришли обе координаты. Если пришла одна, location остаётся прежним.
func (u POIUpdate) RederivesLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}

// Location - точка (lng, lat) в SRID 4326, в JSON отдаётся как GeoJSON Point
type Location orb.Point

// NewLocation строит точку в порядке PostGIS ST_MakePoint(lng, lat)
func NewLocation(lat, lng float64) Location {
	return Location(orb.Point{lng, lat})
}

// DeriveLocation возвращает location для пары координат или nil,
// если хотя бы одна из них не задана
func DeriveLocation(lat, lng *float64) *Location {
	if lat == nil || lng == nil {
		return nil
	}
	loc := NewLocation(*lat, *lng)
	return &loc
}

func (l Location) Point() orb.Point {
	return orb.Point(l)
}

func (l Location) Lat() float64 {
	return orb.Point(l).Lat()
}

func (l Location) Lng() float64 {
	return orb.Point(l).Lon()
}

func (l Location) MarshalJSON() ([]byte, error) {
	return geojson.NewGeometry(orb.Point(l)).MarshalJSON()
}

func (l *Location) UnmarshalJSON(data []byte) error {
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return fmt.Errorf("decode location: %w", err)
	}

	p, ok := g.Geometry().(orb.Point)
	if !ok {
		return fmt.Errorf("decode location: expected Point, got %s", g.Type)
	}

	*l = Location(p)
	return nil
}
