package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/poi-microservice/internal/domain"
	"github.com/poi-microservice/internal/domain/repository"
	"github.com/poi-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type poiRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPOIRepository(db *DB) repository.POIRepository {
	return &poiRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// poiRow - строка таблицы pois
type poiRow struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Description sql.NullString  `db:"description"`
	Latitude    sql.NullFloat64 `db:"latitude"`
	Longitude   sql.NullFloat64 `db:"longitude"`
	LocationLng sql.NullFloat64 `db:"location_lng"`
	LocationLat sql.NullFloat64 `db:"location_lat"`
	Tags        pq.StringArray  `db:"tags"`
	Rating      sql.NullFloat64 `db:"rating"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type poiListRow struct {
	poiRow
	TotalCount int `db:"total_count"`
}

type poiNearbyRow struct {
	poiRow
	Distance float64 `db:"distance"`
}

func (r poiRow) toDomain() *domain.POI {
	poi := &domain.POI{
		ID:        r.ID,
		Name:      r.Name,
		Tags:      []string(r.Tags),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if poi.Tags == nil {
		poi.Tags = []string{}
	}
	if r.Description.Valid {
		poi.Description = &r.Description.String
	}
	if r.Latitude.Valid {
		poi.Latitude = &r.Latitude.Float64
	}
	if r.Longitude.Valid {
		poi.Longitude = &r.Longitude.Float64
	}
	if r.Rating.Valid {
		poi.Rating = &r.Rating.Float64
	}
	if r.LocationLat.Valid && r.LocationLng.Valid {
		loc := domain.NewLocation(r.LocationLat.Float64, r.LocationLng.Float64)
		poi.Location = &loc
	}
	return poi
}

func (r *poiRepository) List(ctx context.Context, limit, offset int) ([]*domain.POI, int, error) {
	query := `
		SELECT ` + poiColumns + `,
			COUNT(*) OVER() AS total_count
		FROM pois
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	var rows []poiListRow
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		r.logger.Error("Failed to list POIs",
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.Error(err),
		)
		return nil, 0, errors.ErrDatabaseError
	}

	pois := make([]*domain.POI, 0, len(rows))
	for _, row := range rows {
		pois = append(pois, row.toDomain())
	}

	if len(rows) > 0 {
		return pois, rows[0].TotalCount, nil
	}
	if offset == 0 {
		return pois, 0, nil
	}

	// страница за пределами данных: оконная функция ничего не вернула
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM pois`); err != nil {
		r.logger.Error("Failed to count POIs", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	return pois, total, nil
}

func (r *poiRepository) GetByID(ctx context.Context, id int64) (*domain.POI, error) {
	query := `SELECT ` + poiColumns + ` FROM pois WHERE id = $1`

	var row poiRow
	err := r.db.GetContext(ctx, &row, query, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrPOINotFound
	}
	if err != nil {
		r.logger.Error("Failed to get POI by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return row.toDomain(), nil
}

func (r *poiRepository) Create(ctx context.Context, poi *domain.POI) (*domain.POI, error) {
	query := `
		INSERT INTO pois (name, description, latitude, longitude, location, tags, rating)
		VALUES (
			$1, $2, $3::float8, $4::float8,
			CASE WHEN $3::float8 IS NOT NULL AND $4::float8 IS NOT NULL
				THEN ST_SetSRID(ST_MakePoint($4::float8, $3::float8), 4326)
			END,
			COALESCE($5::text[], '{}'), $6
		)
		RETURNING ` + poiColumns

	tags := poi.Tags
	if tags == nil {
		tags = []string{}
	}

	var row poiRow
	err := r.db.GetContext(ctx, &row, query,
		poi.Name, poi.Description, poi.Latitude, poi.Longitude,
		pq.Array(tags), poi.Rating,
	)
	if err != nil {
		r.logger.Error("Failed to create POI", zap.String("name", poi.Name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return row.toDomain(), nil
}

func (r *poiRepository) Update(ctx context.Context, id int64, upd domain.POIUpdate) (*domain.POI, error) {
	var (
		sets []string
		args []interface{}
	)
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		set("name", *upd.Name)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.Latitude != nil {
		set("latitude", *upd.Latitude)
	}
	if upd.Longitude != nil {
		set("longitude", *upd.Longitude)
	}
	if upd.Tags != nil {
		set("tags", pq.Array(upd.Tags))
	}
	if upd.Rating != nil {
		set("rating", *upd.Rating)
	}

	// location пересчитывается только если пришли обе координаты
	if upd.RederivesLocation() {
		args = append(args, *upd.Longitude, *upd.Latitude)
		sets = append(sets, fmt.Sprintf(
			"location = ST_SetSRID(ST_MakePoint($%d::float8, $%d::float8), %d)",
			len(args)-1, len(args), SRID4326,
		))
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE pois SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), poiColumns,
	)

	var row poiRow
	err := r.db.GetContext(ctx, &row, query, args...)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrPOINotFound
	}
	if err != nil {
		r.logger.Error("Failed to update POI", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return row.toDomain(), nil
}

func (r *poiRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pois WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete POI", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to read affected rows", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrPOINotFound
	}

	return nil
}

// GetNearby - расстояние и фильтр считаются по geography (сфероид WGS84),
// а не в градусах на плоскости
func (r *poiRepository) GetNearby(
	ctx context.Context,
	lat, lng, radiusMeters float64,
	limit int,
) ([]*domain.NearbyPOI, error) {
	query := `
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS geog
		)
		SELECT ` + poiColumns + `,
			ST_Distance(pois.location::geography, point.geog) AS distance
		FROM pois, point
		WHERE pois.location IS NOT NULL
			AND ST_DWithin(pois.location::geography, point.geog, $3)
		ORDER BY distance ASC
		LIMIT $4
	`

	var rows []poiNearbyRow
	if err := r.db.SelectContext(ctx, &rows, query, lng, lat, radiusMeters, limit); err != nil {
		r.logger.Error("Failed to get nearby POIs",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
			zap.Float64("radius_m", radiusMeters),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	pois := make([]*domain.NearbyPOI, 0, len(rows))
	for _, row := range rows {
		pois = append(pois, &domain.NearbyPOI{
			POI:      *row.toDomain(),
			Distance: row.Distance,
		})
	}

	return pois, nil
}
