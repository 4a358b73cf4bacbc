package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const createPOITable = `
	CREATE TABLE IF NOT EXISTS pois (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		latitude    DOUBLE PRECISION,
		longitude   DOUBLE PRECISION,
		location    geometry(Point, 4326),
		tags        TEXT[] NOT NULL DEFAULT '{}',
		rating      DOUBLE PRECISION,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

var createPOIIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_pois_location_geog ON pois USING GIST ((location::geography))`,
	`CREATE INDEX IF NOT EXISTS idx_pois_created_at ON pois (created_at DESC, id DESC)`,
}

// EnsurePostGIS устанавливает расширение PostGIS, если его ещё нет
func (db *DB) EnsurePostGIS(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS postgis`); err != nil {
		return fmt.Errorf("failed to create postgis extension: %w", err)
	}
	return nil
}

// EnsureSchema создаёт таблицу pois и индексы, если их нет
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, createPOITable); err != nil {
		return fmt.Errorf("failed to create pois table: %w", err)
	}

	for _, stmt := range createPOIIndexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create pois index: %w", err)
		}
	}

	db.logger.Info("POI schema ensured")
	return nil
}

// PostGISVersion - probe пространственного расширения: без PostGIS запрос падает
func (db *DB) PostGISVersion(ctx context.Context) (string, error) {
	var version string
	if err := db.GetContext(ctx, &version, `SELECT PostGIS_Version()`); err != nil {
		db.logger.Warn("PostGIS probe failed", zap.Error(err))
		return "", fmt.Errorf("postgis probe: %w", err)
	}
	return version, nil
}
