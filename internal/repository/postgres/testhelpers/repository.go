package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/poi-microservice/internal/domain/repository"
	"github.com/poi-microservice/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewPOIRepositoryForTest creates a POI repository with test database and logger
func NewPOIRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.POIRepository {
	return postgres.NewPOIRepository(NewDBForTest(db, logger))
}
