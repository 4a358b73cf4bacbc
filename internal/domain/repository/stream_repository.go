package repository

import (
	"context"

	"github.com/poi-microservice/internal/domain"
)

// EventPublisher - публикация событий изменения POI
type EventPublisher interface {
	Publish(ctx context.Context, event domain.POIEvent) error
}
