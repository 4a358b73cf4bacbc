package domain

import (
	"time"

	"github.com/google/uuid"
)

// StreamPOIChanges - стрим по умолчанию для событий изменения POI
const StreamPOIChanges = "stream:poi:changes"

type POIEventType string

const (
	POICreated POIEventType = "poi.created"
	POIUpdated POIEventType = "poi.updated"
	POIDeleted POIEventType = "poi.deleted"
)

// POIEvent - событие об изменении POI, публикуется после успешной записи
type POIEvent struct {
	EventID    uuid.UUID    `json:"event_id"`
	Type       POIEventType `json:"type"`
	POIID      int64        `json:"poi_id"`
	OccurredAt time.Time    `json:"occurred_at"`
	POI        *POI         `json:"poi,omitempty"`
}

// NewPOIEvent создаёт событие. Для удаления poi передаётся nil.
func NewPOIEvent(eventType POIEventType, id int64, poi *POI) POIEvent {
	return POIEvent{
		EventID:    uuid.New(),
		Type:       eventType,
		POIID:      id,
		OccurredAt: time.Now().UTC(),
		POI:        poi,
	}
}
