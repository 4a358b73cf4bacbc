package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/poi-microservice/internal/domain"
	"github.com/poi-microservice/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type streamRepository struct {
	client *redis.Client
	stream string
	maxLen int64
	logger *zap.Logger
}

// NewStreamRepository создает publisher событий POI в Redis Stream.
// maxLen <= 0 отключает обрезку стрима.
func NewStreamRepository(client *redis.Client, stream string, maxLen int64, logger *zap.Logger) repository.EventPublisher {
	if stream == "" {
		stream = domain.StreamPOIChanges
	}
	return &streamRepository{
		client: client,
		stream: stream,
		maxLen: maxLen,
		logger: logger,
	}
}

// Publish публикует событие в стрим: поле "data" - JSON события,
// "type" и "poi_id" дублируются для фильтрации без разбора JSON
func (r *streamRepository) Publish(ctx context.Context, event domain.POIEvent) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("Failed to marshal event",
			zap.String("stream", r.stream),
			zap.Error(err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]interface{}{
			"type":   string(event.Type),
			"poi_id": event.POIID,
			"data":   string(jsonData),
		},
	}
	if r.maxLen > 0 {
		args.MaxLen = r.maxLen
		args.Approx = true
	}

	result, err := r.client.XAdd(ctx, args).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", r.stream),
			zap.String("type", string(event.Type)),
			zap.Int64("poi_id", event.POIID),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Event published to stream",
		zap.String("stream", r.stream),
		zap.String("message_id", result))
	return nil
}

type noopPublisher struct{}

// NewNoopPublisher - publisher для конфигурации без событий
func NewNoopPublisher() repository.EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, domain.POIEvent) error {
	return nil
}
