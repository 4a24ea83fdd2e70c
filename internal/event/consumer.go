package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/base-angewandte/image-backend-sub000/pkg/kafka"
)

// Indexer recomputes artwork search vectors. It is satisfied by
// service.IndexerService; declaring it here keeps this package from importing
// internal/service, which already imports internal/event.
type Indexer interface {
	RebuildArtwork(ctx context.Context, artworkID string) error
	ReindexPerson(ctx context.Context, personID int64) error
	ReindexKeyword(ctx context.Context, keywordID int64) error
	ReindexLocation(ctx context.Context, locationID int64) error
	ReindexMaterial(ctx context.Context, materialID int64) error
}

// Consumer routes archive domain events to the indexer. It backs the index
// worker process, which keeps artwork search vectors in sync with catalogue
// and vocabulary changes.
type Consumer struct {
	indexer Indexer
	logger  *slog.Logger
}

// NewConsumer creates a new event consumer for the index worker.
func NewConsumer(indexer Indexer, logger *slog.Logger) *Consumer {
	return &Consumer{
		indexer: indexer,
		logger:  logger,
	}
}

// Handle processes a Kafka event based on its type.
func (c *Consumer) Handle(ctx context.Context, event *pkgkafka.Event) error {
	switch event.EventType {
	case TopicArtworkCreated, TopicArtworkUpdated:
		return c.handleArtworkChanged(ctx, event)
	case TopicArtworkDeleted:
		// The row is gone and its vector with it.
		c.logger.DebugContext(ctx, "artwork deleted, nothing to reindex",
			slog.String("event_id", event.EventID),
		)
		return nil
	case TopicPersonUpdated:
		return c.handleVocabularyChanged(ctx, event, c.indexer.ReindexPerson)
	case TopicKeywordUpdated:
		return c.handleVocabularyChanged(ctx, event, c.indexer.ReindexKeyword)
	case TopicLocationUpdated:
		return c.handleVocabularyChanged(ctx, event, c.indexer.ReindexLocation)
	case TopicMaterialUpdated:
		return c.handleVocabularyChanged(ctx, event, c.indexer.ReindexMaterial)
	default:
		c.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

func (c *Consumer) handleArtworkChanged(ctx context.Context, event *pkgkafka.Event) error {
	var data ArtworkEventData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}

	if err := c.indexer.RebuildArtwork(ctx, data.ID); err != nil {
		return fmt.Errorf("rebuild artwork from %s event: %w", event.EventType, err)
	}

	return nil
}

func (c *Consumer) handleVocabularyChanged(ctx context.Context, event *pkgkafka.Event, reindex func(context.Context, int64) error) error {
	var data VocabularyEventData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}

	if err := reindex(ctx, data.ID); err != nil {
		return fmt.Errorf("reindex from %s event: %w", event.EventType, err)
	}

	return nil
}
