package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/base-angewandte/image-backend-sub000/internal/domain"
	pkgkafka "github.com/base-angewandte/image-backend-sub000/pkg/kafka"
)

// Kafka topics for archive domain events. Artwork events carry the full
// record, vocabulary events only the changed entity so the index worker can
// fan out to the affected artworks itself.
const (
	TopicArtworkCreated  = "imageplus.artwork.created"
	TopicArtworkUpdated  = "imageplus.artwork.updated"
	TopicArtworkDeleted  = "imageplus.artwork.deleted"
	TopicPersonUpdated   = "imageplus.person.updated"
	TopicKeywordUpdated  = "imageplus.keyword.updated"
	TopicLocationUpdated = "imageplus.location.updated"
	TopicMaterialUpdated = "imageplus.material.updated"
)

// Aggregate type constants.
const (
	AggregateTypeArtwork  = "artwork"
	AggregateTypePerson   = "person"
	AggregateTypeKeyword  = "keyword"
	AggregateTypeLocation = "location"
	AggregateTypeMaterial = "material"
)

// Source identifier for events originating from this backend.
const SourceImageBackend = "image-backend"

// ArtworkEventData is the payload for artwork.created and artwork.updated events.
type ArtworkEventData struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	TitleEnglish string `json:"title_english,omitempty"`
	Published    bool   `json:"published"`
	Checked      bool   `json:"checked"`
}

// ArtworkDeletedData is the payload for an artwork.deleted event.
type ArtworkDeletedData struct {
	ID string `json:"id"`
}

// VocabularyEventData is the payload for person, keyword, location, and
// material update events.
type VocabularyEventData struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Producer publishes archive domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the image backend.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishArtworkCreated publishes an artwork.created event.
func (p *Producer) PublishArtworkCreated(ctx context.Context, artwork *domain.Artwork) error {
	return p.publishArtwork(ctx, TopicArtworkCreated, artwork)
}

// PublishArtworkUpdated publishes an artwork.updated event.
func (p *Producer) PublishArtworkUpdated(ctx context.Context, artwork *domain.Artwork) error {
	return p.publishArtwork(ctx, TopicArtworkUpdated, artwork)
}

func (p *Producer) publishArtwork(ctx context.Context, topic string, artwork *domain.Artwork) error {
	data := ArtworkEventData{
		ID:           artwork.ID,
		Title:        artwork.Title,
		TitleEnglish: artwork.TitleEnglish,
		Published:    artwork.Published,
		Checked:      artwork.Checked,
	}

	event, err := pkgkafka.NewEvent(topic, artwork.ID, AggregateTypeArtwork, SourceImageBackend, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published artwork event",
		slog.String("topic", topic),
		slog.String("artwork_id", artwork.ID),
	)

	return nil
}

// PublishArtworkDeleted publishes an artwork.deleted event.
func (p *Producer) PublishArtworkDeleted(ctx context.Context, id string) error {
	data := ArtworkDeletedData{ID: id}

	event, err := pkgkafka.NewEvent(TopicArtworkDeleted, id, AggregateTypeArtwork, SourceImageBackend, data)
	if err != nil {
		return fmt.Errorf("create artwork.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicArtworkDeleted, event); err != nil {
		return fmt.Errorf("publish artwork.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published artwork.deleted event",
		slog.String("artwork_id", id),
	)

	return nil
}

// PublishPersonUpdated publishes a person.updated event.
func (p *Producer) PublishPersonUpdated(ctx context.Context, person *domain.Person) error {
	return p.publishVocabulary(ctx, TopicPersonUpdated, AggregateTypePerson, person.ID, person.Name)
}

// PublishKeywordUpdated publishes a keyword.updated event.
func (p *Producer) PublishKeywordUpdated(ctx context.Context, keyword *domain.Keyword) error {
	return p.publishVocabulary(ctx, TopicKeywordUpdated, AggregateTypeKeyword, keyword.ID, keyword.Name)
}

// PublishLocationUpdated publishes a location.updated event.
func (p *Producer) PublishLocationUpdated(ctx context.Context, location *domain.Location) error {
	return p.publishVocabulary(ctx, TopicLocationUpdated, AggregateTypeLocation, location.ID, location.Name)
}

// PublishMaterialUpdated publishes a material.updated event.
func (p *Producer) PublishMaterialUpdated(ctx context.Context, material *domain.Material) error {
	return p.publishVocabulary(ctx, TopicMaterialUpdated, AggregateTypeMaterial, material.ID, material.Name)
}

func (p *Producer) publishVocabulary(ctx context.Context, topic, aggregateType string, id int64, name string) error {
	data := VocabularyEventData{ID: id, Name: name}

	event, err := pkgkafka.NewEvent(topic, fmt.Sprintf("%d", id), aggregateType, SourceImageBackend, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published vocabulary event",
		slog.String("topic", topic),
		slog.Int64("id", id),
	)

	return nil
}
