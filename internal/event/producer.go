// Package event publishes cart and wishlist domain events.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/domain"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/logger"
)

const (
	TopicCartUpdated     = "storefront.cart.updated"
	TopicCartCleared     = "storefront.cart.cleared"
	TopicWishlistUpdated = "storefront.wishlist.updated"
	TopicWishlistCleared = "storefront.wishlist.cleared"
)

const (
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
)

const SourceStorefront = "storefront-service"

// CartUpdatedData is the payload of storefront.cart.updated.
type CartUpdatedData struct {
	SessionID  string         `json:"session_id"`
	Items      []LineItemData `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPrice int64          `json:"total_price"`
	Currency   string         `json:"currency"`
}

type LineItemData struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// WishlistUpdatedData is the payload of storefront.wishlist.updated.
type WishlistUpdatedData struct {
	SessionID  string   `json:"session_id"`
	ProductIDs []string `json:"product_ids"`
	TotalItems int      `json:"total_items"`
}

// ClearedData is the payload of both cleared topics.
type ClearedData struct {
	SessionID string `json:"session_id"`
}

// Producer turns store changes into Kafka events.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

func (p *Producer) PublishCartUpdated(ctx context.Context, sessionID string, lines []domain.CartLine, currency string) error {
	items := make([]LineItemData, len(lines))
	for i, l := range lines {
		items[i] = LineItemData{ProductID: l.ID, Name: l.Name, Price: l.Price, Quantity: l.Quantity}
	}
	return p.publish(ctx, TopicCartUpdated, sessionID, AggregateTypeCart, CartUpdatedData{
		SessionID:  sessionID,
		Items:      items,
		TotalItems: domain.CartTotalItems(lines),
		TotalPrice: domain.CartTotalPrice(lines),
		Currency:   currency,
	})
}

func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	return p.publish(ctx, TopicCartCleared, sessionID, AggregateTypeCart, ClearedData{SessionID: sessionID})
}

func (p *Producer) PublishWishlistUpdated(ctx context.Context, sessionID string, entries []domain.WishlistEntry) error {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return p.publish(ctx, TopicWishlistUpdated, sessionID, AggregateTypeWishlist, WishlistUpdatedData{
		SessionID:  sessionID,
		ProductIDs: ids,
		TotalItems: len(entries),
	})
}

func (p *Producer) PublishWishlistCleared(ctx context.Context, sessionID string) error {
	return p.publish(ctx, TopicWishlistCleared, sessionID, AggregateTypeWishlist, ClearedData{SessionID: sessionID})
}

func (p *Producer) publish(ctx context.Context, topic, sessionID, aggregateType string, data any) error {
	ev, err := pkgkafka.NewEvent(topic, sessionID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		ev.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, topic, ev); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}
	return nil
}

// Noop discards every event. It stands in for Producer when Kafka is
// disabled.
type Noop struct{}

func (Noop) PublishCartUpdated(context.Context, string, []domain.CartLine, string) error  { return nil }
func (Noop) PublishCartCleared(context.Context, string) error                             { return nil }
func (Noop) PublishWishlistUpdated(context.Context, string, []domain.WishlistEntry) error { return nil }
func (Noop) PublishWishlistCleared(context.Context, string) error                         { return nil }
