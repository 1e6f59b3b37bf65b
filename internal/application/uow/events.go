package uow

import (
	"context"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventCollector gathers domain events raised inside a unit of work so they
// can be published once the transaction has committed.
type EventCollector struct {
	events []shared.DomainEvent
}

// Collect drains the pending events of each aggregate
func (c *EventCollector) Collect(aggregates ...shared.AggregateRoot) {
	for _, agg := range aggregates {
		if agg == nil {
			continue
		}
		c.events = append(c.events, agg.GetDomainEvents()...)
		agg.ClearDomainEvents()
	}
}

// Events returns the collected events
func (c *EventCollector) Events() []shared.DomainEvent {
	return c.events
}

// Reset drops everything collected so far
func (c *EventCollector) Reset() {
	c.events = nil
}

// Publish stamps the actor on every event and hands them to publisher.
// Failures are logged and swallowed: the business change is already committed.
func (c *EventCollector) Publish(ctx context.Context, publisher shared.EventPublisher, actor uuid.UUID, logger *zap.Logger) {
	if publisher == nil || len(c.events) == 0 {
		return
	}
	for _, ev := range c.events {
		if aware, ok := ev.(shared.ActorAware); ok && actor != uuid.Nil {
			aware.SetActor(actor)
		}
	}
	if err := publisher.Publish(ctx, c.events...); err != nil && logger != nil {
		logger.Warn("failed to publish domain events",
			zap.Int("count", len(c.events)),
			zap.Error(err),
		)
	}
	c.events = nil
}
