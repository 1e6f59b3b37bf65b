package uow

import (
	"context"
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Runtime carries what every write service needs besides its domain logic.
// Repos serves reads outside a transaction; writes go through UoW.
type Runtime struct {
	UoW       UnitOfWork
	Repos     Repositories
	Publisher shared.EventPublisher
	Metrics   *telemetry.LedgerMetrics
	Logger    *zap.Logger
	Clock     func() time.Time
}

// Now returns the current time from Clock, or time.Now
func (rt Runtime) Now() time.Time {
	if rt.Clock != nil {
		return rt.Clock()
	}
	return time.Now()
}

// Log returns Logger, or a no-op logger
func (rt Runtime) Log() *zap.Logger {
	if rt.Logger == nil {
		return zap.NewNop()
	}
	return rt.Logger
}

// Publish hands the collected events to the publisher after commit
func (rt Runtime) Publish(ctx context.Context, rc shared.RequestContext, events *EventCollector) {
	events.Publish(ctx, rt.Publisher, rc.UserID, rt.Log())
}
