package ports

import (
	"context"

	"github.com/parkit/parking-system/internal/core/domain"
)

// GateEventRepository persists gate device events to an audit trail.
type GateEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.GateEvent) error
}
