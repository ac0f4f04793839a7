package ports

import (
	"context"

	"github.com/pairmed/api/internal/core/domain"
)

// EventFeed is a push-based subscription on invite/couple changes. The
// returned cancel func must be called when the subscriber goes away.
type EventFeed interface {
	Subscribe(ctx context.Context) (<-chan domain.Event, func(), error)
}
