package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/pairmed/api/internal/core/domain"
	"github.com/pairmed/api/internal/core/ports"
)

// eventChannel matches the channel name used by the notify triggers in
// the migrations.
const eventChannel = "pairmed_events"

type EventFeed struct {
	connStr string
}

func NewEventFeed(connStr string) ports.EventFeed {
	return &EventFeed{connStr: connStr}
}

// Subscribe opens a dedicated LISTEN connection and streams decoded
// change events until the context is done or cancel is called.
func (f *EventFeed) Subscribe(ctx context.Context) (<-chan domain.Event, func(), error) {
	listener := pq.NewListener(f.connStr, 10*time.Second, time.Minute, nil)
	if err := listener.Listen(eventChannel); err != nil {
		listener.Close()
		return nil, nil, fmt.Errorf("failed to listen on %s: %w", eventChannel, err)
	}

	events := make(chan domain.Event)
	done := make(chan struct{})

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case n := <-listener.Notify:
				if n == nil {
					// nil is delivered after a connection reset
					continue
				}
				var ev domain.Event
				if err := json.Unmarshal([]byte(n.Extra), &ev); err != nil {
					log.Printf("event feed: dropping malformed payload: %v", err)
					continue
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				case <-done:
					return
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			if err := listener.Close(); err != nil {
				log.Printf("event feed: failed to close listener: %v", err)
			}
		})
	}
	return events, cancel, nil
}
