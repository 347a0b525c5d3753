package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lechon/internal/core/domain/model/slot"
	"lechon/internal/core/ports"
)

// FailureRecorder counts deliveries that failed, per sink.
type FailureRecorder interface {
	PublishFailed(sink string)
}

type namedSink struct {
	name string
	sink ports.EventPublisher
}

// Fanout publishes every batch to all sinks. A failing sink does not stop the
// others; the failures are joined into the returned error.
type Fanout struct {
	sinks    []namedSink
	failures FailureRecorder
	logger   *slog.Logger
}

func NewFanout(failures FailureRecorder, logger *slog.Logger) *Fanout {
	return &Fanout{
		failures: failures,
		logger:   logger.With("component", "slot-events"),
	}
}

// Add registers a sink under name. Not safe to call once publishing has started.
func (f *Fanout) Add(name string, sink ports.EventPublisher) *Fanout {
	f.sinks = append(f.sinks, namedSink{name: name, sink: sink})
	return f
}

func (f *Fanout) Publish(ctx context.Context, events ...slot.Event) error {
	if len(events) == 0 {
		return nil
	}

	var errList []error
	for _, s := range f.sinks {
		if err := s.sink.Publish(ctx, events...); err != nil {
			f.failures.PublishFailed(s.name)
			f.logger.WarnContext(ctx, "publish slot events failed",
				"sink", s.name, "events", len(events), "error", err)
			errList = append(errList, fmt.Errorf("%s: %w", s.name, err))
		}
	}

	return errors.Join(errList...)
}
