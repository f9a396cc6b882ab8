package travel

import (
	"fmt"
	"io"
	"time"
)

// ProviderCallEvent records metadata about a single provider invocation.
type ProviderCallEvent struct {
	Provider  string
	LatencyMs int64
	Success   bool
	ErrorCode string
	// FellBack is set when the heuristic answered in place of the provider.
	FellBack bool
}

// Observer receives events about provider calls for logging and metrics.
type Observer interface {
	OnProviderCall(event ProviderCallEvent)
}

// LogObserver writes provider call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnProviderCall(event ProviderCallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] travel_call provider=%s latency_ms=%d status=%s fallback=%t\n",
		ts, event.Provider, event.LatencyMs, status, event.FellBack)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnProviderCall(ProviderCallEvent) {}
