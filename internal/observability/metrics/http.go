// Package metrics emits standardised request metrics on top of the statsd sink.
package metrics

import (
	"strconv"
	"time"

	"github.com/chatloop/chat-api/internal/observability/statsd"
)

// HTTPMetric captures details about a completed HTTP request for metric emission.
type HTTPMetric struct {
	Method   string
	Route    string
	Status   int
	Duration time.Duration
}

// EmitHTTPRequest emits standardised request count and latency metrics.
func EmitHTTPRequest(sink statsd.Sink, in HTTPMetric) {
	if sink == nil {
		return
	}

	route := in.Route
	if route == "" {
		route = "unmatched"
	}

	tags := map[string]string{
		"method": in.Method,
		"route":  route,
		"status": strconv.Itoa(in.Status),
	}

	sink.Count("http.request", 1, tags)

	if in.Duration > 0 {
		sink.Timing("http.duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map, filtering out empty maps.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
