package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/shopdash/shopdash-ui/internal/observability/errors"
	"github.com/shopdash/shopdash-ui/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// APIRequestMetric captures one outbound call to the dashboard API.
type APIRequestMetric struct {
	Method   string
	Endpoint string
	Status   int
	Duration time.Duration
	Err      error
}

// EmitAPIRequest emits standardised outbound request metrics.
func EmitAPIRequest(sink statsd.Sink, in APIRequestMetric) {
	if sink == nil {
		return
	}

	result := ResultSuccess
	if in.Err != nil {
		result = ResultError
	}

	tags := map[string]string{
		"method":       in.Method,
		"endpoint":     in.Endpoint,
		"status_class": StatusClass(in.Status),
		"result":       result,
	}
	if in.Err != nil {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("api.request", 1, tags)

	if in.Duration > 0 {
		sink.Timing("api.request.duration", in.Duration, CloneTags(tags))
	}
}

// EmitSessionTeardown counts forced or voluntary session teardowns.
func EmitSessionTeardown(sink statsd.Sink, reason string) {
	if sink == nil {
		return
	}
	sink.Count("session.teardown", 1, map[string]string{"reason": reason})
}

// StatusClass buckets an HTTP status as "2xx", "4xx", ... or "none" when no response arrived.
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "none"
	}
	return strconv.Itoa(status/100) + "xx"
}

// CloneTags creates a shallow copy of a tag map.
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
