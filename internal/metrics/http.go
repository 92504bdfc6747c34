package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DecisionKey is the gin context key under which the access gate stores its decision.
const DecisionKey = "rbac_decision"

// HTTPMetricsMiddleware records request counts and durations labelled with method,
// route pattern, status code and the access decision taken for the request.
// Requests that never reached the gate are labelled decision="none"; rejected
// requests keep the gate's empty decision and are labelled "rejected".
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	meter := meterProvider.Meter(namespace)

	requestCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return passThrough
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return passThrough
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		attrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", sanitizePath(c.FullPath())),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
			attribute.String("decision", decisionLabel(c)),
		)

		requestCounter.Add(c.Request.Context(), 1, attrs)
		durationHisto.Record(c.Request.Context(), time.Since(start).Seconds(), attrs)
	}
}

func passThrough(c *gin.Context) {
	c.Next()
}

// decisionLabel reads the gate decision stored on the context.
func decisionLabel(c *gin.Context) string {
	value, exists := c.Get(DecisionKey)
	if !exists {
		return "none"
	}
	if decision, ok := value.(string); ok && decision != "" {
		return decision
	}
	return "rejected"
}

// sanitizePath keeps route patterns (e.g. /api/ros/v1/systems/:inventory_id) so
// per-host paths do not explode label cardinality.
func sanitizePath(fullPath string) string {
	if fullPath == "" {
		return "unknown"
	}
	return fullPath
}
