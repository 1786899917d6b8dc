// Package metrics exposes Prometheus counters for the civic bridge backend.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "civic_bridge"

// Registry holds every collector of this process.
var Registry = prometheus.NewRegistry()

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	mirrorFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "legislators",
			Name:      "mirror_failures_total",
			Help:      "Legislator dataset mirrors that failed to answer.",
		},
		[]string{"mirror"},
	)
	aiFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "drafting",
			Name:      "ai_fallbacks_total",
			Help:      "Assistant answers replaced by canned text.",
		},
		[]string{"kind"},
	)
	lettersRendered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "drafting",
			Name:      "documents_rendered_total",
			Help:      "PDF documents rendered.",
		},
		[]string{"document"},
	)
	contactsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "representatives",
			Name:      "contacts_recorded_total",
			Help:      "Successful contacts with a representative.",
		},
		[]string{"method", "session_class"},
	)
	navigationRedirects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "navigation",
			Name:      "redirects_total",
			Help:      "Navigation requests resolved to a different view than requested.",
		},
		[]string{"to"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		mirrorFailures,
		aiFallbacks,
		lettersRendered,
		contactsRecorded,
		navigationRedirects,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

// Middleware counts requests by route pattern.
func Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if ctx.Path() == "/metrics" {
			return ctx.Next()
		}

		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			if ferr, ok := err.(*fiber.Error); ok {
				status = ferr.Code
			}
		}

		path := canonicalPath(ctx)
		method := strings.ToUpper(ctx.Method())
		httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}

// canonicalPath keeps label cardinality bounded by using the matched route.
func canonicalPath(ctx *fiber.Ctx) string {
	if route := ctx.Route(); route != nil && route.Path != "" && route.Path != "/" {
		return route.Path
	}
	return "unmatched"
}

func RecordMirrorFailure(mirror string) {
	mirrorFailures.WithLabelValues(mirror).Inc()
}

func RecordAIFallback(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	aiFallbacks.WithLabelValues(kind).Inc()
}

func RecordDocumentRendered(document string) {
	lettersRendered.WithLabelValues(document).Inc()
}

func RecordContact(method, sessionClass string) {
	contactsRecorded.WithLabelValues(method, sessionClass).Inc()
}

func RecordRedirect(to string) {
	navigationRedirects.WithLabelValues(to).Inc()
}
