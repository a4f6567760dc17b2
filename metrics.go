package asn1x

/*
metrics.go instruments the top-level Unmarshal entry point with
Prometheus metrics, following the same instrumentation shape used by
sibling decoder packages in this ecosystem.
*/

import (
	"reflect"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	DecodeTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "asn1_decoded_total",
		Help: "Total number of values successfully decoded",
	})
	DecodeErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "asn1_decode_errors_total",
		Help: "Total number of decode attempts that returned an error",
	})
	DecodeDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "asn1_decode_duration_seconds",
		Help:    "Duration of a single top-level Unmarshal call",
		Buckets: prometheus.DefBuckets,
	})
	DecodeKind = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "asn1_decoded_kind_total",
		Help: "Total number of top-level values decoded, keyed by destination kind",
	}, []string{"kind"})
)

func decodeKindLabel(rv reflect.Value) string {
	if !rv.IsValid() {
		return "invalid"
	}
	t := rv.Type()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.String()
}

func observeDecode(kind string, start time.Time, err error) {
	DecodeDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		DecodeErrorsTotal.Inc()
		return
	}
	DecodeTotal.Inc()
	DecodeKind.WithLabelValues(kind).Inc()
}
