package main

import (
	"time"

	"github.com/go-logr/logr"
	"github.com/uber-go/tally"
)

// logReporter reports tally metrics as log lines at V(1).
type logReporter struct {
	log logr.Logger
}

func newLogReporter(log logr.Logger) tally.StatsReporter {
	return &logReporter{log: log.WithName("metrics")}
}

func (r *logReporter) ReportCounter(name string, tags map[string]string, value int64) {
	r.log.V(1).Info("counter", "name", name, "tags", tags, "value", value)
}

func (r *logReporter) ReportGauge(name string, tags map[string]string, value float64) {
	r.log.V(1).Info("gauge", "name", name, "tags", tags, "value", value)
}

func (r *logReporter) ReportTimer(name string, tags map[string]string, interval time.Duration) {
	r.log.V(1).Info("timer", "name", name, "tags", tags, "elapsed", interval)
}

func (r *logReporter) ReportHistogramValueSamples(name string, tags map[string]string, buckets tally.Buckets, bucketLowerBound, bucketUpperBound float64, samples int64) {
	r.log.V(1).Info("histogram", "name", name, "tags", tags, "lower", bucketLowerBound, "upper", bucketUpperBound, "samples", samples)
}

func (r *logReporter) ReportHistogramDurationSamples(name string, tags map[string]string, buckets tally.Buckets, bucketLowerBound, bucketUpperBound time.Duration, samples int64) {
	r.log.V(1).Info("histogram", "name", name, "tags", tags, "lower", bucketLowerBound, "upper", bucketUpperBound, "samples", samples)
}

func (r *logReporter) Capabilities() tally.Capabilities {
	return r
}

func (r *logReporter) Reporting() bool {
	return true
}

func (r *logReporter) Tagging() bool {
	return true
}

func (r *logReporter) Flush() {}
