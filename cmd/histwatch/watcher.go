package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/YuhanLiin/heapless/errors"
	"github.com/YuhanLiin/heapless/histbuf"
	"github.com/YuhanLiin/heapless/metric"
)

// Sample is one telemetry reading received from NATS.
type Sample struct {
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// subjectSample pairs a decoded sample with the subject it arrived on.
type subjectSample struct {
	subject string
	sample  Sample
}

// Watcher maintains one fixed-capacity history window per configured
// subject and periodically reports rolling averages over the retained
// samples.
//
// All windows are owned by the single goroutine running Run; NATS
// callbacks hand samples over through a channel and never touch the
// buffers directly.
type Watcher struct {
	windows map[string]*histbuf.HistoryBuffer[Sample]
	samples chan subjectSample
	logger  *slog.Logger

	avg      *prometheus.GaugeVec
	interval time.Duration
}

// NewWatcher builds the per-subject windows and registers the rolling
// aggregate metrics.
func NewWatcher(cfg Config, registry *metric.MetricsRegistry, logger *slog.Logger) (*Watcher, error) {
	avg := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "heapless",
		Subsystem: "histwatch",
		Name:      "rolling_average",
		Help:      "Rolling average over the retained samples per subject",
	}, []string{"subject"})

	if err := registry.RegisterGaugeVec(appName, "rolling_average", avg); err != nil {
		return nil, err
	}

	windows := make(map[string]*histbuf.HistoryBuffer[Sample], len(cfg.NATS.Subjects))
	for _, subject := range cfg.NATS.Subjects {
		buf, err := histbuf.New[Sample](cfg.Window.Size,
			histbuf.WithMetrics[Sample](registry, subject),
		)
		if err != nil {
			return nil, errors.Wrap(err, "Watcher", "NewWatcher", "create window for "+subject)
		}
		windows[subject] = buf
	}

	return &Watcher{
		windows:  windows,
		samples:  make(chan subjectSample, 256),
		logger:   logger,
		avg:      avg,
		interval: cfg.Window.ReportInterval,
	}, nil
}

// Offer enqueues a sample for the owning goroutine. It never blocks;
// when the hand-off channel is full the sample is dropped, which is
// acceptable for rolling-window semantics.
func (w *Watcher) Offer(subject string, sample Sample) {
	select {
	case w.samples <- subjectSample{subject: subject, sample: sample}:
	default:
		w.logger.Warn("Sample dropped, hand-off channel full", "subject", subject)
	}
}

// Decode parses a raw NATS payload into a Sample.
func Decode(data []byte) (Sample, error) {
	var s Sample
	if err := json.Unmarshal(data, &s); err != nil {
		return Sample{}, errors.WrapInvalid(err, "Watcher", "Decode", "unmarshal sample")
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now()
	}
	return s, nil
}

// Run consumes samples until ctx is cancelled, reporting rolling
// aggregates every interval. It owns every window exclusively.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer w.closeWindows()

	for {
		select {
		case <-ctx.Done():
			w.report()
			return nil
		case ss := <-w.samples:
			w.apply(ss)
		case <-ticker.C:
			w.report()
		}
	}
}

// apply writes one sample into its subject's window.
func (w *Watcher) apply(ss subjectSample) {
	buf, ok := w.windows[ss.subject]
	if !ok {
		w.logger.Warn("Sample for unconfigured subject", "subject", ss.subject)
		return
	}

	if err := buf.Write(ss.sample); err != nil {
		w.logger.Error("Window write failed", "subject", ss.subject, "error", err)
	}
}

// report publishes the rolling average of every non-empty window.
func (w *Watcher) report() {
	for subject, buf := range w.windows {
		n := buf.Len()
		if n == 0 {
			continue
		}

		// Slice order is unspecified, which a sum does not care about.
		var sum float64
		for _, s := range buf.Slice() {
			sum += s.Value
		}
		average := sum / float64(n)

		w.avg.WithLabelValues(subject).Set(average)

		recent, _ := buf.Recent()
		w.logger.Info("Rolling window report",
			"subject", subject,
			"samples", n,
			"average", average,
			"recent", recent.Value,
			"evictions", buf.Stats().Evictions(),
		)
	}
}

func (w *Watcher) closeWindows() {
	for subject, buf := range w.windows {
		if err := buf.Close(); err != nil {
			w.logger.Error("Window close failed", "subject", subject, "error", err)
		}
	}
}
