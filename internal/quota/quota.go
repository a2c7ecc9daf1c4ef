// Package quota meters per-user actions against plan limits and exports
// Prometheus counters for the whole service.
package quota

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mtse/marketing-engine/internal/store"
)

var ErrQuotaExceeded = errors.New("plan quota exceeded")

// Plan names and their monthly-ish analysis allowances. Admins are unmetered.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

var planLimits = map[string]int{
	PlanFree: 20,
	PlanPro:  500,
}

type Meter struct {
	users store.UserStore

	analyses  *prometheus.CounterVec
	uploads   *prometheus.CounterVec
	rejected  prometheus.Counter
	analyzeMS prometheus.Histogram
}

func NewMeter(users store.UserStore, reg prometheus.Registerer) *Meter {
	f := promauto.With(reg)
	return &Meter{
		users: users,
		analyses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mtse_analyses_total",
			Help: "Completed analyses by dataset classification.",
		}, []string{"classification"}),
		uploads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mtse_uploads_total",
			Help: "Decoded uploads by format.",
		}, []string{"format"}),
		rejected: f.NewCounter(prometheus.CounterOpts{
			Name: "mtse_quota_rejections_total",
			Help: "Requests rejected for exceeding the plan quota.",
		}),
		analyzeMS: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "mtse_analyze_duration_seconds",
			Help:    "Wall time of one analyze call.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Allow checks whether the user has analysis quota remaining.
func (m *Meter) Allow(ctx context.Context, u *store.User) error {
	if u.Role == "admin" {
		return nil
	}
	limit, ok := planLimits[u.Plan]
	if !ok {
		return fmt.Errorf("unknown plan %q", u.Plan)
	}
	usage, err := m.users.GetUsage(ctx, u.Name)
	if err != nil {
		return err
	}
	if usage.Analyses >= limit {
		m.rejected.Inc()
		return ErrQuotaExceeded
	}
	return nil
}

// RecordUpload counts one decoded upload and its format label.
func (m *Meter) RecordUpload(ctx context.Context, u *store.User, format string) {
	m.uploads.WithLabelValues(format).Inc()
	_ = m.users.AddUsage(ctx, u.Name, store.UsageUploads)
}

// RecordAnalysis counts one completed analysis.
func (m *Meter) RecordAnalysis(ctx context.Context, u *store.User, classification string, seconds float64) {
	m.analyses.WithLabelValues(classification).Inc()
	m.analyzeMS.Observe(seconds)
	_ = m.users.AddUsage(ctx, u.Name, store.UsageAnalyses)
}

// RecordReport counts one rendered report.
func (m *Meter) RecordReport(ctx context.Context, u *store.User) {
	_ = m.users.AddUsage(ctx, u.Name, store.UsageReports)
}
