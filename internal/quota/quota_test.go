package quota

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtse/marketing-engine/internal/store"
)

func TestAllowWithinLimit(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	m := NewMeter(st, prometheus.NewRegistry())

	u := &store.User{Name: "alice", Role: "user", Plan: PlanFree}
	assert.NoError(t, m.Allow(ctx, u))

	for i := 0; i < planLimits[PlanFree]; i++ {
		require.NoError(t, st.AddUsage(ctx, "alice", store.UsageAnalyses))
	}
	assert.ErrorIs(t, m.Allow(ctx, u), ErrQuotaExceeded)
}

func TestAdminUnmetered(t *testing.T) {
	m := NewMeter(store.NewMemoryStore(), prometheus.NewRegistry())
	u := &store.User{Name: "root", Role: "admin", Plan: PlanPro}
	assert.NoError(t, m.Allow(context.Background(), u))
}

func TestUnknownPlan(t *testing.T) {
	m := NewMeter(store.NewMemoryStore(), prometheus.NewRegistry())
	u := &store.User{Name: "bob", Role: "user", Plan: "platinum"}
	assert.Error(t, m.Allow(context.Background(), u))
}

func TestRecordersBumpUsage(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	m := NewMeter(st, prometheus.NewRegistry())
	u := &store.User{Name: "alice", Role: "user", Plan: PlanFree}

	m.RecordUpload(ctx, u, "csv")
	m.RecordAnalysis(ctx, u, "paid_ads", 0.01)
	m.RecordReport(ctx, u)

	usage, err := st.GetUsage(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, store.Usage{Uploads: 1, Analyses: 1, Reports: 1}, usage)
}
