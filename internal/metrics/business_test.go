package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessMetrics(t *testing.T) {
	provider, err := NewProvider()
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "rotator_admin")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "admin", "config_list", "success")
	bm.RecordOperation(ctx, "admin", "config_list", "success")
	bm.RecordOperation(ctx, "admin", "key_add", "error")
	bm.RecordDuration(ctx, "admin", "config_list", 40*time.Millisecond, "success")
	bm.RecordDuration(ctx, "admin", "config_list", 60*time.Millisecond, "success")

	output := scrape(t, provider)

	assertMetricLine(t, output, `rotator_admin_operations_total`,
		`domain="admin".*operation="config_list".*status="success"`, `2`)
	assertMetricLine(t, output, `rotator_admin_operations_total`,
		`domain="admin".*operation="key_add".*status="error"`, `1`)
	assertMetricLine(t, output, `rotator_admin_operation_duration_seconds_count`,
		`domain="admin".*operation="config_list".*status="success"`, `2`)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	m := NewNoOpBusinessMetrics()

	assert.IsType(t, &NoOpBusinessMetrics{}, m)
	assert.NotPanics(t, func() {
		m.RecordOperation(context.Background(), "admin", "login", "success")
		m.RecordDuration(context.Background(), "admin", "login", time.Second, "error")
	})
}
