package service

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCacheOperationUpdatesHitRatio(t *testing.T) {
	m := NewMetricsService()

	for i := 0; i < 9; i++ {
		m.RecordCacheOperation(true)
	}
	m.RecordCacheOperation(false)

	assert.InDelta(t, 0.9, testutil.ToFloat64(m.cacheHitRatio), 1e-9)
	assert.Equal(t, 9.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheMisses))
}

func TestRecordCacheOperationRatioStartsAtMiss(t *testing.T) {
	m := NewMetricsService()

	m.RecordCacheOperation(false)

	assert.InDelta(t, 0.0, testutil.ToFloat64(m.cacheHitRatio), 1e-9)
}

func TestObserveDBQueryCollectsSeries(t *testing.T) {
	m := NewMetricsService()

	require.Equal(t, 0, testutil.CollectAndCount(m.dbQueryDuration))
	m.ObserveDBQuery("sections_list_all", 5*time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(m.dbQueryDuration, "db_query_duration_seconds"))
}

func TestMetricsServiceNilReceiverIsSafe(t *testing.T) {
	var m *MetricsService

	assert.NotPanics(t, func() {
		m.RecordCacheOperation(true)
		m.ObserveDBQuery("sections_list_all", time.Millisecond)
		m.RecordConflictCheck(true)
		m.ObserveHTTPRequest("GET", "/sections", 200, time.Millisecond)
	})
}
