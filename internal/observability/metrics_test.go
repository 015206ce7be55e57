package observability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_SnapshotCounts(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/todos", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/todos", "GET", 200, 30*time.Millisecond)
	m.RecordError("/admin/users/1", "PATCH", "INSUFFICIENT_ROLE")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/todos|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/admin/users/1|PATCH|INSUFFICIENT_ROLE"])
	assert.Equal(t, "20ms", snap.AverageLatency)
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/x", "GET", 200, time.Millisecond)
	m.RecordError("/x", "GET", "X")
	assert.Empty(t, m.Snapshot().Requests)
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordError("/todos", "GET", "MISSING_CREDENTIAL")
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), m.Snapshot().Errors["/todos|GET|MISSING_CREDENTIAL"])
}
