package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics holds in-memory request counters
type Metrics struct {
	mu                 sync.RWMutex
	startedAt          time.Time
	totalRequests      uint64
	requestsByEndpoint map[string]uint64
	requestsByStatus   map[string]uint64
}

// MetricsSnapshot is a point-in-time copy of Metrics
type MetricsSnapshot struct {
	TotalRequests      uint64            `json:"total_requests"`
	RequestsByEndpoint map[string]uint64 `json:"requests_by_endpoint"`
	RequestsByStatus   map[string]uint64 `json:"requests_by_status"`
	UptimeSeconds      int64             `json:"uptime_seconds"`
}

// NewMetrics creates empty counters
func NewMetrics() *Metrics {
	return &Metrics{
		startedAt:          time.Now(),
		requestsByEndpoint: make(map[string]uint64),
		requestsByStatus:   make(map[string]uint64),
	}
}

// Record counts one request
func (m *Metrics) Record(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalRequests++
	m.requestsByEndpoint[endpoint]++
	m.requestsByStatus[strconv.Itoa(status)]++
}

// Snapshot returns the current request metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return MetricsSnapshot{
		TotalRequests:      m.totalRequests,
		RequestsByEndpoint: copyMap(m.requestsByEndpoint),
		RequestsByStatus:   copyMap(m.requestsByStatus),
		UptimeSeconds:      int64(time.Since(m.startedAt).Seconds()),
	}
}

// copyMap creates a copy of the map
func copyMap(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// MetricsHandler returns current request metrics
func MetricsHandler(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, m.Snapshot())
	}
}
