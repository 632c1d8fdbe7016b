package health

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"console-backend/internal/erp"
)

// Pinger reports liveness of an optional dependency (Redis)
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	erpClient erp.Client
	redis     Pinger
}

type HealthStatus struct {
	Status string         `json:"status"`
	ERP    UpstreamHealth `json:"erp"`
	Redis  string         `json:"redis"`
	System SystemStats    `json:"system"`
}

type UpstreamHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type SystemStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  uint64  `json:"memory_used_mb"`
}

// NewHealthChecker builds a checker; redis may be nil when the deployment
// runs on the in-memory cache.
func NewHealthChecker(erpClient erp.Client, redis Pinger) *HealthChecker {
	return &HealthChecker{erpClient: erpClient, redis: redis}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	erpHealth := h.checkERP()

	status := "healthy"
	if erpHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status: status,
		ERP:    erpHealth,
		Redis:  h.checkRedis(),
		System: collectSystemStats(),
	}
}

func (h *HealthChecker) checkERP() UpstreamHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.erpClient.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return UpstreamHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return UpstreamHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

func (h *HealthChecker) checkRedis() string {
	if h.redis == nil {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.redis.Ping(ctx); err != nil {
		return "unhealthy"
	}
	return "healthy"
}

func collectSystemStats() SystemStats {
	stats := SystemStats{}
	if percentages, err := cpu.Percent(0, false); err == nil && len(percentages) > 0 {
		stats.CPUPercent = percentages[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
		stats.MemoryUsedMB = vm.Used / 1024 / 1024
	}
	return stats
}
